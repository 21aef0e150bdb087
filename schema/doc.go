// Package schema holds the validated model of a message IDL source: the
// primitive type table, field rules, fields, messages and the schema that
// groups them.
//
// The model is built once by the compiler and is read-only afterwards. All
// accessors that return slices return copies.
//
//	f := schema.NewField(schema.Repeated, schema.ResolveType("int32"), "values", 2)
//	f.Accessor()        // Values
//	f.BuilderAccessor() // ValuesList
//	f.Setter()          // SetValuesList
//
// Type keywords that are not primitives resolve to message references:
//
//	schema.ResolveType("Point").IsMessage() // true
//
// Whether such a reference names a declared message is checked by the
// compiler once the whole source is known.
package schema
