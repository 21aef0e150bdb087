package schema_test

import (
	"testing"

	"github.com/syssam/protoval/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPrimitive(t *testing.T) {
	tests := []struct {
		keyword string
		want    schema.PrimitiveType
	}{
		{"int32", schema.Int32},
		{"int64", schema.Int64},
		{"float", schema.Float},
		{"double", schema.Double},
		{"bool", schema.Bool},
		{"bytes", schema.Bytes},
		{"string", schema.String},
		{"Point", schema.None},
		{"uint32", schema.None},
		{"Int32", schema.None},
		{"", schema.None},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, schema.LookupPrimitive(tt.keyword))
		})
	}
}

func TestPrimitiveString(t *testing.T) {
	for _, kw := range schema.Primitives() {
		assert.Equal(t, kw, schema.LookupPrimitive(kw).String())
	}
	assert.Equal(t, "none", schema.None.String())
	assert.Equal(t, "invalid", schema.PrimitiveType(200).String())
	assert.False(t, schema.PrimitiveType(200).Valid())
	assert.Len(t, schema.Primitives(), 7)
}

func TestResolveType(t *testing.T) {
	typ := schema.ResolveType("double")
	assert.False(t, typ.IsMessage())
	assert.Equal(t, schema.Double, typ.Primitive)
	assert.Equal(t, "double", typ.String())

	typ = schema.ResolveType("Point")
	assert.True(t, typ.IsMessage())
	assert.Equal(t, schema.None, typ.Primitive)
	assert.Equal(t, "Point", typ.String())

	assert.False(t, schema.Type{}.IsMessage())
}

func TestParseFieldRule(t *testing.T) {
	tests := []struct {
		keyword string
		want    schema.FieldRule
		ok      bool
	}{
		{"optional", schema.Optional, true},
		{"required", schema.Required, true},
		{"repeated", schema.Repeated, true},
		{"Optional", schema.RuleInvalid, false},
		{"map", schema.RuleInvalid, false},
		{"", schema.RuleInvalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			rule, ok := schema.ParseFieldRule(tt.keyword)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, rule)
			assert.Equal(t, ok, rule.Valid())
			if ok {
				assert.Equal(t, tt.keyword, rule.String())
			}
		})
	}
	var zero schema.FieldRule
	assert.False(t, zero.Valid())
}

func TestFieldNames(t *testing.T) {
	tests := []struct {
		rule            schema.FieldRule
		name            string
		accessor        string
		setter          string
		builderAccessor string
		varName         string
		builderVarName  string
	}{
		{schema.Required, "x", "X", "SetX", "X", "x", "x"},
		{schema.Optional, "user_id", "UserID", "SetUserID", "UserID", "userID", "userID"},
		{schema.Optional, "first_name", "FirstName", "SetFirstName", "FirstName", "firstName", "firstName"},
		{schema.Repeated, "values", "Values", "SetValuesList", "ValuesList", "values", "valuesList"},
		{schema.Repeated, "url", "URL", "SetURLList", "URLList", "url", "urlList"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := schema.NewField(tt.rule, schema.ResolveType("int32"), tt.name, 1)
			assert.Equal(t, tt.accessor, f.Accessor())
			assert.Equal(t, tt.setter, f.Setter())
			assert.Equal(t, tt.builderAccessor, f.BuilderAccessor())
			assert.Equal(t, tt.varName, f.VarName())
			assert.Equal(t, tt.builderVarName, f.BuilderVarName())
		})
	}
}

func TestField(t *testing.T) {
	f := schema.NewField(schema.Repeated, schema.ResolveType("Point"), "points", 3)
	assert.Equal(t, schema.Repeated, f.Rule())
	assert.Equal(t, "points", f.Name())
	assert.EqualValues(t, 3, f.ID())
	assert.True(t, f.IsRepeated())
	assert.False(t, f.IsRequired())
	assert.True(t, f.Type().IsMessage())
	assert.Equal(t, "repeated Point points = 3", f.String())
}

func int32Field(name string, id int32) *schema.Field {
	return schema.NewField(schema.Optional, schema.ResolveType("int32"), name, id)
}

func TestMessage(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m := schema.NewMessage("Point", []*schema.Field{int32Field("x", 1), int32Field("y", 2)})
		assert.True(t, m.Valid())
		assert.Empty(t, m.Collisions())
		assert.Equal(t, "Point", m.Name())
		assert.Equal(t, 2, m.NumFields())

		fields := m.Fields()
		require.Len(t, fields, 2)
		assert.Equal(t, "x", fields[0].Name())
		assert.Equal(t, "y", fields[1].Name())

		f, ok := m.FieldByID(2)
		require.True(t, ok)
		assert.Equal(t, "y", f.Name())
		f, ok = m.FieldByName("x")
		require.True(t, ok)
		assert.EqualValues(t, 1, f.ID())
		_, ok = m.FieldByID(3)
		assert.False(t, ok)
	})

	t.Run("FieldsCopy", func(t *testing.T) {
		m := schema.NewMessage("Point", []*schema.Field{int32Field("x", 1)})
		fields := m.Fields()
		fields[0] = int32Field("z", 9)
		assert.Equal(t, "x", m.Fields()[0].Name())
	})

	t.Run("DuplicateID", func(t *testing.T) {
		m := schema.NewMessage("M", []*schema.Field{int32Field("a", 1), int32Field("b", 1)})
		assert.False(t, m.Valid())
		cs := m.Collisions()
		require.Len(t, cs, 1)
		assert.Equal(t, schema.DuplicateID, cs[0].Kind)
		assert.Equal(t, "a", cs[0].First.Name())
		assert.Equal(t, "b", cs[0].Second.Name())
		assert.Equal(t, `duplicate field id 1: "a" and "b"`, cs[0].String())
	})

	t.Run("DuplicateName", func(t *testing.T) {
		m := schema.NewMessage("M", []*schema.Field{int32Field("a", 1), int32Field("a", 2)})
		assert.False(t, m.Valid())
		cs := m.Collisions()
		require.Len(t, cs, 1)
		assert.Equal(t, schema.DuplicateName, cs[0].Kind)
		assert.Equal(t, `duplicate field name "a": ids 1 and 2`, cs[0].String())
	})

	t.Run("AllCollisions", func(t *testing.T) {
		m := schema.NewMessage("M", []*schema.Field{
			int32Field("a", 1),
			int32Field("b", 1),
			int32Field("a", 2),
			int32Field("c", 1),
		})
		cs := m.Collisions()
		require.Len(t, cs, 3)
		assert.Equal(t, schema.DuplicateID, cs[0].Kind)
		assert.Equal(t, schema.DuplicateName, cs[1].Kind)
		assert.Equal(t, schema.DuplicateID, cs[2].Kind)
		assert.Equal(t, "c", cs[2].Second.Name())
	})

	t.Run("References", func(t *testing.T) {
		m := schema.NewMessage("Line", []*schema.Field{
			schema.NewField(schema.Required, schema.ResolveType("Point"), "start", 1),
			schema.NewField(schema.Required, schema.ResolveType("Point"), "end", 2),
			schema.NewField(schema.Optional, schema.ResolveType("string"), "label", 3),
			schema.NewField(schema.Repeated, schema.ResolveType("Style"), "styles", 4),
		})
		assert.Equal(t, []string{"Point", "Style"}, m.References())
		assert.True(t, m.HasRepeated())
	})
}

func TestSchema(t *testing.T) {
	a := schema.NewMessage("A", []*schema.Field{schema.NewField(schema.Optional, schema.ResolveType("B"), "b", 1)})
	b := schema.NewMessage("B", []*schema.Field{int32Field("x", 1)})
	s := schema.NewSchema("shapes", []*schema.Message{a, b})

	assert.Equal(t, "shapes", s.Namespace())
	assert.Equal(t, 2, s.Len())
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "A", msgs[0].Name())
	assert.Equal(t, "B", msgs[1].Name())

	m, ok := s.Message("B")
	require.True(t, ok)
	assert.Same(t, b, m)
	_, ok = s.Message("C")
	assert.False(t, ok)
}
