package schema

import (
	"fmt"

	"github.com/syssam/protoval/naming"
)

// listSuffix distinguishes the builder accumulator of a repeated field from
// the finished sequence exposed by the value type.
const listSuffix = "_list"

// Field is a single declared field of a message. Fields are immutable; the
// names used by generated code are derived once in NewField.
type Field struct {
	rule FieldRule
	typ  Type
	name string
	id   int32

	accessor        string
	setter          string
	builderAccessor string
	varName         string
	builderVarName  string
}

// NewField returns a field with its derived names computed.
func NewField(rule FieldRule, typ Type, name string, id int32) *Field {
	f := &Field{rule: rule, typ: typ, name: name, id: id}
	slot := name
	if rule == Repeated {
		slot += listSuffix
	}
	f.accessor = naming.ToUpperCamel(name)
	f.varName = naming.ToLowerCamel(name)
	f.builderAccessor = naming.ToUpperCamel(slot)
	f.builderVarName = naming.ToLowerCamel(slot)
	f.setter = "Set" + f.builderAccessor
	return f
}

// Rule returns the cardinality rule of the field.
func (f *Field) Rule() FieldRule { return f.rule }

// Type returns the resolved type of the field.
func (f *Field) Type() Type { return f.typ }

// Name returns the declared field name.
func (f *Field) Name() string { return f.name }

// ID returns the declared field number.
func (f *Field) ID() int32 { return f.id }

// IsRepeated reports if the field holds an ordered sequence of values.
func (f *Field) IsRepeated() bool { return f.rule == Repeated }

// IsRequired reports if the field was declared required.
func (f *Field) IsRequired() bool { return f.rule == Required }

// Accessor returns the name of the value type getter (e.g. UserID).
func (f *Field) Accessor() string { return f.accessor }

// Setter returns the name of the builder setter (e.g. SetValuesList).
func (f *Field) Setter() string { return f.setter }

// BuilderAccessor returns the name of the builder getter. For repeated
// fields it carries the list suffix (e.g. ValuesList).
func (f *Field) BuilderAccessor() string { return f.builderAccessor }

// VarName returns the lowerCamel name used for value storage and
// constructor parameters.
func (f *Field) VarName() string { return f.varName }

// BuilderVarName returns the lowerCamel name of the builder slot.
func (f *Field) BuilderVarName() string { return f.builderVarName }

// String returns the field in IDL notation.
func (f *Field) String() string {
	return fmt.Sprintf("%s %s %s = %d", f.rule, f.typ, f.name, f.id)
}
