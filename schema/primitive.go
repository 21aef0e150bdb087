package schema

// PrimitiveType is the scalar type of a field declared with a primitive
// keyword. None marks a keyword that is not a primitive and is treated as a
// reference to another message.
type PrimitiveType uint8

// List of primitive types.
const (
	None PrimitiveType = iota
	Int32
	Int64
	Float
	Double
	Bool
	Bytes
	String
	endPrimitives
)

var primitiveNames = [...]string{
	None:   "none",
	Int32:  "int32",
	Int64:  "int64",
	Float:  "float",
	Double: "double",
	Bool:   "bool",
	Bytes:  "bytes",
	String: "string",
}

// primitives is the keyword table of the type registry. It is built once and
// never written afterwards.
var primitives = func() map[string]PrimitiveType {
	m := make(map[string]PrimitiveType, len(primitiveNames)-1)
	for t := Int32; t < endPrimitives; t++ {
		m[primitiveNames[t]] = t
	}
	return m
}()

// String returns the IDL keyword of the primitive.
func (t PrimitiveType) String() string {
	if t < endPrimitives {
		return primitiveNames[t]
	}
	return "invalid"
}

// Valid reports if the type is a known primitive, None included.
func (t PrimitiveType) Valid() bool { return t < endPrimitives }

// Numeric reports if the type is an integer or floating point type.
func (t PrimitiveType) Numeric() bool {
	switch t {
	case Int32, Int64, Float, Double:
		return true
	default:
		return false
	}
}

// LookupPrimitive returns the primitive type for the given keyword, or None
// if the keyword is not a primitive. Unrecognized keywords are not an error
// at this layer; they are resolved as message references once the whole
// schema is known.
func LookupPrimitive(keyword string) PrimitiveType {
	if t, ok := primitives[keyword]; ok {
		return t
	}
	return None
}

// Primitives returns the keywords of all primitive types in declaration order.
func Primitives() []string {
	names := make([]string, 0, len(primitiveNames)-1)
	for t := Int32; t < endPrimitives; t++ {
		names = append(names, primitiveNames[t])
	}
	return names
}

// Type is the resolved type of a field: either a primitive or the name of a
// message declared in the same schema.
type Type struct {
	Primitive PrimitiveType
	Message   string
}

// ResolveType resolves a type keyword through the primitive table. Keywords
// that are not primitives become message references.
func ResolveType(keyword string) Type {
	if t := LookupPrimitive(keyword); t != None {
		return Type{Primitive: t}
	}
	return Type{Message: keyword}
}

// IsMessage reports if the type references another message.
func (t Type) IsMessage() bool { return t.Primitive == None && t.Message != "" }

// String returns the IDL spelling of the type.
func (t Type) String() string {
	if t.IsMessage() {
		return t.Message
	}
	return t.Primitive.String()
}
