package schema

import "fmt"

// CollisionKind tells which attribute two fields share.
type CollisionKind uint8

// Collision kinds.
const (
	DuplicateID CollisionKind = iota + 1
	DuplicateName
)

// String implements the fmt.Stringer interface.
func (k CollisionKind) String() string {
	switch k {
	case DuplicateID:
		return "id"
	case DuplicateName:
		return "name"
	default:
		return "unknown"
	}
}

// Collision describes two fields of one message that share an id or a name.
// First is the earlier declaration.
type Collision struct {
	Kind   CollisionKind
	First  *Field
	Second *Field
}

// String implements the fmt.Stringer interface.
func (c Collision) String() string {
	switch c.Kind {
	case DuplicateID:
		return fmt.Sprintf("duplicate field id %d: %q and %q", c.Second.ID(), c.First.Name(), c.Second.Name())
	default:
		return fmt.Sprintf("duplicate field name %q: ids %d and %d", c.Second.Name(), c.First.ID(), c.Second.ID())
	}
}

// Message is a named, ordered collection of fields. The id and name indexes
// serve lookups only; iteration always follows declaration order.
type Message struct {
	name       string
	fields     []*Field
	byID       map[int32]*Field
	byName     map[string]*Field
	collisions []Collision
}

// NewMessage builds a message from its fields in declaration order. A message
// whose fields share an id or a name is still returned, but it is not Valid
// and its Collisions describe every clash.
func NewMessage(name string, fields []*Field) *Message {
	m := &Message{
		name:   name,
		fields: append([]*Field(nil), fields...),
		byID:   make(map[int32]*Field, len(fields)),
		byName: make(map[string]*Field, len(fields)),
	}
	for _, f := range m.fields {
		if prev, ok := m.byID[f.ID()]; ok {
			m.collisions = append(m.collisions, Collision{Kind: DuplicateID, First: prev, Second: f})
		} else {
			m.byID[f.ID()] = f
		}
		if prev, ok := m.byName[f.Name()]; ok {
			m.collisions = append(m.collisions, Collision{Kind: DuplicateName, First: prev, Second: f})
		} else {
			m.byName[f.Name()] = f
		}
	}
	return m
}

// Name returns the message name.
func (m *Message) Name() string { return m.name }

// Fields returns the fields in declaration order.
func (m *Message) Fields() []*Field { return append([]*Field(nil), m.fields...) }

// NumFields returns the number of declared fields.
func (m *Message) NumFields() int { return len(m.fields) }

// FieldByID returns the first field declared with the given id.
func (m *Message) FieldByID(id int32) (*Field, bool) {
	f, ok := m.byID[id]
	return f, ok
}

// FieldByName returns the first field declared with the given name.
func (m *Message) FieldByName(name string) (*Field, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// Valid reports if all field ids and all field names are pairwise distinct.
// Invalid messages must not be used for generation.
func (m *Message) Valid() bool { return len(m.collisions) == 0 }

// Collisions returns every duplicate id or name in declaration order.
func (m *Message) Collisions() []Collision { return append([]Collision(nil), m.collisions...) }

// HasRepeated reports if the message declares at least one repeated field.
func (m *Message) HasRepeated() bool {
	for _, f := range m.fields {
		if f.IsRepeated() {
			return true
		}
	}
	return false
}

// References returns the names of the messages referenced by the fields,
// deduplicated, in order of first use.
func (m *Message) References() []string {
	var (
		refs []string
		seen = make(map[string]struct{})
	)
	for _, f := range m.fields {
		t := f.Type()
		if !t.IsMessage() {
			continue
		}
		if _, ok := seen[t.Message]; ok {
			continue
		}
		seen[t.Message] = struct{}{}
		refs = append(refs, t.Message)
	}
	return refs
}
