package schema

// Schema is the ordered set of messages compiled from one source unit.
// The compiler guarantees that every message reference names a message of
// the same schema.
type Schema struct {
	namespace string
	messages  []*Message
	byName    map[string]*Message
}

// NewSchema returns a schema holding the messages in the given order.
// The namespace is the package declared in the source, if any.
func NewSchema(namespace string, messages []*Message) *Schema {
	s := &Schema{
		namespace: namespace,
		messages:  append([]*Message(nil), messages...),
		byName:    make(map[string]*Message, len(messages)),
	}
	for _, m := range s.messages {
		if _, ok := s.byName[m.Name()]; !ok {
			s.byName[m.Name()] = m
		}
	}
	return s
}

// Namespace returns the package declared in the source, or an empty string.
func (s *Schema) Namespace() string { return s.namespace }

// Messages returns the messages in declaration order.
func (s *Schema) Messages() []*Message { return append([]*Message(nil), s.messages...) }

// Message returns the message with the given name.
func (s *Schema) Message(name string) (*Message, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Len returns the number of messages.
func (s *Schema) Len() int { return len(s.messages) }
