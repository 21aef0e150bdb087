// Package load parses IDL sources into declaration trees consumed by the
// compiler.
//
// The compiler depends only on the Tree, MessageNode and FieldNode
// interfaces. ParseFile and Parse build a tree with the protobuf parser from
// github.com/emicklei/proto, and NewFile, NewMessage and NewField build one
// by hand.
package load

import "fmt"

// Tree is the declaration tree of a single source unit.
type Tree interface {
	// Filename returns the name of the source, used in positions.
	Filename() string
	// Package returns the declared package, or an empty string.
	Package() string
	// Messages returns the message declarations in source order.
	Messages() []MessageNode
}

// MessageNode is a message declaration.
type MessageNode interface {
	Name() string
	Pos() Position
	// Fields returns the field declarations in source order.
	Fields() []FieldNode
}

// FieldNode is a field declaration. All attributes are the raw source
// keywords; the compiler interprets them.
type FieldNode interface {
	Rule() string
	Type() string
	Name() string
	ID() string
	Pos() Position
}

// Position describes a location in a source file. Line and Column are
// 1-based; a zero Line means the position is unknown.
type Position struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// IsValid reports if the position is known.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns the position in file:line:column form.
func (p Position) String() string {
	switch {
	case !p.IsValid():
		return p.Filename
	case p.Filename == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	default:
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
}

// File is a parsed source unit. It implements Tree.
type File struct {
	filename string
	pkg      string
	messages []*Message
}

// NewFile returns a tree holding the given messages in order.
func NewFile(filename, pkg string, messages ...*Message) *File {
	return &File{filename: filename, pkg: pkg, messages: messages}
}

// Filename implements Tree.
func (f *File) Filename() string { return f.filename }

// Package implements Tree.
func (f *File) Package() string { return f.pkg }

// Messages implements Tree.
func (f *File) Messages() []MessageNode {
	nodes := make([]MessageNode, len(f.messages))
	for i, m := range f.messages {
		nodes[i] = m
	}
	return nodes
}

// Message is a message declaration. It implements MessageNode.
type Message struct {
	name   string
	pos    Position
	fields []*Field
}

// NewMessage returns a message declaration with the given fields in order.
func NewMessage(name string, pos Position, fields ...*Field) *Message {
	return &Message{name: name, pos: pos, fields: fields}
}

// Name implements MessageNode.
func (m *Message) Name() string { return m.name }

// Pos implements MessageNode.
func (m *Message) Pos() Position { return m.pos }

// Fields implements MessageNode.
func (m *Message) Fields() []FieldNode {
	nodes := make([]FieldNode, len(m.fields))
	for i, f := range m.fields {
		nodes[i] = f
	}
	return nodes
}

// Field is a field declaration. It implements FieldNode.
type Field struct {
	rule, typ, name, id string
	pos                 Position
}

// NewField returns a field declaration from its raw keywords.
func NewField(rule, typ, name, id string, pos Position) *Field {
	return &Field{rule: rule, typ: typ, name: name, id: id, pos: pos}
}

// Rule implements FieldNode.
func (f *Field) Rule() string { return f.rule }

// Type implements FieldNode.
func (f *Field) Type() string { return f.typ }

// Name implements FieldNode.
func (f *Field) Name() string { return f.name }

// ID implements FieldNode.
func (f *Field) ID() string { return f.id }

// Pos implements FieldNode.
func (f *Field) Pos() Position { return f.pos }
