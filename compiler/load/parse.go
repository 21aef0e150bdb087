package load

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/scanner"

	"github.com/emicklei/proto"
)

// ParseFile parses the IDL file at path.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse parses an IDL source read from r. The name is used in positions.
// A *SyntaxError is returned for malformed input and for any construct
// other than syntax, package, message and plain field declarations.
func Parse(name string, r io.Reader) (*File, error) {
	p := proto.NewParser(r)
	p.Filename(name)
	def, err := p.Parse()
	if err != nil {
		return nil, syntaxError(name, err)
	}
	file := &File{filename: name}
	for _, elem := range def.Elements {
		switch e := elem.(type) {
		case *proto.Syntax, *proto.Comment:
		case *proto.Package:
			if file.pkg != "" {
				return nil, unsupported(pos(name, e.Position), "second package statement")
			}
			file.pkg = e.Name
		case *proto.Message:
			m, err := message(name, e)
			if err != nil {
				return nil, err
			}
			file.messages = append(file.messages, m)
		default:
			return nil, unsupported(position(name, elem), construct(elem))
		}
	}
	return file, nil
}

func message(name string, pm *proto.Message) (*Message, error) {
	if pm.IsExtend {
		return nil, unsupported(pos(name, pm.Position), "extend")
	}
	m := &Message{name: pm.Name, pos: pos(name, pm.Position)}
	for _, elem := range pm.Elements {
		switch e := elem.(type) {
		case *proto.Comment:
		case *proto.NormalField:
			if len(e.Options) > 0 {
				return nil, unsupported(pos(name, e.Position), fmt.Sprintf("options on field %q", e.Name))
			}
			m.fields = append(m.fields, &Field{
				rule: rule(e),
				typ:  e.Type,
				name: e.Name,
				id:   strconv.Itoa(e.Sequence),
				pos:  pos(name, e.Position),
			})
		case *proto.Message:
			return nil, unsupported(pos(name, e.Position), fmt.Sprintf("nested message %q", e.Name))
		default:
			return nil, unsupported(position(name, elem), construct(elem))
		}
	}
	return m, nil
}

// rule returns the label of a field, or an empty string if it has none.
func rule(f *proto.NormalField) string {
	switch {
	case f.Optional:
		return "optional"
	case f.Required:
		return "required"
	case f.Repeated:
		return "repeated"
	default:
		return ""
	}
}

func construct(elem proto.Visitee) string {
	switch e := elem.(type) {
	case *proto.Import:
		return fmt.Sprintf("import %q", e.Filename)
	case *proto.Option:
		return fmt.Sprintf("option %q", e.Name)
	case *proto.Enum:
		return fmt.Sprintf("enum %q", e.Name)
	case *proto.Service:
		return fmt.Sprintf("service %q", e.Name)
	case *proto.Oneof:
		return fmt.Sprintf("oneof %q", e.Name)
	case *proto.MapField:
		return fmt.Sprintf("map field %q", e.Name)
	case *proto.Group:
		return fmt.Sprintf("group %q", e.Name)
	case *proto.Extensions:
		return "extensions"
	case *proto.Reserved:
		return "reserved"
	default:
		return fmt.Sprintf("%T", elem)
	}
}

func position(name string, elem proto.Visitee) Position {
	switch e := elem.(type) {
	case *proto.Import:
		return pos(name, e.Position)
	case *proto.Option:
		return pos(name, e.Position)
	case *proto.Enum:
		return pos(name, e.Position)
	case *proto.Service:
		return pos(name, e.Position)
	case *proto.Oneof:
		return pos(name, e.Position)
	case *proto.MapField:
		return pos(name, e.Position)
	case *proto.Group:
		return pos(name, e.Position)
	case *proto.Extensions:
		return pos(name, e.Position)
	case *proto.Reserved:
		return pos(name, e.Position)
	default:
		return Position{Filename: name}
	}
}

func pos(name string, p scanner.Position) Position {
	return Position{Filename: name, Line: p.Line, Column: p.Column}
}

func unsupported(at Position, what string) *SyntaxError {
	return &SyntaxError{
		Filename: at.Filename,
		Line:     at.Line,
		Column:   at.Column,
		Message:  "unsupported " + what,
	}
}
