package gen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/protoval/schema"
)

// GoEmitter renders a message as an immutable Go struct with unexported
// storage, a private constructor, accessors, a memoized String method and a
// mutable builder.
type GoEmitter struct{}

// Name implements Emitter.
func (GoEmitter) Name() string { return "go" }

// Emit implements Emitter.
func (GoEmitter) Emit(msg *schema.Message, cfg *Config) (*jen.File, error) {
	t, err := newGoType(msg, cfg)
	if err != nil {
		return nil, err
	}
	f := jen.NewFile(cfg.Package)
	f.HeaderComment("Code generated by protoval. DO NOT EDIT.")
	if cfg.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(cfg.Header, "\n"), "\n") {
			f.HeaderComment(line)
		}
	}
	f.ImportName(t.rt, "protoval")
	f.ImportName("bytes", "bytes")

	t.genValue(f)
	t.genBuilder(f)
	return f, nil
}

// goType holds the names generated for one message.
type goType struct {
	msg     *schema.Message
	rt      string
	name    string
	builder string
	ctor    string
	newer   string
	fields  []*goField
}

// goField holds the names and types generated for one field.
type goField struct {
	*schema.Field
	elem     func() *jen.Statement
	storage  string // value struct field and constructor parameter
	slot     string // builder struct field
	accessor string // value getter
	getter   string // builder getter
	setter   string
	adder    string // repeated fields only
}

// packageIdents returns the package-level identifiers declared for msg.
func packageIdents(msg *schema.Message) []string {
	name := msg.Name()
	return []string{name, name + "Builder", "new" + name, "New" + name + "Builder"}
}

func newGoType(msg *schema.Message, cfg *Config) (*goType, error) {
	if !msg.Valid() {
		cs := msg.Collisions()
		parts := make([]string, len(cs))
		for i, c := range cs {
			parts[i] = c.String()
		}
		return nil, NewGenerationError(msg.Name(), "", "invalid message: "+strings.Join(parts, "; "), nil)
	}
	idents := packageIdents(msg)
	t := &goType{
		msg:     msg,
		rt:      cfg.runtime(),
		name:    idents[0],
		builder: idents[1],
		ctor:    idents[2],
		newer:   idents[3],
	}
	pkg := newScope("package " + cfg.Package)
	_ = pkg.declare("protoval", "import")
	_ = pkg.declare("bytes", "import")
	for _, id := range idents {
		if err := pkg.declare(id, "type identifier"); err != nil {
			return nil, NewGenerationError(msg.Name(), "", "", err)
		}
	}
	var (
		value   = newScope("type " + t.name)
		builder = newScope("type " + t.builder)
	)
	for name := range privateField {
		_ = value.declare(name, "private field")
	}
	for name := range valueMethods {
		_ = value.declare(name, "method")
	}
	for name := range builderMethods {
		_ = builder.declare(name, "method")
	}
	for _, fd := range msg.Fields() {
		gf, err := newGoField(msg, fd)
		if err != nil {
			return nil, err
		}
		decls := []struct {
			s          *scope
			name, what string
		}{
			{value, gf.storage, "field"},
			{value, gf.accessor, "accessor"},
			{builder, gf.slot, "field"},
			{builder, gf.getter, "getter"},
			{builder, gf.setter, "setter"},
		}
		if gf.IsRepeated() {
			decls = append(decls, struct {
				s          *scope
				name, what string
			}{builder, gf.adder, "adder"})
		}
		for _, d := range decls {
			if err := d.s.declare(d.name, d.what+" of "+fd.Name()); err != nil {
				return nil, NewGenerationError(msg.Name(), fd.Name(), "", err)
			}
		}
		t.fields = append(t.fields, gf)
	}
	return t, nil
}

func newGoField(msg *schema.Message, f *schema.Field) (*goField, error) {
	elem, err := elemType(f.Type())
	if err != nil {
		return nil, NewGenerationError(msg.Name(), f.Name(), "", err)
	}
	gf := &goField{
		Field:    f,
		elem:     elem,
		storage:  builderField(f.VarName()),
		slot:     builderField(f.BuilderVarName()),
		accessor: methodName(f.Accessor(), valueMethods),
		getter:   methodName(f.BuilderAccessor(), builderMethods),
		setter:   f.Setter(),
	}
	if f.IsRepeated() {
		gf.adder = "Add" + f.Accessor()
	}
	return gf, nil
}

// elemType maps a field type to the Go type of one element.
func elemType(t schema.Type) (func() *jen.Statement, error) {
	if t.IsMessage() {
		name := t.Message
		return func() *jen.Statement { return jen.Op("*").Id(name) }, nil
	}
	switch t.Primitive {
	case schema.Int32:
		return jen.Int32, nil
	case schema.Int64:
		return jen.Int64, nil
	case schema.Float:
		return jen.Float32, nil
	case schema.Double:
		return jen.Float64, nil
	case schema.Bool:
		return jen.Bool, nil
	case schema.String:
		return jen.String, nil
	case schema.Bytes:
		return func() *jen.Statement { return jen.Index().Byte() }, nil
	default:
		return nil, fmt.Errorf("type %q has no Go mapping", t)
	}
}

// valueType is the type exposed by the value: the element type, or an
// immutable list of it for repeated fields.
func (t *goType) valueType(f *goField) *jen.Statement {
	if f.IsRepeated() {
		return jen.Qual(t.rt, "List").Types(f.elem())
	}
	return f.elem()
}

// slotType is the type held by the builder: the element type, or a list
// builder for repeated fields.
func (t *goType) slotType(f *goField) *jen.Statement {
	if f.IsRepeated() {
		return jen.Op("*").Qual(t.rt, "ListBuilder").Types(f.elem())
	}
	return f.elem()
}

func isBytes(f *goField) bool {
	return !f.IsRepeated() && f.Type().Primitive == schema.Bytes
}

func describe(f *goField) string {
	return fmt.Sprintf("the %s field %s (%d)", f.Rule(), f.Name(), f.ID())
}

func (t *goType) genValue(f *jen.File) {
	recv := func() *jen.Statement { return jen.Id("m").Op("*").Id(t.name) }

	f.Commentf("%s is an immutable value. Use %s to create one.", t.name, t.builder)
	f.Type().Id(t.name).StructFunc(func(g *jen.Group) {
		for _, fd := range t.fields {
			g.Id(fd.storage).Add(t.valueType(fd))
		}
		g.Id("str").Qual(t.rt, "Lazy").Types(jen.String())
	})

	f.Func().Id(t.ctor).ParamsFunc(func(g *jen.Group) {
		for _, fd := range t.fields {
			g.Id(fd.storage).Add(t.valueType(fd))
		}
	}).Op("*").Id(t.name).Block(
		jen.Return(jen.Op("&").Id(t.name).ValuesFunc(func(g *jen.Group) {
			for _, fd := range t.fields {
				g.Id(fd.storage).Op(":").Id(fd.storage)
			}
		})),
	)

	for _, fd := range t.fields {
		ret := jen.Id("m").Dot(fd.storage)
		if isBytes(fd) {
			f.Commentf("%s returns a copy of %s.", fd.accessor, describe(fd))
			ret = jen.Qual("bytes", "Clone").Call(ret)
		} else {
			f.Commentf("%s returns %s.", fd.accessor, describe(fd))
		}
		f.Func().Params(recv()).Id(fd.accessor).Params().Add(t.valueType(fd)).Block(
			jen.Return(ret),
		)
	}

	f.Commentf("String returns the fields of the %s in declaration order. It is computed once.", t.name)
	f.Func().Params(recv()).Id("String").Params().String().Block(
		jen.Return(jen.Id("m").Dot("str").Dot("Get").Call(jen.Id("m").Dot("buildString"))),
	)
	str := jen.Qual(t.rt, "NewToStringHelper").Call(jen.Lit(t.name))
	for _, fd := range t.fields {
		str = str.Dot("Add").Call(jen.Lit(fd.Accessor()), jen.Id("m").Dot(fd.storage))
	}
	f.Func().Params(recv()).Id("buildString").Params().String().Block(
		jen.Return(str.Dot("String").Call()),
	)
}

func (t *goType) genBuilder(f *jen.File) {
	recv := func() *jen.Statement { return jen.Id("b").Op("*").Id(t.builder) }
	self := func() *jen.Statement { return jen.Op("*").Id(t.builder) }
	newList := func(fd *goField) *jen.Statement {
		return jen.Qual(t.rt, "NewListBuilder").Types(fd.elem()).Call()
	}

	f.Commentf("%s accumulates the fields of a %s. Required fields are not enforced.", t.builder, t.name)
	f.Type().Id(t.builder).StructFunc(func(g *jen.Group) {
		for _, fd := range t.fields {
			g.Id(fd.slot).Add(t.slotType(fd))
		}
	})

	f.Commentf("%s returns an empty builder.", t.newer)
	f.Func().Id(t.newer).Params().Add(self()).Block(
		jen.Return(jen.Op("&").Id(t.builder).ValuesFunc(func(g *jen.Group) {
			for _, fd := range t.fields {
				if fd.IsRepeated() {
					g.Id(fd.slot).Op(":").Add(newList(fd))
				}
			}
		})),
	)

	for _, fd := range t.fields {
		slot := jen.Id("b").Dot(fd.slot)
		if fd.IsRepeated() {
			f.Commentf("%s returns the mutable accumulator of %s.", fd.getter, describe(fd))
			f.Func().Params(recv()).Id(fd.getter).Params().Add(t.slotType(fd)).Block(
				jen.If(jen.Id("b").Dot(fd.slot).Op("==").Nil()).Block(
					jen.Id("b").Dot(fd.slot).Op("=").Add(newList(fd)),
				),
				jen.Return(jen.Id("b").Dot(fd.slot)),
			)
		} else {
			f.Commentf("%s returns the current value of %s.", fd.getter, describe(fd))
			f.Func().Params(recv()).Id(fd.getter).Params().Add(t.slotType(fd)).Block(
				jen.Return(slot),
			)
		}

		f.Commentf("%s sets %s.", fd.setter, describe(fd))
		f.Func().Params(recv()).Id(fd.setter).Params(jen.Id("v").Add(t.slotType(fd))).Add(self()).Block(
			jen.Id("b").Dot(fd.slot).Op("=").Id("v"),
			jen.Return(jen.Id("b")),
		)

		if fd.IsRepeated() {
			f.Commentf("%s appends to %s.", fd.adder, describe(fd))
			f.Func().Params(recv()).Id(fd.adder).Params(jen.Id("v").Op("...").Add(fd.elem())).Add(self()).Block(
				jen.Id("b").Dot(fd.getter).Call().Dot("Add").Call(jen.Id("v").Op("...")),
				jen.Return(jen.Id("b")),
			)
		}
	}

	f.Commentf("Build returns a %s holding the current values. The builder stays usable.", t.name)
	f.Func().Params(recv()).Id("Build").Params().Op("*").Id(t.name).Block(
		jen.Return(jen.Id(t.ctor).CallFunc(func(g *jen.Group) {
			for _, fd := range t.fields {
				v := jen.Id("b").Dot(fd.slot)
				switch {
				case fd.IsRepeated():
					v = v.Dot("Build").Call()
				case isBytes(fd):
					v = jen.Qual("bytes", "Clone").Call(v)
				}
				g.Add(v)
			}
		})),
	)
}
