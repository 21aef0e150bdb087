package compiler_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/syssam/protoval/compiler"
	"github.com/syssam/protoval/compiler/gen"
	"github.com/syssam/protoval/compiler/load"
	"github.com/syssam/protoval/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) (*schema.Schema, error) {
	t.Helper()
	return compiler.CompileSource("test.proto", strings.NewReader(src))
}

func TestCompile(t *testing.T) {
	s, err := compile(t, `
package shapes;
message Point { required int32 x = 1; required int32 y = 2; }
message Polygon { repeated Point points = 1; optional string name = 2; }
`)
	require.NoError(t, err)
	assert.Equal(t, "shapes", s.Namespace())
	require.Equal(t, 2, s.Len())

	point, ok := s.Message("Point")
	require.True(t, ok)
	fields := point.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "x", fields[0].Name())
	assert.Equal(t, schema.Required, fields[0].Rule())
	assert.Equal(t, schema.Int32, fields[0].Type().Primitive)
	assert.EqualValues(t, 2, fields[1].ID())

	poly, ok := s.Message("Polygon")
	require.True(t, ok)
	points, ok := poly.FieldByName("points")
	require.True(t, ok)
	assert.True(t, points.IsRepeated())
	assert.Equal(t, "Point", points.Type().Message)
}

func TestCompileDuplicateID(t *testing.T) {
	_, err := compile(t, `message M { optional int32 a = 1; optional int32 b = 1; }`)
	require.Error(t, err)
	assert.ErrorIs(t, err, compiler.ErrInvalidSchema)
	assert.ErrorIs(t, err, compiler.ErrInvalidMessage)

	var msgErr *compiler.InvalidMessageError
	require.ErrorAs(t, err, &msgErr)
	assert.Equal(t, "M", msgErr.Message)
	require.Len(t, msgErr.Collisions, 1)
	assert.Equal(t, schema.DuplicateID, msgErr.Collisions[0].Kind)
	assert.Contains(t, err.Error(), "invalid message M")
}

func TestCompileDuplicateName(t *testing.T) {
	_, err := compile(t, `message M { optional int32 a = 1; optional int32 a = 2; }`)
	require.Error(t, err)

	var msgErr *compiler.InvalidMessageError
	require.ErrorAs(t, err, &msgErr)
	assert.Equal(t, "M", msgErr.Message)
	require.Len(t, msgErr.Collisions, 1)
	assert.Equal(t, schema.DuplicateName, msgErr.Collisions[0].Kind)
	assert.True(t, compiler.IsInvalidMessageError(err))
}

func TestCompileUnresolvedReference(t *testing.T) {
	_, err := compile(t, `message M { optional Foo f = 1; }`)
	require.Error(t, err)
	assert.ErrorIs(t, err, compiler.ErrUnresolvedReference)
	assert.True(t, compiler.IsUnresolvedReferenceError(err))

	var refErr *compiler.UnresolvedTypeReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, []string{"Foo"}, refErr.Names)
	require.Len(t, refErr.Sites, 1)
	assert.Equal(t, "M.f", refErr.Sites[0].String())
	assert.Contains(t, err.Error(), "Foo (used by M.f)")
}

func TestCompileUnresolvedReferenceListsAll(t *testing.T) {
	_, err := compile(t, `
message A { optional Foo f = 1; repeated Bar b = 2; }
message B { optional Foo g = 1; optional A a = 2; }
`)
	var refErr *compiler.UnresolvedTypeReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, []string{"Foo", "Bar"}, refErr.Names)
	assert.Len(t, refErr.Sites, 3)
	assert.Contains(t, err.Error(), "Foo (used by A.f, B.g), Bar (used by A.b)")
}

func TestCompileForwardReference(t *testing.T) {
	s, err := compile(t, `message A { optional B b = 1; } message B { optional int32 x = 1; }`)
	require.NoError(t, err)
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "A", msgs[0].Name())
	assert.Equal(t, "B", msgs[1].Name())
}

func TestCompileSelfReference(t *testing.T) {
	_, err := compile(t, `message Node { optional Node next = 1; repeated Node children = 2; }`)
	require.NoError(t, err)
}

func TestCompileAccumulatesErrors(t *testing.T) {
	_, err := compiler.CompileFile("testdata/broken.proto")
	require.Error(t, err)

	var schemaErr *compiler.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "testdata/broken.proto", schemaErr.Filename)
	require.Len(t, schemaErr.Errors, 3)

	var names []string
	for _, e := range schemaErr.Errors[:2] {
		var msgErr *compiler.InvalidMessageError
		require.ErrorAs(t, e, &msgErr)
		names = append(names, msgErr.Message)
	}
	assert.Equal(t, []string{"M", "N"}, names)

	var refErr *compiler.UnresolvedTypeReferenceError
	require.ErrorAs(t, schemaErr.Errors[2], &refErr)
	assert.Equal(t, []string{"Foo"}, refErr.Names)
	assert.Contains(t, err.Error(), "3 errors")
}

func TestCompileResolvesAlongsideFieldErrors(t *testing.T) {
	tree := load.NewFile("hand.proto", "",
		load.NewMessage("M", load.Position{},
			load.NewField("optional", "int32", "a", "1", load.Position{}),
			load.NewField("optional", "int32", "b", "1", load.Position{}),
			load.NewField("optional", "Foo", "f", "2", load.Position{}),
		),
		load.NewMessage("N", load.Position{},
			load.NewField("optional", "Bar", "b", "x", load.Position{}),
			load.NewField("optional", "M", "m", "1", load.Position{}),
		),
	)
	_, err := compiler.Compile(tree)
	require.Error(t, err)
	assert.ErrorIs(t, err, compiler.ErrInvalidMessage)
	assert.ErrorIs(t, err, compiler.ErrInvalidFieldID)

	var refErr *compiler.UnresolvedTypeReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, []string{"Foo"}, refErr.Names, "fields with a bad id carry no reference")
	require.Len(t, refErr.Sites, 1)
	assert.Equal(t, "M.f", refErr.Sites[0].String())
}

func TestCompileUnknownFieldRule(t *testing.T) {
	pos := load.Position{Filename: "hand.proto", Line: 3, Column: 5}
	tree := load.NewFile("hand.proto", "",
		load.NewMessage("M", load.Position{},
			load.NewField("mandatory", "int32", "a", "1", pos),
			load.NewField("optional", "int32", "b", "2", pos),
		),
	)
	s, err := compiler.Compile(tree)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, compiler.ErrUnknownFieldRule)

	var ruleErr *compiler.UnknownFieldRuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "M", ruleErr.Message)
	assert.Equal(t, "a", ruleErr.Field)
	assert.Equal(t, "mandatory", ruleErr.Rule)
	assert.Contains(t, err.Error(), `unknown field rule "mandatory" on field M.a at hand.proto:3:5`)
}

func TestCompileMissingFieldRule(t *testing.T) {
	_, err := compile(t, `message M { int32 a = 1; }`)
	var ruleErr *compiler.UnknownFieldRuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Empty(t, ruleErr.Rule)
	assert.Contains(t, err.Error(), "missing field rule on field M.a")
}

func TestCompileInvalidFieldID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"positive", "7", true},
		{"zero", "0", true},
		{"negative", "-3", true},
		{"max", "2147483647", true},
		{"overflow", "2147483648", false},
		{"text", "one", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := load.NewFile("ids.proto", "",
				load.NewMessage("M", load.Position{},
					load.NewField("optional", "int32", "a", tt.id, load.Position{}),
				),
			)
			_, err := compiler.Compile(tree)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, compiler.ErrInvalidFieldID)
			var idErr *compiler.InvalidFieldIDError
			require.ErrorAs(t, err, &idErr)
			assert.Equal(t, tt.id, idErr.ID)
			assert.NotNil(t, idErr.Unwrap())
		})
	}
}

func TestCompileDuplicateMessage(t *testing.T) {
	_, err := compile(t, "message M { optional int32 a = 1; }\nmessage M { optional int32 b = 1; }")
	require.Error(t, err)
	assert.ErrorIs(t, err, compiler.ErrDuplicateMessage)

	var dupErr *compiler.DuplicateMessageError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "M", dupErr.Message)
	assert.Equal(t, 1, dupErr.First.Line)
	assert.Equal(t, 2, dupErr.Pos.Line)
}

func TestCompileSyntaxError(t *testing.T) {
	s, err := compile(t, `message M { optional int32 a = ; }`)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, load.IsSyntaxError(err))
	assert.False(t, compiler.IsSchemaError(err))
}

func TestCompileEmpty(t *testing.T) {
	s, err := compile(t, `syntax = "proto2";`)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestIdempotence(t *testing.T) {
	src := `
message Point { required int32 x = 1; required int32 y = 2; repeated int32 values = 3; }
message Shape { optional string name = 1; repeated Point points = 2; optional bytes data = 3; }
`
	cfg := gen.MustNewConfig(gen.WithPackage("example"))
	run := func() map[string][]byte {
		s, err := compile(t, src)
		require.NoError(t, err)
		res, err := gen.GenerateSchema(context.Background(), s, cfg)
		require.NoError(t, err)
		out := make(map[string][]byte)
		for _, f := range res.Files {
			out[f.Name] = f.Content
		}
		return out
	}
	first, second := run(), run()
	require.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestOrderPreservation(t *testing.T) {
	s, err := compile(t, `message Point { required int32 x = 1; required int32 y = 2; }`)
	require.NoError(t, err)
	point, _ := s.Message("Point")
	b, err := gen.Generate(point, gen.MustNewConfig(gen.WithPackage("example")))
	require.NoError(t, err)
	src := string(b)

	valueStruct := between(t, src, "type Point struct {", "}")
	builderStruct := between(t, src, "type PointBuilder struct {", "}")
	toString := between(t, src, "func (m *Point) buildString() string {", "}")
	for name, part := range map[string]string{
		"value struct":   valueStruct,
		"builder struct": builderStruct,
	} {
		x, y := strings.Index(part, "x "), strings.Index(part, "y ")
		require.True(t, x >= 0 && y >= 0, name)
		assert.Less(t, x, y, name)
	}
	assert.Less(t, strings.Index(toString, `"X"`), strings.Index(toString, `"Y"`))
	assert.Contains(t, src, "func newPoint(x int32, y int32) *Point {")
}

func TestRepeatedFieldDistinction(t *testing.T) {
	s, err := compile(t, `message M { repeated int32 values = 1; }`)
	require.NoError(t, err)
	m, _ := s.Message("M")
	b, err := gen.Generate(m, gen.MustNewConfig(gen.WithPackage("example")))
	require.NoError(t, err)
	src := string(b)
	assert.Contains(t, src, "func (m *M) Values() protoval.List[int32] {")
	assert.Contains(t, src, "func (b *MBuilder) ValuesList() *protoval.ListBuilder[int32] {")
	assert.Contains(t, src, "func (b *MBuilder) AddValues(v ...int32) *MBuilder {")
	assert.Contains(t, src, "b.valuesList.Build()")
}

func TestGenerate(t *testing.T) {
	target := t.TempDir()
	cfg := gen.MustNewConfig(gen.WithTarget(target))
	err := compiler.Generate(context.Background(), "testdata/shapes.proto", cfg)
	require.NoError(t, err)

	for _, name := range []string{"point.protoval.go", "polygon.protoval.go"} {
		b, err := os.ReadFile(filepath.Join(target, name))
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(string(b), "// Code generated by protoval. DO NOT EDIT."))
		assert.Contains(t, string(b), "package shapes")
	}
	assert.FileExists(t, filepath.Join(target, gen.ManifestFile))
	assert.Empty(t, cfg.Package, "caller config is not modified")
}

func TestGenerateErrors(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		err := compiler.Generate(context.Background(), "testdata/shapes.proto", nil)
		assert.True(t, gen.IsConfigError(err))
	})
	t.Run("invalid schema", func(t *testing.T) {
		cfg := gen.MustNewConfig(gen.WithTarget(t.TempDir()), gen.WithPackage("x"))
		err := compiler.Generate(context.Background(), "testdata/broken.proto", cfg)
		assert.ErrorIs(t, err, compiler.ErrInvalidSchema)
	})
	t.Run("missing file", func(t *testing.T) {
		cfg := gen.MustNewConfig(gen.WithTarget(t.TempDir()), gen.WithPackage("x"))
		err := compiler.Generate(context.Background(), "testdata/missing.proto", cfg)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
	t.Run("no package", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "m.proto")
		require.NoError(t, os.WriteFile(path, []byte(`message M { optional int32 a = 1; }`), 0o644))
		err := compiler.Generate(context.Background(), path, gen.MustNewConfig(gen.WithTarget(dir)))
		assert.ErrorIs(t, err, gen.ErrMissingConfig)
	})
}

// between returns the text after start up to the first end that follows it.
func between(t *testing.T, s, start, end string) string {
	t.Helper()
	i := strings.Index(s, start)
	require.GreaterOrEqual(t, i, 0, "missing %q", start)
	rest := s[i+len(start):]
	j := strings.Index(rest, end)
	require.GreaterOrEqual(t, j, 0)
	return rest[:j]
}
