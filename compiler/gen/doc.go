// Package gen generates Go code for the messages of a compiled schema.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	IDL source (*.proto)
//	        ↓
//	   load.Tree (declaration tree)
//	        ↓
//	   schema.Schema (validated by the compiler package)
//	        ↓
//	   Emitter (jennifer output tree per message)
//	        ↓
//	   Writer (goimports, manifest, disk)
//
// Generate renders a single message and never touches the disk. It is a pure
// function: the same message and configuration always yield the same bytes.
// GenerateSchema renders all messages concurrently, and Writer writes the
// result to the target directory.
//
// # Generated Output
//
// Each message produces one file named after it, e.g. point.protoval.go for
// message Point. For
//
//	message Point {
//	  required int32 x = 1;
//	  repeated int32 values = 2;
//	}
//
// the file declares:
//
//	type Point struct{ ... }                  // immutable, unexported storage
//	func newPoint(x int32, values protoval.List[int32]) *Point
//	func (m *Point) X() int32
//	func (m *Point) Values() protoval.List[int32]
//	func (m *Point) String() string           // Point{X=1, Values=[1, 2]}, computed once
//
//	type PointBuilder struct{ ... }
//	func NewPointBuilder() *PointBuilder
//	func (b *PointBuilder) X() int32
//	func (b *PointBuilder) SetX(v int32) *PointBuilder
//	func (b *PointBuilder) ValuesList() *protoval.ListBuilder[int32]
//	func (b *PointBuilder) SetValuesList(v *protoval.ListBuilder[int32]) *PointBuilder
//	func (b *PointBuilder) AddValues(v ...int32) *PointBuilder
//	func (b *PointBuilder) Build() *Point
//
// Accessors that would clash with String or Build get a Get prefix, and
// storage names that are Go keywords get a leading underscore.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: Configuration errors
//   - GenerationError: Code generation errors for one message
//
// Example error handling:
//
//	res, err := gen.GenerateSchema(ctx, s, cfg)
//	if err != nil {
//	    if gen.IsConfigError(err) {
//	        return err
//	    }
//	    // res still holds the files of the messages that succeeded.
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithPackage("example"),
//	    gen.WithTarget("./example"),
//	    gen.WithHeader("// Custom header"),
//	)
//
// or loaded from a YAML or TOML file with LoadConfig.
package gen
