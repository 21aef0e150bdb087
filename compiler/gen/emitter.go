package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/protoval/schema"
)

// Emitter renders a validated message into an output tree. The returned
// file is rendered by Generate; emitters never format or write it.
type Emitter interface {
	// Name identifies the emitter in logs and errors.
	Name() string
	// Emit builds the output tree of one message. Failures are reported
	// as *GenerationError.
	Emit(msg *schema.Message, cfg *Config) (*jen.File, error)
}

// Filename returns the name of the file generated for msg.
func Filename(msg *schema.Message) string {
	return snake(msg.Name()) + FileSuffix
}
