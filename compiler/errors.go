package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/protoval/compiler/load"
	"github.com/syssam/protoval/schema"
)

// Sentinel errors for compilation failures. Every error returned by Compile
// matches ErrInvalidSchema, and each specific error also matches its own
// sentinel.
var (
	// ErrInvalidSchema indicates the source could not be compiled into a schema.
	ErrInvalidSchema = errors.New("protoval: invalid schema")
	// ErrUnknownFieldRule indicates a rule keyword other than optional, required or repeated.
	ErrUnknownFieldRule = errors.New("protoval: unknown field rule")
	// ErrInvalidFieldID indicates a field number that is not a valid integer.
	ErrInvalidFieldID = errors.New("protoval: invalid field id")
	// ErrInvalidMessage indicates a message with duplicate field ids or names.
	ErrInvalidMessage = errors.New("protoval: invalid message")
	// ErrDuplicateMessage indicates two messages with the same name.
	ErrDuplicateMessage = errors.New("protoval: duplicate message")
	// ErrUnresolvedReference indicates a field type naming an undeclared message.
	ErrUnresolvedReference = errors.New("protoval: unresolved type reference")
)

// SchemaError aggregates every error found while compiling one source.
// Use errors.As to reach the individual errors.
type SchemaError struct {
	Filename string
	Errors   []error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("protoval: invalid schema")
	if e.Filename != "" {
		b.WriteString(" ")
		b.WriteString(e.Filename)
	}
	switch len(e.Errors) {
	case 0:
	case 1:
		b.WriteString(": ")
		b.WriteString(e.Errors[0].Error())
	default:
		fmt.Fprintf(&b, ": %d errors:", len(e.Errors))
		for _, err := range e.Errors {
			b.WriteString("\n\t")
			b.WriteString(err.Error())
		}
	}
	return b.String()
}

// Unwrap returns the aggregated errors.
func (e *SchemaError) Unwrap() []error {
	return e.Errors
}

// Is reports whether the target matches ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// UnknownFieldRuleError reports a field whose rule keyword is not
// recognized. An empty Rule means the field has no rule at all.
type UnknownFieldRuleError struct {
	Message string
	Field   string
	Rule    string
	Pos     load.Position
}

// Error implements the error interface.
func (e *UnknownFieldRuleError) Error() string {
	var b strings.Builder
	if e.Rule == "" {
		b.WriteString("protoval: missing field rule")
	} else {
		fmt.Fprintf(&b, "protoval: unknown field rule %q", e.Rule)
	}
	fmt.Fprintf(&b, " on field %s.%s", e.Message, e.Field)
	writePos(&b, e.Pos)
	return b.String()
}

// Is reports whether the target matches ErrUnknownFieldRule or ErrInvalidSchema.
func (e *UnknownFieldRuleError) Is(target error) bool {
	return target == ErrUnknownFieldRule || target == ErrInvalidSchema
}

// InvalidFieldIDError reports a field number that does not parse as a
// 32-bit integer.
type InvalidFieldIDError struct {
	Message string
	Field   string
	ID      string
	Pos     load.Position
	Cause   error
}

// Error implements the error interface.
func (e *InvalidFieldIDError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "protoval: invalid field id %q on field %s.%s", e.ID, e.Message, e.Field)
	writePos(&b, e.Pos)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *InvalidFieldIDError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrInvalidFieldID or ErrInvalidSchema.
func (e *InvalidFieldIDError) Is(target error) bool {
	return target == ErrInvalidFieldID || target == ErrInvalidSchema
}

// InvalidMessageError reports a message whose fields share an id or a name.
// Collisions lists every clash in declaration order.
type InvalidMessageError struct {
	Message    string
	Pos        load.Position
	Collisions []schema.Collision
}

// Error implements the error interface.
func (e *InvalidMessageError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "protoval: invalid message %s", e.Message)
	writePos(&b, e.Pos)
	for i, c := range e.Collisions {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// Is reports whether the target matches ErrInvalidMessage or ErrInvalidSchema.
func (e *InvalidMessageError) Is(target error) bool {
	return target == ErrInvalidMessage || target == ErrInvalidSchema
}

// DuplicateMessageError reports a message name declared more than once.
type DuplicateMessageError struct {
	Message string
	First   load.Position
	Pos     load.Position
}

// Error implements the error interface.
func (e *DuplicateMessageError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "protoval: duplicate message %s", e.Message)
	writePos(&b, e.Pos)
	if e.First.IsValid() {
		fmt.Fprintf(&b, ", first declared at %s", e.First)
	}
	return b.String()
}

// Is reports whether the target matches ErrDuplicateMessage or ErrInvalidSchema.
func (e *DuplicateMessageError) Is(target error) bool {
	return target == ErrDuplicateMessage || target == ErrInvalidSchema
}

// Reference is a field whose type names another message.
type Reference struct {
	Message string
	Field   string
	Type    string
	Pos     load.Position
}

// String returns the referring field as Message.field.
func (r Reference) String() string {
	return r.Message + "." + r.Field
}

// UnresolvedTypeReferenceError lists every type name that is neither a
// primitive nor a declared message. Names are in order of first use and
// Sites holds every field using one of them.
type UnresolvedTypeReferenceError struct {
	Names []string
	Sites []Reference
}

// Error implements the error interface.
func (e *UnresolvedTypeReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("protoval: unresolved type reference")
	if len(e.Names) > 1 {
		b.WriteString("s")
	}
	for i, name := range e.Names {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(name)
		var sites []string
		for _, s := range e.Sites {
			if s.Type == name {
				sites = append(sites, s.String())
			}
		}
		if len(sites) > 0 {
			fmt.Fprintf(&b, " (used by %s)", strings.Join(sites, ", "))
		}
	}
	return b.String()
}

// Is reports whether the target matches ErrUnresolvedReference or ErrInvalidSchema.
func (e *UnresolvedTypeReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference || target == ErrInvalidSchema
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsInvalidMessageError reports whether the error is or wraps an InvalidMessageError.
func IsInvalidMessageError(err error) bool {
	var msgErr *InvalidMessageError
	return errors.As(err, &msgErr)
}

// IsUnresolvedReferenceError reports whether the error is or wraps an
// UnresolvedTypeReferenceError.
func IsUnresolvedReferenceError(err error) bool {
	var refErr *UnresolvedTypeReferenceError
	return errors.As(err, &refErr)
}

func writePos(b *strings.Builder, pos load.Position) {
	if pos.IsValid() {
		b.WriteString(" at ")
		b.WriteString(pos.String())
	}
}
