package load

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrSyntax indicates a source that could not be parsed or that uses a
// construct outside the supported IDL.
var ErrSyntax = errors.New("protoval: syntax error")

// SyntaxError reports malformed input. Compilation never continues past it.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("protoval: syntax error")
	if pos := e.Pos(); pos.Filename != "" || pos.IsValid() {
		b.WriteString(" at ")
		b.WriteString(pos.String())
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Pos returns the position of the error.
func (e *SyntaxError) Pos() Position {
	return Position{Filename: e.Filename, Line: e.Line, Column: e.Column}
}

// IsSyntaxError reports whether err is or wraps a SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// parseErrorRe matches the "file:line:column: message" form used by the
// parser. The file part is absent for unnamed sources.
var parseErrorRe = regexp.MustCompile(`^(?:(.*?):)?(\d+):(\d+): (.*)$`)

// syntaxError converts a parser error into a SyntaxError, keeping the
// position it reports.
func syntaxError(filename string, err error) *SyntaxError {
	se := &SyntaxError{Filename: filename, Message: err.Error()}
	m := parseErrorRe.FindStringSubmatch(err.Error())
	if m == nil {
		return se
	}
	se.Line, _ = strconv.Atoi(m[2])
	se.Column, _ = strconv.Atoi(m[3])
	se.Message = m[4]
	if m[1] != "" {
		se.Filename = m[1]
	}
	return se
}
