package gen

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/syssam/protoval/naming"
)

// =============================================================================
// Helper functions
// =============================================================================

// builderField returns the struct field for the given name
// and ensures it doesn't conflict with Go keywords and the private
// fields of the generated types, and it is not exported.
func builderField(name string) string {
	if name == "" {
		return name
	}
	_, ok := privateField[name]
	if ok || token.Lookup(name).IsKeyword() || strings.ToUpper(name[:1]) == name[:1] {
		return "_" + name
	}
	return name
}

// methodName prefixes accessors that would shadow a method the generated
// type already declares.
func methodName(name string, reserved map[string]struct{}) string {
	if _, ok := reserved[name]; ok {
		return "Get" + name
	}
	return name
}

func snake(s string) string {
	return naming.ToSnake(s)
}

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

// =============================================================================
// Global variables
// =============================================================================

var (
	// private fields and methods of the generated types. Storage with one
	// of these names gets a "_" prefix.
	privateField = names(
		"str",
		"buildString",
	)
	// methods declared on every value type.
	valueMethods = names(
		"String",
		"buildString",
	)
	// methods declared on every builder.
	builderMethods = names(
		"Build",
		// A builder is not a fmt.Stringer; keep the name for that meaning.
		"String",
	)
)

// scope tracks the identifiers declared in one Go scope (a struct's fields
// and methods, or the package block) and reports the first clash.
type scope struct {
	owner string
	seen  map[string]string
}

func newScope(owner string) *scope {
	return &scope{owner: owner, seen: make(map[string]string)}
}

// declare records name as declared by what. It fails if name is not a valid
// identifier or was declared before.
func (s *scope) declare(name, what string) error {
	if !token.IsIdentifier(name) {
		return fmt.Errorf("%s %q is not a valid Go identifier", what, name)
	}
	if prev, ok := s.seen[name]; ok {
		return fmt.Errorf("%s %q collides with %s in %s", what, name, prev, s.owner)
	}
	s.seen[name] = what
	return nil
}
