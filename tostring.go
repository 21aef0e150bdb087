package protoval

import (
	"fmt"
	"strconv"
	"strings"
)

// ToStringHelper builds the string form of a generated value:
//
//	Point{X=1, Values=[1, 2]}
type ToStringHelper struct {
	b      strings.Builder
	fields int
}

// NewToStringHelper starts the string form of the named type.
func NewToStringHelper(name string) *ToStringHelper {
	h := &ToStringHelper{}
	h.b.WriteString(name)
	h.b.WriteByte('{')
	return h
}

// Add appends a name=value pair.
func (h *ToStringHelper) Add(name string, value any) *ToStringHelper {
	if h.fields > 0 {
		h.b.WriteString(", ")
	}
	h.fields++
	h.b.WriteString(name)
	h.b.WriteByte('=')
	h.b.WriteString(formatValue(value))
	return h
}

// String returns the assembled string.
func (h *ToStringHelper) String() string {
	return h.b.String() + "}"
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case []byte:
		if v == nil {
			return "<nil>"
		}
		parts := make([]string, len(v))
		for i, c := range v {
			parts[i] = strconv.Itoa(int(c))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}
