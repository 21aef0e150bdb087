package schema

// FieldRule is the cardinality rule of a field.
type FieldRule uint8

// List of field rules. The zero value is not a valid rule, so a field
// never falls back to a default rule.
const (
	RuleInvalid FieldRule = iota
	Optional
	Required
	Repeated
)

var ruleNames = [...]string{
	RuleInvalid: "invalid",
	Optional:    "optional",
	Required:    "required",
	Repeated:    "repeated",
}

// ParseFieldRule returns the rule for the given keyword. The second result is
// false for anything other than optional, required or repeated.
func ParseFieldRule(keyword string) (FieldRule, bool) {
	switch keyword {
	case "optional":
		return Optional, true
	case "required":
		return Required, true
	case "repeated":
		return Repeated, true
	default:
		return RuleInvalid, false
	}
}

// String returns the IDL keyword of the rule.
func (r FieldRule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return ruleNames[RuleInvalid]
}

// Valid reports if r is one of the declared rules.
func (r FieldRule) Valid() bool { return r >= Optional && r <= Repeated }
