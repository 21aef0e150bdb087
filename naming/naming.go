// Package naming converts declared IDL identifiers into the names used by the
// generated code.
//
// Identifiers are expected in lower snake case (user_id). Words are split on
// underscores and dashes, and well-known initialisms are kept upper case:
//
//	naming.ToUpperCamel("user_id")   // UserID
//	naming.ToLowerCamel("http_code") // httpCode
//	naming.ToSnake("UserInfo")       // user_info
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

// ToUpperCamel converts a snake case identifier to UpperCamel (PascalCase).
func ToUpperCamel(s string) string {
	return pascalWords(words(s))
}

// ToLowerCamel converts a snake case identifier to lowerCamel.
func ToLowerCamel(s string) string {
	w := words(s)
	if len(w) == 0 {
		return ""
	}
	head := w[0]
	if _, ok := acronyms[strings.ToUpper(head)]; ok {
		head = strings.ToLower(head)
	} else {
		r, size := utf8.DecodeRuneInString(head)
		head = string(unicode.ToLower(r)) + head[size:]
	}
	return head + pascalWords(w[1:])
}

// ToSnake converts a CamelCase identifier to snake_case.
func ToSnake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, current letter is uppercase,
		// and previous is lowercase (cases like: "UserInfo"), or next letter is also
		// a lowercase and previous letter is not "_".
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// IsAcronym reports whether w is rendered as an upper-case initialism.
func IsAcronym(w string) bool {
	_, ok := acronyms[strings.ToUpper(w)]
	return ok
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})
}

func pascalWords(words []string) string {
	var b strings.Builder
	for _, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			b.WriteString(upper)
		} else {
			b.WriteString(rules.Capitalize(w))
		}
	}
	return b.String()
}

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Add common initialisms from golint and more.
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HCL", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "LHS", "MAC",
		"MB", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO",
		"TCP", "TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID",
		"VM", "XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}
