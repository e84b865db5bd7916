package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FallbackName is shown when there is no session or nothing usable in it.
const FallbackName = "buddy"

// DisplayName turns an email-like identifier into a greeting name:
//
//	"ada.lovelace@example.com" -> "Ada Lovelace"
//	"grace_hopper"             -> "Grace Hopper" (no "@": whole string is the local part)
//	"@example.com", "", " "    -> "buddy"
//	"élodie.øyvind@x"          -> "Élodie Øyvind" (Unicode upper-casing of the first rune only)
//
// Only the text before the first "@" is used. Fragments are split on "." and "_",
// empty fragments are dropped, and only the first rune of each is changed.
func DisplayName(identifier string) string {
	local := strings.TrimSpace(identifier)
	if i := strings.IndexByte(local, '@'); i >= 0 {
		local = local[:i]
	}

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_'
	})
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			words = append(words, capitalize(p))
		}
	}
	if len(words) == 0 {
		return FallbackName
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
