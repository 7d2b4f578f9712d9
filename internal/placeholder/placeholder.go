// Package placeholder substitutes {{name}} tokens in template text with
// per-credential values.
package placeholder

import "strings"

// Values maps token names (without braces) to replacement text.
type Values map[string]string

// Resolve replaces every known {{token}} occurrence in text. Unknown
// tokens are left untouched, so resolving an already-resolved string is
// a no-op. Literal \n escape sequences become real line breaks.
func Resolve(text string, values Values) string {
	if text == "" {
		return text
	}

	for name, value := range values {
		token := "{{" + name + "}}"
		if strings.Contains(text, token) {
			text = strings.ReplaceAll(text, token, value)
		}
	}

	return strings.ReplaceAll(text, `\n`, "\n")
}

// Contains reports whether text still carries the given unresolved
// token. The renderer uses this to intercept reserved tokens like
// qr_code before text layout.
func Contains(text string, name string) bool {
	return strings.Contains(text, "{{"+name+"}}")
}
