package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const untitled = "Untitled"

// DisplayName cleans a stack name for presentation. Dots and underscores
// become spaces, whitespace runs collapse, and leading or trailing separators
// are dropped. Names written entirely in lower case are title-cased; names
// that already carry capitals keep their casing.
func DisplayName(name string) string {
	var b strings.Builder
	prevSpace := true
	for _, r := range name {
		switch {
		case unicode.IsSpace(r) || r == '.' || r == '_':
			if !prevSpace {
				b.WriteRune(' ')
				prevSpace = true
			}
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}
	cleaned := strings.Trim(b.String(), " -")
	if cleaned == "" {
		return untitled
	}
	if strings.IndexFunc(cleaned, unicode.IsUpper) >= 0 {
		return cleaned
	}
	return cases.Title(language.Und).String(cleaned)
}
