package core

import (
	"path"
	"strings"
	"unicode"
)

// KebabName derives the kebab-cased artifact basename from a canonical
// import path, per spec.md §4.5's `<kebab-name>.schema.<ext>` naming. It
// converts the final path segment as given and strips no extension; the
// single trailing file extension (Open Question 3) is already removed by
// index.ImportPathFor when the canonical import path is built. No
// third-party case-conversion library appears anywhere in the example
// corpus (see DESIGN.md), so this is a small hand-rolled pass.
func KebabName(canonicalImportPath string) string {
	base := path.Base(canonicalImportPath)
	var b strings.Builder
	for i, r := range base {
		switch {
		case r == '_' || r == ' ':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return collapseDashes(b.String())
}

func collapseDashes(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if r == '-' {
			if lastDash {
				continue
			}
			lastDash = true
		} else {
			lastDash = false
		}
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), "-")
}

// PascalName converts a kebab-cased name into PascalCase, used both for
// the types artifact's interface identifiers and for mapping an unknown
// field type-name to an external type reference.
func PascalName(kebab string) string {
	parts := strings.Split(kebab, "-")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		r := []rune(part)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}
