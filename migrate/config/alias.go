package config

import "strings"

// MatchImportPattern matches specifier against an alias's import-pattern,
// per spec.md §4.3: "a pattern `pkg/models/*` matches any specifier
// sharing its prefix, with the wildcard capturing the remainder". Only a
// single trailing wildcard is supported, matching the spec's described
// grammar.
func MatchImportPattern(pattern, specifier string) (remainder string, ok bool) {
	prefix, hasWildcard := strings.CutSuffix(pattern, "*")
	if !hasWildcard {
		if pattern == specifier {
			return "", true
		}
		return "", false
	}
	if !strings.HasPrefix(specifier, prefix) {
		return "", false
	}
	return strings.TrimPrefix(specifier, prefix), true
}

// SubstituteDirectoryPattern substitutes the captured remainder into the
// directory-pattern's own wildcard, producing the candidate on-disk path
// the Resolver/Source Index should check for existence.
func SubstituteDirectoryPattern(directoryPattern, remainder string) string {
	prefix, hasWildcard := strings.CutSuffix(directoryPattern, "*")
	if !hasWildcard {
		return directoryPattern
	}
	return prefix + remainder
}

// Resolve runs every AliasSource in declaration order and returns the
// first candidate file path a match produces, along with the alias used.
// Declaration order is significant: spec.md's resolver tries patterns "in
// declaration order".
func Resolve(aliases []AliasSource, specifier string) (candidatePath string, matched AliasSource, ok bool) {
	for _, alias := range aliases {
		remainder, matches := MatchImportPattern(alias.ImportPattern, specifier)
		if !matches {
			continue
		}
		return SubstituteDirectoryPattern(alias.DirectoryPattern, remainder), alias, true
	}
	return "", AliasSource{}, false
}
