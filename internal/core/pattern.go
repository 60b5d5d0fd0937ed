package core

import "strings"

// PatternWildcard is the trailing marker that makes a pattern match any
// suffix. It is only recognized at the end of a pattern.
const PatternWildcard = "%"

// MatchesPattern reports whether an account number belongs to a pattern.
// A pattern is a literal prefix optionally ending in a single wildcard:
// "20%" matches every account starting with "20", "411" matches only the
// account "411". An empty pattern matches everything. Invalid or empty
// account numbers simply don't match a non-empty literal.
func MatchesPattern(accountNumber, pattern string) bool {
	if pattern == "" {
		return true
	}
	if strings.HasSuffix(pattern, PatternWildcard) {
		return strings.HasPrefix(accountNumber, pattern[:len(pattern)-len(PatternWildcard)])
	}
	return accountNumber == pattern
}

// PatternPrefix returns the literal prefix of a pattern, i.e. the pattern
// with the trailing wildcard stripped. Useful for resolving candidate
// accounts against a chart-of-accounts prefix index.
func PatternPrefix(pattern string) string {
	return strings.TrimSuffix(pattern, PatternWildcard)
}
