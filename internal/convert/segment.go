package convert

import (
	"regexp"
	"strings"
)

// Rules carries user-supplied additions to the built-in conversion tables.
type Rules struct {
	// TypeOverrides adds or replaces entries in the data type map,
	// keyed by the uppercased H2 base type.
	TypeOverrides map[string]string

	// SkipPrefixes lists extra line prefixes to drop from the input,
	// matched case-insensitively after leading whitespace.
	SkipPrefixes []string
}

// H2 session and privilege statements that have no equivalent in either
// target dialect.
var baseSkipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*SET\s+`),
	regexp.MustCompile(`(?i)^\s*CREATE\s+USER\s+`),
	regexp.MustCompile(`(?i)^\s*CREATE\s+SCHEMA\s+`),
	regexp.MustCompile(`(?i)^\s*GRANT\s+`),
}

// SQLite has no sequences, and comment lines are dropped along with them.
var sqliteSkipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*ALTER\s+SEQUENCE\s+`),
	regexp.MustCompile(`(?i)^\s*CREATE\s+SEQUENCE\s+`),
	regexp.MustCompile(`^\s*--`),
}

func compileSkipPatterns(base []*regexp.Regexp, extra []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(base)+len(extra))
	patterns = append(patterns, base...)
	for _, prefix := range extra {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(`(?i)^\s*`+regexp.QuoteMeta(prefix)))
	}
	return patterns
}

func shouldSkipLine(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// splitStatements accumulates non-blank, non-skipped lines until one of them
// carries the statement separator, then yields the accumulated statement.
// A trailing accumulation that never sees a separator is returned as the
// final statement with unterminated set, so callers can warn instead of
// losing input.
func splitStatements(input string, patterns []*regexp.Regexp) (statements []string, unterminated bool) {
	var current []string
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if shouldSkipLine(line, patterns) {
			continue
		}
		current = append(current, line)
		if strings.Contains(line, ";") {
			statements = append(statements, strings.Join(current, "\n"))
			current = nil
		}
	}
	if len(current) > 0 {
		statements = append(statements, strings.Join(current, "\n"))
		unterminated = true
	}
	return statements, unterminated
}
