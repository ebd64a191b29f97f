package convert

import (
	"regexp"
	"strings"
)

// splitLines splits on newlines keeping each line's terminator, so the
// output can be reassembled without altering the input's line endings.
func splitLines(input string) []string {
	lines := strings.SplitAfter(input, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// CountLines reports how many lines Convert will consume for the given
// input, for progress reporting.
func CountLines(input string) int {
	return len(splitLines(input))
}

var (
	reCreateTableLine = regexp.MustCompile(`(?i)^\s*CREATE\s+(?:CACHED\s+|MEMORY\s+)?TABLE\s+`)
	reInsertLine      = regexp.MustCompile(`(?i)^\s*INSERT\s+INTO\s+`)
	reCreateIndexLine = regexp.MustCompile(`(?i)^\s*CREATE\s+(?:UNIQUE\s+)?INDEX\s+`)

	// Last word-plus-optional-size token before a comma or closing paren,
	// i.e. the column type position in a definition line. The separator
	// between token and terminator is dropped.
	reSQLiteTypePos = regexp.MustCompile(`(\s+)(\w+(?:\(\d+(?:,\s*\d+)?\))?)\s*([,)])`)
)

// SQLiteConverter rewrites an H2 dump line by line into SQLite's dialect.
// Sequence statements are dropped outright since SQLite has none.
type SQLiteConverter struct {
	skip      []*regexp.Regexp
	overrides map[string]string

	// OnLine, when set, is invoked once per input line as it is consumed.
	OnLine func()
}

func NewSQLiteConverter(rules Rules) *SQLiteConverter {
	overrides := make(map[string]string, len(rules.TypeOverrides))
	for h2, target := range rules.TypeOverrides {
		overrides[strings.ToUpper(h2)] = target
	}
	skip := compileSkipPatterns(baseSkipPatterns, rules.SkipPrefixes)
	skip = append(skip, sqliteSkipPatterns...)
	return &SQLiteConverter{skip: skip, overrides: overrides}
}

// Convert runs the line-oriented pipeline over the dump text. Multi-line
// CREATE TABLE statements are buffered until their separator arrives, then
// rewritten as a unit; every other line converts independently.
// unterminated reports a CREATE TABLE still buffered at end of input; it is
// flushed through the rewriter rather than dropped.
func (c *SQLiteConverter) Convert(input string) (output string, stats *Stats, unterminated bool) {
	lines := splitLines(input)

	stats = &Stats{TotalLines: len(lines)}
	var converted []string
	var tableBuffer []string
	inCreateTable := false

	for _, line := range lines {
		if c.OnLine != nil {
			c.OnLine()
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if shouldSkipLine(line, c.skip) {
			stats.SkippedLines++
			continue
		}

		if !inCreateTable && reCreateTableLine.MatchString(line) {
			inCreateTable = true
			tableBuffer = []string{line}
			if strings.Contains(line, ";") {
				converted = append(converted, c.rewriteCreateTable(line))
				stats.CreateTable++
				stats.ConvertedLines++
				inCreateTable = false
				tableBuffer = nil
			}
			continue
		}
		if inCreateTable {
			tableBuffer = append(tableBuffer, line)
			if strings.Contains(line, ";") {
				converted = append(converted, c.rewriteCreateTable(strings.Join(tableBuffer, "")))
				stats.CreateTable++
				stats.ConvertedLines++
				inCreateTable = false
				tableBuffer = nil
			}
			continue
		}

		if reInsertLine.MatchString(line) {
			converted = append(converted, c.rewriteInsert(line))
			stats.Insert++
			stats.ConvertedLines++
			continue
		}
		if reCreateIndexLine.MatchString(line) {
			converted = append(converted, line)
			stats.CreateIndex++
			stats.ConvertedLines++
			continue
		}

		converted = append(converted, line)
		stats.Other++
		stats.ConvertedLines++
	}

	if inCreateTable && len(tableBuffer) > 0 {
		converted = append(converted, c.rewriteCreateTable(strings.Join(tableBuffer, "")))
		stats.CreateTable++
		stats.ConvertedLines++
		unterminated = true
	}

	return strings.Join(converted, ""), stats, unterminated
}

func (c *SQLiteConverter) rewriteCreateTable(stmt string) string {
	stmt = reCached.ReplaceAllString(stmt, "")
	stmt = reMemoryTable.ReplaceAllString(stmt, "${1}")
	stmt = reNotPersistent.ReplaceAllString(stmt, "")

	return reSQLiteTypePos.ReplaceAllStringFunc(stmt, func(def string) string {
		m := reSQLiteTypePos.FindStringSubmatch(def)
		return m[1] + SQLiteType(m[2], c.overrides) + m[3]
	})
}

func (c *SQLiteConverter) rewriteInsert(line string) string {
	line = reTrueLiteral.ReplaceAllString(line, "1")
	line = reFalseLiteral.ReplaceAllString(line, "0")
	return line
}
