package convert

import (
	"regexp"
	"strings"
)

var (
	reCached        = regexp.MustCompile(`(?i)\s+CACHED\b`)
	reMemoryTable   = regexp.MustCompile(`(?i)\s+MEMORY(\s+TABLE\b)`)
	reNotPersistent = regexp.MustCompile(`(?i)\s+NOT\s+PERSISTENT\b`)
	reCreateTable   = regexp.MustCompile(`(?i)CREATE\s+TABLE\s+(\w+)`)
	reInsertInto    = regexp.MustCompile(`(?i)INSERT\s+INTO\s+(\w+)`)
	reIndexOn       = regexp.MustCompile(`(?i)\bON\s+(\w+)`)
	reCreateSeq     = regexp.MustCompile(`(?i)CREATE\s+SEQUENCE\s+(\w+)`)
	reAlterSeq      = regexp.MustCompile(`(?i)ALTER\s+SEQUENCE\s+(\w+)`)
	reStartWith     = regexp.MustCompile(`(?i)\bSTART\s+WITH\b`)
	reTrueLiteral   = regexp.MustCompile(`(?i)\btrue\b`)
	reFalseLiteral  = regexp.MustCompile(`(?i)\bfalse\b`)

	// One column definition: the delimiter opening it, column name, type
	// token with an optional size, and the constraint tail up to the next
	// comma or closing paren. Anchoring on the delimiter keeps the pattern
	// off the CREATE TABLE header.
	reColumnDef = regexp.MustCompile(`(?i)([(,]\s*)(\w+)\s+(\w+(?:\(\d+(?:,\s*\d+)?\))?)([^,)]*)`)

	// Classification patterns. H2 writes CREATE CACHED TABLE and
	// CREATE UNIQUE INDEX, so the storage and uniqueness modifiers are
	// allowed between the keywords.
	clsCreateTable = regexp.MustCompile(`(?i)CREATE\s+(?:CACHED\s+|MEMORY\s+)?TABLE\b`)
	clsInsert      = regexp.MustCompile(`(?i)INSERT\s+INTO\b`)
	clsCreateIndex = regexp.MustCompile(`(?i)CREATE\s+(?:UNIQUE\s+)?INDEX\b`)
	clsCreateSeq   = regexp.MustCompile(`(?i)CREATE\s+SEQUENCE\b`)
	clsAlterSeq    = regexp.MustCompile(`(?i)ALTER\s+SEQUENCE\b`)
)

// PostgresConverter rewrites an H2 dump statement by statement into
// PostgreSQL's dialect.
type PostgresConverter struct {
	skip      []*regexp.Regexp
	overrides map[string]string
}

func NewPostgresConverter(rules Rules) *PostgresConverter {
	overrides := make(map[string]string, len(rules.TypeOverrides))
	for h2, target := range rules.TypeOverrides {
		overrides[strings.ToUpper(h2)] = target
	}
	return &PostgresConverter{
		skip:      compileSkipPatterns(baseSkipPatterns, rules.SkipPrefixes),
		overrides: overrides,
	}
}

// Split segments the raw dump into statements, dropping blank and skipped
// lines. unterminated reports whether the final statement lacked a
// separator.
func (c *PostgresConverter) Split(input string) (statements []string, unterminated bool) {
	return splitStatements(input, c.skip)
}

// Classify assigns a statement kind from the leading keywords, first
// match wins.
func (c *PostgresConverter) Classify(stmt string) Kind {
	switch {
	case clsCreateTable.MatchString(stmt):
		return KindCreateTable
	case clsInsert.MatchString(stmt):
		return KindInsert
	case clsCreateIndex.MatchString(stmt):
		return KindCreateIndex
	case clsCreateSeq.MatchString(stmt):
		return KindCreateSequence
	case clsAlterSeq.MatchString(stmt):
		return KindAlterSequence
	default:
		return KindOther
	}
}

// Rewrite classifies one statement, applies its kind's rewrite rule, and
// records it in stats.
func (c *PostgresConverter) Rewrite(stmt string, stats *Stats) string {
	kind := c.Classify(stmt)
	stats.count(kind)

	switch kind {
	case KindCreateTable:
		return c.rewriteCreateTable(stmt)
	case KindInsert:
		return c.rewriteInsert(stmt)
	case KindCreateIndex:
		return c.rewriteCreateIndex(stmt)
	case KindCreateSequence:
		return c.rewriteSequence(stmt)
	case KindAlterSequence:
		return c.rewriteAlterSequence(stmt)
	default:
		return stmt
	}
}

// Convert runs the whole pipeline over the dump text and returns the
// rewritten dump plus the per-kind tally.
func (c *PostgresConverter) Convert(input string) (string, *Stats) {
	statements, _ := c.Split(input)
	stats := &Stats{}
	converted := make([]string, 0, len(statements))
	for _, stmt := range statements {
		converted = append(converted, c.Rewrite(stmt, stats))
	}
	return strings.Join(converted, "\n"), stats
}

// lowerName lower-cases the identifier captured by re's first group, in
// place. The statement is returned unchanged when the pattern finds nothing.
func lowerName(stmt string, re *regexp.Regexp) string {
	loc := re.FindStringSubmatchIndex(stmt)
	if loc == nil {
		return stmt
	}
	return stmt[:loc[2]] + strings.ToLower(stmt[loc[2]:loc[3]]) + stmt[loc[3]:]
}

func (c *PostgresConverter) rewriteCreateTable(stmt string) string {
	stmt = reCached.ReplaceAllString(stmt, "")
	stmt = reMemoryTable.ReplaceAllString(stmt, "${1}")
	stmt = reNotPersistent.ReplaceAllString(stmt, "")
	stmt = lowerName(stmt, reCreateTable)

	return reColumnDef.ReplaceAllStringFunc(stmt, func(def string) string {
		m := reColumnDef.FindStringSubmatch(def)
		lead, name, typ, rest := m[1], m[2], m[3], m[4]
		return lead + strings.ToLower(name) + " " + PostgresType(typ, c.overrides) + rest
	})
}

func (c *PostgresConverter) rewriteInsert(stmt string) string {
	if m := reInsertInto.FindStringSubmatch(stmt); m != nil {
		stmt = strings.Replace(stmt,
			"INSERT INTO "+m[1],
			"INSERT INTO "+strings.ToLower(m[1]), 1)
	}
	stmt = reTrueLiteral.ReplaceAllString(stmt, "TRUE")
	stmt = reFalseLiteral.ReplaceAllString(stmt, "FALSE")
	return stmt
}

func (c *PostgresConverter) rewriteCreateIndex(stmt string) string {
	m := reIndexOn.FindStringSubmatch(stmt)
	if m == nil {
		return stmt
	}
	re := regexp.MustCompile(`(?i)(\bON\s+)` + regexp.QuoteMeta(m[1]))
	return re.ReplaceAllString(stmt, "${1}"+strings.ToLower(m[1]))
}

func (c *PostgresConverter) rewriteSequence(stmt string) string {
	stmt = reStartWith.ReplaceAllString(stmt, "START")
	return lowerName(stmt, reCreateSeq)
}

func (c *PostgresConverter) rewriteAlterSequence(stmt string) string {
	stmt = reStartWith.ReplaceAllString(stmt, "START")
	return lowerName(stmt, reAlterSeq)
}
