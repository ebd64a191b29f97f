package convert

import (
	"regexp"
	"strings"
)

// postgresTypes maps H2 base types to their PostgreSQL equivalents.
// Unlisted types pass through unchanged.
var postgresTypes = map[string]string{
	"VARCHAR_IGNORECASE": "TEXT",
	"VARCHAR":            "VARCHAR",
	"CHAR":               "CHAR",
	"CLOB":               "TEXT",
	"LONGVARCHAR":        "TEXT",
	"INTEGER":            "INTEGER",
	"INT":                "INTEGER",
	"BIGINT":             "BIGINT",
	"SMALLINT":           "SMALLINT",
	"TINYINT":            "SMALLINT",
	"BOOLEAN":            "BOOLEAN",
	"BIT":                "BOOLEAN",
	"DECIMAL":            "DECIMAL",
	"DOUBLE":             "DOUBLE PRECISION",
	"FLOAT":              "REAL",
	"REAL":               "REAL",
	"TIMESTAMP":          "TIMESTAMP",
	"DATE":               "DATE",
	"TIME":               "TIME",
	"BLOB":               "BYTEA",
	"BINARY":             "BYTEA",
}

// Sizes only survive the mapping for these base types.
var postgresSizedTypes = map[string]bool{
	"VARCHAR": true,
	"CHAR":    true,
	"DECIMAL": true,
}

type typeEntry struct {
	h2     string
	target string
}

// sqliteTypes maps H2 base types onto SQLite storage classes. Matching is by
// prefix, in order, so sized or decorated variants still resolve; anything
// unrecognized degrades to TEXT.
var sqliteTypes = []typeEntry{
	{"VARCHAR", "TEXT"},
	{"VARCHAR_IGNORECASE", "TEXT"},
	{"CHAR", "TEXT"},
	{"CLOB", "TEXT"},
	{"LONGVARCHAR", "TEXT"},
	{"INTEGER", "INTEGER"},
	{"INT", "INTEGER"},
	{"BIGINT", "INTEGER"},
	{"SMALLINT", "INTEGER"},
	{"TINYINT", "INTEGER"},
	{"BOOLEAN", "INTEGER"},
	{"BIT", "INTEGER"},
	{"DECIMAL", "REAL"},
	{"DOUBLE", "REAL"},
	{"FLOAT", "REAL"},
	{"REAL", "REAL"},
	{"TIMESTAMP", "INTEGER"},
	{"DATE", "INTEGER"},
	{"TIME", "INTEGER"},
	{"BLOB", "BLOB"},
	{"BINARY", "BLOB"},
}

var (
	typeTokenRe = regexp.MustCompile(`^(\w+)(\(\d+(?:,\s*\d+)?\))?`)
	typeSizeRe  = regexp.MustCompile(`\(\d+\)`)
)

const sqliteFallbackType = "TEXT"

// PostgresType converts one H2 type token to its PostgreSQL form,
// reattaching the size suffix for the types that keep one.
func PostgresType(h2Type string, overrides map[string]string) string {
	m := typeTokenRe.FindStringSubmatch(strings.ToUpper(h2Type))
	if m == nil {
		return h2Type
	}
	base, size := m[1], m[2]

	mapped, ok := overrides[base]
	if !ok {
		mapped, ok = postgresTypes[base]
	}
	if !ok {
		return h2Type
	}
	if postgresSizedTypes[base] && size != "" {
		return mapped + size
	}
	return mapped
}

// SQLiteType converts one H2 type token to a SQLite storage class.
// Size suffixes are discarded and unknown types fall back to TEXT.
func SQLiteType(h2Type string, overrides map[string]string) string {
	t := typeSizeRe.ReplaceAllString(strings.ToUpper(h2Type), "")
	if mapped, ok := overrides[t]; ok {
		return mapped
	}
	for _, entry := range sqliteTypes {
		if strings.HasPrefix(t, entry.h2) {
			return entry.target
		}
	}
	return sqliteFallbackType
}
