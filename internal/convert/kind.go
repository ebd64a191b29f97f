package convert

// Kind identifies the statement category a rewrite rule applies to.
type Kind int

const (
	KindOther Kind = iota
	KindCreateTable
	KindInsert
	KindCreateIndex
	KindCreateSequence
	KindAlterSequence
)

func (k Kind) String() string {
	switch k {
	case KindCreateTable:
		return "CREATE TABLE"
	case KindInsert:
		return "INSERT"
	case KindCreateIndex:
		return "CREATE INDEX"
	case KindCreateSequence:
		return "CREATE SEQUENCE"
	case KindAlterSequence:
		return "ALTER SEQUENCE"
	default:
		return "OTHER"
	}
}

// Stats accumulates per-kind statement counts over a single conversion run.
type Stats struct {
	CreateTable    int
	Insert         int
	CreateIndex    int
	CreateSequence int
	AlterSequence  int
	Other          int

	// Line-oriented totals, filled by the SQLite pipeline.
	TotalLines     int
	ConvertedLines int
	SkippedLines   int
}

func (s *Stats) count(k Kind) {
	switch k {
	case KindCreateTable:
		s.CreateTable++
	case KindInsert:
		s.Insert++
	case KindCreateIndex:
		s.CreateIndex++
	case KindCreateSequence:
		s.CreateSequence++
	case KindAlterSequence:
		s.AlterSequence++
	default:
		s.Other++
	}
}

// Statements returns the number of classified statements across all kinds.
func (s *Stats) Statements() int {
	return s.CreateTable + s.Insert + s.CreateIndex + s.CreateSequence + s.AlterSequence + s.Other
}
