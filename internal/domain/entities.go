package domain

import (
	"time"
	"unicode/utf8"
)

// Entry is one parsed line of a count table.
type Entry struct {
	NGram string
	Count int64
}

// Table is an ordered set of entries and the sum of their counts.
type Table struct {
	Entries []Entry
	Total   int64
}

// Order returns the rune length shared by every n-gram in the table,
// or 0 if the table is empty or lengths differ.
func (t Table) Order() int {
	if len(t.Entries) == 0 {
		return 0
	}
	n := utf8.RuneCountInString(t.Entries[0].NGram)
	for _, e := range t.Entries[1:] {
		if utf8.RuneCountInString(e.NGram) != n {
			return 0
		}
	}
	return n
}

type Record struct {
	NGram   string  `json:"ngram"`
	LogProb float64 `json:"log_prob"`
}

type TableStats struct {
	Entries    int       `json:"entries"`
	Total      int64     `json:"total"`
	Order      int       `json:"order"`
	Source     string    `json:"source"`
	Base       string    `json:"base"`
	ImportedAt time.Time `json:"imported_at"`
}
