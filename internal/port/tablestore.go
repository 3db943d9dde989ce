package port

import "ngramlp/internal/domain"

// TableStore persists a converted count table between runs.
type TableStore interface {
	SaveTable(table domain.Table, stats domain.TableStats, progress func(done, total int)) error

	LoadTable() (domain.Table, error)

	GetStats() (domain.TableStats, error)

	GetCount(ngram string) (int64, bool, error)

	Close() error
}
