// Package scorer rates text by how well its n-grams match a log-probability
// table. Higher (less negative) scores look more like the table's language.
package scorer

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"ngramlp/internal/adapter/converter"
	"ngramlp/internal/domain"
)

var ErrMixedOrder = errors.New("table n-grams do not share one length")

type Scorer struct {
	table     map[string]float64
	order     int
	floor     float64
	uppercase bool
}

// New builds a scorer over records of the given order. Windows missing
// from the table are charged floor.
func New(records []domain.Record, order int, floor float64, uppercase bool) (*Scorer, error) {
	if order <= 0 {
		return nil, ErrMixedOrder
	}
	if math.IsNaN(floor) || floor > 0 {
		return nil, fmt.Errorf("floor must be a non-positive log-probability, got %v", floor)
	}

	table := make(map[string]float64, len(records))
	for _, r := range records {
		key := r.NGram
		if uppercase {
			key = strings.ToUpper(key)
		}
		table[key] = r.LogProb
	}

	return &Scorer{
		table:     table,
		order:     order,
		floor:     floor,
		uppercase: uppercase,
	}, nil
}

// DefaultFloor is log(0.01/total), i.e. one hundredth of a single
// observation.
func DefaultFloor(total int64, base converter.Base) float64 {
	if total <= 0 {
		return math.Inf(-1)
	}
	return base.Log(0.01 / float64(total))
}

func (s *Scorer) Order() int {
	return s.order
}

func (s *Scorer) Floor() float64 {
	return s.floor
}

// Normalize keeps ASCII letters only and uppercases them when the scorer
// is case-folding; otherwise text is returned unchanged.
func (s *Scorer) Normalize(text string) string {
	if !s.uppercase {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Score sums the log-probabilities of every window in the normalized text.
// Text shorter than one window scores -Inf.
func (s *Scorer) Score(text string) float64 {
	runes := []rune(s.Normalize(text))
	if len(runes) < s.order {
		return math.Inf(-1)
	}

	score := 0.0
	for i := 0; i+s.order <= len(runes); i++ {
		if lp, ok := s.table[string(runes[i:i+s.order])]; ok {
			score += lp
		} else {
			score += s.floor
		}
	}
	return score
}
