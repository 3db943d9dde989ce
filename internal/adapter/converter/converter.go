package converter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"ngramlp/internal/domain"
)

// Base selects the logarithm used for log-probabilities.
type Base string

const (
	BaseE  Base = "e"
	Base10 Base = "10"
)

// DefaultPrecision is the number of fractional digits in a formatted record.
const DefaultPrecision = 4

// ParseBase maps a config or flag value to a Base.
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "e", "ln":
		return BaseE, nil
	case "10", "log10":
		return Base10, nil
	default:
		return "", fmt.Errorf("unsupported log base: %q", s)
	}
}

// Log returns the logarithm of x in base b.
func (b Base) Log(x float64) float64 {
	if b == Base10 {
		return math.Log10(x)
	}
	return math.Log(x)
}

// Options controls a full conversion.
type Options struct {
	Strict    bool
	Precision int
	Base      Base
}

// DefaultOptions returns options matching the classic output format.
func DefaultOptions() Options {
	return Options{
		Precision: DefaultPrecision,
		Base:      BaseE,
	}
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// SplitLines returns the non-empty trimmed lines of raw in order. LF, CRLF
// and bare CR all end a line.
func SplitLines(raw string) []string {
	var lines []string
	for _, line := range strings.FieldsFunc(raw, isLineBreak) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ParseEntries parses each line into an entry and sums the counts.
// Fields after the count are ignored unless strict is set.
func ParseEntries(lines []string, strict bool) (domain.Table, error) {
	table := domain.Table{Entries: make([]domain.Entry, 0, len(lines))}

	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return domain.Table{}, &ParseError{Line: i + 1, Text: line, Reason: "expected <ngram> <count>"}
		}
		if strict && len(fields) > 2 {
			return domain.Table{}, &ParseError{Line: i + 1, Text: line, Reason: fmt.Sprintf("unexpected %d extra field(s)", len(fields)-2)}
		}

		count, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return domain.Table{}, &ParseError{Line: i + 1, Text: line, Reason: "count is not an integer", Err: err}
		}
		if count < 0 {
			return domain.Table{}, &ParseError{Line: i + 1, Text: line, Reason: "count is negative"}
		}
		if table.Total > math.MaxInt64-count {
			return domain.Table{}, &DomainError{Reason: fmt.Sprintf("adding line %d", i+1), Err: ErrTotalOverflow}
		}

		table.Entries = append(table.Entries, domain.Entry{NGram: fields[0], Count: count})
		table.Total += count
	}

	return table, nil
}

// LogProbs computes log(count/total) for every entry. A zero count
// yields -Inf.
func LogProbs(table domain.Table, base Base) ([]domain.Record, error) {
	if table.Total == 0 {
		return nil, &DomainError{Reason: fmt.Sprintf("%d entries", len(table.Entries)), Err: ErrZeroTotal}
	}

	total := float64(table.Total)
	records := make([]domain.Record, len(table.Entries))
	for i, e := range table.Entries {
		records[i] = domain.Record{
			NGram:   e.NGram,
			LogProb: base.Log(float64(e.Count) / total),
		}
	}
	return records, nil
}

// FormatRecords renders each record as ("<ngram>",<logProb>).
func FormatRecords(records []domain.Record, precision int) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = formatRecord(r, precision)
	}
	return out
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func formatRecord(r domain.Record, precision int) string {
	var b strings.Builder
	b.WriteString(`("`)
	b.WriteString(quoteEscaper.Replace(r.NGram))
	b.WriteString(`",`)
	b.WriteString(FormatLogProb(r.LogProb, precision))
	b.WriteString(")")
	return b.String()
}

// FormatLogProb renders v with exactly precision fractional digits.
func FormatLogProb(v float64, precision int) string {
	switch {
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsNaN(v):
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// Join concatenates formatted records with commas.
func Join(records []string) string {
	return strings.Join(records, ",")
}

// Write emits line followed by a single newline.
func Write(w io.Writer, line string) error {
	_, err := io.WriteString(w, line+"\n")
	return err
}

// Convert runs the whole pipeline over raw and returns the output line
// without its trailing newline.
func Convert(raw string, opts Options) (string, error) {
	table, err := ParseEntries(SplitLines(raw), opts.Strict)
	if err != nil {
		return "", err
	}
	records, err := LogProbs(table, opts.Base)
	if err != nil {
		return "", err
	}
	return Join(FormatRecords(records, opts.Precision)), nil
}
