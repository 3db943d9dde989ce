package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"ngramlp/data"
	"ngramlp/internal/adapter/converter"
	"ngramlp/internal/adapter/fs"
	"ngramlp/internal/domain"
	"ngramlp/internal/port"
)

// Source names where a count table comes from. An empty Path selects the
// embedded sample table and "-" reads Stdin.
type Source struct {
	Path  string
	Stdin io.Reader
}

// Name labels the source in logs and saved stats.
func (s Source) Name() string {
	switch s.Path {
	case "":
		return data.EnglishQuadgramsName
	case "-":
		return "stdin"
	default:
		return s.Path
	}
}

// ConvertUseCase turns a count table into one line of log-probability records.
type ConvertUseCase struct {
	walker port.FileWalker
	store  port.TableStore
	logger *zap.Logger
	opts   converter.Options
	now    func() time.Time
}

// NewConvertUseCase creates a new convert use case. store may be nil when
// the table is not being saved.
func NewConvertUseCase(
	walker port.FileWalker,
	store port.TableStore,
	logger *zap.Logger,
	opts converter.Options,
) *ConvertUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConvertUseCase{
		walker: walker,
		store:  store,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// ConvertResult summarizes a conversion.
type ConvertResult struct {
	Source  string
	Files   int
	Entries int
	Total   int64
	Order   int
	Saved   bool
}

// Run converts src and writes the result line to w. Nothing is written
// to w unless every step, including the optional save, succeeds.
func (u *ConvertUseCase) Run(ctx context.Context, src Source, w io.Writer, progress func(done, total int)) (*ConvertResult, error) {
	raw, files, err := u.load(ctx, src)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines := converter.SplitLines(raw)
	u.logger.Debug("split input", zap.String("source", src.Name()), zap.Int("lines", len(lines)))

	table, err := converter.ParseEntries(lines, u.opts.Strict)
	if err != nil {
		return nil, err
	}
	u.logger.Debug("parsed table", zap.Int("entries", len(table.Entries)), zap.Int64("total", table.Total))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := converter.LogProbs(table, u.opts.Base)
	if err != nil {
		return nil, err
	}
	line := converter.Join(converter.FormatRecords(records, u.opts.Precision))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ConvertResult{
		Source:  src.Name(),
		Files:   files,
		Entries: len(table.Entries),
		Total:   table.Total,
		Order:   table.Order(),
	}

	if u.store != nil {
		stats := domain.TableStats{
			Entries:    result.Entries,
			Total:      result.Total,
			Order:      result.Order,
			Source:     result.Source,
			Base:       string(u.opts.Base),
			ImportedAt: u.now().UTC(),
		}
		if err := u.store.SaveTable(table, stats, progress); err != nil {
			return nil, fmt.Errorf("failed to save table: %w", err)
		}
		result.Saved = true
		u.logger.Info("saved table", zap.String("source", result.Source), zap.Int("entries", result.Entries))
	}

	if err := converter.Write(w, line); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	return result, nil
}

func (u *ConvertUseCase) load(ctx context.Context, src Source) (string, int, error) {
	switch src.Path {
	case "":
		return data.EnglishQuadgrams, 0, nil
	case "-":
		if src.Stdin == nil {
			return "", 0, fmt.Errorf("no stdin reader configured")
		}
		b, err := io.ReadAll(src.Stdin)
		if err != nil {
			return "", 0, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), 1, nil
	}

	info, err := os.Stat(src.Path)
	if err != nil {
		return "", 0, fmt.Errorf("input does not exist: %w", err)
	}
	if !info.IsDir() {
		content, err := fs.ReadFile(src.Path)
		if err != nil {
			return "", 0, fmt.Errorf("failed to read %s: %w", src.Path, err)
		}
		return content, 1, nil
	}

	if u.walker == nil {
		return "", 0, fmt.Errorf("%s is a directory and no walker is configured", src.Path)
	}
	files, err := u.walker.Walk(ctx, src.Path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to walk directory: %w", err)
	}

	var b strings.Builder
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		content, err := fs.ReadFile(f.Path)
		if err != nil {
			return "", 0, fmt.Errorf("failed to read %s: %w", f.RelPath, err)
		}
		b.WriteString(content)
		b.WriteByte('\n')
		u.logger.Debug("read table file", zap.String("path", f.RelPath), zap.Int64("bytes", f.Size))
	}
	return b.String(), len(files), nil
}
