package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"ngramlp/internal/adapter/converter"
	"ngramlp/internal/adapter/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [ngram...]",
	Short: "Show statistics for the saved table",
	Long: `Show statistics for the table saved by "convert --save". Any n-grams given
as arguments are looked up and printed with their count and log-probability.

Examples:
  ngramlp stats
  ngramlp stats TION QQQQ`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path := GetTablePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("no table found at %s. Run 'ngramlp convert --save' first", path)
	}

	st, err := store.NewBoltStore(path)
	if err != nil {
		return fmt.Errorf("failed to open table: %w", err)
	}
	defer st.Close()

	stats, err := st.GetStats()
	if errors.Is(err, store.ErrNoTable) {
		return fmt.Errorf("%s holds no table. Run 'ngramlp convert --save' first", path)
	}
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	order := "mixed"
	if stats.Order > 0 {
		order = fmt.Sprintf("%d", stats.Order)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Table: %s\n", path)
	fmt.Fprintf(out, "  Source:   %s\n", stats.Source)
	fmt.Fprintf(out, "  N-grams:  %s\n", humanize.Comma(int64(stats.Entries)))
	fmt.Fprintf(out, "  Total:    %s\n", humanize.Comma(stats.Total))
	fmt.Fprintf(out, "  Order:    %s\n", order)
	fmt.Fprintf(out, "  Base:     %s\n", stats.Base)
	fmt.Fprintf(out, "  Imported: %s (%s)\n", stats.ImportedAt.Format("2006-01-02 15:04:05"), humanize.Time(stats.ImportedAt))

	if len(args) == 0 {
		return nil
	}

	base, err := converter.ParseBase(stats.Base)
	if err != nil {
		return err
	}
	precision := GetConfig().Convert.Precision

	fmt.Fprintln(out)
	for _, ngram := range args {
		count, found, err := st.GetCount(ngram)
		if err != nil {
			return fmt.Errorf("failed to look up %q: %w", ngram, err)
		}
		if !found {
			fmt.Fprintf(out, "  %s\tnot in table\n", ngram)
			continue
		}
		logProb := base.Log(float64(count) / float64(stats.Total))
		fmt.Fprintf(out, "  %s\t%s\t%s\n", ngram, humanize.Comma(count), converter.FormatLogProb(logProb, precision))
	}
	return nil
}
