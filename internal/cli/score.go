package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"ngramlp/internal/adapter/converter"
	"ngramlp/internal/adapter/store"
	"ngramlp/internal/usecase"
)

var (
	scoreFloor     float64
	scorePrecision int
)

var scoreCmd = &cobra.Command{
	Use:   "score [text...]",
	Short: "Score text against the saved table",
	Long: `Sum the log-probabilities of every n-gram window in each text, using the
table saved by "convert --save". Windows missing from the table cost the floor.
Each argument is scored separately; with no arguments every stdin line is.

Examples:
  ngramlp score "DEFEND THE EAST WALL"
  ngramlp score --floor -11 < candidates.txt`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().Float64Var(&scoreFloor, "floor", 0, "log-probability for unseen n-grams (default from config or table)")
	scoreCmd.Flags().IntVarP(&scorePrecision, "precision", "p", 4, "fractional digits in printed scores")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if scorePrecision < 0 {
		return fmt.Errorf("--precision must be >= 0, got %d", scorePrecision)
	}

	path := GetTablePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("no table found at %s. Run 'ngramlp convert --save' first", path)
	}

	st, err := store.NewBoltStore(path)
	if err != nil {
		return fmt.Errorf("failed to open table: %w", err)
	}
	defer st.Close()

	floor := cfg.Score.Floor
	if scoreFloor != 0 {
		floor = scoreFloor
	}

	texts := args
	if len(texts) == 0 {
		texts, err = readLines(cmd)
		if err != nil {
			return err
		}
	}

	scoreUC := usecase.NewScoreUseCase(st, logger, floor, cfg.Score.Uppercase)
	results, err := scoreUC.Score(texts)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "%s\t%s\n", converter.FormatLogProb(r.Score, scorePrecision), r.Text)
	}
	return nil
}

func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return lines, nil
}
