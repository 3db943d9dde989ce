package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"ngramlp/config"
	"ngramlp/internal/adapter/converter"
	"ngramlp/internal/adapter/fs"
	"ngramlp/internal/adapter/store"
	"ngramlp/internal/port"
	"ngramlp/internal/usecase"
)

var (
	convertStrict    bool
	convertPrecision int
	convertBase      string
	convertSave      bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [path|-]",
	Short: "Convert an n-gram count table to log-probability records",
	Long: `Read "<ngram> <count>" lines and print one line of ("<ngram>",<logProb>)
records joined by commas. The input is a file, a directory of table files
(selected by input.includes/excludes), "-" for stdin, or the embedded quadgram
sample when no path is given.

Examples:
  ngramlp convert
  ngramlp convert english_quadgrams.txt -p 6
  ngramlp convert tables/ --base 10 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVar(&convertStrict, "strict", false, "reject lines with fields after the count")
	convertCmd.Flags().IntVarP(&convertPrecision, "precision", "p", 0, "fractional digits (default from config)")
	convertCmd.Flags().StringVar(&convertBase, "base", "", `logarithm base, "e" or "10" (default from config)`)
	convertCmd.Flags().BoolVarP(&convertSave, "save", "s", false, "also save the table for score and stats")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	opts, err := convertOptions(cmd, cfg)
	if err != nil {
		return err
	}

	src := usecase.Source{Stdin: cmd.InOrStdin()}
	if len(args) > 0 {
		src.Path = args[0]
	}

	walker := fs.NewWalker(cfg.Input.Includes, cfg.Input.Excludes)

	var tableStore port.TableStore
	var progress func(done, total int)
	if convertSave {
		effective := *cfg
		effective.Convert.Base = string(opts.Base)
		effective.Convert.Strict = opts.Strict
		st, err := openTableStore(&effective)
		if err != nil {
			return err
		}
		defer st.Close()
		tableStore = st
		progress = newSaveProgress()
	}

	convertUC := usecase.NewConvertUseCase(walker, tableStore, logger, opts)
	result, err := convertUC.Run(cmd.Context(), src, cmd.OutOrStdout(), progress)
	if err != nil {
		return err
	}

	if result.Saved {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d n-grams (order %d) to %s\n", result.Entries, result.Order, GetTablePath())
	}
	return nil
}

func convertOptions(cmd *cobra.Command, cfg *config.Config) (converter.Options, error) {
	opts := converter.Options{
		Strict:    cfg.Convert.Strict || convertStrict,
		Precision: cfg.Convert.Precision,
	}
	if cmd.Flags().Changed("precision") {
		if convertPrecision < 0 {
			return opts, fmt.Errorf("--precision must be >= 0, got %d", convertPrecision)
		}
		opts.Precision = convertPrecision
	}

	baseName := cfg.Convert.Base
	if convertBase != "" {
		baseName = convertBase
	}
	base, err := converter.ParseBase(baseName)
	if err != nil {
		return opts, err
	}
	opts.Base = base
	return opts, nil
}

// openTableStore opens the table database and stamps the current schema.
// The saved table itself is only replaced once SaveTable succeeds.
func openTableStore(cfg *config.Config) (*store.BoltStore, error) {
	path := GetTablePath()
	if err := config.EnsureStoreDir(path); err != nil {
		return nil, fmt.Errorf("failed to create table directory: %w", err)
	}

	st, err := store.NewBoltStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table store: %w", err)
	}

	migration, err := st.CheckMigration(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to check migration: %w", err)
	}
	if migration.NeedsRebuild {
		fmt.Fprintf(os.Stderr, "Table rebuild required: %s\n", migration.Reason)
	}
	if migration.NeedsRebuild || migration.NeedsMigration {
		if err := st.Migrate(cfg); err != nil {
			st.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return st, nil
}

// newSaveProgress returns a callback drawing a stderr progress bar,
// created on the first call once the total is known.
func newSaveProgress() func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Saving[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)
		}
		bar.Set(done)
	}
}
