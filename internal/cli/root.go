package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"ngramlp/config"
	"ngramlp/internal/logging"
)

var (
	cfgFile   string
	cfg       *config.Config
	rootDir   string
	tablePath string
	logLevel  string
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ngramlp",
	Short: "N-gram log-probability table generator",
	Long: `ngramlp turns an n-gram count table ("<ngram> <count>" per line) into a
single line of ("<ngram>",<logProb>) records ready to paste into source code,
where logProb = ln(count / total).

Example usage:
  ngramlp convert                      # Convert the embedded quadgram sample
  ngramlp convert quadgrams.txt        # Convert a table file
  cat counts.txt | ngramlp convert -   # Convert stdin
  ngramlp convert quadgrams.txt --save # Also save the table for scoring
  ngramlp score "ATTACK AT DAWN"       # Score text against the saved table`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if logLevel != "" {
			level = logLevel
		}
		logger, err = logging.New(level)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ngramlp.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().StringVarP(&tablePath, "table", "t", "", "saved table database (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
}

func GetConfig() *config.Config {
	return cfg
}

// GetTablePath returns the saved table location for this invocation.
func GetTablePath() string {
	if tablePath != "" {
		return tablePath
	}
	return cfg.StorePath(rootDir)
}
