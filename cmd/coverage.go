package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SvenDH/inkwell/coverage"
	"github.com/SvenDH/inkwell/observe"
	"github.com/SvenDH/inkwell/parse"
)

// coverageCmd represents the coverage command
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Report which catalog texts do not compile",
	Long: `Compile the whole catalog, store every text that matched no pattern and
print the share of texts that compiled followed by the most frequent misses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := catalog(nil)
		if err != nil {
			return err
		}
		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		comp := parse.New(
			parse.WithLogger(logger),
			parse.WithMissRecorder(repo),
			parse.WithMetrics(observe.Default()),
		)
		report, err := coverage.Measure(cmd.Context(), comp, repo, cards, cfg.Coverage.Top)
		if err != nil {
			return err
		}
		logger.Info("coverage measured", "cards", report.Cards, "texts", report.Texts, "misses", report.Misses)
		return report.Write(cmd.OutOrStdout())
	},
}

func openRepo() (coverage.Repo, error) {
	switch cfg.Coverage.Driver {
	case "memory":
		return coverage.NewMemory(), nil
	case "sqlite":
		return coverage.OpenSQLite(cfg.Coverage.Path)
	}
	return nil, fmt.Errorf("unknown coverage driver %q", cfg.Coverage.Driver)
}

func init() {
	rootCmd.AddCommand(coverageCmd)
	coverageCmd.Flags().String("driver", "", "miss store: sqlite or memory")
	coverageCmd.Flags().String("db", "", "sqlite database path")
	coverageCmd.Flags().Int("top", 0, "number of misses to list")
	bind(coverageCmd, "coverage.driver", "driver")
	bind(coverageCmd, "coverage.path", "db")
	bind(coverageCmd, "coverage.top", "top")
}
