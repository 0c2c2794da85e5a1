package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/dialogue"
	"github.com/spigell/career-navigator/internal/report"
	"github.com/spigell/career-navigator/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score INTEREST...",
	Short: "Score interest phrases against the career catalog without a conversation",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().Bool("report", false, "print the recommendation report instead of the score table")
}

func score(cmd *cobra.Command, interests []string) {
	logger, config := setup()

	cat, err := loadCatalog(config, logger)
	if err != nil {
		logger.Fatal("loading career catalog", zap.Error(err))
	}

	scores := scoring.NewKeywordScorer(cat).Score(interests)
	logger.Debug("scored interests", zap.Strings("interests", interests))

	if asReport, _ := cmd.Flags().GetBool("report"); asReport {
		fmt.Println(report.Format(dialogue.Recommend(cat, scores)))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tCONFIDENCE")
	for _, s := range scores {
		fmt.Fprintf(w, "%s\t%s\n", s.Category, report.Percent(s.Confidence))
	}
	w.Flush()
}
