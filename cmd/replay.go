package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/dialogue"
	"github.com/spigell/career-navigator/internal/replay"
	"github.com/spigell/career-navigator/internal/report"
)

var replayCmd = &cobra.Command{
	Use:   "replay SCRIPT",
	Short: "Replay scripted conversations from a YAML file, each in its own session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runReplay(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().IntP("parallel", "n", 4, "how many conversations run at the same time (0 is unlimited)")
	replayCmd.Flags().Bool("report", false, "print the recommendation report after every answer")
}

func runReplay(cmd *cobra.Command, path string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, config := setup()

	script, err := replay.Load(path)
	if err != nil {
		logger.Fatal("loading replay script", zap.Error(err))
	}

	cat, err := loadCatalog(config, logger)
	if err != nil {
		logger.Fatal("loading career catalog", zap.Error(err))
	}

	extractor, err := newExtractor(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating interest extractor", zap.Error(err))
	}

	parallel, _ := cmd.Flags().GetInt("parallel")
	withReport, _ := cmd.Flags().GetBool("report")

	newController := func() *dialogue.Controller {
		return dialogue.New(extractor, nil, cat, logger)
	}

	logger.Info("replaying conversations",
		zap.Int("count", len(script.Conversations)),
		zap.Int("parallel", parallel),
	)

	results, err := replay.Run(ctx, script, newController, parallel, logger)
	if err != nil {
		logger.Fatal("replay failed", zap.Error(err))
	}

	for _, result := range results {
		fmt.Printf("=== %s (%s)\n\n", result.Name, result.SessionID)
		for _, exchange := range result.Exchanges {
			fmt.Printf("> %s\n", exchange.Answer)
			if withReport {
				fmt.Println(report.Format(exchange.Recommendations))
			}
			fmt.Printf("%s\n\n", exchange.Prompt)
		}
	}
}
