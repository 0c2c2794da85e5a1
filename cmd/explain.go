package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai/gemini"
)

var explainCmd = &cobra.Command{
	Use:   "explain CATEGORY",
	Short: "Ask Gemini for a short explanation of a career category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		explain(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func explain(cmd *cobra.Command, category string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, config := setup()

	cat, err := loadCatalog(config, logger)
	if err != nil {
		logger.Fatal("loading career catalog", zap.Error(err))
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating gemini generator", zap.Error(err))
	}

	text, err := gemini.NewExplainer(generator, cat, logger).Explain(ctx, category)
	if err != nil {
		logger.Fatal("explaining category", zap.Error(err), zap.String("category", category))
	}

	fmt.Println(text)
}
