package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List career categories with their keywords and roadmaps",
	Run: func(cmd *cobra.Command, _ []string) {
		listCatalog(cmd)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().BoolP("verbose", "v", false, "also print roles and roadmap")
}

func listCatalog(cmd *cobra.Command) {
	logger, config := setup()

	cat, err := loadCatalog(config, logger)
	if err != nil {
		logger.Fatal("loading career catalog", zap.Error(err))
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	for _, category := range cat.Categories() {
		fmt.Printf("%s: %s\n", category.Name, strings.Join(category.Keywords, ", "))
		if !verbose {
			continue
		}
		fmt.Printf("  %s\n", category.Description)
		fmt.Printf("  roles: %s\n", strings.Join(category.Roles, ", "))
		for i, stage := range category.Roadmap {
			fmt.Printf("  %d) %s\n", i+1, stage)
		}
		fmt.Println()
	}
}
