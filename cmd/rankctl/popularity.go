package main

import (
	"github.com/spf13/cobra"

	app "github.com/okian/eventrank/internal/app"
	"github.com/okian/eventrank/internal/domain/types"
)

var popularityCmd = &cobra.Command{
	Use:   "popularity",
	Short: "Estimate interest in an event",
	RunE:  runPopularity,
}

var (
	popularityFile     string
	popularityCategory string
)

func init() {
	popularityCmd.Flags().StringVarP(&popularityFile, "file", "f", "", "Path to a JSON/YAML event document")
	popularityCmd.Flags().StringVarP(&popularityCategory, "category", "c", "", "Event category, overrides the file")
	rootCmd.AddCommand(popularityCmd)
}

func runPopularity(cmd *cobra.Command, _ []string) error {
	var row types.PopularityRequest
	if popularityFile != "" {
		if err := readInput(popularityFile, &row); err != nil {
			return err
		}
	}
	if popularityCategory != "" {
		row.Category = popularityCategory
	}
	if err := types.Validate(row); err != nil {
		return err
	}
	svc := app.New()
	return writeOutput(cmd.OutOrStdout(), svc.PredictPopularity(cmd.Context(), row.Record()))
}
