package main

import (
	"fmt"

	"github.com/spf13/cobra"

	app "github.com/okian/eventrank/internal/app"
	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/types"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the success of event drafts",
	Long:  "Reads an array of event drafts and prints one success report per draft, in input order.",
	RunE:  runPredict,
}

var predictFile string

func init() {
	predictCmd.Flags().StringVarP(&predictFile, "file", "f", "", "Path to a JSON/YAML array of event drafts (required)")
	_ = predictCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	var rows []types.EventRequest
	if err := readInput(predictFile, &rows); err != nil {
		return err
	}
	drafts := make([]model.EventRecord, 0, len(rows))
	for i, row := range rows {
		if err := types.Validate(row); err != nil {
			return fmt.Errorf("draft %d: %w", i, err)
		}
		drafts = append(drafts, row.Record())
	}

	svc := app.New()
	reports, err := svc.PredictSuccessBatch(cmd.Context(), drafts)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), reports)
}
