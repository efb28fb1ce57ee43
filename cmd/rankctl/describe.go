package main

import (
	"github.com/spf13/cobra"

	app "github.com/okian/eventrank/internal/app"
	"github.com/okian/eventrank/internal/domain/types"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Grade an event description",
	RunE:  runDescribe,
}

var (
	describeFile  string
	describeTitle string
)

func init() {
	describeCmd.Flags().StringVarP(&describeFile, "file", "f", "", "Path to a JSON/YAML description document (required)")
	describeCmd.Flags().StringVar(&describeTitle, "title", "", "Event title, overrides the file")
	_ = describeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, _ []string) error {
	var req types.DescriptionRequest
	if err := readInput(describeFile, &req); err != nil {
		return err
	}
	if describeTitle != "" {
		req.Title = describeTitle
	}
	svc := app.New()
	return writeOutput(cmd.OutOrStdout(), svc.ScoreDescription(cmd.Context(), req))
}
