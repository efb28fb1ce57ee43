package main

import (
	"fmt"

	"github.com/spf13/cobra"

	app "github.com/okian/eventrank/internal/app"
	"github.com/okian/eventrank/internal/domain/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Rank events from a file against a query",
	Long:  "Loads every event of the input file into an in-memory store and ranks them with keyword matching.",
	RunE:  runSearch,
}

var (
	searchEvents   string
	searchQuery    string
	searchLimit    int
	searchCategory string
	searchDateFrom string
)

func init() {
	searchCmd.Flags().StringVarP(&searchEvents, "events", "e", "", "Path to a JSON/YAML array of events (required)")
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Search query (required)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Only return events of this category")
	searchCmd.Flags().StringVar(&searchDateFrom, "date-from", "", "Only return events on or after YYYY-MM-DD")
	_ = searchCmd.MarkFlagRequired("events")
	_ = searchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var rows []types.EventRequest
	if err := readInput(searchEvents, &rows); err != nil {
		return err
	}

	req := types.SearchRequest{Query: searchQuery, Limit: searchLimit, Category: searchCategory, DateFrom: searchDateFrom}
	if err := types.Validate(req); err != nil {
		return err
	}

	svc := app.New(app.WithWorkerCount(1))
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	for i, row := range rows {
		if err := types.Validate(row); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		if _, err := svc.AddEvent(ctx, row.Record()); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}

	results, err := svc.Search(ctx, req)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), results)
}
