package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/okian/eventrank/internal/app"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Classify a student request and draft a reply",
	Args:  cobra.ArbitraryArgs,
	RunE:  runAnalyze,
}

var analyzeFile string

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to a JSON/YAML file with a \"text\" field")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if analyzeFile != "" {
		var req struct {
			Text string `json:"text"`
		}
		if err := readInput(analyzeFile, &req); err != nil {
			return err
		}
		text = req.Text
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("request text is required")
	}
	svc := app.New()
	return writeOutput(cmd.OutOrStdout(), svc.AnalyzeRequest(cmd.Context(), text))
}
