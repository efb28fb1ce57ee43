// Package main provides rankctl, an offline front end to the ranking engine
// that reads events and drafts from JSON or YAML files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/eventrank/pkg/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "rankctl",
	Short:         "Score, search and predict campus events from files",
	Long:          "rankctl runs the request analyzer, description scorer, search engine and success predictor in-process against JSON or YAML input files.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
			return err
		}
		return logger.SetLevelString(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
