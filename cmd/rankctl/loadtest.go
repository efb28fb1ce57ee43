package main

import (
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/eventrank/internal/loadgen"
)

var loadtestCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Submit generated requests to a running service and verify the analyses",
	RunE:  runLoadtest,
}

var loadtestCfg loadgen.Config

func init() {
	f := loadtestCmd.Flags()
	f.StringVar(&loadtestCfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	f.IntVar(&loadtestCfg.NumRequests, "requests", 1000, "Number of requests to generate and submit")
	f.IntVar(&loadtestCfg.Users, "users", 50, "Number of distinct user ids")
	f.IntVar(&loadtestCfg.Workers, "workers", runtime.NumCPU()*2, "Number of concurrent HTTP workers")
	f.IntVar(&loadtestCfg.Duplicates, "duplicates", 0, "Re-submit this many requests with the same id")
	f.DurationVar(&loadtestCfg.Timeout, "timeout", 30*time.Second, "HTTP request timeout")
	f.DurationVar(&loadtestCfg.WaitFor, "wait", 2*time.Minute, "How long to wait for analyses")
	f.DurationVar(&loadtestCfg.PollEvery, "poll", 500*time.Millisecond, "Poll interval while waiting")
	f.StringVarP(&loadtestCfg.OutputFile, "out", "o", "", "Write the generated requests to this JSON file")
	rootCmd.AddCommand(loadtestCmd)
}

func runLoadtest(cmd *cobra.Command, _ []string) error {
	stats, err := loadgen.Run(cmd.Context(), &loadtestCfg)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), stats)
}
