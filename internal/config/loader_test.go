package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/eventrank/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		convey.Reset(clearConfigEnvVars)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
				convey.So(cfg.LexicalTrueUnion, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("EVENTRANK_ADDR", ":8080")
			_ = os.Setenv("EVENTRANK_QUEUE_SIZE", "500")
			_ = os.Setenv("EVENTRANK_WORKER_COUNT", "16")
			_ = os.Setenv("EVENTRANK_LEXICAL_TRUE_UNION", "true")
			_ = os.Setenv("EVENTRANK_ENCODER_TIMEOUT_MS", "2500")
			_ = os.Setenv("EVENTRANK_METRICS_ENABLED", "false")
			_ = os.Setenv("EVENTRANK_METRICS_REFRESH_S", "15")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 500)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.LexicalTrueUnion, convey.ShouldBeTrue)
				convey.So(cfg.EncoderTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.MetricsRefreshS, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
queue_size: 300
trending_days: 14
encoder_enabled: true
encoder_api_key: sk-file
category_scores:
  technical: 0.95
registration_base:
  sports: 80
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EVENTRANK_CONFIG", tmpFile)
			_ = os.Setenv("EVENTRANK_ADDR", ":7070")

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply and env vars win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 300)
				convey.So(cfg.TrendingDays, convey.ShouldEqual, 14)
				convey.So(cfg.SemanticEnabled(), convey.ShouldBeTrue)
				convey.So(cfg.CategoryScores["technical"], convey.ShouldEqual, 0.95)
				convey.So(cfg.RegistrationBase["sports"], convey.ShouldEqual, 80)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EVENTRANK_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("EVENTRANK_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("EVENTRANK_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("EVENTRANK_QUEUE_SIZE", "invalid")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the default limit exceeds the max from env", func() {
			_ = os.Setenv("EVENTRANK_DEFAULT_RECOMMEND_LIMIT", "80")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"EVENTRANK_CONFIG",
		"EVENTRANK_ADDR",
		"EVENTRANK_QUEUE_SIZE",
		"EVENTRANK_WORKER_COUNT",
		"EVENTRANK_LEXICAL_TRUE_UNION",
		"EVENTRANK_ENCODER_TIMEOUT_MS",
		"EVENTRANK_DEFAULT_RECOMMEND_LIMIT",
		"EVENTRANK_METRICS_ENABLED",
		"EVENTRANK_METRICS_REFRESH_S",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "eventrank-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
