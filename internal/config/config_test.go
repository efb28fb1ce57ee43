package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/eventrank/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.DefaultSearchLimit, convey.ShouldEqual, 10)
			convey.So(cfg.MaxRecommendLimit, convey.ShouldEqual, 50)
			convey.So(cfg.TrendingDays, convey.ShouldEqual, 30)
			convey.So(cfg.EncoderTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.EmbeddingCacheTTL(), convey.ShouldEqual, 24*time.Hour)
			convey.So(cfg.SemanticEnabled(), convey.ShouldBeFalse)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsRefresh(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("When the default search limit exceeds the max", func() {
			cfg.DefaultSearchLimit = 200
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "default_search_limit")
		})

		convey.Convey("When a limit is zero", func() {
			cfg.MaxRecommendLimit = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the metrics refresh period is zero", func() {
			cfg.MetricsRefreshS = 0
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_refresh_s")
		})

		convey.Convey("When a weight override is out of range", func() {
			cfg.CategoryScores = map[string]float64{"technical": 1.5}
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "category_scores.technical")
		})

		convey.Convey("When a registration base is negative", func() {
			cfg.RegistrationBase = map[string]float64{"sports": -1}
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the encoder is enabled without a key", func() {
			cfg.EncoderEnabled = true
			convey.So(cfg.SemanticEnabled(), convey.ShouldBeFalse)
			cfg.EncoderAPIKey = "sk-test"
			convey.So(cfg.SemanticEnabled(), convey.ShouldBeTrue)
		})
	})
}
