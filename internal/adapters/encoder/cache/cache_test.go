package cache_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/eventrank/internal/adapters/encoder/cache"
	. "github.com/smartystreets/goconvey/convey"
)

// unreachable returns a client whose every command fails fast.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCacheKey(t *testing.T) {
	Convey("Given a cache", t, func() {
		c := cache.New(nil, cache.WithPrefix("test:"))

		Convey("When keys are derived", func() {
			a := c.Key("small", "hackathon")
			b := c.Key("small", "hackathon")
			other := c.Key("large", "hackathon")

			Convey("Then they are stable, prefixed and model specific", func() {
				So(a, ShouldEqual, b)
				So(strings.HasPrefix(a, "test:"), ShouldBeTrue)
				So(len(a), ShouldEqual, len("test:")+64)
				So(a, ShouldNotEqual, other)
			})
		})
	})
}

func TestNilCache(t *testing.T) {
	Convey("Given a nil cache", t, func() {
		var c *cache.Cache
		ctx := context.Background()

		Convey("Then every call is a harmless miss", func() {
			_, ok := c.Get(ctx, "m", "t")
			So(ok, ShouldBeFalse)
			So(c.Set(ctx, "m", "t", []float64{1}), ShouldBeNil)
			So(c.Close(), ShouldBeNil)
		})
	})
}

func TestUnreachableRedis(t *testing.T) {
	Convey("Given a cache over an unreachable server", t, func() {
		c := cache.New(unreachable(), cache.WithTTL(time.Minute))
		defer c.Close()
		ctx := context.Background()

		Convey("When an embedding is read", func() {
			_, ok := c.Get(ctx, "m", "chess night")

			Convey("Then it is a miss", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When an embedding is written", func() {
			err := c.Set(ctx, "m", "chess night", []float64{0.1, 0.2})

			Convey("Then the failure is reported", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a malformed url", t, func() {
		_, err := cache.Connect(context.Background(), "not a url")

		Convey("Then connect fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
