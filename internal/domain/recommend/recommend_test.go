package recommend_test

import (
	"testing"
	"time"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/recommend"
	. "github.com/smartystreets/goconvey/convey"
)

// Sunday 2026-10-18, 09:30 UTC.
var now = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

func ev(id, category, date string) model.EventRecord {
	return model.EventRecord{ID: id, Title: "Event " + id, Category: category, Date: date}
}

func recIDs(rs []model.Recommendation) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestRecommend(t *testing.T) {
	Convey("Given a recommender with a fixed clock", t, func() {
		r := recommend.New(recommend.WithClock(clock))

		Convey("When the user has no history", func() {
			upcoming := []model.EventRecord{
				ev("a", "sports", "2026-10-19"),
				ev("b", "technical", "2026-10-22"),
				ev("c", "cultural", "2026-11-02"),
				ev("d", "academic", "2026-12-20"),
				ev("e", "technical", "2027-01-15"),
			}
			res := r.Recommend("u1", 5, nil, upcoming)

			Convey("Then events come back in ascending date order", func() {
				So(recIDs(res), ShouldResemble, []string{"a", "b", "c", "d", "e"})
				So(res[0].Score, ShouldEqual, 1.0)
				So(res[2].Score, ShouldEqual, 0.5)
				So(res[4].Score, ShouldEqual, 0)
			})
		})

		Convey("When the user requested a category repeatedly", func() {
			history := []model.CategoryRequest{
				{UserID: "u1", Category: "technical"},
				{UserID: "u1", Category: "technical"},
				{UserID: "u1", Category: "cultural"},
				{UserID: "u2", Category: "sports"},
			}
			upcoming := []model.EventRecord{
				ev("soon-sports", "sports", "2026-10-19"),
				ev("far-tech", "technical", "2026-12-20"),
				ev("month-cult", "cultural", "2026-11-02"),
			}
			res := r.Recommend("u1", 10, history, upcoming)

			Convey("Then affinity outweighs recency", func() {
				// technical: 2 + 2*0.5 = 3; cultural: 2 + 0.5 + 0.5 = 3; sports: 1
				So(recIDs(res), ShouldResemble, []string{"far-tech", "month-cult", "soon-sports"})
				So(res[0].Score, ShouldEqual, 3.0)
				So(res[0].Confidence, ShouldEqual, 1.0)
				So(res[2].Confidence, ShouldAlmostEqual, 1.0/3.0)
			})
		})

		Convey("When an event date cannot be parsed", func() {
			res := r.Recommend("u1", 0, nil, []model.EventRecord{ev("x", "general", "someday")})

			Convey("Then it earns no recency bonus", func() {
				So(res[0].Score, ShouldEqual, 0)
			})
		})

		Convey("When the limit is smaller than the candidates", func() {
			upcoming := []model.EventRecord{ev("a", "x", "2026-10-19"), ev("b", "x", "2026-10-20")}
			So(recIDs(r.Recommend("u1", 1, nil, upcoming)), ShouldResemble, []string{"a"})
		})

		Convey("When an event is later today", func() {
			res := r.Recommend("u1", 0, nil, []model.EventRecord{ev("today", "x", "2026-10-18")})
			So(res[0].Score, ShouldEqual, 1.0)
		})
	})
}

func TestPredictPopularity(t *testing.T) {
	Convey("Given the default popularity weights", t, func() {
		r := recommend.New(recommend.WithClock(clock))

		Convey("When every bonus applies", func() {
			rep := r.PredictPopularity(model.EventRecord{
				Category:    "Technical",
				Date:        "2026-10-24", // Saturday
				Description: string(make([]byte, 201)),
				Society:     "Coding Club",
			})

			Convey("Then the score is capped at 100", func() {
				So(rep.PopularityScore, ShouldEqual, 100)
				So(rep.PredictedRegistrations, ShouldEqual, 200)
				So(rep.Confidence, ShouldEqual, recommend.ConfidenceHigh)
			})
		})

		Convey("When only the medium description bonus applies", func() {
			rep := r.PredictPopularity(model.EventRecord{
				Category:    "academic",
				Date:        "2026-10-21",
				Description: string(make([]byte, 150)),
			})

			So(rep.PopularityScore, ShouldEqual, 73)
			So(rep.PredictedRegistrations, ShouldEqual, 146)
			So(rep.Confidence, ShouldEqual, recommend.ConfidenceHigh)
		})

		Convey("When the score sits exactly on a threshold", func() {
			rep := r.PredictPopularity(model.EventRecord{Category: "academic", Date: "bad"})

			Convey("Then the stricter label is not reached", func() {
				So(rep.PopularityScore, ShouldEqual, 70)
				So(rep.Confidence, ShouldEqual, recommend.ConfidenceMedium)
			})
		})

		Convey("When the category is unknown", func() {
			rep := r.PredictPopularity(model.EventRecord{Category: "gaming"})

			So(rep.PopularityScore, ShouldEqual, 60)
			So(rep.Confidence, ShouldEqual, recommend.ConfidenceMedium)
		})
	})

	Convey("Given overridden category weights", t, func() {
		w := recommend.DefaultPopularityWeights()
		w.Categories = w.Categories.With(map[string]float64{"gaming": 0.4})
		r := recommend.New(recommend.WithClock(clock), recommend.WithPopularityWeights(w))

		rep := r.PredictPopularity(model.EventRecord{Category: "gaming"})

		So(rep.PopularityScore, ShouldEqual, 40)
		So(rep.Confidence, ShouldEqual, recommend.ConfidenceLow)
	})
}

func TestTrendingCategories(t *testing.T) {
	Convey("Given request history and upcoming events", t, func() {
		r := recommend.New(recommend.WithClock(clock))
		recent := now.Add(-24 * time.Hour)
		old := now.Add(-40 * 24 * time.Hour)

		var history []model.CategoryRequest
		add := func(category string, n int, at time.Time) {
			for i := 0; i < n; i++ {
				history = append(history, model.CategoryRequest{UserID: "u", Category: category, CreatedAt: at})
			}
		}
		add("technical", 5, recent) // 10 + 1 event = 11
		add("cultural", 5, recent)  // 10
		add("sports", 3, recent)    // 6
		add("academic", 2, recent)  // 4 + 1 event = 5
		add("general", 9, old)      // outside the window

		upcoming := []model.EventRecord{
			ev("1", "technical", "2026-10-20"),
			ev("2", "academic", "2026-10-21"),
			ev("3", "workshops", "2026-10-22"),
		}

		res := r.TrendingCategories(30, history, upcoming)

		Convey("Then labels follow the strict thresholds", func() {
			labels := map[string]string{}
			scores := map[string]int{}
			for _, e := range res {
				labels[e.Category] = e.Trend
				scores[e.Category] = e.TrendScore
			}
			So(scores["technical"], ShouldEqual, 11)
			So(labels["technical"], ShouldEqual, model.TrendHot)
			So(scores["cultural"], ShouldEqual, 10)
			So(labels["cultural"], ShouldEqual, model.TrendRising)
			So(scores["sports"], ShouldEqual, 6)
			So(labels["sports"], ShouldEqual, model.TrendRising)
			So(scores["academic"], ShouldEqual, 5)
			So(labels["academic"], ShouldEqual, model.TrendStable)
		})

		Convey("Then requests outside the window are ignored", func() {
			for _, e := range res {
				So(e.Category, ShouldNotEqual, "general")
			}
		})

		Convey("Then entries are sorted by descending trend score", func() {
			var cats []string
			for _, e := range res {
				cats = append(cats, e.Category)
			}
			So(cats, ShouldResemble, []string{"technical", "cultural", "sports", "academic", "workshops"})
			So(res[4].RequestCount, ShouldEqual, 0)
			So(res[4].EventCount, ShouldEqual, 1)
		})
	})

	Convey("Given no data", t, func() {
		res := recommend.New(recommend.WithClock(clock)).TrendingCategories(30, nil, nil)

		So(res, ShouldNotBeNil)
		So(res, ShouldBeEmpty)
	})
}

func TestTrendLabel(t *testing.T) {
	Convey("Given the default thresholds", t, func() {
		th := recommend.DefaultTrendThresholds()

		So(th.TrendLabel(11), ShouldEqual, model.TrendHot)
		So(th.TrendLabel(10), ShouldEqual, model.TrendRising)
		So(th.TrendLabel(6), ShouldEqual, model.TrendRising)
		So(th.TrendLabel(5), ShouldEqual, model.TrendStable)
	})
}
