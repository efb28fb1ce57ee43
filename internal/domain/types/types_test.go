package types_test

import (
	"testing"
	"time"

	"github.com/okian/eventrank/internal/domain/model"
	types "github.com/okian/eventrank/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStoredRequest(t *testing.T) {
	Convey("Given a stored request", t, func() {
		created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		req := types.StoredRequest{ID: "r1", UserID: "u1", Text: "more hackathons", Status: types.StatusQueued, CreatedAt: created}

		Convey("When it has not been analyzed", func() {
			_, ok := req.CategoryRequest()

			Convey("Then it contributes no history", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When it has been analyzed", func() {
			req.Status = types.StatusAnalyzed
			req.Analysis = &model.RequestAnalysis{Category: model.CategoryTechnical}
			row, ok := req.CategoryRequest()

			Convey("Then it becomes a category history row", func() {
				So(ok, ShouldBeTrue)
				So(row.UserID, ShouldEqual, "u1")
				So(row.Category, ShouldEqual, "technical")
				So(row.CreatedAt, ShouldEqual, created)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given request bodies", t, func() {
		Convey("When an analyze request has no text", func() {
			err := types.Validate(types.AnalyzeRequest{})

			Convey("Then validation names the field", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "Text")
				So(err.Error(), ShouldContainSubstring, "notblank")
			})
		})

		Convey("When request texts are only whitespace", func() {
			blank := "   \n\t "

			Convey("Then analysis, submission and search reject them", func() {
				So(types.Validate(types.AnalyzeRequest{Text: blank}), ShouldNotBeNil)
				So(types.Validate(types.SubmitRequest{UserID: "u1", Text: blank}), ShouldNotBeNil)
				So(types.Validate(types.SubmitRequest{UserID: blank, Text: "chess"}), ShouldNotBeNil)
				So(types.Validate(types.SearchRequest{Query: blank}), ShouldNotBeNil)
				So(types.Validate(types.PopularityRequest{Category: blank}), ShouldNotBeNil)
			})
		})

		Convey("When a submission omits the request id", func() {
			err := types.Validate(types.SubmitRequest{UserID: "u1", Text: "chess night"})

			Convey("Then it is accepted", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When a submission has no user", func() {
			err := types.Validate(types.SubmitRequest{Text: "chess night"})

			Convey("Then it is rejected", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "UserID")
			})
		})

		Convey("When a search date filter is malformed", func() {
			err := types.Validate(types.SearchRequest{Query: "ai", DateFrom: "03/01/2025"})

			Convey("Then it is rejected", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "DateFrom")
			})
		})

		Convey("When a search date filter is ISO formatted", func() {
			err := types.Validate(types.SearchRequest{Query: "ai", DateFrom: "2025-03-01"})

			Convey("Then it is accepted", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When a batch is empty", func() {
			err := types.Validate(types.SuccessBatchRequest{})

			Convey("Then it is rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When a batch holds an untitled draft", func() {
			err := types.Validate(types.SuccessBatchRequest{Events: []types.EventRequest{{Title: "ok"}, {}}})

			Convey("Then the nested field is reported", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "Title")
			})
		})
	})
}

func TestEventRequestRecord(t *testing.T) {
	Convey("Given an event request", t, func() {
		req := types.EventRequest{ID: "e1", Title: "Hack Night", Category: "technical", Date: "2025-04-02", Venue: "Main Hall", Society: "CS Society"}

		Convey("When it is converted", func() {
			rec := req.Record()

			Convey("Then every field is carried over", func() {
				So(rec.ID, ShouldEqual, "e1")
				So(rec.Title, ShouldEqual, "Hack Night")
				So(rec.Category, ShouldEqual, "technical")
				So(rec.Date, ShouldEqual, "2025-04-02")
				So(rec.Venue, ShouldEqual, "Main Hall")
				So(rec.Society, ShouldEqual, "CS Society")
			})
		})
	})
}

func TestPopularityRequest(t *testing.T) {
	Convey("Given a popularity request", t, func() {
		req := types.PopularityRequest{Category: "sports", Date: "2025-03-15", Society: "Athletics Club"}

		Convey("Then it converts to an event row", func() {
			rec := req.Record()
			So(rec.Category, ShouldEqual, "sports")
			So(rec.Date, ShouldEqual, "2025-03-15")
			So(rec.Society, ShouldEqual, "Athletics Club")
		})

		Convey("Then a missing category fails validation", func() {
			So(types.Validate(types.PopularityRequest{Society: "x"}), ShouldNotBeNil)
		})
	})
}
