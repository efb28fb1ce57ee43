package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/eventrank/internal/domain/model"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}

func TestRankctl(t *testing.T) {
	convey.Convey("Given the rankctl commands", t, func() {
		dir := t.TempDir()

		convey.Convey("When analyzing a request from arguments", func() {
			out, err := execute("analyze", "Please", "organise", "a", "hackathon", "with", "coding", "challenges")
			convey.So(err, convey.ShouldBeNil)

			var got model.RequestAnalysis
			convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
			convey.So(got.Category, convey.ShouldEqual, model.CategoryTechnical)
		})

		convey.Convey("When analyzing without text", func() {
			analyzeFile = ""
			_, err := execute("analyze")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When grading a YAML description", func() {
			path := writeFile(dir, "desc.yaml", "description: \"\"\n")
			out, err := execute("describe", "--file", path)
			convey.So(err, convey.ShouldBeNil)

			var got model.QualityReport
			convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
			convey.So(got.Score, convey.ShouldEqual, 0)
			convey.So(got.Grade, convey.ShouldEqual, model.GradeF)
		})

		convey.Convey("When searching events from a JSON file", func() {
			path := writeFile(dir, "events.json", `[
				{"id":"e1","title":"Robotics Workshop","description":"Build robots","category":"technical","date":"2099-01-01"},
				{"id":"e2","title":"Dance Night","description":"Salsa and music","category":"cultural","date":"2099-01-02"}
			]`)
			out, err := execute("search", "--events", path, "--query", "robots workshop", "--limit", "5")
			convey.So(err, convey.ShouldBeNil)

			var got []model.ScoredEvent
			convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
			convey.So(len(got), convey.ShouldEqual, 2)
			convey.So(got[0].ID, convey.ShouldEqual, "e1")
			convey.So(got[0].RelevanceScore, convey.ShouldBeGreaterThan, got[1].RelevanceScore)
		})

		convey.Convey("When searching with a malformed date filter", func() {
			path := writeFile(dir, "events.json", `[]`)
			_, err := execute("search", "--events", path, "--query", "x", "--date-from", "01/02/2025")
			convey.So(err, convey.ShouldNotBeNil)
			searchDateFrom = ""
		})

		convey.Convey("When predicting drafts", func() {
			path := writeFile(dir, "drafts.yml", "- title: Hackathon\n  category: technical\n- title: Chess meetup\n  category: sports\n")
			out, err := execute("predict", "--file", path)
			convey.So(err, convey.ShouldBeNil)

			var got []model.SuccessReport
			convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
			convey.So(len(got), convey.ShouldEqual, 2)
		})

		convey.Convey("When estimating popularity by category", func() {
			popularityFile = ""
			out, err := execute("popularity", "--category", "technical")
			convey.So(err, convey.ShouldBeNil)

			var got model.PopularityReport
			convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
			convey.So(got.PopularityScore, convey.ShouldBeGreaterThan, 0)
		})
	})
}
