package quality_test

import (
	"strings"
	"testing"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/quality"
	. "github.com/smartystreets/goconvey/convey"
)

// plain mentions none of the rubric keywords and is 186 characters long.
const plain = "Come along for a friendly evening of board games and snacks with fellow students. " +
	"Bring your own favourite games or try new ones from our large shelf. " +
	"Tea and coffee are on us all night."

func TestScoreDescriptionEmpty(t *testing.T) {
	Convey("Given an empty description", t, func() {
		r := quality.New().ScoreDescription(quality.Input{Description: "", Title: "Anything"})

		So(r.Score, ShouldEqual, 0)
		So(r.Grade, ShouldEqual, model.GradeF)
		So(r.Suggestions, ShouldResemble, []string{"Add a description to help attendees understand your event"})
		So(r.MissingElements, ShouldResemble, model.AllElements())
		So(r.EnhancedDescription, ShouldBeNil)
		So(r.Length, ShouldEqual, 0)
	})

	Convey("Given a whitespace-only description", t, func() {
		r := quality.New().ScoreDescription(quality.Input{Description: "   \n\t", Title: "Anything"})

		Convey("Then it is graded as a very short text", func() {
			So(r.Score, ShouldEqual, 0)
			So(r.Grade, ShouldEqual, model.GradeF)
			So(r.Length, ShouldEqual, 5)
			So(r.SentenceCount, ShouldEqual, 0)
			So(r.MissingElements, ShouldHaveLength, 5)
			So(r.Suggestions[0], ShouldContainSubstring, "too short")
			So(r.EnhancedDescription, ShouldNotBeNil)
			So(*r.EnhancedDescription, ShouldStartWith, "This event is about anything.")
		})
	})
}

func TestScoreDescriptionRubric(t *testing.T) {
	Convey("Given a description with no element keywords", t, func() {
		s := quality.New()
		r := s.ScoreDescription(quality.Input{Description: plain})

		Convey("Then every penalty applies except length and readability", func() {
			So(r.Length, ShouldEqual, 186)
			So(r.SentenceCount, ShouldEqual, 3)
			So(r.Score, ShouldEqual, 20)
			So(r.Grade, ShouldEqual, model.GradeF)
			So(r.MissingElements, ShouldResemble, model.AllElements())
			So(r.Strengths, ShouldContain, "Good description length (186 characters)")
		})

		Convey("Then only the first five suggestions are kept", func() {
			So(len(r.Suggestions), ShouldEqual, 5)
			So(r.Suggestions[0], ShouldEqual, "Mention what the event is about")
			So(r.Suggestions[4], ShouldEqual, "Explain why attendees should come (benefits, learning outcomes)")
		})
	})

	Convey("Given structured date and venue", t, func() {
		s := quality.New()
		r := s.ScoreDescription(quality.Input{Description: plain, Date: "2026-11-02", Venue: "Hall 3"})

		Convey("Then when and where still cost points but are not suggested", func() {
			So(r.Score, ShouldEqual, 20)
			So(r.Suggestions, ShouldNotContain, "Include when the event takes place (date/time)")
			So(r.Suggestions, ShouldNotContain, "Mention where the event will be held (venue/location)")
		})
	})

	Convey("Given a short single-sentence description", t, func() {
		s := quality.New()
		r := s.ScoreDescription(quality.Input{Description: "Join our coding workshop"})

		Convey("Then length and readability penalties stack", func() {
			// 100 -30 short -15 when -15 where -10 who -10 why -5 register -10 sentences
			So(r.Score, ShouldEqual, 5)
			So(r.Suggestions[0], ShouldStartWith, "Description is too short (24 chars)")
			So(r.SentenceCount, ShouldEqual, 1)
		})
	})

	Convey("Given a complete description", t, func() {
		s := quality.New()
		desc := "Join the Coding Club for a hands-on workshop about Go. " +
			"The session starts at 10am on the listed date in the main venue. " +
			"Our speaker will help you learn practical skills. Register online to save a seat."
		r := s.ScoreDescription(quality.Input{Description: desc})

		So(r.Score, ShouldEqual, 100)
		So(r.Grade, ShouldEqual, model.GradeA)
		So(r.MissingElements, ShouldBeEmpty)
		So(r.Suggestions, ShouldBeEmpty)
		So(r.Strengths, ShouldContain, "Includes engaging language")

		Convey("Then no rewrite is proposed", func() {
			So(r.EnhancedDescription, ShouldBeNil)
		})
	})
}

func TestScoreDescriptionMonotonic(t *testing.T) {
	Convey("Given element keywords added one at a time", t, func() {
		s := quality.New()
		additions := []string{" Workshop included.", " Date set.", " Venue ready.", " Speaker invited.", " Benefit guaranteed."}
		want := []int{40, 55, 70, 80, 90}

		desc := plain
		prev := s.ScoreDescription(quality.Input{Description: desc}).Score
		for i, add := range additions {
			desc += add
			cur := s.ScoreDescription(quality.Input{Description: desc}).Score

			So(cur, ShouldBeGreaterThanOrEqualTo, prev)
			So(cur, ShouldEqual, want[i])
			prev = cur
		}
	})
}

func TestEnhancedDescription(t *testing.T) {
	Convey("Given missing elements and structured fields", t, func() {
		s := quality.New()
		r := s.ScoreDescription(quality.Input{
			Description: plain,
			Title:       "Board Game Night",
			Category:    "cultural",
			Date:        "2026-11-02",
			Venue:       "Hall 3",
		})

		Convey("Then synthesized sentences and a call to action are appended", func() {
			So(r.EnhancedDescription, ShouldNotBeNil)
			e := *r.EnhancedDescription
			So(e, ShouldStartWith, plain+" This cultural is about board game night.")
			So(e, ShouldContainSubstring, "The event will take place on 2026-11-02.")
			So(e, ShouldContainSubstring, "Location: Hall 3.")
			So(e, ShouldContainSubstring, "Don't miss this opportunity to learn, network, and grow!")
			So(e, ShouldEndWith, "Register now to secure your spot!")
		})
	})

	Convey("Given a long description", t, func() {
		s := quality.New()
		long := strings.Repeat("Tea and board games all night. ", 20)
		r := s.ScoreDescription(quality.Input{Description: long})

		Convey("Then the rewrite is capped at 500 characters", func() {
			So(r.EnhancedDescription, ShouldNotBeNil)
			So(len([]rune(*r.EnhancedDescription)), ShouldEqual, 500)
		})
	})
}

func TestGradeFor(t *testing.T) {
	Convey("Given grade boundaries", t, func() {
		So(quality.GradeFor(90), ShouldEqual, model.GradeA)
		So(quality.GradeFor(89), ShouldEqual, model.GradeB)
		So(quality.GradeFor(80), ShouldEqual, model.GradeB)
		So(quality.GradeFor(70), ShouldEqual, model.GradeC)
		So(quality.GradeFor(60), ShouldEqual, model.GradeD)
		So(quality.GradeFor(59), ShouldEqual, model.GradeF)
	})
}
