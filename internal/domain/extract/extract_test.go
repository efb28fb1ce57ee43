package extract_test

import (
	"testing"

	"github.com/okian/eventrank/internal/domain/extract"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEventType(t *testing.T) {
	Convey("Given the default extractor", t, func() {
		e := extract.New()

		Convey("When a cue word introduces the phrase", func() {
			Convey("Then the phrase up to the sentence end is returned", func() {
				So(e.EventType("I want a hackathon event. Thanks!"), ShouldEqual, "hackathon event")
				So(e.EventType("We are looking for the robotics expo!"), ShouldEqual, "robotics expo")
			})

			Convey("Then filler words are stripped", func() {
				So(e.EventType("We need workshop on cloud"), ShouldEqual, "workshop  cloud")
			})
		})

		Convey("When the cue phrase is too short", func() {
			Convey("Then the next rule gets a chance", func() {
				// "need it." leaves "it" after the cue, so the event-noun rule decides.
				So(e.EventType("We need it. A big music festival please"), ShouldEqual, "big music")
			})
		})

		Convey("When only an event noun is present", func() {
			So(e.EventType("Organise a photography competition soon"), ShouldEqual, "photography")
		})

		Convey("When no pattern matches", func() {
			Convey("Then the first five words are returned lower-cased", func() {
				So(e.EventType("Hello There Friends Of The Campus Today"), ShouldEqual, "hello there friends of the")
				So(e.EventType("Short note"), ShouldEqual, "short note")
			})
		})
	})

	Convey("Given a custom chain", t, func() {
		e := extract.New(extract.WithEventTypeRules(
			extract.RegexRule("hash", `#(\w+)`, false, nil, 0),
			extract.FirstWordsRule(2),
		))

		So(e.EventType("join #quiz tonight"), ShouldEqual, "quiz")
		So(e.EventType("no tags in here"), ShouldEqual, "no tags")
	})
}

func TestGroupName(t *testing.T) {
	Convey("Given the default extractor", t, func() {
		e := extract.New()

		Convey("When a capitalized name precedes a group noun", func() {
			name, ok := e.GroupName("This request is from Robotics Enthusiasts club members")

			Convey("Then the capitalized phrase is returned", func() {
				So(ok, ShouldBeTrue)
				So(name, ShouldEqual, "Robotics Enthusiasts")
			})
		})

		Convey("When the group noun comes first", func() {
			name, ok := e.GroupName("the society Quizzers would host")

			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "Quizzers")
		})

		Convey("When only a well-known name is mentioned", func() {
			name, ok := e.GroupName("hi, the ai club wants a talk")

			Convey("Then it is title-cased", func() {
				So(ok, ShouldBeTrue)
				So(name, ShouldEqual, "Ai Club")
			})
		})

		Convey("When no group is mentioned", func() {
			_, ok := e.GroupName("please organise a cricket match")

			So(ok, ShouldBeFalse)
		})
	})
}

func TestHelpers(t *testing.T) {
	Convey("Given the text helpers", t, func() {
		So(extract.TitleCase("cyber security club"), ShouldEqual, "Cyber Security Club")
		So(extract.TitleCase("MUSIC society"), ShouldEqual, "Music Society")
		So(extract.StripFillers("the art of war"), ShouldEqual, "art  war")
	})
}
