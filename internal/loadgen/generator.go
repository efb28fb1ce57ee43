package loadgen

import (
	"context"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/pkg/logger"
)

// Phrasings whose category is unambiguous under the default lexicon.
var templates = map[model.Category][]string{
	model.CategoryTechnical: {
		"Please organise a hackathon with coding challenges",
		"Can we have a programming workshop on software testing",
		"I would love an AI and ML session for beginners",
	},
	model.CategoryCultural: {
		"We want a dance and music night",
		"Could the drama society put on a theatre evening",
		"A music festival on the lawn would be amazing",
	},
	model.CategorySports: {
		"A cricket tournament would be great",
		"Please arrange a football league between hostels",
		"Can we get a basketball match this weekend",
	},
	model.CategoryAcademic: {
		"Could we get a guest lecture on research methods",
		"A seminar on thesis writing would help a lot",
		"Please host a lecture series with visiting professors",
	},
	model.CategoryGeneral: {
		"Hello there, how is everyone?",
		"Just wanted to say thanks to the organisers",
	},
}

var categories = []model.Category{
	model.CategoryTechnical,
	model.CategoryCultural,
	model.CategorySports,
	model.CategoryAcademic,
	model.CategoryGeneral,
}

// Generate creates n requests spread over users user ids, cycling through
// the categories so every one is represented.
func Generate(ctx context.Context, n, users int) []Request {
	if users <= 0 {
		users = 1
	}
	userIDs := make([]string, users)
	for i := range userIDs {
		userIDs[i] = "user_" + strconv.Itoa(i)
	}

	out := make([]Request, n)
	for i := range out {
		cat := categories[i%len(categories)]
		texts := templates[cat]
		out[i] = Request{
			RequestID: uuid.NewString(),
			UserID:    userIDs[rand.IntN(users)],
			Text:      texts[rand.IntN(len(texts))],
			Expected:  cat,
		}
	}
	logger.Get().Info(ctx, "generated requests", logger.Int("count", n), logger.Int("users", users))
	return out
}
