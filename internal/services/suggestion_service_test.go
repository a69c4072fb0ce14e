package services

import (
	"context"
	"testing"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/pkg/paginate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPeopleClausesAllPrivate(t *testing.T) {
	u := &models.User{
		LocationName: "Almaty",
		Country:      "KZ",
		Privacy: models.PrivacySettings{
			LocationName: models.VisibilityPrivate,
			Country:      models.VisibilityPrivate,
			Profession:   models.VisibilityPrivate,
			AgeRange:     models.VisibilityPrivate,
		},
	}
	assert.Empty(t, peopleClauses(u))
}

func TestPeopleClausesSkipEmptyValues(t *testing.T) {
	u := &models.User{
		Country: "KZ",
		Privacy: models.PrivacySettings{
			LocationName: models.VisibilityPublic, // value empty, no clause
			Country:      models.VisibilityPublic,
		},
	}

	clauses := peopleClauses(u)
	require.Len(t, clauses, 1)
	assert.Equal(t, "KZ", clauses[0]["country"])
	assert.Equal(t, models.VisibilityPublic, clauses[0]["privacy.country"])
}

func TestPeopleClausesAllPublic(t *testing.T) {
	u := &models.User{
		LocationName: "Almaty",
		Country:      "KZ",
		Profession:   "engineer",
		AgeRange:     "25-34",
		Privacy: models.PrivacySettings{
			LocationName: models.VisibilityPublic,
			Country:      models.VisibilityPublic,
			Profession:   models.VisibilityPublic,
			AgeRange:     models.VisibilityPublic,
		},
	}
	assert.Len(t, peopleClauses(u), 4)
}

// With zero public attributes the flow must return an empty page without
// issuing any store query: every repository on the service is nil here, so
// touching one would panic.
func TestPeopleSuggestionsShortCircuit(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	uf := &fakeUserFinder{users: map[primitive.ObjectID]*models.User{user.ID: user}}
	s := NewSuggestionService(uf, nil, nil, nil, nil, nil)

	result, err := s.PeopleSuggestions(context.Background(), user.ID, paginate.Options{Page: 2, Limit: 5})
	require.NoError(t, err)

	assert.Empty(t, result.Results)
	assert.Equal(t, int64(0), result.TotalResults)
	assert.Equal(t, int64(0), result.TotalPages)
	assert.Equal(t, int64(2), result.Page)
	assert.Equal(t, int64(5), result.Limit)
}

func TestDedupIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	out := dedupIDs([]primitive.ObjectID{a, b, a, a, b})
	assert.Len(t, out, 2)
}

func TestIntersectIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	mutual := intersectIDs(
		[]primitive.ObjectID{a, b, c},
		[]primitive.ObjectID{c, a, a},
	)
	assert.ElementsMatch(t, []primitive.ObjectID{a, c}, mutual)

	assert.Empty(t, intersectIDs([]primitive.ObjectID{a}, []primitive.ObjectID{b}))
	assert.Empty(t, intersectIDs(nil, []primitive.ObjectID{b}))
}
