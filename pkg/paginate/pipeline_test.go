package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPipelineAppendDoesNotMutateBase(t *testing.T) {
	base := Pipeline{}.Append(Match(bson.M{"status": "accepted"}))
	require.Len(t, base, 1)

	countBranch := base.Append(bson.D{{Key: "$count", Value: "totalResults"}})
	resultsBranch := base.Append(
		bson.D{{Key: "$skip", Value: int64(10)}},
		bson.D{{Key: "$limit", Value: int64(10)}},
	)

	assert.Len(t, base, 1)
	assert.Len(t, countBranch, 2)
	assert.Len(t, resultsBranch, 3)

	// Branches derived from the same base must not share stages.
	assert.Equal(t, "$count", countBranch[1][0].Key)
	assert.Equal(t, "$skip", resultsBranch[1][0].Key)
}

func TestPipelineAppendCopiesBackingArray(t *testing.T) {
	base := make(Pipeline, 1, 8)
	base[0] = Match(bson.M{"is_deleted": false})

	// Two appends onto a base with spare capacity must not clobber each
	// other through a shared backing array.
	a := base.Append(bson.D{{Key: "$count", Value: "totalResults"}})
	b := base.Append(bson.D{{Key: "$limit", Value: int64(5)}})

	assert.Equal(t, "$count", a[1][0].Key)
	assert.Equal(t, "$limit", b[1][0].Key)
}

func TestLookupStages(t *testing.T) {
	e := NewEngine(nil)
	stages, err := e.lookupStages(Populate{Field: "sent_by", Select: "username avatar"})
	require.NoError(t, err)
	require.Len(t, stages, 2)

	lookup := stages[0][0].Value.(bson.M)
	assert.Equal(t, "users", lookup["from"])
	assert.Equal(t, "sent_by", lookup["as"])

	unwind := stages[1][0].Value.(bson.M)
	assert.Equal(t, "$sent_by", unwind["path"])
	assert.Equal(t, true, unwind["preserveNullAndEmptyArrays"])
}

func TestLookupStagesUnknownField(t *testing.T) {
	e := NewEngine(nil)
	_, err := e.lookupStages(Populate{Field: "mystery_ref"})
	assert.Error(t, err)
}

func TestRegisterLookup(t *testing.T) {
	e := NewEngine(nil)
	e.RegisterLookup("group_id", "groups")
	target, err := e.lookupTarget("group_id")
	require.NoError(t, err)
	assert.Equal(t, "groups", target)
}
