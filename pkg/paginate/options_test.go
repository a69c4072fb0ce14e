package paginate

import (
	"testing"

	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizedDefaults(t *testing.T) {
	opts := Options{}.normalized()
	assert.Equal(t, int64(1), opts.Page)
	assert.Equal(t, int64(DefaultLimit), opts.Limit)
	assert.Equal(t, DefaultSortBy, opts.SortBy)
	assert.Equal(t, int64(0), opts.skip())

	opts = Options{Page: 3, Limit: 25, SortBy: "-name"}.normalized()
	assert.Equal(t, int64(50), opts.skip())
}

func TestSortDoc(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "created_at", Value: int32(1)}}, sortDoc("created_at"))
	assert.Equal(t, bson.D{{Key: "participant_count", Value: int32(-1)}}, sortDoc("-participant_count"))
}

func TestProjectionDocInclusion(t *testing.T) {
	proj, err := projectionDoc("username full_name avatar")
	assert.NoError(t, err)
	assert.Equal(t, bson.D{
		{Key: "username", Value: 1},
		{Key: "full_name", Value: 1},
		{Key: "avatar", Value: 1},
	}, proj)
}

func TestProjectionDocExclusion(t *testing.T) {
	proj, err := projectionDoc("-hashed_password -email")
	assert.NoError(t, err)
	assert.Equal(t, bson.D{
		{Key: "hashed_password", Value: 0},
		{Key: "email", Value: 0},
	}, proj)
}

func TestProjectionDocMixedRejected(t *testing.T) {
	_, err := projectionDoc("username -email")
	assert.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
}

func TestProjectionDocEmpty(t *testing.T) {
	proj, err := projectionDoc("   ")
	assert.NoError(t, err)
	assert.Nil(t, proj)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(3), TotalPages(25, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
}
