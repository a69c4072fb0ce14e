package services

import (
	"context"
	"testing"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserFinder struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeUserFinder) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user %s not found", id.Hex())
	}
	return user, nil
}

type fakeBlockFinder struct {
	blocks []*models.Block
}

func (f *fakeBlockFinder) GetBetween(_ context.Context, a, b primitive.ObjectID) (*models.Block, error) {
	for _, blk := range f.blocks {
		if (blk.BlockerID == a && blk.BlockedID == b) || (blk.BlockerID == b && blk.BlockedID == a) {
			return blk, nil
		}
	}
	return nil, nil
}

func newTestValidator(users ...*models.User) (*RelationshipValidator, *fakeBlockFinder) {
	uf := &fakeUserFinder{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		uf.users[u.ID] = u
	}
	bf := &fakeBlockFinder{}
	return NewRelationshipValidator(uf, bf), bf
}

func TestValidatePairSelfAction(t *testing.T) {
	id := primitive.NewObjectID()
	v, _ := newTestValidator(&models.User{ID: id})

	_, _, err := v.ValidatePair(context.Background(), id, id, "follow")
	assert.True(t, apperrors.IsInvalidArgument(err))
}

func TestValidatePairMissingUser(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID()}
	v, _ := newTestValidator(actor)

	_, _, err := v.ValidatePair(context.Background(), actor.ID, primitive.NewObjectID(), "follow")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestValidatePairSoftDeletedUser(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID()}
	target := &models.User{ID: primitive.NewObjectID(), IsDeleted: true}
	v, _ := newTestValidator(actor, target)

	_, _, err := v.ValidatePair(context.Background(), actor.ID, target.ID, "connect with")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestValidatePairBlockVetoEitherDirection(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID()}
	target := &models.User{ID: primitive.NewObjectID()}

	// Block initiated by the actor.
	v, bf := newTestValidator(actor, target)
	bf.blocks = []*models.Block{{BlockerID: actor.ID, BlockedID: target.ID}}
	_, _, err := v.ValidatePair(context.Background(), actor.ID, target.ID, "connect with")
	assert.True(t, apperrors.IsConflict(err))

	// Block initiated by the target vetoes just the same.
	v, bf = newTestValidator(actor, target)
	bf.blocks = []*models.Block{{BlockerID: target.ID, BlockedID: actor.ID}}
	_, _, err = v.ValidatePair(context.Background(), actor.ID, target.ID, "connect with")
	assert.True(t, apperrors.IsConflict(err))
}

func TestValidatePairReturnsBothUsers(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID(), Username: "aida"}
	target := &models.User{ID: primitive.NewObjectID(), Username: "bek"}
	v, _ := newTestValidator(actor, target)

	gotActor, gotTarget, err := v.ValidatePair(context.Background(), actor.ID, target.ID, "follow")
	require.NoError(t, err)
	assert.Equal(t, "aida", gotActor.Username)
	assert.Equal(t, "bek", gotTarget.Username)
}
