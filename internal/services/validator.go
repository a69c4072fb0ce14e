package services

import (
	"context"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userFinder interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type blockFinder interface {
	GetBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Block, error)
}

// RelationshipValidator runs the shared precondition checks before any
// edge-creating mutation. It is the single place enforcing the "blocking is
// a global veto" rule, used by follow, connect and group-join alike.
type RelationshipValidator struct {
	users  userFinder
	blocks blockFinder
}

func NewRelationshipValidator(users userFinder, blocks blockFinder) *RelationshipValidator {
	return &RelationshipValidator{
		users:  users,
		blocks: blocks,
	}
}

// ValidatePair checks that the action makes sense between the two users and
// returns both resolved records so callers avoid a second lookup.
func (v *RelationshipValidator) ValidatePair(ctx context.Context, actorID, targetID primitive.ObjectID, action string) (*models.User, *models.User, error) {
	if actorID == targetID {
		return nil, nil, apperrors.InvalidArgument("cannot %s yourself", action)
	}

	actor, err := v.users.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if actor.IsDeleted {
		return nil, nil, apperrors.NotFound("user %s not found", actorID.Hex())
	}

	target, err := v.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}
	if target.IsDeleted {
		return nil, nil, apperrors.NotFound("user %s not found", targetID.Hex())
	}

	block, err := v.blocks.GetBetween(ctx, actorID, targetID)
	if err != nil {
		return nil, nil, err
	}
	if block != nil {
		return nil, nil, apperrors.Conflict("cannot %s: a block exists between these users", action)
	}

	return actor, target, nil
}
