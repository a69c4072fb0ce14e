package services

import (
	"context"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/internal/repository"
	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"github.com/anuarbek-t/sociograph/pkg/paginate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockService handles the block edges. Block creation deliberately skips
// the validator's block veto: a user may block someone who already blocked
// them.
type BlockService struct {
	blockRepo *repository.BlockRepository
	userRepo  *repository.UserRepository
	engine    *paginate.Engine
}

func NewBlockService(blockRepo *repository.BlockRepository, userRepo *repository.UserRepository, engine *paginate.Engine) *BlockService {
	return &BlockService{
		blockRepo: blockRepo,
		userRepo:  userRepo,
		engine:    engine,
	}
}

// BlockUser creates the blocker → blocked edge.
func (s *BlockService) BlockUser(ctx context.Context, blockerID, blockedID primitive.ObjectID) (*models.Block, error) {
	if blockerID == blockedID {
		return nil, apperrors.InvalidArgument("cannot block yourself")
	}

	for _, id := range []primitive.ObjectID{blockerID, blockedID} {
		user, err := s.userRepo.GetUserByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user.IsDeleted {
			return nil, apperrors.NotFound("user %s not found", id.Hex())
		}
	}

	block := &models.Block{
		BlockerID: blockerID,
		BlockedID: blockedID,
	}
	return s.blockRepo.CreateBlock(ctx, block)
}

// UnblockUser removes the blocker → blocked edge. After an unblock the pair
// is connectable again.
func (s *BlockService) UnblockUser(ctx context.Context, blockerID, blockedID primitive.ObjectID) error {
	return s.blockRepo.DeleteBlock(ctx, blockerID, blockedID)
}

// IsBlocked reports whether a block exists between the pair in either
// direction.
func (s *BlockService) IsBlocked(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	block, err := s.blockRepo.GetBetween(ctx, a, b)
	if err != nil {
		return false, err
	}
	return block != nil, nil
}

// BlockedUsers returns a paginated view of who userID blocked.
func (s *BlockService) BlockedUsers(ctx context.Context, userID primitive.ObjectID, opts paginate.Options) (*paginate.Result, error) {
	opts.Populate = []paginate.Populate{{Field: "blocked_id", Select: publicUserFields}}
	return s.engine.Find(ctx, repository.CollBlocks, bson.M{"blocker_id": userID}, opts)
}
