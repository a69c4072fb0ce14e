package services

import (
	"context"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/internal/repository"
	"github.com/anuarbek-t/sociograph/pkg/paginate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const publicUserFields = "username full_name avatar"

// FollowService handles business logic for the directed follow edges.
type FollowService struct {
	followRepo *repository.FollowRepository
	validator  *RelationshipValidator
	engine     *paginate.Engine
}

func NewFollowService(followRepo *repository.FollowRepository, validator *RelationshipValidator, engine *paginate.Engine) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		validator:  validator,
		engine:     engine,
	}
}

// Follow creates the follower → followed edge.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID primitive.ObjectID) (*models.Follow, error) {
	if _, _, err := s.validator.ValidatePair(ctx, followerID, followedID, "follow"); err != nil {
		return nil, err
	}

	follow := &models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	return s.followRepo.CreateFollow(ctx, follow)
}

// Unfollow removes the edge; a missing edge is NotFound.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID primitive.ObjectID) error {
	return s.followRepo.DeleteFollow(ctx, followerID, followedID)
}

// Followers returns a paginated view of who follows userID, with the
// follower populated.
func (s *FollowService) Followers(ctx context.Context, userID primitive.ObjectID, opts paginate.Options) (*paginate.Result, error) {
	opts.Populate = []paginate.Populate{{Field: "follower_id", Select: publicUserFields}}
	return s.engine.Find(ctx, repository.CollFollows, bson.M{"followed_id": userID}, opts)
}

// Following returns a paginated view of who userID follows, with the
// followed user populated.
func (s *FollowService) Following(ctx context.Context, userID primitive.ObjectID, opts paginate.Options) (*paginate.Result, error) {
	opts.Populate = []paginate.Populate{{Field: "followed_id", Select: publicUserFields}}
	return s.engine.Find(ctx, repository.CollFollows, bson.M{"follower_id": userID}, opts)
}

// Counts returns follower and following totals for userID.
func (s *FollowService) Counts(ctx context.Context, userID primitive.ObjectID) (followers, following int64, err error) {
	followers, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
