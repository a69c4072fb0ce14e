package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FollowRepository handles the directed follow edges.
type FollowRepository struct {
	collection *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{
		collection: db.Collection(CollFollows),
	}
}

// CreateFollow inserts a follow edge. The unique pair index turns a repeat
// follow into a Conflict.
func (r *FollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) (*models.Follow, error) {
	follow.CreatedAt = time.Now()
	follow.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, follow)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("already following this user")
		}
		return nil, fmt.Errorf("failed to insert follow: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	follow.ID = insertedID

	logrus.WithFields(logrus.Fields{
		"followerID": follow.FollowerID.Hex(),
		"followedID": follow.FollowedID.Hex(),
	}).Info("Follow edge created")
	return follow, nil
}

// GetFollow fetches the edge for a directed pair.
func (r *FollowRepository) GetFollow(ctx context.Context, followerID, followedID primitive.ObjectID) (*models.Follow, error) {
	var follow models.Follow
	err := r.collection.FindOne(ctx, bson.M{"follower_id": followerID, "followed_id": followedID}).Decode(&follow)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("not following this user")
		}
		return nil, fmt.Errorf("failed to find follow: %v", err)
	}
	return &follow, nil
}

// DeleteFollow removes the edge for a directed pair.
func (r *FollowRepository) DeleteFollow(ctx context.Context, followerID, followedID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"follower_id": followerID, "followed_id": followedID})
	if err != nil {
		return fmt.Errorf("failed to delete follow: %v", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("not following this user")
	}

	logrus.WithFields(logrus.Fields{
		"followerID": followerID.Hex(),
		"followedID": followedID.Hex(),
	}).Info("Follow edge removed")
	return nil
}

// CountFollowers returns how many users follow userID.
func (r *FollowRepository) CountFollowers(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"followed_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %v", err)
	}
	return count, nil
}

// CountFollowing returns how many users userID follows.
func (r *FollowRepository) CountFollowing(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"follower_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %v", err)
	}
	return count, nil
}
