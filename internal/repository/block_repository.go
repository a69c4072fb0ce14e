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

// BlockRepository handles the directed block edges.
type BlockRepository struct {
	collection *mongo.Collection
}

func NewBlockRepository(db *mongo.Database) *BlockRepository {
	return &BlockRepository{
		collection: db.Collection(CollBlocks),
	}
}

// CreateBlock inserts a block edge; a same-direction duplicate is a Conflict.
func (r *BlockRepository) CreateBlock(ctx context.Context, block *models.Block) (*models.Block, error) {
	block.CreatedAt = time.Now()
	block.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, block)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("user is already blocked")
		}
		return nil, fmt.Errorf("failed to insert block: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	block.ID = insertedID

	logrus.WithFields(logrus.Fields{
		"blockerID": block.BlockerID.Hex(),
		"blockedID": block.BlockedID.Hex(),
	}).Info("Block edge created")
	return block, nil
}

// DeleteBlock removes a same-direction block edge.
func (r *BlockRepository) DeleteBlock(ctx context.Context, blockerID, blockedID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"blocker_id": blockerID, "blocked_id": blockedID})
	if err != nil {
		return fmt.Errorf("failed to delete block: %v", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("no block to remove")
	}

	logrus.WithFields(logrus.Fields{
		"blockerID": blockerID.Hex(),
		"blockedID": blockedID.Hex(),
	}).Info("Block edge removed")
	return nil
}

// GetBetween returns the block edge between two users in either direction,
// or nil when none exists.
func (r *BlockRepository) GetBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Block, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"blocker_id": a, "blocked_id": b},
			{"blocker_id": b, "blocked_id": a},
		},
	}

	var block models.Block
	err := r.collection.FindOne(ctx, filter).Decode(&block)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find block between users: %v", err)
	}
	return &block, nil
}

// BlockedPeerIDs returns every user with a block edge to or from userID.
func (r *BlockRepository) BlockedPeerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"blocker_id": userID},
			{"blocked_id": userID},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve blocks: %v", err)
	}
	defer cursor.Close(ctx)

	var peers []primitive.ObjectID
	for cursor.Next(ctx) {
		var block models.Block
		if err := cursor.Decode(&block); err != nil {
			return nil, err
		}
		if block.BlockerID == userID {
			peers = append(peers, block.BlockedID)
		} else {
			peers = append(peers, block.BlockerID)
		}
	}
	return peers, nil
}
