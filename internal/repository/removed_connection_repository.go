package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/anuarbek-t/sociograph/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RemovedConnectionRepository handles the removed-connection markers that
// keep recently removed peers out of suggestions.
type RemovedConnectionRepository struct {
	collection *mongo.Collection
}

func NewRemovedConnectionRepository(db *mongo.Database) *RemovedConnectionRepository {
	return &RemovedConnectionRepository{
		collection: db.Collection(CollRemovedConnections),
	}
}

// CreateMarker records that userID removed removedUserID.
func (r *RemovedConnectionRepository) CreateMarker(ctx context.Context, userID, removedUserID primitive.ObjectID, removedAt time.Time) error {
	marker := &models.RemovedConnection{
		UserID:        userID,
		RemovedUserID: removedUserID,
		RemovedAt:     removedAt,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := r.collection.InsertOne(ctx, marker); err != nil {
		return fmt.Errorf("failed to insert removed-connection marker: %v", err)
	}
	return nil
}

// ActivePeerIDs returns the non-expired removed peers for userID.
func (r *RemovedConnectionRepository) ActivePeerIDs(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"user_id":    userID,
		"removed_at": bson.M{"$gt": now.Add(-models.RemovedConnectionTTL)},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve removed-connection markers: %v", err)
	}
	defer cursor.Close(ctx)

	var peers []primitive.ObjectID
	for cursor.Next(ctx) {
		var marker models.RemovedConnection
		if err := cursor.Decode(&marker); err != nil {
			return nil, err
		}
		peers = append(peers, marker.RemovedUserID)
	}
	return peers, nil
}

// DeleteExpired hard-deletes markers past their TTL and returns how many
// were removed.
func (r *RemovedConnectionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{"removed_at": bson.M{"$lte": now.Add(-models.RemovedConnectionTTL)}}

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired markers: %v", err)
	}
	return result.DeletedCount, nil
}
