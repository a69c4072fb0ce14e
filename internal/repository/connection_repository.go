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

// ConnectionRepository handles the mutual connection edges.
type ConnectionRepository struct {
	collection *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{
		collection: db.Collection(CollConnections),
	}
}

// CreateConnection inserts a pending edge for the pair.
func (r *ConnectionRepository) CreateConnection(ctx context.Context, conn *models.Connection) (*models.Connection, error) {
	conn.PairKey = models.ConnectionPairKey(conn.SentBy, conn.ReceivedBy)
	conn.Status = models.ConnectionStatusPending
	conn.CreatedAt = time.Now()
	conn.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, conn)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("a connection between these users already exists")
		}
		return nil, fmt.Errorf("failed to insert connection: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	conn.ID = insertedID

	logrus.WithField("connectionID", conn.ID.Hex()).Info("Connection request created")
	return conn, nil
}

// GetConnectionByID fetches an edge by its ID.
func (r *ConnectionRepository) GetConnectionByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&conn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("connection request %s not found", id.Hex())
		}
		return nil, fmt.Errorf("failed to find connection: %v", err)
	}
	return &conn, nil
}

// GetConnectionBetween returns the non-terminal edge for an unordered pair,
// or nil when none exists.
func (r *ConnectionRepository) GetConnectionBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	filter := bson.M{
		"pair_key": models.ConnectionPairKey(a, b),
		"status":   bson.M{"$in": []string{models.ConnectionStatusPending, models.ConnectionStatusAccepted}},
	}

	var conn models.Connection
	err := r.collection.FindOne(ctx, filter).Decode(&conn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find connection between users: %v", err)
	}
	return &conn, nil
}

// GetAcceptedBetween returns the accepted edge for an unordered pair.
func (r *ConnectionRepository) GetAcceptedBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	filter := bson.M{
		"pair_key": models.ConnectionPairKey(a, b),
		"status":   models.ConnectionStatusAccepted,
	}

	var conn models.Connection
	err := r.collection.FindOne(ctx, filter).Decode(&conn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("no accepted connection between these users")
		}
		return nil, fmt.Errorf("failed to find accepted connection: %v", err)
	}
	return &conn, nil
}

// UpdateStatus sets the status on an edge.
func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update connection status: %v", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("connection request %s not found", id.Hex())
	}
	return nil
}

// DeleteConnection hard-deletes an edge.
func (r *ConnectionRepository) DeleteConnection(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete connection: %v", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("connection request %s not found", id.Hex())
	}
	return nil
}

// AcceptedPeerIDs returns the ids of every user connected to userID.
func (r *ConnectionRepository) AcceptedPeerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"status": models.ConnectionStatusAccepted,
		"$or": []bson.M{
			{"sent_by": userID},
			{"received_by": userID},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accepted connections: %v", err)
	}
	defer cursor.Close(ctx)

	var peers []primitive.ObjectID
	for cursor.Next(ctx) {
		var conn models.Connection
		if err := cursor.Decode(&conn); err != nil {
			return nil, err
		}
		peers = append(peers, conn.Peer(userID))
	}
	return peers, nil
}

// PendingSentReceiverIDs returns receivers of pending requests userID sent
// since the given time.
func (r *ConnectionRepository) PendingSentReceiverIDs(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"sent_by":    userID,
		"status":     models.ConnectionStatusPending,
		"created_at": bson.M{"$gte": since},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pending requests: %v", err)
	}
	defer cursor.Close(ctx)

	var receivers []primitive.ObjectID
	for cursor.Next(ctx) {
		var conn models.Connection
		if err := cursor.Decode(&conn); err != nil {
			return nil, err
		}
		receivers = append(receivers, conn.ReceivedBy)
	}
	return receivers, nil
}
