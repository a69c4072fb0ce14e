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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GroupRepository handles database operations related to groups.
type GroupRepository struct {
	collection *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{
		collection: db.Collection(CollGroups),
	}
}

// CreateGroup inserts a new group.
func (r *GroupRepository) CreateGroup(ctx context.Context, group *models.Group) (*models.Group, error) {
	group.CreatedAt = time.Now()
	group.UpdatedAt = time.Now()
	group.Version = 1

	result, err := r.collection.InsertOne(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("failed to insert group: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	group.ID = insertedID

	logrus.WithField("groupID", group.ID.Hex()).Info("Group created successfully")
	return group, nil
}

// GetGroupByID fetches a group by its ID.
func (r *GroupRepository) GetGroupByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var group models.Group
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("group %s not found", id.Hex())
		}
		return nil, fmt.Errorf("failed to find group: %v", err)
	}
	return &group, nil
}

// SaveGroup persists role-set mutations under an optimistic version check.
// A concurrent writer that got there first turns the save into a Conflict.
func (r *GroupRepository) SaveGroup(ctx context.Context, group *models.Group) error {
	filter := bson.M{"_id": group.ID, "version": group.Version}
	update := bson.M{
		"$set": bson.M{
			"name":              group.Name,
			"description":       group.Description,
			"privacy":           group.Privacy,
			"location_name":     group.LocationName,
			"admins":            group.Admins,
			"co_leaders":        group.CoLeaders,
			"members":           group.Members,
			"pending_members":   group.PendingMembers,
			"participant_count": group.ParticipantCount,
			"is_deleted":        group.IsDeleted,
			"updated_at":        time.Now(),
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to save group: %v", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.Conflict("group %s was modified concurrently, retry the operation", group.ID.Hex())
	}

	group.Version++
	logrus.WithField("groupID", group.ID.Hex()).Info("Group saved successfully")
	return nil
}

// GroupIDsWithUser returns ids of groups where userID is a member or has a
// pending request.
func (r *GroupRepository) GroupIDsWithUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"members": userID},
			{"pending_members": userID},
		},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user groups: %v", err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// FindPage runs a direct limited/skipped query and returns the page together
// with the total match count.
func (r *GroupRepository) FindPage(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.Group, int64, error) {
	findOpts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query groups: %v", err)
	}
	defer cursor.Close(ctx)

	groups := []models.Group{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, 0, fmt.Errorf("failed to decode groups: %v", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %v", err)
	}
	return groups, total, nil
}
