package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Block is a directed edge: blocker blocked blocked. A block in either
// direction vetoes all other relationship creation between the two users.
type Block struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BlockerID primitive.ObjectID `bson:"blocker_id" json:"blocker_id"`
	BlockedID primitive.ObjectID `bson:"blocked_id" json:"blocked_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
