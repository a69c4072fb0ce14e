package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RemovedConnectionTTL is how long a removed-connection marker keeps a user
// out of the other side's suggestions.
const RemovedConnectionTTL = 30 * 24 * time.Hour

// RemovedConnection marks that userID removed an accepted connection with
// removedUserID. Markers are logically expired after RemovedConnectionTTL
// and swept by a background job.
type RemovedConnection struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	RemovedUserID primitive.ObjectID `bson:"removed_user_id" json:"removed_user_id"`
	RemovedAt     time.Time          `bson:"removed_at" json:"removed_at"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Expired reports whether the marker no longer counts at the given time.
func (m *RemovedConnection) Expired(now time.Time) bool {
	return now.Sub(m.RemovedAt) >= RemovedConnectionTTL
}
