package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
	// Declined and removed are transient: the operations that produce them
	// delete the edge instead of persisting the status.
	ConnectionStatusDeclined = "declined"
	ConnectionStatusRemoved  = "removed"
)

// Connection is a mutual relationship requiring both-side consent. At most
// one non-terminal edge exists per unordered pair, enforced by a unique
// partial index on PairKey.
type Connection struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SentBy     primitive.ObjectID `bson:"sent_by" json:"sent_by"`
	ReceivedBy primitive.ObjectID `bson:"received_by" json:"received_by"`
	PairKey    string             `bson:"pair_key" json:"-"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// ConnectionPairKey returns the canonical key for an unordered user pair.
func ConnectionPairKey(a, b primitive.ObjectID) string {
	x, y := a.Hex(), b.Hex()
	if strings.Compare(x, y) > 0 {
		x, y = y, x
	}
	return x + ":" + y
}

// Peer returns the other endpoint of the edge relative to userID.
func (c *Connection) Peer(userID primitive.ObjectID) primitive.ObjectID {
	if c.SentBy == userID {
		return c.ReceivedBy
	}
	return c.SentBy
}

// HasEndpoint reports whether userID is one of the edge's two endpoints.
func (c *Connection) HasEndpoint(userID primitive.ObjectID) bool {
	return c.SentBy == userID || c.ReceivedBy == userID
}
