package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConnectionPairKeySymmetric(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	assert.Equal(t, ConnectionPairKey(a, b), ConnectionPairKey(b, a))
	assert.NotEqual(t, ConnectionPairKey(a, b), ConnectionPairKey(a, primitive.NewObjectID()))
}

func TestConnectionPeer(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := &Connection{SentBy: a, ReceivedBy: b}

	assert.Equal(t, b, c.Peer(a))
	assert.Equal(t, a, c.Peer(b))
	assert.True(t, c.HasEndpoint(a))
	assert.False(t, c.HasEndpoint(primitive.NewObjectID()))
}

func TestRemovedConnectionExpired(t *testing.T) {
	now := time.Now()
	m := &RemovedConnection{RemovedAt: now.Add(-29 * 24 * time.Hour)}
	assert.False(t, m.Expired(now))

	m.RemovedAt = now.Add(-30 * 24 * time.Hour)
	assert.True(t, m.Expired(now))
}
