package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewGroupSeedsCreator(t *testing.T) {
	creator := primitive.NewObjectID()
	g := NewGroup(creator, "hikers", "", GroupPrivacyPublic, "Almaty")

	assert.True(t, g.IsAdmin(creator))
	assert.True(t, g.IsMember(creator))
	assert.Equal(t, int64(1), g.ParticipantCount)
}

func TestAddRemoveMemberKeepsCount(t *testing.T) {
	creator := primitive.NewObjectID()
	user := primitive.NewObjectID()
	g := NewGroup(creator, "hikers", "", GroupPrivacyPublic, "")

	require.True(t, g.AddMember(user))
	assert.Equal(t, int64(2), g.ParticipantCount)
	assert.Equal(t, int64(len(g.Members)), g.ParticipantCount)

	// Second add is a no-op.
	assert.False(t, g.AddMember(user))
	assert.Equal(t, int64(2), g.ParticipantCount)

	require.True(t, g.RemoveMember(user))
	assert.Equal(t, int64(1), g.ParticipantCount)
	assert.False(t, g.RemoveMember(user))
}

func TestAddMemberClearsPending(t *testing.T) {
	creator := primitive.NewObjectID()
	user := primitive.NewObjectID()
	g := NewGroup(creator, "hikers", "", GroupPrivacyPrivate, "")

	require.True(t, g.AddPending(user))
	assert.False(t, g.AddPending(user))
	require.True(t, g.AddMember(user))
	assert.False(t, g.IsPending(user))
}

func TestRemoveMemberStripsRoles(t *testing.T) {
	creator := primitive.NewObjectID()
	user := primitive.NewObjectID()
	g := NewGroup(creator, "hikers", "", GroupPrivacyPublic, "")

	require.True(t, g.AddMember(user))
	require.True(t, g.PromoteAdmin(user))
	require.True(t, g.RemoveMember(user))

	assert.False(t, g.IsAdmin(user))
	assert.False(t, g.IsCoLeader(user))
}

func TestElevatedRolesAreExclusive(t *testing.T) {
	creator := primitive.NewObjectID()
	user := primitive.NewObjectID()
	g := NewGroup(creator, "hikers", "", GroupPrivacyPublic, "")
	require.True(t, g.AddMember(user))

	require.True(t, g.PromoteAdmin(user))
	require.True(t, g.PromoteCoLeader(user))
	assert.False(t, g.IsAdmin(user))
	assert.True(t, g.IsCoLeader(user))

	require.True(t, g.PromoteAdmin(user))
	assert.True(t, g.IsAdmin(user))
	assert.False(t, g.IsCoLeader(user))
}

func TestCreatorCannotBeDemoted(t *testing.T) {
	creator := primitive.NewObjectID()
	g := NewGroup(creator, "hikers", "", GroupPrivacyPublic, "")

	assert.False(t, g.PromoteCoLeader(creator))
	assert.False(t, g.Demote(creator))
	assert.True(t, g.IsAdmin(creator))
}

func TestPromoteRequiresMembership(t *testing.T) {
	creator := primitive.NewObjectID()
	outsider := primitive.NewObjectID()
	g := NewGroup(creator, "hikers", "", GroupPrivacyPublic, "")

	assert.False(t, g.PromoteAdmin(outsider))
	assert.False(t, g.PromoteCoLeader(outsider))
}
