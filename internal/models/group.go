package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GroupPrivacyPublic  = "public"
	GroupPrivacyPrivate = "private"
)

// Group owns its role sets as embedded collections. Invariants maintained by
// the methods below: the creator is always an admin and a member,
// ParticipantCount always equals len(Members), admins and co-leaders are
// layered over members, a user holds at most one of the two elevated roles,
// and PendingMembers is disjoint from Members.
type Group struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatorID   primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Privacy     string             `bson:"privacy" json:"privacy"`

	LocationName string `bson:"location_name,omitempty" json:"location_name,omitempty"`

	Admins         []primitive.ObjectID `bson:"admins" json:"admins"`
	CoLeaders      []primitive.ObjectID `bson:"co_leaders" json:"co_leaders"`
	Members        []primitive.ObjectID `bson:"members" json:"members"`
	PendingMembers []primitive.ObjectID `bson:"pending_members" json:"pending_members"`

	ParticipantCount int64 `bson:"participant_count" json:"participant_count"`
	IsDeleted        bool  `bson:"is_deleted" json:"-"`

	// Version guards concurrent role mutations; saves assert it.
	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NewGroup seeds the creator into the admin and member sets.
func NewGroup(creatorID primitive.ObjectID, name, description, privacy, locationName string) *Group {
	return &Group{
		CreatorID:        creatorID,
		Name:             name,
		Description:      description,
		Privacy:          privacy,
		LocationName:     locationName,
		Admins:           []primitive.ObjectID{creatorID},
		CoLeaders:        []primitive.ObjectID{},
		Members:          []primitive.ObjectID{creatorID},
		PendingMembers:   []primitive.ObjectID{},
		ParticipantCount: 1,
	}
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (g *Group) IsMember(id primitive.ObjectID) bool   { return containsID(g.Members, id) }
func (g *Group) IsAdmin(id primitive.ObjectID) bool    { return containsID(g.Admins, id) }
func (g *Group) IsCoLeader(id primitive.ObjectID) bool { return containsID(g.CoLeaders, id) }
func (g *Group) IsPending(id primitive.ObjectID) bool  { return containsID(g.PendingMembers, id) }

// CanModerate reports whether id may act on membership requests and members.
func (g *Group) CanModerate(id primitive.ObjectID) bool {
	return g.IsAdmin(id) || g.IsCoLeader(id)
}

// AddMember adds id to the member set, clearing any pending entry, and bumps
// the participant count. Returns false when id is already a member.
func (g *Group) AddMember(id primitive.ObjectID) bool {
	if g.IsMember(id) {
		return false
	}
	g.PendingMembers = removeID(g.PendingMembers, id)
	g.Members = append(g.Members, id)
	g.ParticipantCount = int64(len(g.Members))
	return true
}

// RemoveMember strips id from every role set and decrements the count.
// Returns false when id is not a member.
func (g *Group) RemoveMember(id primitive.ObjectID) bool {
	if !g.IsMember(id) {
		return false
	}
	g.Members = removeID(g.Members, id)
	g.Admins = removeID(g.Admins, id)
	g.CoLeaders = removeID(g.CoLeaders, id)
	g.ParticipantCount = int64(len(g.Members))
	return true
}

// AddPending queues id for approval. Returns false when id is already a
// member or already pending.
func (g *Group) AddPending(id primitive.ObjectID) bool {
	if g.IsMember(id) || g.IsPending(id) {
		return false
	}
	g.PendingMembers = append(g.PendingMembers, id)
	return true
}

// RemovePending drops a pending request. Returns false when none exists.
func (g *Group) RemovePending(id primitive.ObjectID) bool {
	if !g.IsPending(id) {
		return false
	}
	g.PendingMembers = removeID(g.PendingMembers, id)
	return true
}

// PromoteAdmin makes a member an admin, dropping any co-leader role.
// Returns false when id is not a member.
func (g *Group) PromoteAdmin(id primitive.ObjectID) bool {
	if !g.IsMember(id) {
		return false
	}
	g.CoLeaders = removeID(g.CoLeaders, id)
	if !g.IsAdmin(id) {
		g.Admins = append(g.Admins, id)
	}
	return true
}

// PromoteCoLeader makes a member a co-leader. The creator keeps the admin
// role and cannot be moved. Returns false when id is not a member.
func (g *Group) PromoteCoLeader(id primitive.ObjectID) bool {
	if !g.IsMember(id) || id == g.CreatorID {
		return false
	}
	g.Admins = removeID(g.Admins, id)
	if !g.IsCoLeader(id) {
		g.CoLeaders = append(g.CoLeaders, id)
	}
	return true
}

// Demote strips elevated roles from id, leaving plain membership. The
// creator cannot be demoted. Returns false when nothing changed.
func (g *Group) Demote(id primitive.ObjectID) bool {
	if id == g.CreatorID {
		return false
	}
	if !g.IsAdmin(id) && !g.IsCoLeader(id) {
		return false
	}
	g.Admins = removeID(g.Admins, id)
	g.CoLeaders = removeID(g.CoLeaders, id)
	return true
}
