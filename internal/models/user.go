package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

const (
	ConnectionPrivacyAnyone  = "anyone"
	ConnectionPrivacyFriends = "friends_of_friends"
)

// PrivacySettings holds per-attribute visibility for the profile fields
// that feed people suggestions.
type PrivacySettings struct {
	LocationName string `bson:"location_name" json:"location_name"`
	Country      string `bson:"country" json:"country"`
	Profession   string `bson:"profession" json:"profession"`
	AgeRange     string `bson:"age_range" json:"age_range"`
}

// User represents a user account.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	FullName       string             `bson:"full_name" json:"full_name"`
	Avatar         string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role           string             `bson:"role" json:"role"`

	LocationName string `bson:"location_name,omitempty" json:"location_name,omitempty"`
	Country      string `bson:"country,omitempty" json:"country,omitempty"`
	Profession   string `bson:"profession,omitempty" json:"profession,omitempty"`
	AgeRange     string `bson:"age_range,omitempty" json:"age_range,omitempty"`

	Privacy           PrivacySettings `bson:"privacy" json:"privacy"`
	ConnectionPrivacy string          `bson:"connection_privacy" json:"connection_privacy"`

	IsDeleted bool `bson:"is_deleted" json:"-"`
	IsBanned  bool `bson:"is_banned" json:"-"`
	IsBlocked bool `bson:"is_blocked" json:"-"`

	LastActiveAt time.Time `bson:"last_active_at,omitempty" json:"last_active_at,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the projection exposed to other users.
type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	FullName string             `json:"full_name"`
	Avatar   string             `json:"avatar,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}
