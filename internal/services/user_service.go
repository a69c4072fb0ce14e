package services

import (
	"context"
	"fmt"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/internal/repository"
	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"github.com/anuarbek-t/sociograph/pkg/paginate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles account registration, authentication and profile
// updates.
type UserService struct {
	userRepo *repository.UserRepository
	engine   *paginate.Engine
}

func NewUserService(userRepo *repository.UserRepository, engine *paginate.Engine) *UserService {
	return &UserService{
		userRepo: userRepo,
		engine:   engine,
	}
}

// RegisterUser hashes the password and creates the account with default
// privacy settings.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if user.Email == "" || user.Username == "" || password == "" {
		return nil, apperrors.InvalidArgument("username, email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.HashedPassword = string(hashed)

	if user.Role == "" {
		user.Role = "user"
	}
	if user.ConnectionPrivacy == "" {
		user.ConnectionPrivacy = models.ConnectionPrivacyAnyone
	}
	if user.Privacy == (models.PrivacySettings{}) {
		user.Privacy = models.PrivacySettings{
			LocationName: models.VisibilityPublic,
			Country:      models.VisibilityPublic,
			Profession:   models.VisibilityPublic,
			AgeRange:     models.VisibilityPublic,
		}
	}

	return s.userRepo.CreateUser(ctx, user)
}

// AuthenticateUser verifies credentials and returns the account.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, apperrors.NotFound("user with email %s not found", email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, apperrors.InvalidArgument("invalid credentials")
	}
	return user, nil
}

// GetUser fetches an account; soft-deleted accounts read as absent.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, apperrors.NotFound("user %s not found", id.Hex())
	}
	return user, nil
}

// UpdateProfileInput carries the mutable profile attributes.
type UpdateProfileInput struct {
	FullName     *string `json:"full_name"`
	Avatar       *string `json:"avatar"`
	LocationName *string `json:"location_name"`
	Country      *string `json:"country"`
	Profession   *string `json:"profession"`
	AgeRange     *string `json:"age_range"`
}

// UpdateProfile applies the non-nil fields.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, input UpdateProfileInput) error {
	update := bson.M{}
	set := func(field string, v *string) {
		if v != nil {
			update[field] = *v
		}
	}
	set("full_name", input.FullName)
	set("avatar", input.Avatar)
	set("location_name", input.LocationName)
	set("country", input.Country)
	set("profession", input.Profession)
	set("age_range", input.AgeRange)

	if len(update) == 0 {
		return apperrors.InvalidArgument("no profile fields to update")
	}
	return s.userRepo.UpdateUser(ctx, id, update)
}

// UpdatePrivacy replaces the per-attribute visibility settings and the
// connection-privacy mode.
func (s *UserService) UpdatePrivacy(ctx context.Context, id primitive.ObjectID, privacy models.PrivacySettings, connectionPrivacy string) error {
	for _, v := range []string{privacy.LocationName, privacy.Country, privacy.Profession, privacy.AgeRange} {
		if v != models.VisibilityPublic && v != models.VisibilityPrivate {
			return apperrors.InvalidArgument("visibility must be %q or %q", models.VisibilityPublic, models.VisibilityPrivate)
		}
	}
	if connectionPrivacy != models.ConnectionPrivacyAnyone && connectionPrivacy != models.ConnectionPrivacyFriends {
		return apperrors.InvalidArgument("connection privacy must be %q or %q", models.ConnectionPrivacyAnyone, models.ConnectionPrivacyFriends)
	}

	return s.userRepo.UpdateUser(ctx, id, bson.M{
		"privacy":            privacy,
		"connection_privacy": connectionPrivacy,
	})
}

// DeleteUser soft-deletes the account.
func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.SoftDeleteUser(ctx, id)
}

// UpdateLastActive stamps the account's last-active time.
func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.UpdateLastActive(ctx, id)
}

// ListUsers is the admin view over accounts.
func (s *UserService) ListUsers(ctx context.Context, opts paginate.Options) (*paginate.Result, error) {
	opts.Select = "-hashed_password"
	return s.engine.Find(ctx, repository.CollUsers, bson.M{"is_deleted": false}, opts)
}
