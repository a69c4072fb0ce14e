package services

import (
	"context"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/internal/repository"
	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"github.com/anuarbek-t/sociograph/pkg/paginate"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateGroupInput is the caller-supplied part of a new group.
type CreateGroupInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Privacy      string `json:"privacy"`
	LocationName string `json:"location_name"`
}

// GroupService handles group lifecycle and role mutations. Every mutation
// reads the document, mutates the role sets in memory and saves under the
// repository's optimistic version check.
type GroupService struct {
	groupRepo *repository.GroupRepository
	validator *RelationshipValidator
	engine    *paginate.Engine
}

func NewGroupService(groupRepo *repository.GroupRepository, validator *RelationshipValidator, engine *paginate.Engine) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		validator: validator,
		engine:    engine,
	}
}

// CreateGroup creates a group with the creator seeded as admin and member.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID primitive.ObjectID, input CreateGroupInput) (*models.Group, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidArgument("group name is required")
	}
	if input.Privacy == "" {
		input.Privacy = models.GroupPrivacyPublic
	}
	if input.Privacy != models.GroupPrivacyPublic && input.Privacy != models.GroupPrivacyPrivate {
		return nil, apperrors.InvalidArgument("privacy must be %q or %q", models.GroupPrivacyPublic, models.GroupPrivacyPrivate)
	}

	group := models.NewGroup(creatorID, input.Name, input.Description, input.Privacy, input.LocationName)
	return s.groupRepo.CreateGroup(ctx, group)
}

// GetGroup fetches a group, hiding soft-deleted ones.
func (s *GroupService) GetGroup(ctx context.Context, groupID primitive.ObjectID) (*models.Group, error) {
	group, err := s.groupRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.IsDeleted {
		return nil, apperrors.NotFound("group %s not found", groupID.Hex())
	}
	return group, nil
}

// JoinGroup adds the user to a public group, or queues them for a private
// one. The block veto against the group's creator applies.
func (s *GroupService) JoinGroup(ctx context.Context, userID, groupID primitive.ObjectID) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if group.IsMember(userID) {
		return nil, apperrors.Conflict("already a member of this group")
	}
	if group.IsPending(userID) {
		return nil, apperrors.Conflict("membership request already pending")
	}

	if _, _, err := s.validator.ValidatePair(ctx, userID, group.CreatorID, "join a group created by"); err != nil {
		return nil, err
	}

	if group.Privacy == models.GroupPrivacyPublic {
		group.AddMember(userID)
	} else {
		group.AddPending(userID)
	}

	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ApprovePending moves a pending user into the member set.
func (s *GroupService) ApprovePending(ctx context.Context, actorID, groupID, userID primitive.ObjectID) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.CanModerate(actorID) {
		return nil, apperrors.Forbidden("only admins and co-leaders can approve membership requests")
	}
	if !group.IsPending(userID) {
		return nil, apperrors.NotFound("no pending request for user %s", userID.Hex())
	}

	group.AddMember(userID)
	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// RejectPending drops a pending membership request.
func (s *GroupService) RejectPending(ctx context.Context, actorID, groupID, userID primitive.ObjectID) error {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.CanModerate(actorID) {
		return apperrors.Forbidden("only admins and co-leaders can reject membership requests")
	}
	if !group.RemovePending(userID) {
		return apperrors.NotFound("no pending request for user %s", userID.Hex())
	}
	return s.groupRepo.SaveGroup(ctx, group)
}

// LeaveGroup removes the user from every role set. The creator can never
// leave.
func (s *GroupService) LeaveGroup(ctx context.Context, userID, groupID primitive.ObjectID) error {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if userID == group.CreatorID {
		return apperrors.Forbidden("the creator cannot leave the group")
	}
	if !group.RemoveMember(userID) {
		return apperrors.NotFound("not a member of this group")
	}
	return s.groupRepo.SaveGroup(ctx, group)
}

// RemoveMember lets a moderator remove a member. The creator is untouchable.
func (s *GroupService) RemoveMember(ctx context.Context, actorID, groupID, userID primitive.ObjectID) error {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.CanModerate(actorID) {
		return apperrors.Forbidden("only admins and co-leaders can remove members")
	}
	if userID == group.CreatorID {
		return apperrors.Forbidden("the creator cannot be removed")
	}
	if !group.RemoveMember(userID) {
		return apperrors.NotFound("not a member of this group")
	}

	logrus.WithFields(logrus.Fields{
		"groupID": groupID.Hex(),
		"userID":  userID.Hex(),
	}).Info("Member removed from group")
	return s.groupRepo.SaveGroup(ctx, group)
}

// PromoteToAdmin makes a member an admin. Admin-only.
func (s *GroupService) PromoteToAdmin(ctx context.Context, actorID, groupID, userID primitive.ObjectID) (*models.Group, error) {
	return s.changeRole(ctx, actorID, groupID, userID, (*models.Group).PromoteAdmin)
}

// PromoteToCoLeader makes a member a co-leader. Admin-only.
func (s *GroupService) PromoteToCoLeader(ctx context.Context, actorID, groupID, userID primitive.ObjectID) (*models.Group, error) {
	return s.changeRole(ctx, actorID, groupID, userID, (*models.Group).PromoteCoLeader)
}

// DemoteRole strips elevated roles from a member. Admin-only.
func (s *GroupService) DemoteRole(ctx context.Context, actorID, groupID, userID primitive.ObjectID) (*models.Group, error) {
	return s.changeRole(ctx, actorID, groupID, userID, (*models.Group).Demote)
}

func (s *GroupService) changeRole(ctx context.Context, actorID, groupID, userID primitive.ObjectID, mutate func(*models.Group, primitive.ObjectID) bool) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsAdmin(actorID) {
		return nil, apperrors.Forbidden("only admins can change roles")
	}
	if !mutate(group, userID) {
		return nil, apperrors.NotFound("user %s holds no such role in this group", userID.Hex())
	}

	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup soft-deletes a group. Creator-only.
func (s *GroupService) DeleteGroup(ctx context.Context, actorID, groupID primitive.ObjectID) error {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if actorID != group.CreatorID {
		return apperrors.Forbidden("only the creator can delete the group")
	}

	group.IsDeleted = true
	return s.groupRepo.SaveGroup(ctx, group)
}

// Groups returns a paginated, creator-populated view over non-deleted
// groups.
func (s *GroupService) Groups(ctx context.Context, filter bson.M, opts paginate.Options) (*paginate.Result, error) {
	if filter == nil {
		filter = bson.M{}
	}
	filter["is_deleted"] = false

	base := paginate.Pipeline{}.Append(paginate.Match(filter))
	opts.Populate = []paginate.Populate{{Field: "creator_id", Select: publicUserFields}}
	return s.engine.Aggregate(ctx, repository.CollGroups, base, opts)
}
