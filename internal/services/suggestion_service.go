package services

import (
	"context"
	"time"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/internal/repository"
	"github.com/anuarbek-t/sociograph/pkg/paginate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// suggestRequestCooldown keeps a freshly requested user out of suggestions.
const suggestRequestCooldown = 72 * time.Hour

// GroupSuggestionPage is the envelope for the direct group-suggestion query.
type GroupSuggestionPage struct {
	Results []models.Group `json:"results"`
	Page    int64          `json:"page"`
	Limit   int64          `json:"limit"`
	Total   int64          `json:"total"`
}

// SuggestionService derives suggestion queries from the relationship store.
// Both flows build a filter and hand it to a query; they never rank in
// memory.
type SuggestionService struct {
	users       userFinder
	connRepo    *repository.ConnectionRepository
	blockRepo   *repository.BlockRepository
	removedRepo *repository.RemovedConnectionRepository
	groupRepo   *repository.GroupRepository
	engine      *paginate.Engine
}

func NewSuggestionService(
	users userFinder,
	connRepo *repository.ConnectionRepository,
	blockRepo *repository.BlockRepository,
	removedRepo *repository.RemovedConnectionRepository,
	groupRepo *repository.GroupRepository,
	engine *paginate.Engine,
) *SuggestionService {
	return &SuggestionService{
		users:       users,
		connRepo:    connRepo,
		blockRepo:   blockRepo,
		removedRepo: removedRepo,
		groupRepo:   groupRepo,
		engine:      engine,
	}
}

// PeopleSuggestions paginates candidate users sharing a publicly visible
// attribute with the requester, excluding everyone the requester already has
// a relationship history with. Zero public attributes short-circuits to an
// empty page without touching the store.
func (s *SuggestionService) PeopleSuggestions(ctx context.Context, userID primitive.ObjectID, opts paginate.Options) (*paginate.Result, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	clauses := peopleClauses(user)
	if len(clauses) == 0 {
		return emptyPage(opts), nil
	}

	now := time.Now()
	excluded := []primitive.ObjectID{userID}

	peers, err := s.connRepo.AcceptedPeerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded = append(excluded, peers...)

	blocked, err := s.blockRepo.BlockedPeerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded = append(excluded, blocked...)

	removed, err := s.removedRepo.ActivePeerIDs(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	excluded = append(excluded, removed...)

	requested, err := s.connRepo.PendingSentReceiverIDs(ctx, userID, now.Add(-suggestRequestCooldown))
	if err != nil {
		return nil, err
	}
	excluded = append(excluded, requested...)

	filter := bson.M{
		"_id":        bson.M{"$nin": dedupIDs(excluded)},
		"is_deleted": false,
		"is_banned":  false,
		"is_blocked": false,
		"$or":        clauses,
	}

	opts.Select = publicUserFields
	return s.engine.Find(ctx, repository.CollUsers, filter, opts)
}

// GroupSuggestions returns public or nearby or friend-populated groups the
// user is not already in, sorted by participant count by default. This flow
// issues a direct limited query rather than going through the engine.
func (s *SuggestionService) GroupSuggestions(ctx context.Context, userID primitive.ObjectID, opts paginate.Options) (*GroupSuggestionPage, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = paginate.DefaultLimit
	}

	memberOf, err := s.groupRepo.GroupIDsWithUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	blocked, err := s.blockRepo.BlockedPeerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	peers, err := s.connRepo.AcceptedPeerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	or := []bson.M{{"privacy": models.GroupPrivacyPublic}}
	if user.Privacy.LocationName == models.VisibilityPublic && user.LocationName != "" {
		or = append(or, bson.M{"location_name": user.LocationName})
	}
	if len(peers) > 0 {
		or = append(or, bson.M{"members": bson.M{"$in": peers}})
	}

	filter := bson.M{
		"is_deleted": false,
		"$or":        or,
	}
	if len(memberOf) > 0 {
		filter["_id"] = bson.M{"$nin": memberOf}
	}
	if len(blocked) > 0 {
		filter["creator_id"] = bson.M{"$nin": blocked}
	}

	sort := bson.D{{Key: "participant_count", Value: -1}}
	skip := (opts.Page - 1) * opts.Limit

	groups, total, err := s.groupRepo.FindPage(ctx, filter, sort, skip, opts.Limit)
	if err != nil {
		return nil, err
	}

	return &GroupSuggestionPage{
		Results: groups,
		Page:    opts.Page,
		Limit:   opts.Limit,
		Total:   total,
	}, nil
}

// peopleClauses builds one disjunct per attribute that is publicly visible
// and non-empty: the candidate must share the value and expose it publicly
// too. The connection-privacy gate is deliberately absent here; it is
// enforced at connection-creation time only.
func peopleClauses(u *models.User) []bson.M {
	type attr struct {
		field      string
		value      string
		visibility string
	}
	attrs := []attr{
		{"location_name", u.LocationName, u.Privacy.LocationName},
		{"country", u.Country, u.Privacy.Country},
		{"profession", u.Profession, u.Privacy.Profession},
		{"age_range", u.AgeRange, u.Privacy.AgeRange},
	}

	var clauses []bson.M
	for _, a := range attrs {
		if a.visibility != models.VisibilityPublic || a.value == "" {
			continue
		}
		clauses = append(clauses, bson.M{
			a.field:              a.value,
			"privacy." + a.field: models.VisibilityPublic,
		})
	}
	return clauses
}

func emptyPage(opts paginate.Options) *paginate.Result {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = paginate.DefaultLimit
	}
	return &paginate.Result{
		Results:      []bson.M{},
		Page:         opts.Page,
		Limit:        opts.Limit,
		TotalPages:   0,
		TotalResults: 0,
	}
}

func dedupIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
