package services

import (
	"context"
	"time"

	"github.com/anuarbek-t/sociograph/internal/models"
	"github.com/anuarbek-t/sociograph/internal/repository"
	"github.com/anuarbek-t/sociograph/pkg/apperrors"
	"github.com/anuarbek-t/sociograph/pkg/paginate"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionService drives the connection state machine: pending → accepted,
// pending → declined (deleted), pending → cancelled (deleted), accepted →
// removed (deleted plus markers).
type ConnectionService struct {
	connRepo    *repository.ConnectionRepository
	removedRepo *repository.RemovedConnectionRepository
	userRepo    *repository.UserRepository
	validator   *RelationshipValidator
	engine      *paginate.Engine
}

func NewConnectionService(
	connRepo *repository.ConnectionRepository,
	removedRepo *repository.RemovedConnectionRepository,
	userRepo *repository.UserRepository,
	validator *RelationshipValidator,
	engine *paginate.Engine,
) *ConnectionService {
	return &ConnectionService{
		connRepo:    connRepo,
		removedRepo: removedRepo,
		userRepo:    userRepo,
		validator:   validator,
		engine:      engine,
	}
}

// SendRequest creates a pending edge from sender to receiver. When the
// receiver only accepts requests from friends of friends, the two must
// share at least one accepted peer.
func (s *ConnectionService) SendRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) (*models.Connection, error) {
	_, receiver, err := s.validator.ValidatePair(ctx, senderID, receiverID, "send a connection request to")
	if err != nil {
		return nil, err
	}

	existing, err := s.connRepo.GetConnectionBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("a connection between these users already exists with status %q", existing.Status)
	}

	if receiver.ConnectionPrivacy == models.ConnectionPrivacyFriends {
		mutual, err := s.haveMutualConnection(ctx, senderID, receiverID)
		if err != nil {
			return nil, err
		}
		if !mutual {
			return nil, apperrors.InvalidArgument("this user only accepts requests from friends of friends")
		}
	}

	conn := &models.Connection{
		SentBy:     senderID,
		ReceivedBy: receiverID,
	}
	return s.connRepo.CreateConnection(ctx, conn)
}

// AcceptRequest moves a pending edge to accepted. Only the receiver may
// accept.
func (s *ConnectionService) AcceptRequest(ctx context.Context, requestID, actorID primitive.ObjectID) (*models.Connection, error) {
	conn, err := s.connRepo.GetConnectionByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if conn.ReceivedBy != actorID {
		return nil, apperrors.Forbidden("only the receiver can accept a connection request")
	}
	if conn.Status != models.ConnectionStatusPending {
		return nil, apperrors.Conflict("request is %q, not pending", conn.Status)
	}

	if err := s.connRepo.UpdateStatus(ctx, requestID, models.ConnectionStatusAccepted); err != nil {
		return nil, err
	}
	conn.Status = models.ConnectionStatusAccepted
	return conn, nil
}

// DeclineRequest rejects a pending edge. The declined status is transient:
// it is logged and the edge is hard-deleted, never persisted.
func (s *ConnectionService) DeclineRequest(ctx context.Context, requestID, actorID primitive.ObjectID) error {
	conn, err := s.connRepo.GetConnectionByID(ctx, requestID)
	if err != nil {
		return err
	}
	if conn.ReceivedBy != actorID {
		return apperrors.Forbidden("only the receiver can decline a connection request")
	}
	if conn.Status != models.ConnectionStatusPending {
		return apperrors.Conflict("request is %q, not pending", conn.Status)
	}

	logrus.WithFields(logrus.Fields{
		"connectionID": conn.ID.Hex(),
		"status":       models.ConnectionStatusDeclined,
	}).Info("Connection request declined")
	return s.connRepo.DeleteConnection(ctx, requestID)
}

// CancelRequest lets the sender withdraw a pending edge.
func (s *ConnectionService) CancelRequest(ctx context.Context, requestID, actorID primitive.ObjectID) error {
	conn, err := s.connRepo.GetConnectionByID(ctx, requestID)
	if err != nil {
		return err
	}
	if conn.SentBy != actorID {
		return apperrors.Forbidden("only the sender can cancel a connection request")
	}
	if conn.Status != models.ConnectionStatusPending {
		return apperrors.Conflict("request is %q, not pending", conn.Status)
	}
	return s.connRepo.DeleteConnection(ctx, requestID)
}

// RemoveConnection deletes the accepted edge between the actor and a peer
// and writes removed markers for both endpoints, keeping each out of the
// other's suggestions for the marker window.
func (s *ConnectionService) RemoveConnection(ctx context.Context, actorID, peerID primitive.ObjectID) error {
	conn, err := s.connRepo.GetAcceptedBetween(ctx, actorID, peerID)
	if err != nil {
		return err
	}
	if !conn.HasEndpoint(actorID) {
		return apperrors.Forbidden("only an endpoint of the connection can remove it")
	}

	if err := s.connRepo.DeleteConnection(ctx, conn.ID); err != nil {
		return err
	}

	now := time.Now()
	if err := s.removedRepo.CreateMarker(ctx, actorID, peerID, now); err != nil {
		return err
	}
	if err := s.removedRepo.CreateMarker(ctx, peerID, actorID, now); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"userID": actorID.Hex(),
		"peerID": peerID.Hex(),
	}).Info("Connection removed")
	return nil
}

// Connections returns the accepted edges of userID with the peer fields
// populated, through the aggregation engine.
func (s *ConnectionService) Connections(ctx context.Context, userID primitive.ObjectID, opts paginate.Options) (*paginate.Result, error) {
	base := paginate.Pipeline{}.Append(paginate.Match(bson.M{
		"status": models.ConnectionStatusAccepted,
		"$or": []bson.M{
			{"sent_by": userID},
			{"received_by": userID},
		},
	}))

	opts.Populate = []paginate.Populate{
		{Field: "sent_by", Select: publicUserFields},
		{Field: "received_by", Select: publicUserFields},
	}
	return s.engine.Aggregate(ctx, repository.CollConnections, base, opts)
}

// PendingIncoming returns pending requests addressed to userID.
func (s *ConnectionService) PendingIncoming(ctx context.Context, userID primitive.ObjectID, opts paginate.Options) (*paginate.Result, error) {
	filter := bson.M{"received_by": userID, "status": models.ConnectionStatusPending}
	opts.Populate = []paginate.Populate{{Field: "sent_by", Select: publicUserFields}}
	return s.engine.Find(ctx, repository.CollConnections, filter, opts)
}

// PendingOutgoing returns pending requests userID sent.
func (s *ConnectionService) PendingOutgoing(ctx context.Context, userID primitive.ObjectID, opts paginate.Options) (*paginate.Result, error) {
	filter := bson.M{"sent_by": userID, "status": models.ConnectionStatusPending}
	opts.Populate = []paginate.Populate{{Field: "received_by", Select: publicUserFields}}
	return s.engine.Find(ctx, repository.CollConnections, filter, opts)
}

// MutualConnections returns the users connected to both a and b.
func (s *ConnectionService) MutualConnections(ctx context.Context, aID, bID primitive.ObjectID) ([]models.PublicUser, error) {
	peersA, err := s.connRepo.AcceptedPeerIDs(ctx, aID)
	if err != nil {
		return nil, err
	}
	peersB, err := s.connRepo.AcceptedPeerIDs(ctx, bID)
	if err != nil {
		return nil, err
	}

	mutual := intersectIDs(peersA, peersB)
	if len(mutual) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, mutual)
	if err != nil {
		return nil, err
	}

	result := make([]models.PublicUser, 0, len(users))
	for i := range users {
		result = append(result, users[i].Public())
	}
	return result, nil
}

func (s *ConnectionService) haveMutualConnection(ctx context.Context, aID, bID primitive.ObjectID) (bool, error) {
	peersA, err := s.connRepo.AcceptedPeerIDs(ctx, aID)
	if err != nil {
		return false, err
	}
	peersB, err := s.connRepo.AcceptedPeerIDs(ctx, bID)
	if err != nil {
		return false, err
	}
	return len(intersectIDs(peersA, peersB)) > 0, nil
}

// intersectIDs returns the deduplicated intersection of two id lists.
func intersectIDs(a, b []primitive.ObjectID) []primitive.ObjectID {
	inA := make(map[primitive.ObjectID]struct{}, len(a))
	for _, id := range a {
		inA[id] = struct{}{}
	}

	var out []primitive.ObjectID
	seen := make(map[primitive.ObjectID]struct{})
	for _, id := range b {
		if _, ok := inA[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
