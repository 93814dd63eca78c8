package friendservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GlebRadaev/payledger/internal/changefeed"
	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repo interface {
	CreateRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error)
	FindPending(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error)
	FindByIDForUpdate(ctx context.Context, requestID uuid.UUID) (*domain.FriendRequest, error)
	UpdateStatus(ctx context.Context, requestID uuid.UUID, status domain.FriendRequestStatus, respondedAt time.Time) error
	CreateFriendship(ctx context.Context, userID, friendID uuid.UUID) error
	AreFriends(ctx context.Context, userID, friendID uuid.UUID) (bool, error)
	FindFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friend, error)
}

type UserRepo interface {
	FindByHandle(ctx context.Context, handle string) (*domain.User, error)
	FindByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type Notifier interface {
	PutNotification(ctx context.Context, userID uuid.UUID, senderID uuid.NullUUID, text string, notificationType domain.NotificationType, metadata domain.Metadata) *domain.Notification
	ResolveRequest(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType, referenceID uuid.UUID, response domain.Response) error
}

type Service struct {
	repo      Repo
	userRepo  UserRepo
	notifier  Notifier
	feed      changefeed.Publisher
	txManager pg.TXManager
	now       func() time.Time
}

func New(repo Repo, userRepo UserRepo, notifier Notifier, feed changefeed.Publisher, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		notifier:  notifier,
		feed:      feed,
		txManager: txManager,
		now:       time.Now,
	}
}

// FriendRequestResult is the answer shown to the sender. Refusals are not errors.
type FriendRequestResult struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	RequestID uuid.UUID `json:"request_id,omitempty"`
}

func refused(message string) *FriendRequestResult {
	return &FriendRequestResult{Success: false, Message: message}
}

// SendFriendRequest asks the owner of handle to befriend currentUserID.
func (s *Service) SendFriendRequest(ctx context.Context, currentUserID uuid.UUID, handle string) (*FriendRequestResult, error) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return refused("Handle is empty."), nil
	}

	sender, err := s.userRepo.FindByID(ctx, currentUserID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if sender == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, currentUserID)
	}

	receiver, err := s.userRepo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if receiver == nil {
		return refused(fmt.Sprintf("User @%s not found.", handle)), nil
	}
	if receiver.ID == sender.ID {
		return refused("You can't send a friend request to yourself."), nil
	}

	friends, err := s.repo.AreFriends(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if friends {
		return refused(fmt.Sprintf("You are already friends with @%s.", handle)), nil
	}

	existing, err := s.repo.FindPending(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if existing != nil {
		return refused("Friend request already sent."), nil
	}
	incoming, err := s.repo.FindPending(ctx, receiver.ID, sender.ID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if incoming != nil {
		return refused(fmt.Sprintf("@%s already sent you a friend request.", handle)), nil
	}

	req, err := s.repo.CreateRequest(ctx, sender.ID, receiver.ID)
	if err != nil {
		// the partial unique index on pending requests loses the race for us
		if domain.KindOf(err) == "conflict" {
			return refused("Friend request already sent."), nil
		}
		return nil, domain.StorageError(err)
	}

	s.publish(ctx, req, changefeed.OpInsert)
	s.notifier.PutNotification(ctx,
		receiver.ID,
		uuid.NullUUID{UUID: sender.ID, Valid: true},
		fmt.Sprintf("You have a new friend request from @%s", sender.Handle),
		domain.NotificationTypeFriendRequest,
		domain.Metadata{domain.MetaFriendRequestID: req.ID.String()},
	)

	zap.L().Info("friend request sent", zap.Stringer("request_id", req.ID))
	return &FriendRequestResult{
		Success:   true,
		Message:   fmt.Sprintf("Friend request sent to @%s", handle),
		RequestID: req.ID,
	}, nil
}

// AcceptFriendRequest marks the request accepted, answers the receiver's
// notification and creates both friendship edges in one database transaction.
// The sender is notified once committed.
func (s *Service) AcceptFriendRequest(ctx context.Context, requestID, senderID, receiverID uuid.UUID) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		req, err := s.lockPending(ctx, requestID, receiverID)
		if err != nil {
			return err
		}
		if req.SenderID != senderID {
			return fmt.Errorf("%w: request was not sent by %s", domain.ErrValidation, senderID)
		}

		if err := s.repo.UpdateStatus(ctx, requestID, domain.FriendRequestStatusAccepted, s.now().UTC()); err != nil {
			return domain.StorageError(err)
		}
		if err := s.repo.CreateFriendship(ctx, senderID, receiverID); err != nil {
			zap.L().Error("can't create friendship", zap.Stringer("request_id", requestID), zap.Error(err))
			return domain.StorageError(err)
		}
		if err := s.notifier.ResolveRequest(ctx, receiverID, domain.NotificationTypeFriendRequest, requestID, domain.ResponseAccept); err != nil {
			return err
		}

		req.Status = domain.FriendRequestStatusAccepted
		pg.AfterCommit(ctx, func() {
			s.publish(ctx, req, changefeed.OpUpdate)
			s.feed.Publish(ctx, changefeed.Change{
				Table:   changefeed.TableFriends,
				Op:      changefeed.OpInsert,
				ID:      requestID,
				UserIDs: []uuid.UUID{senderID, receiverID},
			})
			s.notifyAccepted(ctx, req)
		})
		return nil
	})
	if err != nil {
		return err
	}
	zap.L().Info("friend request accepted", zap.Stringer("request_id", requestID))
	return nil
}

// RejectFriendRequest closes the request on behalf of its receiver.
func (s *Service) RejectFriendRequest(ctx context.Context, receiverID, requestID uuid.UUID) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		req, err := s.lockPending(ctx, requestID, receiverID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateStatus(ctx, requestID, domain.FriendRequestStatusRejected, s.now().UTC()); err != nil {
			return domain.StorageError(err)
		}
		if err := s.notifier.ResolveRequest(ctx, receiverID, domain.NotificationTypeFriendRequest, requestID, domain.ResponseReject); err != nil {
			return err
		}

		req.Status = domain.FriendRequestStatusRejected
		pg.AfterCommit(ctx, func() {
			s.publish(ctx, req, changefeed.OpUpdate)
		})
		return nil
	})
}

// notifyAccepted tells the sender their request was accepted. Best effort.
func (s *Service) notifyAccepted(ctx context.Context, req *domain.FriendRequest) {
	text := "Your friend request was accepted"
	receiver, err := s.userRepo.FindByID(ctx, req.ReceiverID)
	if err != nil {
		zap.L().Warn("can't load friend request receiver", zap.Stringer("request_id", req.ID), zap.Error(err))
	} else if receiver != nil {
		text = fmt.Sprintf("@%s accepted your friend request", receiver.Handle)
	}
	s.notifier.PutNotification(ctx,
		req.SenderID,
		uuid.NullUUID{UUID: req.ReceiverID, Valid: true},
		text,
		domain.NotificationTypeSystem,
		domain.Metadata{domain.MetaFriendRequestID: req.ID.String()},
	)
}

func (s *Service) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friend, error) {
	friends, err := s.repo.FindFriends(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list friends", zap.Error(err))
		return nil, domain.StorageError(err)
	}
	return friends, nil
}

func (s *Service) lockPending(ctx context.Context, requestID, receiverID uuid.UUID) (*domain.FriendRequest, error) {
	req, err := s.repo.FindByIDForUpdate(ctx, requestID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: friend request %s", domain.ErrNotFound, requestID)
	}
	if req.ReceiverID != receiverID {
		return nil, fmt.Errorf("%w: only the receiver answers a friend request", domain.ErrForbidden)
	}
	if req.Status != domain.FriendRequestStatusPending {
		return nil, fmt.Errorf("%w: friend request is already %s", domain.ErrConflict, req.Status)
	}
	return req, nil
}

func (s *Service) publish(ctx context.Context, req *domain.FriendRequest, op string) {
	s.feed.Publish(ctx, changefeed.Change{
		Table:   changefeed.TableFriendRequests,
		Op:      op,
		ID:      req.ID,
		UserIDs: []uuid.UUID{req.SenderID, req.ReceiverID},
	})
}
