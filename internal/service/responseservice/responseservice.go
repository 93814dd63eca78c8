package responseservice

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/payledger/internal/changefeed"
	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationRepo interface {
	FindByIDForUpdate(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error)
	Update(ctx context.Context, notificationID uuid.UUID, status domain.NotificationStatus, metadata domain.Metadata) error
}

type Transactions interface {
	TransitionStatus(ctx context.Context, actorID, transactionID uuid.UUID, status domain.TransactionStatus) (*domain.Transaction, error)
}

type Friends interface {
	AcceptFriendRequest(ctx context.Context, requestID, senderID, receiverID uuid.UUID) error
	RejectFriendRequest(ctx context.Context, receiverID, requestID uuid.UUID) error
}

type Service struct {
	notificationRepo NotificationRepo
	transactions     Transactions
	friends          Friends
	feed             changefeed.Publisher
	txManager        pg.TXManager
}

func New(notificationRepo NotificationRepo, transactions Transactions, friends Friends, feed changefeed.Publisher, txManager pg.TXManager) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		transactions:     transactions,
		friends:          friends,
		feed:             feed,
		txManager:        txManager,
	}
}

// RespondToRequest routes the recipient's answer to the lifecycle the
// notification refers to, then marks it read with the response recorded.
// Both happen in one database transaction.
func (s *Service) RespondToRequest(ctx context.Context, userID, notificationID uuid.UUID, response domain.Response) (*domain.Notification, error) {
	if response != domain.ResponseAccept && response != domain.ResponseReject {
		return nil, fmt.Errorf("%w: response must be accept or reject", domain.ErrValidation)
	}

	var n *domain.Notification
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		n, err = s.notificationRepo.FindByIDForUpdate(ctx, notificationID)
		if err != nil {
			zap.L().Error("can't lock notification", zap.Error(err))
			return domain.StorageError(err)
		}
		if n == nil {
			return fmt.Errorf("%w: notification %s", domain.ErrNotFound, notificationID)
		}
		if n.UserID != userID {
			return fmt.Errorf("%w: notification belongs to another user", domain.ErrForbidden)
		}
		if prev, ok := n.Metadata.Response(); ok {
			return fmt.Errorf("%w: notification already answered with %s", domain.ErrConflict, prev)
		}

		if err := s.route(ctx, n, response); err != nil {
			return err
		}

		metadata := n.Metadata.Merge(domain.Metadata{domain.MetaResponse: string(response)})
		if err := s.notificationRepo.Update(ctx, n.ID, domain.NotificationStatusRead, metadata); err != nil {
			zap.L().Error("can't finalise notification", zap.Stringer("notification_id", n.ID), zap.Error(err))
			return domain.StorageError(err)
		}
		n.Status = domain.NotificationStatusRead
		n.Metadata = metadata
		return nil
	})
	if err != nil {
		zap.L().Warn("respond to request failed",
			zap.Stringer("notification_id", notificationID),
			zap.String("response", string(response)),
			zap.Error(err))
		return nil, err
	}

	s.feed.Publish(ctx, changefeed.Change{
		Table:   changefeed.TableNotifications,
		Op:      changefeed.OpUpdate,
		ID:      n.ID,
		UserIDs: []uuid.UUID{n.UserID},
	})
	return n, nil
}

func (s *Service) route(ctx context.Context, n *domain.Notification, response domain.Response) error {
	switch n.Type {
	case domain.NotificationTypePaymentRequest:
		transactionID, err := n.Metadata.TransactionID()
		if err != nil {
			return err
		}
		status := domain.TransactionStatusRejected
		if response == domain.ResponseAccept {
			status = domain.TransactionStatusComplete
		}
		_, err = s.transactions.TransitionStatus(ctx, n.UserID, transactionID, status)
		return err

	case domain.NotificationTypeFriendRequest:
		requestID, err := n.Metadata.FriendRequestID()
		if err != nil {
			return err
		}
		if response == domain.ResponseReject {
			return s.friends.RejectFriendRequest(ctx, n.UserID, requestID)
		}
		if !n.SenderID.Valid {
			return fmt.Errorf("%w: friend request notification has no sender", domain.ErrValidation)
		}
		return s.friends.AcceptFriendRequest(ctx, requestID, n.SenderID.UUID, n.UserID)

	default:
		return nil
	}
}
