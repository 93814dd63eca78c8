package notificationservice

import (
	"context"
	"fmt"
	"time"

	"github.com/GlebRadaev/payledger/internal/changefeed"
	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultLimit = 50

type Repo interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	ResolveByReference(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType, keys []string, referenceID uuid.UUID, response domain.Response) ([]uuid.UUID, error)
}

type Service struct {
	repo Repo
	feed changefeed.Publisher
	now  func() time.Time
}

func New(repo Repo, feed changefeed.Publisher) *Service {
	return &Service{
		repo: repo,
		feed: feed,
		now:  time.Now,
	}
}

// PutNotification stores an unread notification for userID. A failure is
// logged and reported as nil, never as an error.
func (s *Service) PutNotification(ctx context.Context, userID uuid.UUID, senderID uuid.NullUUID, text string, notificationType domain.NotificationType, metadata domain.Metadata) *domain.Notification {
	if metadata == nil {
		metadata = domain.Metadata{}
	}
	n, err := s.repo.Create(ctx, &domain.Notification{
		UserID:    userID,
		SenderID:  senderID,
		Text:      text,
		Type:      notificationType,
		Status:    domain.NotificationStatusUnread,
		Metadata:  metadata,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		zap.L().Error("failed to put notification",
			zap.Stringer("user_id", userID),
			zap.String("type", string(notificationType)),
			zap.Error(err))
		return nil
	}

	pg.AfterCommit(ctx, func() {
		s.feed.Publish(ctx, changefeed.Change{
			Table:   changefeed.TableNotifications,
			Op:      changefeed.OpInsert,
			ID:      n.ID,
			UserIDs: []uuid.UUID{userID},
		})
	})
	return n
}

// MarkAsRead acknowledges a notification of userID without answering it.
func (s *Service) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return domain.StorageError(err)
	}
	if n == nil {
		return fmt.Errorf("%w: notification %s", domain.ErrNotFound, notificationID)
	}
	if n.UserID != userID {
		return fmt.Errorf("%w: notification belongs to another user", domain.ErrForbidden)
	}
	if n.Status == domain.NotificationStatusRead {
		return nil
	}

	if err := s.repo.MarkRead(ctx, notificationID); err != nil {
		return domain.StorageError(err)
	}

	s.feed.Publish(ctx, changefeed.Change{
		Table:   changefeed.TableNotifications,
		Op:      changefeed.OpUpdate,
		ID:      notificationID,
		UserIDs: []uuid.UUID{userID},
	})
	return nil
}

// ResolveRequest answers the notifications of userID that refer to
// referenceID, for requests resolved without going through them. Joins the
// database transaction carried by ctx.
func (s *Service) ResolveRequest(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType, referenceID uuid.UUID, response domain.Response) error {
	keys := domain.ReferenceKeys(notificationType)
	if len(keys) == 0 {
		return nil
	}
	ids, err := s.repo.ResolveByReference(ctx, userID, notificationType, keys, referenceID, response)
	if err != nil {
		return domain.StorageError(err)
	}

	pg.AfterCommit(ctx, func() {
		for _, id := range ids {
			s.feed.Publish(ctx, changefeed.Change{
				Table:   changefeed.TableNotifications,
				Op:      changefeed.OpUpdate,
				ID:      id,
				UserIDs: []uuid.UUID{userID},
			})
		}
	})
	return nil
}

func (s *Service) ListNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	notifications, err := s.repo.FindByUserID(ctx, userID, defaultLimit)
	if err != nil {
		zap.L().Error("failed to list notifications", zap.Error(err))
		return nil, domain.StorageError(err)
	}
	return notifications, nil
}
