package responseservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/payledger/internal/changefeed"
	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	notifications *MockNotificationRepo
	transactions  *MockTransactions
	friends       *MockFriends
	feed          *changefeed.MockPublisher
	txManager     *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		notifications: NewMockNotificationRepo(ctrl),
		transactions:  NewMockTransactions(ctrl),
		friends:       NewMockFriends(ctrl),
		feed:          changefeed.NewMockPublisher(ctrl),
		txManager:     pg.NewMockTXManager(ctrl),
	}
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) }).
		AnyTimes()
	m.feed.EXPECT().Publish(gomock.Any(), gomock.Any()).AnyTimes()
	return New(m.notifications, m.transactions, m.friends, m.feed, m.txManager), m
}

func TestRespondToRequest_PaymentAccepted(t *testing.T) {
	service, m := NewMock(t)
	payer, requester := uuid.New(), uuid.New()
	notificationID, txID := uuid.New(), uuid.New()
	meta := domain.Metadata{domain.MetaTransactionID: txID.String()}

	m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).Return(&domain.Notification{
		ID:       notificationID,
		UserID:   payer,
		SenderID: uuid.NullUUID{UUID: requester, Valid: true},
		Type:     domain.NotificationTypePaymentRequest,
		Status:   domain.NotificationStatusUnread,
		Metadata: meta,
	}, nil)
	m.transactions.EXPECT().TransitionStatus(gomock.Any(), payer, txID, domain.TransactionStatusComplete).
		Return(&domain.Transaction{ID: txID, Status: domain.TransactionStatusComplete}, nil)
	m.notifications.EXPECT().Update(gomock.Any(), notificationID, domain.NotificationStatusRead, domain.Metadata{
		domain.MetaTransactionID: txID.String(),
		domain.MetaResponse:      "accept",
	}).Return(nil)

	n, err := service.RespondToRequest(context.Background(), payer, notificationID, domain.ResponseAccept)

	require.NoError(t, err)
	assert.Equal(t, domain.NotificationStatusRead, n.Status)
	response, ok := n.Metadata.Response()
	assert.True(t, ok)
	assert.Equal(t, domain.ResponseAccept, response)
	_, stamped := meta[domain.MetaResponse]
	assert.False(t, stamped, "stored metadata must not be mutated in place")
}

func TestRespondToRequest(t *testing.T) {
	recipient, sender := uuid.New(), uuid.New()
	notificationID, entityID := uuid.New(), uuid.New()

	notification := func(typ domain.NotificationType, meta domain.Metadata) *domain.Notification {
		return &domain.Notification{
			ID:       notificationID,
			UserID:   recipient,
			SenderID: uuid.NullUUID{UUID: sender, Valid: true},
			Type:     typ,
			Status:   domain.NotificationStatusUnread,
			Metadata: meta,
		}
	}

	tests := []struct {
		name          string
		actor         uuid.UUID
		response      domain.Response
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name:          "Unknown response",
			actor:         recipient,
			response:      "maybe",
			prepareMock:   func(m *mocks) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:     "Not found",
			actor:    recipient,
			response: domain.ResponseAccept,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:     "Someone else's notification",
			actor:    sender,
			response: domain.ResponseAccept,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).
					Return(notification(domain.NotificationTypePaymentRequest, domain.Metadata{}), nil)
			},
			expectedError: domain.ErrForbidden,
		},
		{
			name:     "Already answered",
			actor:    recipient,
			response: domain.ResponseReject,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).
					Return(notification(domain.NotificationTypePaymentRequest, domain.Metadata{
						domain.MetaTransactionID: entityID.String(),
						domain.MetaResponse:      "accept",
					}), nil)
			},
			expectedError: domain.ErrConflict,
		},
		{
			name:     "Payment rejected",
			actor:    recipient,
			response: domain.ResponseReject,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).
					Return(notification(domain.NotificationTypePaymentRequest, domain.Metadata{domain.MetaTransactionID: entityID.String()}), nil)
				m.transactions.EXPECT().TransitionStatus(gomock.Any(), recipient, entityID, domain.TransactionStatusRejected).
					Return(&domain.Transaction{}, nil)
				m.notifications.EXPECT().Update(gomock.Any(), notificationID, domain.NotificationStatusRead, gomock.Any()).Return(nil)
			},
		},
		{
			name:     "Payment metadata missing",
			actor:    recipient,
			response: domain.ResponseAccept,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).
					Return(notification(domain.NotificationTypePaymentRequest, domain.Metadata{}), nil)
			},
			expectedError: domain.ErrValidation,
		},
		{
			name:     "Lifecycle failure leaves notification unread",
			actor:    recipient,
			response: domain.ResponseAccept,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).
					Return(notification(domain.NotificationTypePaymentRequest, domain.Metadata{domain.MetaTransactionID: entityID.String()}), nil)
				m.transactions.EXPECT().TransitionStatus(gomock.Any(), recipient, entityID, domain.TransactionStatusComplete).
					Return(nil, domain.ErrConflict)
			},
			expectedError: domain.ErrConflict,
		},
		{
			name:     "Friend request accepted",
			actor:    recipient,
			response: domain.ResponseAccept,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).
					Return(notification(domain.NotificationTypeFriendRequest, domain.Metadata{domain.MetaFriendRequestID: entityID.String()}), nil)
				m.friends.EXPECT().AcceptFriendRequest(gomock.Any(), entityID, sender, recipient).Return(nil)
				m.notifications.EXPECT().Update(gomock.Any(), notificationID, domain.NotificationStatusRead, gomock.Any()).Return(nil)
			},
		},
		{
			name:     "Friend request rejected with legacy key",
			actor:    recipient,
			response: domain.ResponseReject,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).
					Return(notification(domain.NotificationTypeFriendRequest, domain.Metadata{"request_id": entityID.String()}), nil)
				m.friends.EXPECT().RejectFriendRequest(gomock.Any(), recipient, entityID).Return(nil)
				m.notifications.EXPECT().Update(gomock.Any(), notificationID, domain.NotificationStatusRead, gomock.Any()).Return(nil)
			},
		},
		{
			name:     "System notification only finalised",
			actor:    recipient,
			response: domain.ResponseAccept,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).
					Return(notification(domain.NotificationTypeSystem, domain.Metadata{}), nil)
				m.notifications.EXPECT().Update(gomock.Any(), notificationID, domain.NotificationStatusRead,
					domain.Metadata{domain.MetaResponse: "accept"}).Return(nil)
			},
		},
		{
			name:     "Finalise fails",
			actor:    recipient,
			response: domain.ResponseAccept,
			prepareMock: func(m *mocks) {
				m.notifications.EXPECT().FindByIDForUpdate(gomock.Any(), notificationID).
					Return(notification(domain.NotificationTypeSystem, domain.Metadata{}), nil)
				m.notifications.EXPECT().Update(gomock.Any(), notificationID, domain.NotificationStatusRead, gomock.Any()).
					Return(errors.New("database error"))
			},
			expectedError: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			n, err := service.RespondToRequest(context.Background(), tt.actor, notificationID, tt.response)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, n)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.NotificationStatusRead, n.Status)
			got, ok := n.Metadata.Response()
			assert.True(t, ok)
			assert.Equal(t, tt.response, got)
		})
	}
}
