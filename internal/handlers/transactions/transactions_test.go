package transactions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/service/transactionservice"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*TransactionHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func newRequest(method, target, body string, userID uuid.UUID, id string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	ctx := r.Context()
	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, auth.UserIDKey, userID)
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

func TestCreateTransactionHandler(t *testing.T) {
	handler, service := NewMock(t)
	userA, userB := uuid.New(), uuid.New()
	created := &domain.Transaction{
		ID:                uuid.New(),
		OriginUserID:      userA,
		DestinationUserID: userB,
		Amount:            decimal.RequireFromString("25.50"),
		Currency:          "MXN",
		Category:          "food",
		Direction:         domain.DirectionOutbound,
		Status:            domain.TransactionStatusComplete,
		CreatedAt:         time.Date(2024, 5, 1, 16, 9, 57, 0, time.UTC),
	}

	tests := []struct {
		name          string
		userID        uuid.UUID
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:   "Successful payment",
			userID: userA,
			body:   fmt.Sprintf(`{"counterpart_id":%q,"amount":"25.50","category":"food"}`, userB),
			prepareMock: func() {
				service.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req transactionservice.CreateRequest) (*domain.Transaction, error) {
						assert.Equal(t, userA, req.ActorID)
						assert.Equal(t, userB, req.CounterpartID)
						assert.Equal(t, "25.5", req.Amount.String())
						assert.False(t, req.IsRequest)
						assert.Equal(t, "food", req.Category)
						return created, nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:   "Payment request",
			userID: userA,
			body:   fmt.Sprintf(`{"counterpart_id":%q,"amount":10,"request":true}`, userB),
			prepareMock: func() {
				service.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req transactionservice.CreateRequest) (*domain.Transaction, error) {
						assert.True(t, req.IsRequest)
						assert.Equal(t, domain.TransactionStatus(""), req.Status)
						return created, nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:   "Non-positive amount",
			userID: userA,
			body:   fmt.Sprintf(`{"counterpart_id":%q,"amount":"0"}`, userB),
			prepareMock: func() {
				service.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "amount must be positive",
		},
		{
			name:   "Unknown counterpart",
			userID: userA,
			body:   fmt.Sprintf(`{"counterpart_id":%q,"amount":"1"}`, uuid.New()),
			prepareMock: func() {
				service.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: user", domain.ErrNotFound))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:          "Invalid request body",
			userID:        userA,
			body:          `{"amount":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Unauthorized",
			body:          `{}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "User not authorized",
		},
		{
			name:   "Internal server error",
			userID: userA,
			body:   fmt.Sprintf(`{"counterpart_id":%q,"amount":"1"}`, userB),
			prepareMock: func() {
				service.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := newRequest(http.MethodPost, "/api/transactions", tt.body, tt.userID, "")
			w := httptest.NewRecorder()

			handler.CreateTransaction(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusCreated {
				var body dto.TransactionResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, created.ID, body.ID)
				assert.Equal(t, "outbound", body.Direction)
				assert.Equal(t, "complete", body.Status)
				assert.Equal(t, "2024-05-01T16:09:57Z", body.CreatedAt)
			}
		})
	}
}

func TestTransitionStatusHandler(t *testing.T) {
	handler, service := NewMock(t)
	payer, txID := uuid.New(), uuid.New()

	tests := []struct {
		name          string
		id            string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Complete pending transaction",
			id:   txID.String(),
			body: `{"status":"complete"}`,
			prepareMock: func() {
				service.EXPECT().TransitionStatus(gomock.Any(), payer, txID, domain.TransactionStatusComplete).
					Return(&domain.Transaction{ID: txID, OriginUserID: payer, Status: domain.TransactionStatusComplete, Direction: domain.DirectionOutbound}, nil)
			},
			expectedCode:  http.StatusOK,
			expectedError: `"status":"complete"`,
		},
		{
			name: "Not the payer",
			id:   txID.String(),
			body: `{"status":"rejected"}`,
			prepareMock: func() {
				service.EXPECT().TransitionStatus(gomock.Any(), payer, txID, domain.TransactionStatusRejected).
					Return(nil, fmt.Errorf("%w: only the payer can resolve a transaction", domain.ErrForbidden))
			},
			expectedCode:  http.StatusForbidden,
			expectedError: "only the payer",
		},
		{
			name: "Terminal conflict",
			id:   txID.String(),
			body: `{"status":"rejected"}`,
			prepareMock: func() {
				service.EXPECT().TransitionStatus(gomock.Any(), payer, txID, domain.TransactionStatusRejected).
					Return(nil, fmt.Errorf("%w: transaction is complete", domain.ErrConflict))
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:          "Malformed id",
			id:            "not-a-uuid",
			body:          `{"status":"complete"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid id",
		},
		{
			name:          "Invalid request body",
			id:            txID.String(),
			body:          `status`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := newRequest(http.MethodPatch, "/api/transactions/"+tt.id+"/status", tt.body, payer, tt.id)
			w := httptest.NewRecorder()

			handler.TransitionStatus(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestGetTransactionHandler(t *testing.T) {
	handler, service := NewMock(t)
	userID, txID := uuid.New(), uuid.New()

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Found",
			prepareMock: func() {
				service.EXPECT().GetTransaction(gomock.Any(), userID, txID).
					Return(&domain.Transaction{ID: txID, DestinationUserID: userID, Direction: domain.DirectionInbound}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Not found",
			prepareMock: func() {
				service.EXPECT().GetTransaction(gomock.Any(), userID, txID).
					Return(nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, txID))
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := newRequest(http.MethodGet, "/api/transactions/"+txID.String(), "", userID, txID.String())
			w := httptest.NewRecorder()

			handler.GetTransaction(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestListTransactionsHandler(t *testing.T) {
	handler, service := NewMock(t)
	userID := uuid.New()

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedCount int
	}{
		{
			name: "Two transactions",
			prepareMock: func() {
				service.EXPECT().ListTransactions(gomock.Any(), userID).Return([]domain.Transaction{
					{ID: uuid.New(), Direction: domain.DirectionInbound},
					{ID: uuid.New(), Direction: domain.DirectionOutbound},
				}, nil)
			},
			expectedCode:  http.StatusOK,
			expectedCount: 2,
		},
		{
			name: "Empty list",
			prepareMock: func() {
				service.EXPECT().ListTransactions(gomock.Any(), userID).Return(nil, nil)
			},
			expectedCode:  http.StatusOK,
			expectedCount: 0,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().ListTransactions(gomock.Any(), userID).Return(nil, domain.StorageError(errors.New("db down")))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := newRequest(http.MethodGet, "/api/transactions", "", userID, "")
			w := httptest.NewRecorder()

			handler.ListTransactions(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.TransactionResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Len(t, body, tt.expectedCount)
			}
		})
	}
}
