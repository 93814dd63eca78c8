package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AdminHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestResetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)
	adminID, userID := uuid.New(), uuid.New()

	tests := []struct {
		name         string
		id           string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Reset with reason",
			id:   userID.String(),
			body: `{"reason":"test account cleanup"}`,
			prepareMock: func() {
				service.EXPECT().ResetBalance(gomock.Any(), adminID, userID, "test account cleanup").
					Return(&domain.BalanceAdjustment{
						UserID:          userID,
						ActorID:         adminID,
						PreviousBalance: decimal.RequireFromString("120"),
						NewBalance:      decimal.Zero,
						Reason:          "test account cleanup",
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Reset without body",
			id:   userID.String(),
			body: "",
			prepareMock: func() {
				service.EXPECT().ResetBalance(gomock.Any(), adminID, userID, "").
					Return(&domain.BalanceAdjustment{UserID: userID, ActorID: adminID, PreviousBalance: decimal.RequireFromString("120")}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown user",
			id:   userID.String(),
			body: `{}`,
			prepareMock: func() {
				service.EXPECT().ResetBalance(gomock.Any(), adminID, userID, "").
					Return(nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Storage failure",
			id:   userID.String(),
			body: `{}`,
			prepareMock: func() {
				service.EXPECT().ResetBalance(gomock.Any(), adminID, userID, "").
					Return(nil, domain.StorageError(errors.New("db down")))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "Malformed id",
			id:           "abc",
			body:         `{}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid request body",
			id:           userID.String(),
			body:         `{"reason":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			r := httptest.NewRequest(http.MethodPost, "/api/admin/users/"+tt.id+"/balance/reset", bytes.NewBufferString(tt.body))
			ctx := context.WithValue(r.Context(), auth.UserIDKey, adminID)
			r = r.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			handler.ResetBalance(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceAdjustmentResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, userID, body.UserID)
				assert.Equal(t, adminID, body.ActorID)
				assert.Equal(t, "120", body.PreviousBalance.String())
			}
		})
	}
}
