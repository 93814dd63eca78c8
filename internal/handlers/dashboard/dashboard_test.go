package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/service/dashboardservice"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*DashboardHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestGetDashboardHandler(t *testing.T) {
	handler, service := NewMock(t)
	userID := uuid.New()

	tests := []struct {
		name         string
		userID       uuid.UUID
		prepareMock  func()
		expectedCode int
		check        func(t *testing.T, body dto.DashboardResponseDTO)
	}{
		{
			name:   "Dashboard assembled",
			userID: userID,
			prepareMock: func() {
				service.EXPECT().GetDashboard(gomock.Any(), userID).Return(&dashboardservice.Dashboard{
					UserID:           userID,
					Handle:           "ana",
					Balance:          decimal.RequireFromString("74.50"),
					BalanceChange24h: decimal.RequireFromString("-25.50"),
					UnreadCount:      1,
					Notifications:    []domain.Notification{{ID: uuid.New(), Status: domain.NotificationStatusUnread}},
					RecentTransactions: []domain.Transaction{
						{ID: uuid.New(), OriginUserID: userID, Direction: domain.DirectionOutbound},
					},
				}, nil)
			},
			expectedCode: http.StatusOK,
			check: func(t *testing.T, body dto.DashboardResponseDTO) {
				assert.Equal(t, "ana", body.Handle)
				assert.Equal(t, "74.5", body.Balance.String())
				assert.Equal(t, "-25.5", body.BalanceChange24h.String())
				assert.Equal(t, 1, body.UnreadCount)
				assert.Len(t, body.Notifications, 1)
				require.Len(t, body.RecentTransactions, 1)
				assert.Equal(t, "outbound", body.RecentTransactions[0].Direction)
				assert.Empty(t, body.Friends)
			},
		},
		{
			name:   "User gone",
			userID: userID,
			prepareMock: func() {
				service.EXPECT().GetDashboard(gomock.Any(), userID).Return(nil, fmt.Errorf("%w: user", domain.ErrNotFound))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "Internal server error",
			userID: userID,
			prepareMock: func() {
				service.EXPECT().GetDashboard(gomock.Any(), userID).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "Unauthorized",
			prepareMock:  func() {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/user/dashboard", nil)
			if tt.userID != uuid.Nil {
				r = r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, tt.userID))
			}
			w := httptest.NewRecorder()

			handler.GetDashboard(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.check != nil {
				var body dto.DashboardResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				tt.check(t, body)
			}
		})
	}
}
