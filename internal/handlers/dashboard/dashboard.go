package dashboard

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/handlers/respond"
	"github.com/GlebRadaev/payledger/internal/service/dashboardservice"
	"github.com/GlebRadaev/payledger/pkg/utils"
	"github.com/google/uuid"
)

type Service interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*dashboardservice.Dashboard, error)
}

type DashboardHandler struct {
	dashboardService Service
}

func New(dashboardService Service) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
//
//	@Summary		Home view of the caller
//	@Description	Balance, its change over the last 24 hours, unread notifications, recent transactions and friends
//	@Tags			Dashboard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.DashboardResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	d, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewDashboardResponse(d))
}
