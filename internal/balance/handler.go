package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mlarsson/splittab/pkg/logger"
	"github.com/mlarsson/splittab/pkg/middleware"
	"github.com/mlarsson/splittab/pkg/response"
)

// BalanceResponse carries a single signed net balance
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetUserBalance)
	r.Get("/group/{groupId}", h.GetGroupBalance)

	return r
}

// GetUserBalance handles GET /balance
// @Summary      Get the caller's overall balance
// @Description  Net balance across all groups; positive = owed money, negative = owes
// @Tags         balance
// @Produce      json
// @Success      200 {object} response.APIResponse{data=BalanceResponse}
// @Router       /balance [get]
func (h *Handler) GetUserBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	bal, err := h.service.GetUserBalance(r.Context(), userID)
	if err != nil {
		logger.Get().Errorw("failed to get balance", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to get balance")
		return
	}

	response.JSON(w, http.StatusOK, BalanceResponse{Balance: bal})
}

// GetGroupBalance handles GET /balance/group/{groupId}
// @Summary      Get the caller's balance within a group
// @Description  Net balance scoped to one group; positive = owed money, negative = owes
// @Tags         balance
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=BalanceResponse}
// @Router       /balance/group/{groupId} [get]
func (h *Handler) GetGroupBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	groupID := chi.URLParam(r, "groupId")

	bal, err := h.service.GetGroupBalance(r.Context(), userID, groupID)
	if err != nil {
		logger.Get().Errorw("failed to get group balance", "error", err, "user_id", userID, "group_id", groupID)
		response.InternalError(w, "Failed to get group balance")
		return
	}

	response.JSON(w, http.StatusOK, BalanceResponse{Balance: bal})
}
