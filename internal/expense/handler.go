package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mlarsson/splittab/internal/expense/split"
	"github.com/mlarsson/splittab/pkg/logger"
	"github.com/mlarsson/splittab/pkg/middleware"
	"github.com/mlarsson/splittab/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/recent", h.RecentActivity)
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// Create handles POST /expenses
// @Summary      Create a new expense
// @Description  Create an expense split evenly among the group members other than the payer
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.CreateExpense(r.Context(), payerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrTitleRequired),
			errors.Is(err, ErrPayerNotMember),
			errors.Is(err, ErrSplitSumMismatch),
			errors.Is(err, split.ErrNonPositiveAmount),
			errors.Is(err, split.ErrInsufficientMembers):
			response.BadRequest(w, err.Error())
		default:
			logger.Get().Errorw("failed to create expense", "error", err, "payer_id", payerID)
			response.InternalError(w, "Failed to create expense")
		}
		return
	}

	resp := result.Expense.ToResponse()
	resp.Splits = make([]*SplitResponse, len(result.Splits))
	for i, s := range result.Splits {
		resp.Splits[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusCreated, resp)
}

// RecentActivity handles GET /expenses/recent
// @Summary      Get the caller's recent activity
// @Description  Newest expenses the caller is party to, annotated with the caller's signed share
// @Tags         expenses
// @Produce      json
// @Param        limit query int false "Maximum number of items" default(10)
// @Success      200 {object} response.APIResponse{data=[]ActivityResponse}
// @Router       /expenses/recent [get]
func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.service.GetRecentActivity(r.Context(), userID, limit)
	if err != nil {
		logger.Get().Errorw("failed to get recent activity", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to get recent activity")
		return
	}

	resp := make([]*ActivityResponse, len(items))
	for i, item := range items {
		resp[i] = item.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// ListByGroup handles GET /expenses/group/{groupId}
// @Summary      List expenses by group
// @Description  Get a group's expense history with splits, newest first
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")

	result, err := h.service.ListByGroupID(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		logger.Get().Errorw("failed to list group expenses", "error", err, "group_id", groupID)
		response.InternalError(w, "Failed to list expenses")
		return
	}

	resp := make([]*ExpenseResponse, len(result))
	for i, e := range result {
		expenseResp := e.Expense.ToResponse()
		expenseResp.Splits = make([]*SplitResponse, len(e.Splits))
		for j, s := range e.Splits {
			expenseResp.Splits[j] = s.ToResponse()
		}
		resp[i] = expenseResp
	}

	response.JSON(w, http.StatusOK, resp)
}
