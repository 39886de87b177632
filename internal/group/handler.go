package group

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlarsson/splittab/pkg/logger"
	"github.com/mlarsson/splittab/pkg/middleware"
	"github.com/mlarsson/splittab/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListForUser)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/members", h.AddMember)

	return r
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a group; the creator automatically joins as its first member
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	group, err := h.service.Create(r.Context(), creatorID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		logger.Get().Errorw("failed to create group", "error", err)
		response.InternalError(w, "Failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, group.ToResponse())
}

// ListForUser handles GET /groups
// @Summary      List the caller's groups
// @Description  Get all groups the caller belongs to, with members and the caller's balance in each
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupSummaryResponse}
// @Router       /groups [get]
func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	summaries, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		logger.Get().Errorw("failed to list groups", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to list groups")
		return
	}

	resp := make([]*GroupSummaryResponse, len(summaries))
	for i, summary := range summaries {
		groupResp := summary.Group.ToResponse()
		groupResp.Members = make([]*MemberResponse, len(summary.Members))
		for j, m := range summary.Members {
			groupResp.Members[j] = m.ToResponse()
		}
		resp[i] = &GroupSummaryResponse{
			GroupResponse: groupResp,
			MemberCount:   len(summary.Members),
			UserBalance:   summary.UserBalance,
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

// GetByID handles GET /groups/{id}
// @Summary      Get group by ID
// @Description  Get a group with all its members
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	group, members, err := h.service.GetByIDWithMembers(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		logger.Get().Errorw("failed to get group", "error", err, "group_id", id)
		response.InternalError(w, "Failed to get group")
		return
	}

	groupResp := group.ToResponse()
	groupResp.Members = make([]*MemberResponse, len(members))
	for i, m := range members {
		groupResp.Members[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, groupResp)
}

// AddMember handles POST /groups/{id}/members
// @Summary      Add a member to a group
// @Description  Append a user to the group's membership
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id path string true "Group ID"
// @Param        request body AddMemberRequest true "Member to add"
// @Success      201 {object} response.APIResponse{data=MemberResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/{id}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.UserID == "" {
		response.BadRequest(w, "user_id is required")
		return
	}

	member, err := h.service.AddMember(r.Context(), groupID, req.UserID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrMemberAlreadyExists) {
			response.Conflict(w, err.Error())
			return
		}
		logger.Get().Errorw("failed to add member", "error", err, "group_id", groupID)
		response.InternalError(w, "Failed to add member")
		return
	}

	response.JSON(w, http.StatusCreated, member.ToResponse())
}
