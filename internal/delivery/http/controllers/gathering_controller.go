package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/delivery/http/middleware"
	"gatherly/internal/domain"
)

// CreateGatheringRequest is the request body for POST /gatherings.
// Exactly one of maximum_attendees (fixed_capacity) or invitations_valid_before_hours
// (expiring_invitations) is read, depending on type.
type CreateGatheringRequest struct {
	Type                        string    `json:"type" validate:"required" example:"fixed_capacity"`
	ScheduledAt                 time.Time `json:"scheduled_at" validate:"required"`
	Name                        string    `json:"name" validate:"required,max=200"`
	Location                    string    `json:"location" validate:"max=200"`
	MaximumAttendees            *int      `json:"maximum_attendees,omitempty" validate:"omitempty,gt=0"`
	InvitationsValidBeforeHours *int      `json:"invitations_valid_before_hours,omitempty" validate:"omitempty,gte=0,lte=2562047"`
}

// CreateGatheringSuccessResponse is the success response envelope for POST /gatherings (201).
type CreateGatheringSuccessResponse struct {
	Data  *domain.Gathering `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetGatheringSuccessResponse is the success response envelope for GET /gatherings/{gatheringID} (200).
type GetGatheringSuccessResponse struct {
	Data  *domain.Gathering `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type GatheringController struct {
	Logger  *slog.Logger
	Service domain.GatheringService
}

func NewGatheringController(logger *slog.Logger, svc domain.GatheringService) *GatheringController {
	return &GatheringController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateGathering godoc
// @Summary Create a gathering
// @Description Create a gathering owned by the authenticated member. fixed_capacity requires maximum_attendees; expiring_invitations requires invitations_valid_before_hours. Returns 204 when the member does not exist.
// @Tags gatherings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gathering body CreateGatheringRequest true "Gathering data"
// @Success 201 {object} controllers.CreateGatheringSuccessResponse "data contains the created gathering"
// @Success 204 "creator member not found, nothing created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gatherings [post]
func (c *GatheringController) CreateGathering(w http.ResponseWriter, r *http.Request) {
	var req CreateGatheringRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	g, err := c.Service.CreateGathering(r.Context(), domain.CreateGatheringCommand{
		MemberID:                    memberID,
		Type:                        domain.GatheringType(req.Type),
		ScheduledAt:                 req.ScheduledAt,
		Name:                        req.Name,
		Location:                    req.Location,
		MaximumAttendees:            req.MaximumAttendees,
		InvitationsValidBeforeHours: req.InvitationsValidBeforeHours,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to create gathering")
		return
	}
	if g == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, g)
}

// GetGathering godoc
// @Summary Get a gathering by ID
// @Description Returns the gathering with its creator and attendees.
// @Tags gatherings
// @Produce json
// @Param gatheringID path string true "Gathering ID (UUID)"
// @Success 200 {object} controllers.GetGatheringSuccessResponse "data contains the gathering"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gatherings/{gatheringID} [get]
func (c *GatheringController) GetGathering(w http.ResponseWriter, r *http.Request) {
	gatheringID := r.PathValue("gatheringID")
	if _, err := uuid.Parse(gatheringID); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "gatheringID must be a valid UUID")
		return
	}
	g, err := c.Service.GetGathering(r.Context(), gatheringID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "gathering not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to get gathering")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, g)
}
