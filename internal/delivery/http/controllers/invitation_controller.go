package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/domain"
)

// AcceptInvitationSuccessResponse is the success response envelope for
// POST /invitations/{invitationID}/accept (200).
type AcceptInvitationSuccessResponse struct {
	Data  *domain.AcceptanceOutcome `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// AcceptInvitation godoc
// @Summary Accept an invitation
// @Description Resolves a pending invitation. The outcome is "accepted" (attendee added), "expired" (gathering full or invitations closed) or "ignored" (invitation missing or already resolved).
// @Tags invitations
// @Produce json
// @Param invitationID path string true "Invitation ID (UUID)"
// @Success 200 {object} controllers.AcceptInvitationSuccessResponse "data.outcome is accepted, expired or ignored"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{invitationID}/accept [post]
func (c *InvitationController) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if _, err := uuid.Parse(invitationID); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invitationID must be a valid UUID")
		return
	}
	out, err := c.Service.AcceptInvitation(r.Context(), domain.AcceptInvitationCommand{InvitationID: invitationID})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConcurrencyConflict):
			c.Logger.WarnContext(r.Context(), "accept invitation conflict", "invitation_id", invitationID, "err", err)
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "gathering is busy, please retry")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to accept invitation")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}
