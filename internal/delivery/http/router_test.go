package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"gatherly/internal/delivery/http/controllers"
	"gatherly/internal/domain"
)

type stubGatherings struct{}

func (stubGatherings) CreateGathering(context.Context, domain.CreateGatheringCommand) (*domain.Gathering, error) {
	return nil, nil
}

func (stubGatherings) GetGathering(_ context.Context, id string) (*domain.Gathering, error) {
	return &domain.Gathering{ID: id, Rule: domain.FixedCapacityRule{MaximumAttendees: 1}}, nil
}

type stubInvitations struct{}

func (stubInvitations) AcceptInvitation(context.Context, domain.AcceptInvitationCommand) (*domain.AcceptanceOutcome, error) {
	return domain.Ignored(), nil
}

func newTestRouter(requireAuth, acceptLimit Middleware) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(Controllers{
		Gathering:  controllers.NewGatheringController(logger, stubGatherings{}),
		Invitation: controllers.NewInvitationController(logger, stubInvitations{}),
		Health:     controllers.NewHealthController(logger, nil),
	}, requireAuth, acceptLimit)
}

func TestNewRouter_routes(t *testing.T) {
	id := uuid.NewString()
	deny := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }
	}

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		requireAuth Middleware
		acceptLimit Middleware
		want        int
	}{
		{name: "get gathering", method: http.MethodGet, path: "/gatherings/" + id, want: http.StatusOK},
		{name: "accept invitation", method: http.MethodPost, path: "/invitations/" + id + "/accept", want: http.StatusOK},
		{name: "healthz", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "create without auth middleware reaches handler", method: http.MethodPost, path: "/gatherings",
			body: `{"type":"fixed_capacity","scheduled_at":"2025-09-01T18:00:00Z","name":"x","maximum_attendees":1}`, want: http.StatusUnauthorized},
		{name: "create goes through auth", method: http.MethodPost, path: "/gatherings", requireAuth: deny, want: http.StatusTeapot},
		{name: "accept goes through rate limit", method: http.MethodPost, path: "/invitations/" + id + "/accept", acceptLimit: deny, want: http.StatusTeapot},
		{name: "get is not guarded by auth", method: http.MethodGet, path: "/gatherings/" + id, requireAuth: deny, want: http.StatusOK},
		{name: "wrong method", method: http.MethodDelete, path: "/gatherings/" + id, want: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, path: "/events", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestRouter(tt.requireAuth, tt.acceptLimit)
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
