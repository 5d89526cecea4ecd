package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"gatherly/internal/delivery/http/controllers"
)

// Middleware wraps a single route handler.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Gathering  *controllers.GatheringController
	Invitation *controllers.InvitationController
	Health     *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth guards gathering creation; acceptLimit throttles invitation acceptance.
func NewRouter(c Controllers, requireAuth, acceptLimit Middleware) *http.ServeMux {
	if requireAuth == nil {
		requireAuth = passthrough
	}
	if acceptLimit == nil {
		acceptLimit = passthrough
	}
	mux := http.NewServeMux()

	// Gatherings
	mux.HandleFunc("POST /gatherings", requireAuth(c.Gathering.CreateGathering))
	mux.HandleFunc("GET /gatherings/{gatheringID}", c.Gathering.GetGathering)

	// Invitations
	mux.HandleFunc("POST /invitations/{invitationID}/accept", acceptLimit(c.Invitation.AcceptInvitation))

	mux.HandleFunc("GET /healthz", c.Health.Healthz)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func passthrough(next http.HandlerFunc) http.HandlerFunc { return next }
