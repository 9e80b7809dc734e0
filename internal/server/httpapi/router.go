// Package httpapi exposes the account and registration operations as a JSON
// API over HTTP, with the session carried in an HTTP-only cookie.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/yukta/symposium/internal/logging"
	"github.com/yukta/symposium/internal/server/auth"
	"github.com/yukta/symposium/internal/server/models"
	"github.com/yukta/symposium/internal/server/services"
)

// AuthService is the account side of the API.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*services.Session, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	SignOut(ctx context.Context) error
	WhoAmI(ctx context.Context, token string) (*auth.Claims, error)
}

// RegistrationService is the event registration side of the API.
type RegistrationService interface {
	Register(ctx context.Context, claims *auth.Claims, eventID string) (bool, error)
	ListMine(ctx context.Context, claims *auth.Claims) ([]string, error)
}

// Catalog lists the events on offer.
type Catalog interface {
	All() []models.Event
	Get(id string) (models.Event, error)
}

// Pinger reports database reachability for /healthz.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options carries everything NewRouter wires together.
type Options struct {
	Auth          AuthService
	Registrations RegistrationService
	Catalog       Catalog
	DB            Pinger
	Cookie        CookieConfig
	CORSOrigins   []string
	Logger        logging.Logger
}

type handler struct {
	auth          AuthService
	registrations RegistrationService
	catalog       Catalog
	db            Pinger
	cookie        CookieConfig
	logger        logging.Logger
}

// NewRouter builds the API routes and middleware chain.
func NewRouter(o Options) http.Handler {
	h := &handler{
		auth:          o.Auth,
		registrations: o.Registrations,
		catalog:       o.Catalog,
		db:            o.DB,
		cookie:        o.Cookie,
		logger:        o.Logger.With("module", "http"),
	}

	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog(h.logger))
	r.Use(recoverer(h.logger))

	if len(o.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   o.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", h.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.signUp)
		r.Post("/auth/signin", h.signIn)
		r.Post("/auth/signout", h.signOut)
		r.Get("/auth/me", h.me)

		r.Get("/events", h.listEvents)
		r.Get("/events/{id}", h.getEvent)

		r.Group(func(r chi.Router) {
			r.Use(Gate(h.auth, h.cookie.Name))
			r.Post("/events/register", h.register)
			r.Get("/user/registrations", h.myRegistrations)
		})
	})

	return r
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
