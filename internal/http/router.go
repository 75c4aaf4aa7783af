package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
)

// RouterConfig collects the handlers and middleware of the console.
type RouterConfig struct {
	Public     *PublicHandler
	Account    *AccountHandler
	Admin      *AdminHandler
	Health     *HealthHandler
	Middleware []func(http.Handler) http.Handler
	// CSRFKey enables form protection when non-empty. It must be 32 bytes.
	CSRFKey       []byte
	SecureCookies bool
	Logger        *slog.Logger
}

// NewRouter assembles the console routes. Middleware is applied in order,
// outermost first, around CSRF protection.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Handle("/", RedirectShim("/public")).Methods(http.MethodGet)
	r.Handle("/admin", RedirectShim(adminDashboardPath)).Methods(http.MethodGet)

	if cfg.Public != nil {
		r.HandleFunc("/public", cfg.Public.Landing).Methods(http.MethodGet)
		r.HandleFunc("/public/blogs", cfg.Public.Blogs).Methods(http.MethodGet)
	}

	if cfg.Account != nil {
		r.HandleFunc(accountPath, cfg.Account.Entry).Methods(http.MethodGet)
		r.HandleFunc(accountPath, cfg.Account.SignIn).Methods(http.MethodPost)
		r.HandleFunc(accountDashboardPath, cfg.Account.Dashboard).Methods(http.MethodGet)
		r.HandleFunc("/public/account/logout", cfg.Account.SignOut).Methods(http.MethodPost)
		r.HandleFunc("/public/account/events", cfg.Account.MyEvents).Methods(http.MethodGet)
		r.HandleFunc("/public/account/events/new", cfg.Account.PlanEventForm).Methods(http.MethodGet)
		r.HandleFunc("/public/account/events/new", cfg.Account.PlanEvent).Methods(http.MethodPost)
	}

	if cfg.Admin != nil {
		r.HandleFunc(adminLoginPath, cfg.Admin.LoginForm).Methods(http.MethodGet)
		r.HandleFunc(adminLoginPath, cfg.Admin.Login).Methods(http.MethodPost)
		r.HandleFunc("/admin/logout", cfg.Admin.Logout).Methods(http.MethodPost)
		r.HandleFunc(adminDashboardPath, cfg.Admin.Dashboard).Methods(http.MethodGet)
		r.HandleFunc("/admin/events", cfg.Admin.Events).Methods(http.MethodGet)
		r.HandleFunc("/admin/events/{id:[0-9]+}/status", cfg.Admin.UpdateStatus).Methods(http.MethodPost)
		r.HandleFunc("/admin/events/{id:[0-9]+}/delete", cfg.Admin.ConfirmDelete).Methods(http.MethodGet)
		r.HandleFunc("/admin/events/{id:[0-9]+}/delete", cfg.Admin.Delete).Methods(http.MethodPost)
	}

	if cfg.Health != nil {
		r.HandleFunc("/healthz", cfg.Health.Live).Methods(http.MethodGet)
	}

	var handler http.Handler = r
	if len(cfg.CSRFKey) > 0 {
		rsp := newResponder(defaultLogger(cfg.Logger))
		protect := csrf.Protect(cfg.CSRFKey,
			csrf.Secure(cfg.SecureCookies),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				rsp.writeError(r.Context(), w, http.StatusForbidden, csrf.FailureReason(r))
			})),
		)
		handler = protect(handler)
	}

	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		handler = cfg.Middleware[i](handler)
	}
	return handler
}
