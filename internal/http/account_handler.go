package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/hotel-console/internal/application"
)

const (
	accountPath          = "/public/account"
	accountDashboardPath = "/public/account/dashboard"
)

// AccountHandler serves the signed-in guest area of the public site.
type AccountHandler struct {
	bookings application.EventBookingGateway
	guests   application.GuestDirectory
	signIn   *application.SignInService
	renderer *Renderer
	logger   *slog.Logger
}

// AccountHandlerConfig wires an AccountHandler.
type AccountHandlerConfig struct {
	Bookings application.EventBookingGateway
	Guests   application.GuestDirectory
	SignIn   *application.SignInService
	Renderer *Renderer
	Logger   *slog.Logger
}

func NewAccountHandler(cfg AccountHandlerConfig) *AccountHandler {
	return &AccountHandler{
		bookings: cfg.Bookings,
		guests:   cfg.Guests,
		signIn:   cfg.SignIn,
		renderer: cfg.Renderer,
		logger:   defaultLogger(cfg.Logger),
	}
}

func (h *AccountHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AccountHandler", operation, attrs...)
}

func (h *AccountHandler) ready(w http.ResponseWriter) bool {
	if h == nil || h.renderer == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return false
	}
	return true
}

type accountLoginContent struct {
	Email  string
	Errors map[string]string
}

// Entry sends signed-in guests to their dashboard and shows the sign-in form otherwise.
func (h *AccountHandler) Entry(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	session := SessionFromContext(r.Context())
	if session.SignedIn() {
		redirect(w, accountDashboardPath, http.StatusFound)
		return
	}
	h.renderer.render(w, r, http.StatusOK, "account_login.html", publicPage("Sign in", session, nil, accountLoginContent{}))
}

func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.log(ctx, "SignIn", "error_kind", "bad_request").WarnContext(ctx, "failed to parse sign in form", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	notices := &application.Notices{}
	backend := BackendFromContext(ctx)
	err := h.signIn.SignInGuest(ctx, backend, email, r.PostFormValue("password"), notices)
	if err != nil {
		content := accountLoginContent{Email: email}
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			content.Errors = vErr.FieldErrors
		}
		h.log(ctx, "SignIn").InfoContext(ctx, "guest sign in failed", "error_kind", application.ErrorKind(err))
		session := SessionFromContext(ctx)
		h.renderer.render(w, r, signInStatus(err), "account_login.html", publicPage("Sign in", session, notices, content))
		return
	}

	session := SessionFromContext(ctx)
	h.renderer.render(w, r, http.StatusOK, "account_dashboard.html", publicPage("My Account", session, notices, nil))
}

func (h *AccountHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	session := SessionFromContext(r.Context())
	if !session.SignedIn() {
		redirect(w, accountPath, http.StatusSeeOther)
		return
	}
	h.renderer.render(w, r, http.StatusOK, "account_dashboard.html", publicPage("My Account", session, nil, nil))
}

func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	ctx := r.Context()
	h.signIn.SignOut(ctx, BackendFromContext(ctx))
	h.log(ctx, "SignOut").InfoContext(ctx, "guest signed out")
	redirect(w, "/public", http.StatusSeeOther)
}

// MyEvents lists the bookings of the signed-in guest. Without a session the
// page renders empty and no request reaches the API.
func (h *AccountHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	ctx := r.Context()
	session := SessionFromContext(ctx)
	view := application.NewMyEventsView(ctx, application.MyEventsViewConfig{
		Bookings: h.bookings,
		Guests:   h.guests,
		Session:  session,
		Logger:   h.logger,
	})
	defer view.Close()

	view.Load(ctx)
	h.renderer.render(w, r, http.StatusOK, "my_events.html", publicPage("My Events", session, nil, view.Snapshot()))
}

type planEventContent struct {
	Submitted bool
	Input     application.PlanEventInput
	Errors    map[string]string
}

func (h *AccountHandler) PlanEventForm(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	session := SessionFromContext(r.Context())
	content := planEventContent{Input: application.PlanEventInput{EventType: string(application.EventTypeWedding)}}
	h.renderer.render(w, r, http.StatusOK, "plan_event.html", publicPage("Plan an Event", session, nil, content))
}

func (h *AccountHandler) PlanEvent(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.log(ctx, "PlanEvent", "error_kind", "bad_request").WarnContext(ctx, "failed to parse event form", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	attendees, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("attendees")))
	input := application.PlanEventInput{
		EventType:       r.PostFormValue("event_type"),
		StartDate:       r.PostFormValue("start_date"),
		EndDate:         r.PostFormValue("end_date"),
		Attendees:       attendees,
		BudgetNotes:     r.PostFormValue("budget_notes"),
		SpecialRequests: r.PostFormValue("special_requests"),
	}

	session := SessionFromContext(ctx)
	notices := &application.Notices{}
	view := application.NewPlanEventView(h.bookings, h.guests, session, notices, h.logger)
	created, err := view.Submit(ctx, input)
	if err != nil {
		content := planEventContent{Input: input}
		status := http.StatusBadGateway
		var vErr *application.ValidationError
		switch {
		case errors.As(err, &vErr):
			content.Errors = vErr.FieldErrors
			status = http.StatusUnprocessableEntity
		case errors.Is(err, application.ErrNotSignedIn):
			status = http.StatusUnauthorized
		case errors.Is(err, application.ErrGuestNotFound):
			status = http.StatusNotFound
		}
		h.log(ctx, "PlanEvent").InfoContext(ctx, "event request not submitted", "status", status, "error_kind", application.ErrorKind(err))
		h.renderer.render(w, r, status, "plan_event.html", publicPage("Plan an Event", session, notices, content))
		return
	}

	h.log(ctx, "PlanEvent", "booking_id", created.ID).InfoContext(ctx, "event request submitted")
	h.renderer.render(w, r, http.StatusCreated, "plan_event.html", publicPage("Plan an Event", session, notices, planEventContent{Submitted: true}))
}

func signInStatus(err error) int {
	var vErr *application.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, application.ErrInvalidCredentials), errors.Is(err, application.ErrRemoteRejected):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}
