package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/example/hotel-console/internal/application"
	"github.com/example/hotel-console/internal/tokenstore"
)

const (
	adminLoginPath     = "/admin/login"
	adminDashboardPath = "/admin/dashboard"
)

var errInvalidBookingID = errors.New("invalid event booking id")

// AdminHandler serves the staff console.
type AdminHandler struct {
	bookings application.EventBookingGateway
	signIn   *application.SignInService
	policy   application.MutationPolicy
	renderer *Renderer
	logger   *slog.Logger
}

// AdminHandlerConfig wires an AdminHandler.
type AdminHandlerConfig struct {
	Bookings application.EventBookingGateway
	SignIn   *application.SignInService
	Policy   application.MutationPolicy
	Renderer *Renderer
	Logger   *slog.Logger
}

func NewAdminHandler(cfg AdminHandlerConfig) *AdminHandler {
	return &AdminHandler{
		bookings: cfg.Bookings,
		signIn:   cfg.SignIn,
		policy:   cfg.Policy,
		renderer: cfg.Renderer,
		logger:   defaultLogger(cfg.Logger),
	}
}

func (h *AdminHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AdminHandler", operation, attrs...)
}

func (h *AdminHandler) ready(w http.ResponseWriter) bool {
	if h == nil || h.renderer == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return false
	}
	return true
}

// guard lets granted sessions through. Anonymous browsers go to the login
// form and signed-in guests see the access denied page.
func (h *AdminHandler) guard(w http.ResponseWriter, r *http.Request) (tokenstore.Session, bool) {
	session := SessionFromContext(r.Context())
	switch application.GuardAdmin(session) {
	case application.AdminAccessLogin:
		redirect(w, adminLoginPath, http.StatusSeeOther)
		return session, false
	case application.AdminAccessDenied:
		h.log(r.Context(), "guard", "error_kind", "access_denied").InfoContext(r.Context(), "admin page refused", "path", r.URL.Path)
		h.renderer.render(w, r, http.StatusForbidden, "access_denied.html", adminPage("Access Denied", session, nil, nil))
		return session, false
	}
	return session, true
}

type adminLoginContent struct {
	Username string
	Errors   map[string]string
}

// LoginForm forgets any stored session before showing the form.
func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	ctx := r.Context()
	h.signIn.SignOut(ctx, BackendFromContext(ctx))
	h.renderer.render(w, r, http.StatusOK, "admin_login.html", adminPage("Staff Login", tokenstore.Session{}, nil, adminLoginContent{}))
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.log(ctx, "Login", "error_kind", "bad_request").WarnContext(ctx, "failed to parse login form", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	notices := &application.Notices{}
	err := h.signIn.SignInAdmin(ctx, BackendFromContext(ctx), username, r.PostFormValue("password"), notices)
	if err != nil {
		content := adminLoginContent{Username: username}
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			content.Errors = vErr.FieldErrors
		}
		h.log(ctx, "Login", "username", username).InfoContext(ctx, "staff sign in failed", "error_kind", application.ErrorKind(err))
		h.renderer.render(w, r, signInStatus(err), "admin_login.html", adminPage("Staff Login", tokenstore.Session{}, notices, content))
		return
	}

	session := SessionFromContext(ctx)
	h.renderer.render(w, r, http.StatusOK, "admin_dashboard.html", adminPage("Dashboard", session, notices, nil))
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	ctx := r.Context()
	h.signIn.SignOut(ctx, BackendFromContext(ctx))
	h.log(ctx, "Logout").InfoContext(ctx, "staff signed out")
	redirect(w, adminLoginPath, http.StatusSeeOther)
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	session, ok := h.guard(w, r)
	if !ok {
		return
	}
	h.renderer.render(w, r, http.StatusOK, "admin_dashboard.html", adminPage("Dashboard", session, nil, nil))
}

// mount builds the list view for this request and performs its initial load.
func (h *AdminHandler) mount(ctx context.Context, session tokenstore.Session, notices *application.Notices) *application.EventBookingsView {
	view := application.NewEventBookingsView(ctx, application.EventBookingsViewConfig{
		Gateway:  h.bookings,
		Token:    session.Token,
		Notifier: notices,
		Policy:   h.policy,
		Logger:   h.logger,
	})
	view.LoadAll(ctx)
	return view
}

func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	session, ok := h.guard(w, r)
	if !ok {
		return
	}
	notices := &application.Notices{}
	view := h.mount(r.Context(), session, notices)
	defer view.Close()

	h.renderer.render(w, r, http.StatusOK, "admin_events.html", adminPage("Events & Weddings", session, notices, view.Snapshot()))
}

// UpdateStatus applies the approve or reject action posted from the list.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	session, ok := h.guard(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id, err := bookingIDFromRequest(r)
	if err != nil {
		h.log(ctx, "UpdateStatus", "error_kind", "bad_request").WarnContext(ctx, "invalid booking id", "error", err)
		http.Error(w, errInvalidBookingID.Error(), http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.log(ctx, "UpdateStatus", "error_kind", "bad_request").WarnContext(ctx, "failed to parse status form", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	status := application.EventBookingStatus(strings.ToUpper(strings.TrimSpace(r.PostFormValue("status"))))
	if status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	notices := &application.Notices{}
	view := h.mount(ctx, session, notices)
	defer view.Close()

	result := view.UpdateStatus(ctx, id, status)
	h.log(ctx, "UpdateStatus", "booking_id", id, "status", status).InfoContext(ctx, "status update handled", "succeeded", result.Succeeded, "reloaded", result.Reloaded)
	h.renderer.render(w, r, mutationStatus(result), "admin_events.html", adminPage("Events & Weddings", session, notices, view.Snapshot()))
}

type confirmDeleteContent struct {
	ID      int64
	Booking *application.EventBooking
}

// ConfirmDelete is the confirmation step in front of DeleteRecord.
func (h *AdminHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	session, ok := h.guard(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id, err := bookingIDFromRequest(r)
	if err != nil {
		h.log(ctx, "ConfirmDelete", "error_kind", "bad_request").WarnContext(ctx, "invalid booking id", "error", err)
		http.Error(w, errInvalidBookingID.Error(), http.StatusBadRequest)
		return
	}

	notices := &application.Notices{}
	view := h.mount(ctx, session, notices)
	defer view.Close()

	content := confirmDeleteContent{ID: id}
	for _, record := range view.Records() {
		if record.ID == id {
			booking := record
			content.Booking = &booking
			break
		}
	}
	h.renderer.render(w, r, http.StatusOK, "admin_confirm_delete.html", adminPage("Delete?", session, notices, content))
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	session, ok := h.guard(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id, err := bookingIDFromRequest(r)
	if err != nil {
		h.log(ctx, "Delete", "error_kind", "bad_request").WarnContext(ctx, "invalid booking id", "error", err)
		http.Error(w, errInvalidBookingID.Error(), http.StatusBadRequest)
		return
	}

	notices := &application.Notices{}
	view := h.mount(ctx, session, notices)
	defer view.Close()

	result := view.DeleteRecord(ctx, id)
	h.log(ctx, "Delete", "booking_id", id).InfoContext(ctx, "delete handled", "succeeded", result.Succeeded, "reloaded", result.Reloaded)
	h.renderer.render(w, r, mutationStatus(result), "admin_events.html", adminPage("Events & Weddings", session, notices, view.Snapshot()))
}

// mutationStatus answers 502 when the API call failed and the list was not
// refreshed.
func mutationStatus(result application.MutationResult) int {
	if result.Err != nil && !result.Reloaded {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func bookingIDFromRequest(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidBookingID
	}
	return id, nil
}
