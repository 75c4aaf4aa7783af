package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/example/hotel-console/internal/application"
	"github.com/example/hotel-console/internal/testfixtures"
	"github.com/example/hotel-console/internal/tokenstore"
)

var errTransport = errors.New("dial tcp 127.0.0.1:8000: connection refused")

func rejected(status int) error {
	return fmt.Errorf("%w: status %d", application.ErrRemoteRejected, status)
}

type bookingsStub struct {
	mu        sync.Mutex
	records   []application.EventBooking
	listCalls int
	filters   []application.EventBookingFilter
	tokens    []string
	updateErr error
	updates   []application.EventBookingStatus
	deleteErr error
	deleted   []int64
	created   []application.NewEventBooking
}

func (s *bookingsStub) ListEventBookings(ctx context.Context, token string, filter application.EventBookingFilter) ([]application.EventBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	s.filters = append(s.filters, filter)
	s.tokens = append(s.tokens, token)
	out := make([]application.EventBooking, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *bookingsStub) CreateEventBooking(ctx context.Context, token string, booking application.NewEventBooking) (application.EventBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, booking)
	return application.EventBooking{ID: 99, GuestID: booking.GuestID, EventType: booking.EventType, Status: booking.Status}, nil
}

func (s *bookingsStub) UpdateEventBookingStatus(ctx context.Context, token string, id int64, status application.EventBookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, status)
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = status
		}
	}
	return nil
}

func (s *bookingsStub) DeleteEventBooking(ctx context.Context, token string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	kept := s.records[:0]
	for _, record := range s.records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}
	s.records = kept
	return nil
}

func (s *bookingsStub) lists() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

type guestsStub struct {
	mu      sync.Mutex
	guests  []application.Guest
	lookups []string
}

func (s *guestsStub) FindGuestsByEmail(ctx context.Context, token, email string) ([]application.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups = append(s.lookups, email)
	return s.guests, nil
}

type blogsStub struct {
	blogs []application.Blog
	err   error
}

func (s *blogsStub) ListBlogs(ctx context.Context) ([]application.Blog, error) {
	return s.blogs, s.err
}

type authStub struct {
	result application.LoginResult
	err    error
}

func (s *authStub) Login(ctx context.Context, username, password string) (application.LoginResult, error) {
	return s.result, s.err
}

type pingStub struct{ err error }

func (p pingStub) Ping(ctx context.Context) error { return p.err }

type testEnv struct {
	t        *testing.T
	harness  *testfixtures.SQLiteHarness
	ids      *testfixtures.ProfileIDs
	bookings *bookingsStub
	guests   *guestsStub
	blogs    *blogsStub
	auth     *authStub
	handler  http.Handler
}

type envOption func(*RouterConfig, *AdminHandlerConfig)

func withPolicy(policy application.MutationPolicy) envOption {
	return func(_ *RouterConfig, admin *AdminHandlerConfig) { admin.Policy = policy }
}

func withCSRFKey(key []byte) envOption {
	return func(router *RouterConfig, _ *AdminHandlerConfig) { router.CSRFKey = key }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	renderer, err := NewRenderer(nil)
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	env := &testEnv{
		t:        t,
		harness:  testfixtures.NewSQLiteHarness(t),
		ids:      testfixtures.NewProfileIDs(),
		bookings: &bookingsStub{},
		guests:   &guestsStub{},
		blogs:    &blogsStub{},
		auth:     &authStub{},
	}
	signIn := application.NewSignInService(env.auth, nil)

	adminCfg := AdminHandlerConfig{Bookings: env.bookings, SignIn: signIn, Renderer: renderer}
	routerCfg := RouterConfig{
		Public: NewPublicHandler(env.blogs, renderer, nil),
		Account: NewAccountHandler(AccountHandlerConfig{
			Bookings: env.bookings,
			Guests:   env.guests,
			SignIn:   signIn,
			Renderer: renderer,
		}),
		Health: NewHealthHandler(pingStub{}, nil),
		Middleware: []func(http.Handler) http.Handler{
			RequestLogger(nil),
			StorageProfile(env.harness.Storage, ProfileOptions{NewID: env.ids.NextFunc()}),
		},
	}
	for _, opt := range opts {
		opt(&routerCfg, &adminCfg)
	}
	routerCfg.Admin = NewAdminHandler(adminCfg)
	env.handler = NewRouter(routerCfg)
	return env
}

// profile seeds a storage profile and returns the cookie naming it.
func (e *testEnv) profile(values map[string]string) *http.Cookie {
	e.t.Helper()
	id := e.ids.Next()
	e.harness.Seed(e.t, id, values)
	return &http.Cookie{Name: ProfileCookieName, Value: id}
}

func (e *testEnv) staffProfile() *http.Cookie {
	return e.profile(map[string]string{tokenstore.AuthTokenKey: "staff-token", tokenstore.UserKey: testfixtures.StaffUser()})
}

func (e *testEnv) guestProfile(email string) *http.Cookie {
	return e.profile(map[string]string{tokenstore.AuthTokenKey: "guest-token", tokenstore.UserKey: testfixtures.GuestUser(email)})
}

func (e *testEnv) do(method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func rawUser(t *testing.T, fields map[string]any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	return raw
}

func pendingBooking(id int64) application.EventBooking {
	return application.EventBooking{
		ID:         id,
		GuestID:    11,
		GuestName:  "Ann Lee",
		GuestEmail: "ann@example.com",
		EventType:  application.EventTypeWedding,
		StartDate:  "2026-06-20",
		EndDate:    "2026-06-21",
		Attendees:  120,
		Status:     application.StatusPending,
	}
}
