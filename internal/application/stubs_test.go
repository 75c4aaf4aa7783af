package application

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/example/hotel-console/internal/tokenstore"
)

type listCall struct {
	token  string
	filter EventBookingFilter
}

type updateCall struct {
	token  string
	id     int64
	status EventBookingStatus
}

type bookingGatewayStub struct {
	mu sync.Mutex

	listResponses [][]EventBooking
	listErrs      []error
	listCalls     []listCall
	onList        func(ctx context.Context, call int) error

	updateErr   error
	updateCalls []updateCall
	onUpdate    func()

	deleteErr   error
	deletedIDs  []int64
	createErr   error
	created     []NewEventBooking
	createdResp EventBooking
}

func (s *bookingGatewayStub) ListEventBookings(ctx context.Context, token string, filter EventBookingFilter) ([]EventBooking, error) {
	s.mu.Lock()
	call := len(s.listCalls)
	s.listCalls = append(s.listCalls, listCall{token: token, filter: filter})
	hook := s.onList
	s.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, call); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if call < len(s.listErrs) && s.listErrs[call] != nil {
		return nil, s.listErrs[call]
	}
	if len(s.listResponses) == 0 {
		return nil, nil
	}
	if call >= len(s.listResponses) {
		call = len(s.listResponses) - 1
	}
	out := make([]EventBooking, len(s.listResponses[call]))
	copy(out, s.listResponses[call])
	return out, nil
}

func (s *bookingGatewayStub) CreateEventBooking(ctx context.Context, token string, booking NewEventBooking) (EventBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, booking)
	if s.createErr != nil {
		return EventBooking{}, s.createErr
	}
	return s.createdResp, nil
}

func (s *bookingGatewayStub) UpdateEventBookingStatus(ctx context.Context, token string, id int64, status EventBookingStatus) error {
	s.mu.Lock()
	s.updateCalls = append(s.updateCalls, updateCall{token: token, id: id, status: status})
	hook := s.onUpdate
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return s.updateErr
}

func (s *bookingGatewayStub) DeleteEventBooking(ctx context.Context, token string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletedIDs = append(s.deletedIDs, id)
	return s.deleteErr
}

func (s *bookingGatewayStub) listCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listCalls)
}

type guestDirectoryStub struct {
	guests  []Guest
	err     error
	emails  []string
	results map[string][]Guest
}

func (g *guestDirectoryStub) FindGuestsByEmail(ctx context.Context, token, email string) ([]Guest, error) {
	g.emails = append(g.emails, email)
	if g.err != nil {
		return nil, g.err
	}
	if g.results != nil {
		return g.results[email], nil
	}
	return g.guests, nil
}

type blogSourceStub struct {
	blogs []Blog
	err   error
	calls int
}

func (b *blogSourceStub) ListBlogs(ctx context.Context) ([]Blog, error) {
	b.calls++
	return b.blogs, b.err
}

type authenticatorStub struct {
	result LoginResult
	err    error
	calls  int
}

func (a *authenticatorStub) Login(ctx context.Context, username, password string) (LoginResult, error) {
	a.calls++
	return a.result, a.err
}

type memoryBackend map[string]string

func (m memoryBackend) Get(_ context.Context, key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memoryBackend) Set(_ context.Context, key, value string) { m[key] = value }

func (m memoryBackend) Remove(_ context.Context, key string) { delete(m, key) }

func signedInSession(token string, user map[string]any) tokenstore.Session {
	raw, err := json.Marshal(user)
	if err != nil {
		panic(err)
	}
	parsed, err := tokenstore.ParseUser(raw)
	if err != nil {
		panic(err)
	}
	return tokenstore.Session{Token: token, User: parsed}
}

type remoteErr struct {
	detail string
}

func (e remoteErr) Error() string      { return "remote: " + e.detail }
func (e remoteErr) UserDetail() string { return e.detail }
func (e remoteErr) Unwrap() error      { return ErrRemoteRejected }
