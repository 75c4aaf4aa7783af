package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/example/hotel-console/internal/tokenstore"
)

// MyEventRow is one rendered line of the guest's own event list.
type MyEventRow struct {
	EventBooking
	Color string
}

// MyEventsSnapshot is the renderable state of the guest's event list.
type MyEventsSnapshot struct {
	Loading bool
	Rows    []MyEventRow
}

// MyEventsViewConfig wires a MyEventsView.
type MyEventsViewConfig struct {
	Bookings EventBookingGateway
	Guests   GuestDirectory
	Session  tokenstore.Session
	Logger   *slog.Logger
}

// MyEventsView lists the event bookings of the signed-in guest.
type MyEventsView struct {
	bookings EventBookingGateway
	guests   GuestDirectory
	session  tokenstore.Session
	logger   *slog.Logger
	life     lifetime

	mu      sync.Mutex
	loading bool
	records []EventBooking
}

// NewMyEventsView binds a view to parent.
func NewMyEventsView(parent context.Context, cfg MyEventsViewConfig) *MyEventsView {
	return &MyEventsView{
		bookings: cfg.Bookings,
		guests:   cfg.Guests,
		session:  cfg.Session,
		logger:   defaultLogger(cfg.Logger),
		life:     newLifetime(parent),
		loading:  true,
	}
}

// Close cancels in-flight requests.
func (v *MyEventsView) Close() {
	if v == nil {
		return
	}
	v.life.close()
}

// Load resolves the guest and then fetches that guest's bookings. Without a
// session nothing is fetched. Every failure leaves the list empty and is only
// logged.
func (v *MyEventsView) Load(ctx context.Context) {
	if v == nil {
		return
	}
	logger := viewLogger(ctx, v.logger, "my_events", "load")
	defer v.settle()

	if !v.session.SignedIn() {
		logger.DebugContext(ctx, "no stored session, skipping fetch")
		return
	}
	if v.life.stale(ctx) || v.bookings == nil {
		return
	}

	bound, release := v.life.bind(ctx)
	defer release()

	guest, err := resolveGuest(bound, v.guests, v.session)
	if v.life.stale(ctx) {
		logger.DebugContext(ctx, "discarding guest lookup for closed view")
		return
	}
	if err != nil {
		if errors.Is(err, ErrGuestNotFound) {
			logger.InfoContext(ctx, "no guest record for session", "identity", v.session.User.Identity())
			return
		}
		logger.WarnContext(ctx, "guest lookup failed", "error", err, "error_kind", ErrorKind(err))
		return
	}

	records, err := v.bookings.ListEventBookings(bound, v.session.Token, EventBookingFilter{GuestID: guest.ID})
	if v.life.stale(ctx) {
		logger.DebugContext(ctx, "discarding bookings for closed view")
		return
	}
	if err != nil {
		logger.WarnContext(ctx, "failed to load guest event bookings", "guest_id", guest.ID, "error", err, "error_kind", ErrorKind(err))
		return
	}

	v.mu.Lock()
	v.records = records
	v.mu.Unlock()
}

func (v *MyEventsView) settle() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
}

// Snapshot returns the rows to render together with the loading flag.
func (v *MyEventsView) Snapshot() MyEventsSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	rows := make([]MyEventRow, 0, len(v.records))
	for _, record := range v.records {
		rows = append(rows, MyEventRow{EventBooking: record, Color: AccountStatusColor(record.Status)})
	}
	return MyEventsSnapshot{Loading: v.loading, Rows: rows}
}
