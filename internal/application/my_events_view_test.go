package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/hotel-console/internal/tokenstore"
)

func TestMyEventsView_Load(t *testing.T) {
	t.Run("no session issues no fetch and settles empty", func(t *testing.T) {
		bookings := &bookingGatewayStub{}
		guests := &guestDirectoryStub{}
		view := NewMyEventsView(context.Background(), MyEventsViewConfig{Bookings: bookings, Guests: guests})
		defer view.Close()

		if !view.Snapshot().Loading {
			t.Fatalf("expected a fresh view to be loading")
		}

		view.Load(context.Background())

		snapshot := view.Snapshot()
		if snapshot.Loading || len(snapshot.Rows) != 0 {
			t.Fatalf("expected settled empty state, got %+v", snapshot)
		}
		if len(guests.emails) != 0 || bookings.listCount() != 0 {
			t.Fatalf("expected no fetch without a session")
		}
	})

	t.Run("token without user is not a session", func(t *testing.T) {
		guests := &guestDirectoryStub{}
		view := NewMyEventsView(context.Background(), MyEventsViewConfig{
			Bookings: &bookingGatewayStub{},
			Guests:   guests,
			Session:  tokenstore.Session{Token: "tok"},
		})
		defer view.Close()

		view.Load(context.Background())

		if len(guests.emails) != 0 {
			t.Fatalf("expected no guest lookup")
		}
	})

	t.Run("zero guest matches renders empty", func(t *testing.T) {
		bookings := &bookingGatewayStub{}
		guests := &guestDirectoryStub{}
		view := NewMyEventsView(context.Background(), MyEventsViewConfig{
			Bookings: bookings,
			Guests:   guests,
			Session:  signedInSession("tok", map[string]any{"email": "ann@example.com"}),
		})
		defer view.Close()

		view.Load(context.Background())

		if len(guests.emails) != 1 || guests.emails[0] != "ann@example.com" {
			t.Fatalf("unexpected guest lookups %v", guests.emails)
		}
		if bookings.listCount() != 0 {
			t.Fatalf("expected no booking fetch without a guest")
		}
		if snapshot := view.Snapshot(); snapshot.Loading || len(snapshot.Rows) != 0 {
			t.Fatalf("expected empty state, got %+v", snapshot)
		}
	})

	t.Run("first guest match wins", func(t *testing.T) {
		bookings := &bookingGatewayStub{listResponses: [][]EventBooking{{
			{ID: 4, GuestID: 11, Status: StatusConfirmed},
			{ID: 5, GuestID: 11, Status: StatusPending},
		}}}
		guests := &guestDirectoryStub{guests: []Guest{{ID: 11, Email: "ann@example.com"}, {ID: 12, Email: "ann@example.com"}}}
		view := NewMyEventsView(context.Background(), MyEventsViewConfig{
			Bookings: bookings,
			Guests:   guests,
			Session:  signedInSession("tok", map[string]any{"username": "ann@example.com"}),
		})
		defer view.Close()

		view.Load(context.Background())

		if bookings.listCalls[0].filter.GuestID != 11 || bookings.listCalls[0].token != "tok" {
			t.Fatalf("unexpected list call %+v", bookings.listCalls[0])
		}
		rows := view.Snapshot().Rows
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].Color != "green" || rows[1].Color != "orange" {
			t.Fatalf("unexpected colours %q %q", rows[0].Color, rows[1].Color)
		}
	})

	t.Run("lookup failure is logged only", func(t *testing.T) {
		bookings := &bookingGatewayStub{}
		view := NewMyEventsView(context.Background(), MyEventsViewConfig{
			Bookings: bookings,
			Guests:   &guestDirectoryStub{err: errors.New("boom")},
			Session:  signedInSession("tok", map[string]any{"email": "ann@example.com"}),
		})
		defer view.Close()

		view.Load(context.Background())

		if snapshot := view.Snapshot(); snapshot.Loading || len(snapshot.Rows) != 0 {
			t.Fatalf("expected empty state, got %+v", snapshot)
		}
		if bookings.listCount() != 0 {
			t.Fatalf("expected no booking fetch")
		}
	})
}
