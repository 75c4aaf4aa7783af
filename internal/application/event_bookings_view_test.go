package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func pendingBooking(id int64) EventBooking {
	return EventBooking{ID: id, GuestName: "Ann Lee", EventType: EventTypeWedding, Attendees: 120, Status: StatusPending}
}

func newTestEventBookingsView(t *testing.T, gateway EventBookingGateway, policy MutationPolicy) (*EventBookingsView, *Notices) {
	t.Helper()
	notices := &Notices{}
	view := NewEventBookingsView(context.Background(), EventBookingsViewConfig{
		Gateway:  gateway,
		Token:    "admin-token",
		Notifier: notices,
		Policy:   policy,
	})
	t.Cleanup(view.Close)
	return view, notices
}

func TestEventBookingsView_LoadAll(t *testing.T) {
	t.Run("replaces the list and clears loading", func(t *testing.T) {
		gateway := &bookingGatewayStub{listResponses: [][]EventBooking{{pendingBooking(1), {ID: 2, Status: StatusConfirmed}}}}
		view, notices := newTestEventBookingsView(t, gateway, MutationPolicyGated)

		if !view.Loading() {
			t.Fatalf("expected a fresh view to start in the loading state")
		}

		view.LoadAll(context.Background())

		if view.Loading() {
			t.Fatalf("expected loading to be cleared")
		}
		if got := len(view.Records()); got != 2 {
			t.Fatalf("expected 2 records, got %d", got)
		}
		if gateway.listCalls[0].token != "admin-token" {
			t.Fatalf("expected the admin token to be sent, got %q", gateway.listCalls[0].token)
		}
		if gateway.listCalls[0].filter.GuestID != 0 {
			t.Fatalf("expected an unfiltered listing")
		}
		if len(notices.Items()) != 0 {
			t.Fatalf("expected no notices, got %v", notices.Items())
		}
	})

	t.Run("failure notifies and keeps the current list", func(t *testing.T) {
		gateway := &bookingGatewayStub{
			listResponses: [][]EventBooking{{pendingBooking(1)}, nil},
			listErrs:      []error{nil, errors.New("connection refused")},
		}
		view, notices := newTestEventBookingsView(t, gateway, MutationPolicyGated)

		view.LoadAll(context.Background())
		view.LoadAll(context.Background())

		if view.Loading() {
			t.Fatalf("expected loading to be cleared after a failure")
		}
		if got := len(view.Records()); got != 1 {
			t.Fatalf("expected the previous list to survive, got %d records", got)
		}
		items := notices.Items()
		if len(items) != 1 || items[0] != (Notice{Level: NoticeError, Message: "Failed to load events."}) {
			t.Fatalf("unexpected notices %v", items)
		}
	})

	t.Run("first load failure leaves the list empty", func(t *testing.T) {
		gateway := &bookingGatewayStub{listErrs: []error{fmt.Errorf("%w: 500", ErrRemoteRejected)}}
		view, notices := newTestEventBookingsView(t, gateway, MutationPolicyGated)

		view.LoadAll(context.Background())

		snapshot := view.Snapshot()
		if snapshot.Loading || snapshot.Loaded || len(snapshot.Rows) != 0 {
			t.Fatalf("unexpected snapshot %+v", snapshot)
		}
		if len(notices.Items()) != 1 {
			t.Fatalf("expected one notice, got %v", notices.Items())
		}
	})

	t.Run("missing gateway still clears loading", func(t *testing.T) {
		view, notices := newTestEventBookingsView(t, nil, MutationPolicyGated)

		view.LoadAll(context.Background())

		snapshot := view.Snapshot()
		if snapshot.Loading || snapshot.Loaded || len(snapshot.Rows) != 0 {
			t.Fatalf("unexpected snapshot %+v", snapshot)
		}
		if len(notices.Items()) != 0 {
			t.Fatalf("expected no notices, got %v", notices.Items())
		}
	})
}

func TestEventBookingsView_ApproveFlow(t *testing.T) {
	gateway := &bookingGatewayStub{listResponses: [][]EventBooking{
		{pendingBooking(1)},
		{{ID: 1, GuestName: "Ann Lee", EventType: EventTypeWedding, Attendees: 120, Status: StatusConfirmed}},
	}}
	view, notices := newTestEventBookingsView(t, gateway, MutationPolicyGated)

	view.LoadAll(context.Background())
	rows := view.Snapshot().Rows
	if len(rows) != 1 || !rows[0].Offers(ActionApprove) || !rows[0].Offers(ActionReject) {
		t.Fatalf("expected one pending row with approve and reject, got %+v", rows)
	}
	if rows[0].Color != "blue" {
		t.Fatalf("expected pending to render blue, got %q", rows[0].Color)
	}

	result := view.UpdateStatus(context.Background(), 1, StatusConfirmed)

	if !result.Succeeded || !result.Reloaded || result.Notified != NoticeSuccess {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(gateway.updateCalls) != 1 || gateway.updateCalls[0] != (updateCall{token: "admin-token", id: 1, status: StatusConfirmed}) {
		t.Fatalf("unexpected update calls %+v", gateway.updateCalls)
	}
	if gateway.listCount() != 2 {
		t.Fatalf("expected the list to be refetched, got %d list calls", gateway.listCount())
	}

	rows = view.Snapshot().Rows
	if len(rows) != 1 || rows[0].Status != StatusConfirmed || rows[0].Color != "green" {
		t.Fatalf("expected a green CONFIRMED row, got %+v", rows)
	}
	if rows[0].Offers(ActionApprove) || rows[0].Offers(ActionReject) || !rows[0].Offers(ActionDelete) {
		t.Fatalf("expected only delete on a confirmed row, got %v", rows[0].Actions)
	}
	if items := notices.Items(); len(items) != 1 || items[0].Message != "Status updated" {
		t.Fatalf("unexpected notices %v", items)
	}
}

func TestEventBookingsView_UpdateStatusFailures(t *testing.T) {
	rejected := fmt.Errorf("%w: 400 Bad Request", ErrRemoteRejected)
	transport := errors.New("dial tcp: connection refused")

	cases := []struct {
		name        string
		policy      MutationPolicy
		err         error
		wantNotice  Notice
		wantReload  bool
		wantSuccess bool
	}{
		{"gated rejected", MutationPolicyGated, rejected, Notice{NoticeError, "Update failed"}, false, false},
		{"gated transport", MutationPolicyGated, transport, Notice{NoticeError, "Update failed"}, false, false},
		{"legacy rejected", MutationPolicyLegacy, rejected, Notice{NoticeSuccess, "Status updated"}, true, false},
		{"legacy transport", MutationPolicyLegacy, transport, Notice{NoticeError, "Update failed"}, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gateway := &bookingGatewayStub{listResponses: [][]EventBooking{{pendingBooking(3)}}, updateErr: tc.err}
			view, notices := newTestEventBookingsView(t, gateway, tc.policy)
			view.LoadAll(context.Background())

			result := view.UpdateStatus(context.Background(), 3, StatusCancelled)

			if result.Reloaded != tc.wantReload || result.Succeeded != tc.wantSuccess {
				t.Fatalf("unexpected result %+v", result)
			}
			if !errors.Is(result.Err, tc.err) {
				t.Fatalf("expected result to carry %v, got %v", tc.err, result.Err)
			}
			wantCalls := 1
			if tc.wantReload {
				wantCalls = 2
			}
			if gateway.listCount() != wantCalls {
				t.Fatalf("expected %d list calls, got %d", wantCalls, gateway.listCount())
			}
			if items := notices.Items(); len(items) != 1 || items[0] != tc.wantNotice {
				t.Fatalf("unexpected notices %v", items)
			}
		})
	}
}

func TestEventBookingsView_DeleteRecord(t *testing.T) {
	serverError := fmt.Errorf("%w: 500 Internal Server Error", ErrRemoteRejected)

	t.Run("success notifies and reloads", func(t *testing.T) {
		gateway := &bookingGatewayStub{listResponses: [][]EventBooking{{pendingBooking(1)}, {}}}
		view, notices := newTestEventBookingsView(t, gateway, MutationPolicyGated)
		view.LoadAll(context.Background())

		result := view.DeleteRecord(context.Background(), 1)

		if !result.Succeeded || !result.Reloaded {
			t.Fatalf("unexpected result %+v", result)
		}
		if len(gateway.deletedIDs) != 1 || gateway.deletedIDs[0] != 1 {
			t.Fatalf("unexpected deletes %v", gateway.deletedIDs)
		}
		if len(view.Records()) != 0 {
			t.Fatalf("expected the refetched list to be empty")
		}
		if items := notices.Items(); len(items) != 1 || items[0] != (Notice{NoticeSuccess, "Event deleted"}) {
			t.Fatalf("unexpected notices %v", items)
		}
	})

	t.Run("legacy server error still reports success and refetches", func(t *testing.T) {
		gateway := &bookingGatewayStub{listResponses: [][]EventBooking{{pendingBooking(1)}}, deleteErr: serverError}
		view, notices := newTestEventBookingsView(t, gateway, MutationPolicyLegacy)
		view.LoadAll(context.Background())

		result := view.DeleteRecord(context.Background(), 1)

		if result.Succeeded || !result.Reloaded || result.Notified != NoticeSuccess {
			t.Fatalf("unexpected result %+v", result)
		}
		if gateway.listCount() != 2 {
			t.Fatalf("expected a refetch, got %d list calls", gateway.listCount())
		}
		if items := notices.Items(); len(items) != 1 || items[0].Message != "Event deleted" {
			t.Fatalf("unexpected notices %v", items)
		}
	})

	t.Run("gated server error reports failure without refetch", func(t *testing.T) {
		gateway := &bookingGatewayStub{listResponses: [][]EventBooking{{pendingBooking(1)}}, deleteErr: serverError}
		view, notices := newTestEventBookingsView(t, gateway, MutationPolicyGated)
		view.LoadAll(context.Background())

		result := view.DeleteRecord(context.Background(), 1)

		if result.Succeeded || result.Reloaded || result.Notified != NoticeError {
			t.Fatalf("unexpected result %+v", result)
		}
		if gateway.listCount() != 1 {
			t.Fatalf("expected no refetch, got %d list calls", gateway.listCount())
		}
		if items := notices.Items(); len(items) != 1 || items[0] != (Notice{NoticeError, "Delete failed"}) {
			t.Fatalf("unexpected notices %v", items)
		}
	})

	t.Run("legacy transport failure is left unhandled", func(t *testing.T) {
		gateway := &bookingGatewayStub{listResponses: [][]EventBooking{{pendingBooking(1)}}, deleteErr: errors.New("connection reset")}
		view, notices := newTestEventBookingsView(t, gateway, MutationPolicyLegacy)
		view.LoadAll(context.Background())

		result := view.DeleteRecord(context.Background(), 1)

		if result.Reloaded || result.Notified != "" {
			t.Fatalf("unexpected result %+v", result)
		}
		if len(notices.Items()) != 0 {
			t.Fatalf("expected no notices, got %v", notices.Items())
		}
		if len(view.Records()) != 1 {
			t.Fatalf("expected the list to be left as-is")
		}
	})
}

func TestEventBookingsView_CloseDiscardsLateResults(t *testing.T) {
	gateway := &bookingGatewayStub{listResponses: [][]EventBooking{{pendingBooking(1)}}}
	notices := &Notices{}
	view := NewEventBookingsView(context.Background(), EventBookingsViewConfig{Gateway: gateway, Notifier: notices})

	gateway.onList = func(ctx context.Context, call int) error {
		view.Close()
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Errorf("expected the in-flight request to be cancelled")
		}
		return nil
	}

	view.LoadAll(context.Background())

	if len(view.Records()) != 0 {
		t.Fatalf("expected the late result to be discarded")
	}
	if len(notices.Items()) != 0 {
		t.Fatalf("expected no notices for a closed view, got %v", notices.Items())
	}

	result := view.UpdateStatus(context.Background(), 1, StatusConfirmed)
	if !result.Discarded || len(gateway.updateCalls) != 0 {
		t.Fatalf("expected mutations on a closed view to be skipped, got %+v", result)
	}
}

func TestEventBookingsView_ParentCancellationClosesView(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	gateway := &bookingGatewayStub{listResponses: [][]EventBooking{{pendingBooking(1)}}}
	view := NewEventBookingsView(parent, EventBookingsViewConfig{Gateway: gateway})

	cancel()
	view.LoadAll(context.Background())

	if gateway.listCount() != 0 {
		t.Fatalf("expected no request once the parent is gone")
	}
}

func TestEventBookingsView_SupersededLoadIsIgnored(t *testing.T) {
	release := make(chan struct{})
	gateway := &bookingGatewayStub{listResponses: [][]EventBooking{{pendingBooking(1)}, {pendingBooking(2)}}}
	gateway.onList = func(ctx context.Context, call int) error {
		if call == 0 {
			<-release
		}
		return nil
	}
	view, _ := newTestEventBookingsView(t, gateway, MutationPolicyGated)

	done := make(chan struct{})
	go func() {
		view.LoadAll(context.Background())
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for gateway.listCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("first load never started")
		}
		time.Sleep(time.Millisecond)
	}

	view.LoadAll(context.Background())
	close(release)
	<-done

	records := view.Records()
	if len(records) != 1 || records[0].ID != 2 {
		t.Fatalf("expected the most recent load to win, got %+v", records)
	}
	if view.Loading() {
		t.Fatalf("expected loading to be cleared")
	}
}

func TestMutationPolicy_String(t *testing.T) {
	if MutationPolicyGated.String() != "gated" || MutationPolicyLegacy.String() != "legacy" {
		t.Fatalf("unexpected policy names")
	}
}
