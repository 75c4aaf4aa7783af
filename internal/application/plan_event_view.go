package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/example/hotel-console/internal/tokenstore"
)

const (
	msgPleaseLogIn     = "Please log in."
	msgGuestNotFound   = "Guest profile not found. Please update your profile."
	msgBookingReceived = "Booking is successful, we will get back to you shortly"
	msgSubmitFailed    = "Failed to submit request."

	dateLayout = "2006-01-02"
)

// PlanEventInput is the form a guest fills in to request an event.
type PlanEventInput struct {
	EventType       string
	StartDate       string
	EndDate         string
	Attendees       int
	BudgetNotes     string
	SpecialRequests string
}

// PlanEventView submits event requests on behalf of the signed-in guest.
type PlanEventView struct {
	bookings EventBookingGateway
	guests   GuestDirectory
	session  tokenstore.Session
	notifier Notifier
	logger   *slog.Logger
}

// NewPlanEventView wires the form handler.
func NewPlanEventView(bookings EventBookingGateway, guests GuestDirectory, session tokenstore.Session, notifier Notifier, logger *slog.Logger) *PlanEventView {
	return &PlanEventView{
		bookings: bookings,
		guests:   guests,
		session:  session,
		notifier: notifierOrDiscard(notifier),
		logger:   defaultLogger(logger),
	}
}

// Submit validates input, resolves the guest and creates a PENDING booking.
// A ValidationError is returned without notifying; every other outcome is
// also announced through the notifier.
func (v *PlanEventView) Submit(ctx context.Context, input PlanEventInput) (EventBooking, error) {
	if v == nil || v.bookings == nil {
		return EventBooking{}, errors.New("plan event view is not configured")
	}
	logger := viewLogger(ctx, v.logger, "plan_event", "submit")

	if !v.session.SignedIn() {
		v.notifier.Error(msgPleaseLogIn)
		return EventBooking{}, ErrNotSignedIn
	}

	if vErr := validatePlanEvent(input); vErr.HasErrors() {
		logger.InfoContext(ctx, "event request rejected", "error_kind", ErrorKind(vErr))
		return EventBooking{}, vErr
	}

	guest, err := resolveGuest(ctx, v.guests, v.session)
	if err != nil {
		logger.WarnContext(ctx, "guest lookup failed", "error", err, "error_kind", ErrorKind(err))
		if errors.Is(err, ErrGuestNotFound) {
			v.notifier.Error(msgGuestNotFound)
		} else {
			v.notifier.Error(msgSubmitFailed)
		}
		return EventBooking{}, err
	}

	created, err := v.bookings.CreateEventBooking(ctx, v.session.Token, NewEventBooking{
		GuestID:         guest.ID,
		EventType:       EventType(strings.ToUpper(strings.TrimSpace(input.EventType))),
		StartDate:       strings.TrimSpace(input.StartDate),
		EndDate:         strings.TrimSpace(input.EndDate),
		Attendees:       input.Attendees,
		BudgetNotes:     strings.TrimSpace(input.BudgetNotes),
		SpecialRequests: strings.TrimSpace(input.SpecialRequests),
		Status:          StatusPending,
	})
	if err != nil {
		logger.WarnContext(ctx, "event request failed", "guest_id", guest.ID, "error", err, "error_kind", ErrorKind(err))
		v.notifier.Error(msgSubmitFailed)
		return EventBooking{}, err
	}

	logger.InfoContext(ctx, "event requested", "guest_id", guest.ID, "booking_id", created.ID)
	v.notifier.Success(msgBookingReceived)
	return created, nil
}

func validatePlanEvent(input PlanEventInput) *ValidationError {
	vErr := &ValidationError{}

	if !EventType(strings.ToUpper(strings.TrimSpace(input.EventType))).Valid() {
		vErr.add("event_type", "select an event type")
	}

	start, startErr := time.Parse(dateLayout, strings.TrimSpace(input.StartDate))
	if startErr != nil {
		vErr.add("start_date", "start date must be YYYY-MM-DD")
	}
	end, endErr := time.Parse(dateLayout, strings.TrimSpace(input.EndDate))
	if endErr != nil {
		vErr.add("end_date", "end date must be YYYY-MM-DD")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		vErr.add("end_date", "end date must not be before the start date")
	}

	if input.Attendees < 1 {
		vErr.add("attendees", "at least one attendee is required")
	}

	return vErr
}
