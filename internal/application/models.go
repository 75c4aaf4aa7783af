package application

import (
	"context"
	"encoding/json"
)

// EventBookingStatus is the lifecycle state of an event booking.
type EventBookingStatus string

const (
	StatusPending   EventBookingStatus = "PENDING"
	StatusConfirmed EventBookingStatus = "CONFIRMED"
	StatusCancelled EventBookingStatus = "CANCELLED"
)

// EventType classifies an event booking.
type EventType string

const (
	EventTypeWedding    EventType = "WEDDING"
	EventTypeConference EventType = "CONFERENCE"
	EventTypeParty      EventType = "PARTY"
	EventTypeOther      EventType = "OTHER"
)

// EventTypes lists the selectable event types in display order.
var EventTypes = []EventType{EventTypeWedding, EventTypeConference, EventTypeParty, EventTypeOther}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeWedding, EventTypeConference, EventTypeParty, EventTypeOther:
		return true
	}
	return false
}

// EventBooking is a request to host a wedding, conference, party or other event.
type EventBooking struct {
	ID              int64
	GuestID         int64
	GuestName       string
	GuestEmail      string
	EventType       EventType
	StartDate       string
	EndDate         string
	Attendees       int
	BudgetNotes     string
	SpecialRequests string
	Status          EventBookingStatus
	CreatedAt       string
}

// Guest is the hotel's record of a customer.
type Guest struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// Blog is a story published on the public site.
type Blog struct {
	ID                 int64
	Title              string
	Content            string
	Image              string
	Author             string
	IsPublished        bool
	CreatedAtFormatted string
}

// EventBookingFilter narrows booking listings. A zero GuestID lists everything.
type EventBookingFilter struct {
	GuestID int64
}

// NewEventBooking is the payload submitted when a guest plans an event.
type NewEventBooking struct {
	GuestID         int64
	EventType       EventType
	StartDate       string
	EndDate         string
	Attendees       int
	BudgetNotes     string
	SpecialRequests string
	Status          EventBookingStatus
}

// LoginResult carries the credential and the user snapshot issued at sign in.
type LoginResult struct {
	Token string
	User  json.RawMessage
}

// EventBookingGateway exposes the remote event booking operations.
type EventBookingGateway interface {
	ListEventBookings(ctx context.Context, token string, filter EventBookingFilter) ([]EventBooking, error)
	CreateEventBooking(ctx context.Context, token string, booking NewEventBooking) (EventBooking, error)
	UpdateEventBookingStatus(ctx context.Context, token string, id int64, status EventBookingStatus) error
	DeleteEventBooking(ctx context.Context, token string, id int64) error
}

// GuestDirectory resolves guest records by email.
type GuestDirectory interface {
	FindGuestsByEmail(ctx context.Context, token, email string) ([]Guest, error)
}

// BlogSource lists blog entries, published or not.
type BlogSource interface {
	ListBlogs(ctx context.Context) ([]Blog, error)
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
}
