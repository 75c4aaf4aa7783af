package hotelapi

import "encoding/json"

// EventBooking mirrors the event-bookings resource.
type EventBooking struct {
	ID              int64   `json:"id"`
	Hotel           *int64  `json:"hotel,omitempty"`
	Guest           int64   `json:"guest"`
	GuestName       string  `json:"guest_name"`
	GuestEmail      string  `json:"guest_email"`
	EventType       string  `json:"event_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Attendees       int     `json:"attendees"`
	BudgetNotes     *string `json:"budget_notes"`
	SpecialRequests *string `json:"special_requests"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

// EventBookingQuery narrows the event-bookings listing.
type EventBookingQuery struct {
	GuestID int64
}

// NewEventBooking is the request body used to submit an event request.
type NewEventBooking struct {
	Guest           int64  `json:"guest"`
	EventType       string `json:"event_type"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Attendees       int    `json:"attendees"`
	BudgetNotes     string `json:"budget_notes,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
	Status          string `json:"status"`
}

// Guest mirrors the guests resource.
type Guest struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	User    *int64  `json:"user,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Blog mirrors the blogs resource.
type Blog struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	Content            string  `json:"content"`
	Image              *string `json:"image"`
	Author             string  `json:"author"`
	IsPublished        bool    `json:"is_published"`
	CreatedAt          string  `json:"created_at"`
	CreatedAtFormatted string  `json:"created_at_formatted"`
}

// LoginResult is the body returned by the login endpoint. User is kept raw
// because callers cache it verbatim.
type LoginResult struct {
	Token  string          `json:"token"`
	Access string          `json:"access"`
	User   json.RawMessage `json:"user"`
	Detail string          `json:"detail"`
}

type statusPatch struct {
	Status string `json:"status"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
