package testfixtures

import "encoding/json"

// EventBookingPayload returns an event booking as the hotel API serializes it.
func EventBookingPayload(id int64, status string) map[string]any {
	return map[string]any{
		"id":               id,
		"hotel":            1,
		"guest":            11,
		"guest_name":       "Ann Lee",
		"guest_email":      "ann@example.com",
		"event_type":       "WEDDING",
		"start_date":       "2026-06-20",
		"end_date":         "2026-06-21",
		"attendees":        120,
		"budget_notes":     nil,
		"special_requests": "String quartet",
		"status":           status,
		"created_at":       "2026-05-01T10:00:00Z",
	}
}

// Paginated wraps records in the API's paginated envelope.
func Paginated(records ...map[string]any) map[string]any {
	if records == nil {
		records = []map[string]any{}
	}
	return map[string]any{
		"count":    len(records),
		"next":     nil,
		"previous": nil,
		"results":  records,
	}
}

// GuestPayload returns a guest record.
func GuestPayload(id int64, email string) map[string]any {
	return map[string]any{"id": id, "name": "Ann Lee", "email": email, "phone": "+60123456789", "user": nil}
}

// BlogPayload returns a blog entry.
func BlogPayload(id int64, title string, published bool) map[string]any {
	return map[string]any{
		"id":                   id,
		"title":                title,
		"content":              "Fresh **news** from the hotel.",
		"image":                nil,
		"author":               "Front Desk",
		"is_published":         published,
		"created_at":           "2026-05-01T10:00:00Z",
		"created_at_formatted": "May 01, 2026",
	}
}

// UserSnapshot serializes a user snapshot the way the login flows store it.
func UserSnapshot(fields map[string]any) string {
	raw, err := json.Marshal(fields)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// StaffUser is a snapshot that passes the admin guard.
func StaffUser() string {
	return UserSnapshot(map[string]any{"username": "frontdesk", "email": "desk@hotel.example.com", "role": "SUPER_ADMIN", "is_staff": true, "is_superuser": true})
}

// GuestUser is a snapshot of a signed-in hotel guest.
func GuestUser(email string) string {
	return UserSnapshot(map[string]any{"username": email, "email": email, "firstName": "Ann"})
}
