package application

import (
	"net/url"
	"strings"
)

// StatusColor maps a booking status to the tag colour used by the admin list.
func StatusColor(status EventBookingStatus) string {
	switch status {
	case StatusConfirmed:
		return "green"
	case StatusCancelled:
		return "red"
	default:
		return "blue"
	}
}

// AccountStatusColor maps a booking status to the tag colour used on the guest's own list.
func AccountStatusColor(status EventBookingStatus) string {
	if status == StatusConfirmed {
		return "green"
	}
	return "orange"
}

// Action is an affordance offered on an admin booking row.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
)

// TargetStatus is the status an approve or reject action requests.
func (a Action) TargetStatus() (EventBookingStatus, bool) {
	switch a {
	case ActionApprove:
		return StatusConfirmed, true
	case ActionReject:
		return StatusCancelled, true
	}
	return "", false
}

// AllowedActions lists the affordances shown for status. Delete is always
// present and always requires confirmation.
func AllowedActions(status EventBookingStatus) []Action {
	if status == StatusPending {
		return []Action{ActionApprove, ActionReject, ActionDelete}
	}
	return []Action{ActionDelete}
}

// RequiresConfirmation reports whether a must be confirmed before it runs.
func (a Action) RequiresConfirmation() bool {
	return a == ActionDelete
}

const placeholderImageBase = "https://placehold.co/600x400/e2e8f0/475569?text="

// PlaceholderImage returns the image shown for a blog entry without one.
func PlaceholderImage(title string) string {
	return placeholderImageBase + strings.ReplaceAll(url.QueryEscape(title), "+", "%20")
}
