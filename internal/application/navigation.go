package application

import "github.com/example/hotel-console/internal/tokenstore"

// MenuItem is one entry of the admin sidebar.
type MenuItem struct {
	Label string
	Path  string
}

// AdminMenu returns the sidebar entries visible to role. Only sections the
// console serves are listed.
func AdminMenu(role tokenstore.Role) []MenuItem {
	if role == "" {
		role = tokenstore.RoleGuest
	}
	var items []MenuItem

	if role != tokenstore.RoleHousekeeper {
		items = append(items, MenuItem{"Dashboard", "/admin/dashboard"})
	}
	if role.IsStaffRole() {
		items = append(items, MenuItem{"Events & Weddings", "/admin/events"})
	}
	return items
}

// PublicNav describes the public header for a session.
type PublicNav struct {
	SignedIn       bool
	DisplayName    string
	ShowSignUp     bool
	ShowLogout     bool
	ShowBookEvents bool
}

// PublicNavigation derives the public header. Any signed-in session may log
// out. A user snapshot carrying a mobile or phone marker is treated as a
// completed profile and offered event booking instead of sign up.
func PublicNavigation(session tokenstore.Session) PublicNav {
	nav := PublicNav{SignedIn: session.SignedIn()}
	if session.User != nil {
		nav.DisplayName = session.User.DisplayName()
	}
	nav.ShowLogout = nav.SignedIn
	if session.User.HasMobile() {
		nav.ShowBookEvents = true
	} else if !nav.SignedIn {
		nav.ShowSignUp = true
	}
	return nav
}

// AdminAccess is the outcome of guarding an admin page.
type AdminAccess int

const (
	// AdminAccessGranted lets the page render.
	AdminAccessGranted AdminAccess = iota
	// AdminAccessLogin sends the browser to the admin login form.
	AdminAccessLogin
	// AdminAccessDenied renders the access denied page.
	AdminAccessDenied
)

// GuardAdmin decides whether session may view admin pages.
func GuardAdmin(session tokenstore.Session) AdminAccess {
	if !session.SignedIn() {
		return AdminAccessLogin
	}
	if !session.User.CanAccessAdmin() {
		return AdminAccessDenied
	}
	return AdminAccessGranted
}
