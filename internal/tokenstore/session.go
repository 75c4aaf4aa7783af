package tokenstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/example/hotel-console/internal/logging"
)

// Role is the console role derived from the cached user snapshot.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleAdmin       Role = "ADMIN"
	RoleStaff       Role = "STAFF"
	RoleHousekeeper Role = "HOUSEKEEPER"
	RoleGuest       Role = "GUEST"
)

// User is the locally cached snapshot of the signed-in user. Only a handful
// of fields are interpreted; the raw document is kept as written.
type User struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	RawRole     string `json:"role"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`

	fields map[string]any
	raw    json.RawMessage
}

// ParseUser decodes a serialized user snapshot.
func ParseUser(data []byte) (*User, error) {
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &user.fields); err != nil {
		return nil, err
	}
	user.raw = append(json.RawMessage(nil), data...)
	return &user, nil
}

// Raw returns the snapshot exactly as stored.
func (u *User) Raw() json.RawMessage {
	if u == nil {
		return nil
	}
	return u.raw
}

// Identity is the email used to resolve the guest record, falling back to the username.
func (u *User) Identity() string {
	if u == nil {
		return ""
	}
	if email := strings.TrimSpace(u.Email); email != "" {
		return email
	}
	return strings.TrimSpace(u.Username)
}

// DisplayName returns the friendliest available name.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	for _, candidate := range []string{u.FirstName, u.Username, u.Email} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return "Guest"
}

// HasMobile reports whether the snapshot carries a truthy mobile or phone marker.
func (u *User) HasMobile() bool {
	if u == nil {
		return false
	}
	return truthy(u.fields["mobile"]) || truthy(u.fields["phone"])
}

// Role computes the console role. Staff and superuser flags always win.
func (u *User) Role() Role {
	if u == nil {
		return RoleGuest
	}
	if u.IsSuperuser || u.IsStaff {
		return RoleSuperAdmin
	}
	if role := strings.ToUpper(strings.TrimSpace(u.RawRole)); role != "" {
		return Role(role)
	}
	return RoleGuest
}

// IsStaffRole reports whether the role may sign in to the admin console.
func (r Role) IsStaffRole() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// CanAccessAdmin reports whether admin pages may be shown for this user.
func (u *User) CanAccessAdmin() bool {
	return u.Role() != RoleGuest
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}

// Session is the per-request view of who is signed in. It is read once from
// storage and handed to views, which never parse storage themselves.
type Session struct {
	Token string
	User  *User
}

// SignedIn reports whether both a token and a user snapshot are present.
func (s Session) SignedIn() bool {
	return s.Token != "" && s.User != nil
}

// LoadSession reads the token and user snapshot from backend. A malformed
// snapshot is treated as absent.
func LoadSession(ctx context.Context, backend Backend) Session {
	if backend == nil {
		return Session{}
	}

	var session Session
	if token, ok := backend.Get(ctx, AuthTokenKey); ok {
		session.Token = token
	}
	if raw, ok := backend.Get(ctx, UserKey); ok && raw != "" {
		user, err := ParseUser([]byte(raw))
		if err != nil {
			logging.Or(ctx, nil).WarnContext(ctx, "discarding malformed user snapshot", "error", err)
		} else {
			session.User = user
		}
	}
	return session
}

// SaveSession records a successful login.
func SaveSession(ctx context.Context, backend Backend, token string, user json.RawMessage) {
	if backend == nil {
		return
	}
	New(backend, AuthTokenKey).Set(ctx, token)
	NewAdmin(backend).Set(ctx, token)
	backend.Set(ctx, UserKey, string(user))
}

// ClearSession removes every credential and the user snapshot.
func ClearSession(ctx context.Context, backend Backend) {
	if backend == nil {
		return
	}
	New(backend, AuthTokenKey).Remove(ctx)
	NewAdmin(backend).Remove(ctx)
	backend.Remove(ctx, UserKey)
}
