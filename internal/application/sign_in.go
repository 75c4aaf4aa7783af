package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/example/hotel-console/internal/tokenstore"
)

const (
	msgAdminWelcome       = "Login successful. Accessing Dashboard..."
	msgGuestWelcome       = "Welcome back!"
	msgMissingUser        = "Server Error: Token received but User Data is missing."
	msgAccessDenied       = "Access Denied"
	msgInvalidCredentials = "Invalid credentials."
	msgInvalidGuestLogin  = "Invalid email or password."
	msgConnectionFailed   = "Connection failed. Is the backend running?"
)

// detailer is implemented by errors that carry a reason supplied by the API.
type detailer interface {
	UserDetail() string
}

func remoteDetail(err error) string {
	var d detailer
	if errors.As(err, &d) {
		return strings.TrimSpace(d.UserDetail())
	}
	return ""
}

// SignInService runs the admin and guest login flows and records the
// resulting session in the browser profile.
type SignInService struct {
	auth   Authenticator
	logger *slog.Logger
}

// NewSignInService wires the login flows.
func NewSignInService(auth Authenticator, logger *slog.Logger) *SignInService {
	return &SignInService{auth: auth, logger: defaultLogger(logger)}
}

// SignInAdmin authenticates a console operator. Only staff roles are
// admitted; the stored snapshot carries the computed role.
func (s *SignInService) SignInAdmin(ctx context.Context, backend tokenstore.Backend, username, password string, notifier Notifier) error {
	notifier = notifierOrDiscard(notifier)
	logger := signInLogger(ctx, s, "sign_in_admin", "username", username)

	if vErr := validateCredentials(username, password); vErr.HasErrors() {
		return vErr
	}

	result, err := s.login(ctx, username, password)
	if err != nil {
		logger.WarnContext(ctx, "admin login failed", "error", err, "error_kind", ErrorKind(err))
		notifier.Error(loginFailureMessage(err, msgInvalidCredentials))
		return err
	}
	if len(result.User) == 0 || string(result.User) == "null" {
		logger.ErrorContext(ctx, "login response without user snapshot")
		notifier.Error(msgMissingUser)
		return ErrMissingUser
	}

	user, err := tokenstore.ParseUser(result.User)
	if err != nil {
		logger.ErrorContext(ctx, "malformed user snapshot in login response", "error", err)
		notifier.Error(msgMissingUser)
		return ErrMissingUser
	}
	role := user.Role()
	if !role.IsStaffRole() {
		logger.InfoContext(ctx, "admin login refused for role", "role", role)
		notifier.Error(msgAccessDenied)
		return ErrAccessDenied
	}

	snapshot, err := standardizeAdminUser(result.User, role)
	if err != nil {
		logger.ErrorContext(ctx, "failed to encode user snapshot", "error", err)
		notifier.Error(msgMissingUser)
		return ErrMissingUser
	}

	tokenstore.SaveSession(ctx, backend, result.Token, snapshot)
	logger.InfoContext(ctx, "admin signed in", "role", role)
	notifier.Success(msgAdminWelcome)
	return nil
}

// SignInGuest authenticates a hotel guest. When the API omits the user
// snapshot a minimal one is stored so the account pages can resolve the guest.
func (s *SignInService) SignInGuest(ctx context.Context, backend tokenstore.Backend, email, password string, notifier Notifier) error {
	notifier = notifierOrDiscard(notifier)
	logger := signInLogger(ctx, s, "sign_in_guest")

	if vErr := validateCredentials(email, password); vErr.HasErrors() {
		return vErr
	}

	result, err := s.login(ctx, email, password)
	if err != nil {
		logger.WarnContext(ctx, "guest login failed", "error", err, "error_kind", ErrorKind(err))
		notifier.Error(loginFailureMessage(err, msgInvalidGuestLogin))
		return err
	}

	snapshot := result.User
	if len(snapshot) == 0 || string(snapshot) == "null" {
		snapshot, err = json.Marshal(map[string]string{"firstName": "Guest", "email": strings.TrimSpace(email)})
		if err != nil {
			return err
		}
	}

	tokenstore.SaveSession(ctx, backend, result.Token, snapshot)
	logger.InfoContext(ctx, "guest signed in")
	notifier.Success(msgGuestWelcome)
	return nil
}

// SignOut forgets every credential held by the profile.
func (s *SignInService) SignOut(ctx context.Context, backend tokenstore.Backend) {
	tokenstore.ClearSession(ctx, backend)
}

func (s *SignInService) login(ctx context.Context, username, password string) (LoginResult, error) {
	if s == nil || s.auth == nil {
		return LoginResult{}, errors.New("sign in service is not configured")
	}
	result, err := s.auth.Login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return LoginResult{}, err
	}
	if result.Token == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	return result, nil
}

func signInLogger(ctx context.Context, s *SignInService, operation string, attrs ...any) *slog.Logger {
	var base *slog.Logger
	if s != nil {
		base = s.logger
	}
	return viewLogger(ctx, base, "sign_in", operation, attrs...)
}

func loginFailureMessage(err error, fallback string) string {
	if detail := remoteDetail(err); detail != "" {
		return detail
	}
	if errors.Is(err, ErrRemoteRejected) || errors.Is(err, ErrInvalidCredentials) {
		return fallback
	}
	return msgConnectionFailed
}

func validateCredentials(username, password string) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(username) == "" {
		vErr.add("username", "username is required")
	}
	if password == "" {
		vErr.add("password", "password is required")
	}
	return vErr
}

// standardizeAdminUser rewrites the snapshot with the computed role so that
// later guards agree with the login decision.
func standardizeAdminUser(raw json.RawMessage, role tokenstore.Role) (json.RawMessage, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["role"] = string(role)
	superuser, _ := fields["is_superuser"].(bool)
	fields["is_superuser"] = superuser || role == tokenstore.RoleSuperAdmin
	return json.Marshal(fields)
}
