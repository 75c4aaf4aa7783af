package http

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/example/hotel-console/internal/logging"
	"github.com/example/hotel-console/internal/persistence"
	"github.com/example/hotel-console/internal/tokenstore"
)

// ProfileCookieName is the cookie that identifies a browser storage profile.
const ProfileCookieName = "hotel_console_profile"

// RequestLogger attaches a request scoped logger and logs start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(recorder, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "status", recorder.status, "duration", time.Since(start))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(status int) {
	if !s.wroteHeader {
		s.status = status
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// ProfileOptions tunes the storage profile cookie.
type ProfileOptions struct {
	Secure bool
	MaxAge time.Duration
	NewID  func() string
	Logger *slog.Logger
}

// StorageProfile resolves the browser's storage profile from its cookie,
// minting a new one when the cookie is missing or malformed. A known profile
// is touched and its cookie re-issued so that active browsers never expire.
// Requests always proceed; without a repository the profile simply has no
// storage.
func StorageProfile(repo persistence.StorageRepository, opts ProfileOptions) func(http.Handler) http.Handler {
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	logger := defaultLogger(opts.Logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			profileID := ""
			if cookie, err := r.Cookie(ProfileCookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					profileID = parsed.String()
				}
			}
			if profileID == "" {
				profileID = newID()
				logging.Or(ctx, logger).DebugContext(ctx, "issued storage profile", "profile_id", profileID)
			} else if repo != nil {
				if err := repo.TouchProfile(ctx, profileID); err != nil {
					logging.Or(ctx, logger).WarnContext(ctx, "failed to touch storage profile", "profile_id", profileID, "error", err)
				}
			}
			setProfileCookie(w, profileID, opts)

			var backend tokenstore.Backend
			if pb := tokenstore.NewProfileBackend(repo, profileID, logger); pb != nil {
				backend = pb
			}

			ctx = ContextWithProfile(ctx, profileID, backend)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setProfileCookie(w http.ResponseWriter, profileID string, opts ProfileOptions) {
	cookie := &http.Cookie{
		Name:     ProfileCookieName,
		Value:    profileID,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if opts.MaxAge > 0 {
		cookie.MaxAge = int(opts.MaxAge / time.Second)
	}
	http.SetCookie(w, cookie)
}
