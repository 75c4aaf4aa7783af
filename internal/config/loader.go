package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/hkdf"
)

const (
	envHTTPPort        = "HOTEL_CONSOLE_HTTP_PORT"
	envAPIBaseURL      = "HOTEL_CONSOLE_API_BASE_URL"
	envSQLiteDSN       = "HOTEL_CONSOLE_SQLITE_DSN"
	envSecret          = "HOTEL_CONSOLE_SECRET"
	envSecureCookies   = "HOTEL_CONSOLE_SECURE_COOKIES"
	envProfileTTL      = "HOTEL_CONSOLE_PROFILE_TTL"
	envLegacyMutations = "HOTEL_CONSOLE_LEGACY_MUTATIONS"

	csrfKeyInfo = "hotel-console csrf v1"
	csrfKeySize = 32
)

// Config captures environment driven configuration values for the console.
type Config struct {
	HTTPPort        int
	APIBaseURL      string
	SQLiteDSN       string
	Secret          string
	SecureCookies   bool
	ProfileTTL      time.Duration
	LegacyMutations bool
}

// Load parses configuration values from the current process environment.
//
// Optional values fall back to defaults; every missing or malformed value is
// reported in a single error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:   8080,
		APIBaseURL: "http://127.0.0.1:8000/api",
		SQLiteDSN:  "file:hotel-console.db",
		ProfileTTL: 30 * 24 * time.Hour,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 4)

	if portValue := strings.TrimSpace(os.Getenv(envHTTPPort)); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, envHTTPPort)
		} else {
			cfg.HTTPPort = port
		}
	}

	if baseURL := strings.TrimSpace(os.Getenv(envAPIBaseURL)); baseURL != "" {
		if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
			invalid = append(invalid, envAPIBaseURL)
		} else {
			cfg.APIBaseURL = strings.TrimRight(baseURL, "/")
		}
	}

	if dsn := strings.TrimSpace(os.Getenv(envSQLiteDSN)); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv(envSecret)); secret == "" {
		missing = append(missing, envSecret)
	} else {
		cfg.Secret = secret
	}

	if value := strings.TrimSpace(os.Getenv(envSecureCookies)); value != "" {
		secure, err := strconv.ParseBool(value)
		if err != nil {
			invalid = append(invalid, envSecureCookies)
		} else {
			cfg.SecureCookies = secure
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv(envProfileTTL)); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, envProfileTTL)
		} else {
			cfg.ProfileTTL = ttl
		}
	}

	if value := strings.TrimSpace(os.Getenv(envLegacyMutations)); value != "" {
		legacy, err := strconv.ParseBool(value)
		if err != nil {
			invalid = append(invalid, envLegacyMutations)
		} else {
			cfg.LegacyMutations = legacy
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// LoadEnvFiles merges the given dotenv files into the process environment.
// Variables already set in the environment win. Missing files are skipped and
// reported as false.
func LoadEnvFiles(paths ...string) (bool, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return false, fmt.Errorf("stat %s: %w", path, err)
		}
		existing = append(existing, path)
	}
	if len(existing) == 0 {
		return false, nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return false, fmt.Errorf("load env files: %w", err)
	}
	return true, nil
}

// CSRFKey derives the 32 byte form-protection key from the configured secret.
func (c Config) CSRFKey() ([]byte, error) {
	if c.Secret == "" {
		return nil, errors.New("config: secret is empty")
	}
	key := make([]byte, csrfKeySize)
	reader := hkdf.New(sha256.New, []byte(c.Secret), nil, []byte(csrfKeyInfo))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("config: derive csrf key: %w", err)
	}
	return key, nil
}
