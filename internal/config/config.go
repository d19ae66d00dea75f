package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client and the dev stub.
type Config struct {
	Client ClientConfig
	State  StateConfig
	Scan   ScanConfig
	Poll   PollConfig
	Logger LoggerConfig
	Stub   StubConfig
}

// ClientConfig controls how the REST client reaches the backend.
type ClientConfig struct {
	BaseURL               string
	RequestTimeoutSeconds int
}

// StateConfig locates the persisted session file.
type StateConfig struct {
	Dir string
}

// ScanConfig tunes the QR transaction flow.
type ScanConfig struct {
	SuccessDisplayMillis int
}

// PollConfig controls dashboard refresh behavior.
type PollConfig struct {
	IntervalSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// StubConfig configures the development backend.
type StubConfig struct {
	Host          string
	Port          string
	SQLitePath    string
	JWTSecret     string
	TokenTTLHours int
	BcryptCost    int
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	stateDir := os.Getenv("KCLEAN_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		stateDir = filepath.Join(home, ".kclean")
	}

	cfg := &Config{
		Client: ClientConfig{
			BaseURL:               getEnv("KCLEAN_API_BASE_URL", "http://localhost:8000/api"),
			RequestTimeoutSeconds: getEnvAsInt("KCLEAN_REQUEST_TIMEOUT_SECONDS", 0),
		},
		State: StateConfig{
			Dir: stateDir,
		},
		Scan: ScanConfig{
			SuccessDisplayMillis: getEnvAsInt("KCLEAN_SCAN_SUCCESS_DISPLAY_MS", 2000),
		},
		Poll: PollConfig{
			IntervalSeconds: getEnvAsInt("KCLEAN_POLL_INTERVAL_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Stub: StubConfig{
			Host:          getEnv("KCLEAND_HOST", "0.0.0.0"),
			Port:          getEnv("KCLEAND_PORT", "8000"),
			SQLitePath:    getEnv("KCLEAND_SQLITE_PATH", "kcleand.db"),
			JWTSecret:     getEnv("KCLEAND_JWT_SECRET", "dev-secret"),
			TokenTTLHours: getEnvAsInt("KCLEAND_TOKEN_TTL_HOURS", 24),
			BcryptCost:    getEnvAsInt("KCLEAND_BCRYPT_COST", 10),
			AdminEmail:    getEnv("KCLEAND_ADMIN_EMAIL", "admin@kclean.local"),
			AdminPassword: getEnv("KCLEAND_ADMIN_PASSWORD", "admin123"),
		},
	}

	return cfg, nil
}

// Addr returns the stub's HTTP bind address.
func (s StubConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// TokenTTL returns the configured token lifetime.
func (s StubConfig) TokenTTL() time.Duration {
	if s.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.TokenTTLHours) * time.Hour
}

// RequestTimeout returns the client request timeout; zero means the client
// relies entirely on the backend's own timeouts.
func (c ClientConfig) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SuccessDisplayDelay returns how long a completed scan lingers before the
// flow hands control back to the dashboard.
func (s ScanConfig) SuccessDisplayDelay() time.Duration {
	return time.Duration(s.SuccessDisplayMillis) * time.Millisecond
}

// Interval returns the dashboard poll period.
func (p PollConfig) Interval() time.Duration {
	if p.IntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(p.IntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
