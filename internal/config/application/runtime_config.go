package application

import (
	"context"
	"os"
	"strings"
	"time"

	"tempwatch-v0/internal/ingest/domain"
	"tempwatch-v0/internal/shared/validation"
)

// Timestamp layouts accepted for TEMPWATCH_WINDOW_START / TEMPWATCH_WINDOW_END.
var windowLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// RuntimeConfig holds all runtime configuration from environment variables
// and the .env file. It is loaded once at startup and never mutated; every
// component receives it (or the slice of it it needs) as an explicit value.
type RuntimeConfig struct {
	// Remote source
	SSHHost    string
	SSHPort    string
	SSHUser    string
	SSHKeyPath string
	RemotePath string

	// Analysis window
	Window domain.TimeWindow

	// Outputs
	SavePlot bool
	PlotPath string
	DBPath   string

	// Optional local viewer; empty means run-and-exit
	ServeAddr string

	// Logging Configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Raw window strings, kept for validation reporting
	windowStartRaw string
	windowEndRaw   string
}

// LoadRuntimeConfig loads configuration with precedence: env vars > .env file > defaults
func LoadRuntimeConfig() *RuntimeConfig {
	cfg := &RuntimeConfig{
		SSHHost:    os.Getenv("TEMPWATCH_SSH_HOST"),
		SSHPort:    getEnv("TEMPWATCH_SSH_PORT", "22"),
		SSHUser:    os.Getenv("TEMPWATCH_SSH_USER"),
		SSHKeyPath: os.Getenv("TEMPWATCH_SSH_KEY_PATH"),
		RemotePath: os.Getenv("TEMPWATCH_REMOTE_PATH"),
		SavePlot:   getBoolEnv("TEMPWATCH_SAVE_PLOT", false),
		PlotPath:   getEnv("TEMPWATCH_PLOT_PATH", "images/cpu_temperature.png"),
		DBPath:     getEnv("TEMPWATCH_DB_PATH", "tempwatch.db"),
		ServeAddr:  os.Getenv("TEMPWATCH_SERVE_ADDR"),
		LogLevel:   getEnv("TEMPWATCH_LOG_LEVEL", "INFO"),
		LogFormat:  getEnv("TEMPWATCH_LOG_FORMAT", "text"),
		LogOutput:  getEnv("TEMPWATCH_LOG_OUTPUT", "stdout"),

		windowStartRaw: os.Getenv("TEMPWATCH_WINDOW_START"),
		windowEndRaw:   os.Getenv("TEMPWATCH_WINDOW_END"),
	}

	if t, ok := parseWindowTime(cfg.windowStartRaw); ok {
		cfg.Window.Start = &t
	}
	if t, ok := parseWindowTime(cfg.windowEndRaw); ok {
		cfg.Window.End = &t
	}

	return cfg
}

// Valid reports configuration problems keyed by field name.
func (c *RuntimeConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string, 4)

	if c.SSHHost == "" {
		problems["ssh_host"] = "'TEMPWATCH_SSH_HOST' is required"
	}
	if c.SSHUser == "" {
		problems["ssh_user"] = "'TEMPWATCH_SSH_USER' is required"
	}
	if c.SSHKeyPath == "" {
		problems["ssh_key_path"] = "'TEMPWATCH_SSH_KEY_PATH' is required"
	}
	if c.RemotePath == "" {
		problems["remote_path"] = "'TEMPWATCH_REMOTE_PATH' is required"
	}

	if c.windowStartRaw != "" && c.Window.Start == nil {
		problems["window_start"] = "unparseable timestamp: " + c.windowStartRaw
	}
	if c.windowEndRaw != "" && c.Window.End == nil {
		problems["window_end"] = "unparseable timestamp: " + c.windowEndRaw
	}

	if c.Window.Start != nil && c.Window.End != nil && c.Window.Start.After(*c.Window.End) {
		problems["window"] = "window start is after window end"
	}

	return problems
}

// Validate wraps Valid into an error suitable for aborting startup.
func (c *RuntimeConfig) Validate(ctx context.Context) error {
	problems := c.Valid(ctx)
	if len(problems) > 0 {
		return validation.NewValidationError(problems, "config")
	}
	return nil
}

// Addr returns the host:port dial target for the SSH session.
func (c *RuntimeConfig) Addr() string {
	return c.SSHHost + ":" + c.SSHPort
}

func parseWindowTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range windowLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// getEnv returns the env value or the default when unset
func getEnv(envKey, defaultValue string) string {
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable
func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "true" || value == "1" || value == "yes" {
		return true
	}
	if value == "false" || value == "0" || value == "no" {
		return false
	}
	return defaultValue
}
