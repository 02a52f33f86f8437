// Package config provides configuration management for the duskward MUD
// engine. It handles environment variable loading, validation, and
// provides secure defaults for production deployment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"duskward/pkg/retry"

	"github.com/sirupsen/logrus"
)

// Config represents the server configuration with environment variable
// support. All configuration values can be set via environment variables
// or will use secure defaults appropriate for production deployment.
// Config is thread-safe; all field access should be done through getter
// methods when used concurrently, or by holding the mutex directly.
type Config struct {
	// mu provides thread-safe access to configuration fields when the
	// Config instance is shared across goroutines. Use RLock for reads
	// and Lock for writes.
	mu sync.RWMutex `json:"-"`

	// ServerPort is the port the websocket listener binds to.
	ServerPort int `json:"server_port"`

	// IdleTimeout is the duration of inactivity after which a
	// connection is disconnected.
	IdleTimeout time.Duration `json:"idle_timeout"`

	// LogLevel controls the logging verbosity (debug, info, warn, error).
	LogLevel string `json:"log_level"`

	// AllowedOrigins is a list of allowed WebSocket origins for CORS.
	AllowedOrigins []string `json:"allowed_origins"`

	// MaxLineLength is the maximum size, in bytes, of a single incoming
	// command line accepted by the transport layer.
	MaxLineLength int64 `json:"max_line_length"`

	// EnableDevMode enables development-friendly settings (broader
	// CORS, verbose logging).
	EnableDevMode bool `json:"enable_dev_mode"`

	// RequestTimeout is the maximum duration for processing one
	// inbound command before it is abandoned.
	RequestTimeout time.Duration `json:"request_timeout"`

	// World tick configuration for the single cooperative executor

	// TickInterval is the base cadence of the executor's main loop,
	// which drains the inbound command channel between ticker fires.
	TickInterval time.Duration `json:"tick_interval"`

	// CombatRoundInterval is how often the combat round ticker fires.
	CombatRoundInterval time.Duration `json:"combat_round_interval"`

	// EffectTickQuantum is the granularity the effect timer heap is
	// drained at.
	EffectTickQuantum time.Duration `json:"effect_tick_quantum"`

	// MobWanderInterval is how often idle mobs are considered for
	// wander movement.
	MobWanderInterval time.Duration `json:"mob_wander_interval"`

	// ShopRestockInterval is how often shopkeeper inventories are
	// replenished from their reset rules.
	ShopRestockInterval time.Duration `json:"shop_restock_interval"`

	// World/character configuration

	// DungeonDataDir is the directory containing dungeon, entity
	// template, and archetype YAML data loaded at bootstrap.
	DungeonDataDir string `json:"dungeon_data_dir"`

	// GraveyardRoomRef is the `@<dungeon-id>{x,y,z}` room reference
	// a dead mob's corpse/spirit resolves to.
	GraveyardRoomRef string `json:"graveyard_room_ref"`

	// LoginMaxAttempts is the number of failed password submissions the
	// login state machine tolerates before closing the connection.
	LoginMaxAttempts int `json:"login_max_attempts"`

	// LinkdeadEnabled controls whether a disconnecting session's bound
	// mob remains in the world (linkdead) instead of being pulled out
	// on disconnect.
	LinkdeadEnabled bool `json:"linkdead_enabled"`

	// Performance monitoring configuration

	// EnableProfiling enables pprof profiling endpoints (/debug/pprof).
	EnableProfiling bool `json:"enable_profiling"`

	// ProfilingPort is the port for the profiling server (0 = same port
	// as main server).
	ProfilingPort int `json:"profiling_port"`

	// MetricsInterval is how often performance metrics are collected.
	MetricsInterval time.Duration `json:"metrics_interval"`

	// AlertingEnabled enables performance alerting.
	AlertingEnabled bool `json:"alerting_enabled"`

	// AlertingInterval is how often performance alerts are checked.
	AlertingInterval time.Duration `json:"alerting_interval"`

	// Rate limiting configuration (per-connection input flood guard)

	// RateLimitEnabled enables rate limiting of inbound command lines.
	RateLimitEnabled bool `json:"rate_limit_enabled"`

	// RateLimitRequestsPerSecond is the number of command lines allowed
	// per second per connection.
	RateLimitRequestsPerSecond float64 `json:"rate_limit_requests_per_second"`

	// RateLimitBurst is the maximum number of command lines allowed in
	// a burst per connection.
	RateLimitBurst int `json:"rate_limit_burst"`

	// RateLimitCleanupInterval is how often to clean up expired
	// per-connection rate limiters.
	RateLimitCleanupInterval time.Duration `json:"rate_limit_cleanup_interval"`

	// Retry configuration

	// RetryEnabled enables retry logic for transient failures.
	RetryEnabled bool `json:"retry_enabled"`

	// RetryMaxAttempts is the maximum number of retry attempts
	// (including the initial attempt).
	RetryMaxAttempts int `json:"retry_max_attempts"`

	// RetryInitialDelay is the initial delay before the first retry.
	RetryInitialDelay time.Duration `json:"retry_initial_delay"`

	// RetryMaxDelay is the maximum delay between retries.
	RetryMaxDelay time.Duration `json:"retry_max_delay"`

	// RetryBackoffMultiplier is the multiplier for exponential backoff
	// (typically 2.0).
	RetryBackoffMultiplier float64 `json:"retry_backoff_multiplier"`

	// RetryJitterPercent is the maximum percentage of jitter to add
	// (0-100).
	RetryJitterPercent int `json:"retry_jitter_percent"`

	// Persistence configuration

	// DataDir is the directory where character and world-save data is
	// persisted.
	DataDir string `json:"data_dir"`

	// AutoSaveInterval is how often world state is automatically saved
	// to disk.
	AutoSaveInterval time.Duration `json:"auto_save_interval"`

	// EnablePersistence enables automatic world-state persistence.
	EnablePersistence bool `json:"enable_persistence"`

	// Server lifecycle timeouts

	// BootstrapTimeout is the maximum duration for bootstrap world
	// generation/load.
	BootstrapTimeout time.Duration `json:"bootstrap_timeout"`

	// ShutdownTimeout is the maximum duration for graceful server
	// shutdown.
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// ShutdownGracePeriod is the grace period after shutdown before
	// forcing exit.
	ShutdownGracePeriod time.Duration `json:"shutdown_grace_period"`
}

// Load creates a new Config instance by reading from environment
// variables and applying secure defaults. It validates all configuration
// values and returns an error if any required values are missing or
// invalid.
func Load() (*Config, error) {
	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"package":  "config",
	}).Debug("entering Load")

	config := &Config{
		ServerPort:     getEnvAsInt("SERVER_PORT", 8080),
		IdleTimeout:    getEnvAsDuration("IDLE_TIMEOUT", 30*time.Minute),
		LogLevel:       getEnvAsString("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvAsStringSlice("ALLOWED_ORIGINS", []string{}),
		MaxLineLength:  getEnvAsInt64("MAX_LINE_LENGTH", 4*1024), // 4KB default
		EnableDevMode:  getEnvAsBool("ENABLE_DEV_MODE", true),    // default to dev mode for easier setup
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),

		// World tick defaults
		TickInterval:        getEnvAsDuration("TICK_INTERVAL", 100*time.Millisecond),
		CombatRoundInterval: getEnvAsDuration("COMBAT_ROUND_INTERVAL", 2*time.Second),
		EffectTickQuantum:   getEnvAsDuration("EFFECT_TICK_QUANTUM", 1*time.Second),
		MobWanderInterval:   getEnvAsDuration("MOB_WANDER_INTERVAL", 30*time.Second),
		ShopRestockInterval: getEnvAsDuration("SHOP_RESTOCK_INTERVAL", 10*time.Minute),

		// World/character defaults
		DungeonDataDir:   getEnvAsString("DUNGEON_DATA_DIR", "./world"),
		GraveyardRoomRef: getEnvAsString("GRAVEYARD_ROOM_REF", "@town1{1,1,0}"),
		LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 3),
		LinkdeadEnabled:  getEnvAsBool("LINKDEAD_ENABLED", true),

		// Performance monitoring defaults
		EnableProfiling:  getEnvAsBool("ENABLE_PROFILING", false),               // disabled by default for security
		ProfilingPort:    getEnvAsInt("PROFILING_PORT", 0),                      // 0 = use same port as main server
		MetricsInterval:  getEnvAsDuration("METRICS_INTERVAL", 30*time.Second),  // collect metrics every 30s
		AlertingEnabled:  getEnvAsBool("ALERTING_ENABLED", true),                // enable alerting by default
		AlertingInterval: getEnvAsDuration("ALERTING_INTERVAL", 30*time.Second), // check alerts every 30s

		// Rate limiting defaults
		RateLimitEnabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),                       // enabled by default, protects the executor
		RateLimitRequestsPerSecond: getEnvAsFloat64("RATE_LIMIT_REQUESTS_PER_SECOND", 5),           // 5 lines per second default
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 10),                            // 10 lines burst default
		RateLimitCleanupInterval:   getEnvAsDuration("RATE_LIMIT_CLEANUP_INTERVAL", 1*time.Minute), // 1 minute cleanup interval

		// Retry defaults
		RetryEnabled:           getEnvAsBool("RETRY_ENABLED", true),                           // enabled by default
		RetryMaxAttempts:       getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),                          // 3 attempts default
		RetryInitialDelay:      getEnvAsDuration("RETRY_INITIAL_DELAY", 100*time.Millisecond), // 100ms initial delay
		RetryMaxDelay:          getEnvAsDuration("RETRY_MAX_DELAY", 30*time.Second),           // 30s max delay
		RetryBackoffMultiplier: getEnvAsFloat64("RETRY_BACKOFF_MULTIPLIER", 2.0),              // 2.0 backoff multiplier
		RetryJitterPercent:     getEnvAsInt("RETRY_JITTER_PERCENT", 10),                       // 10% jitter

		// Persistence defaults
		DataDir:           getEnvAsString("DATA_DIR", "./data"),                   // ./data directory default
		AutoSaveInterval:  getEnvAsDuration("AUTO_SAVE_INTERVAL", 30*time.Second), // 30s auto-save interval
		EnablePersistence: getEnvAsBool("ENABLE_PERSISTENCE", true),               // enabled by default

		// Server lifecycle timeout defaults
		BootstrapTimeout:    getEnvAsDuration("BOOTSTRAP_TIMEOUT", 60*time.Second),    // 60s bootstrap timeout
		ShutdownTimeout:     getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),     // 30s shutdown timeout
		ShutdownGracePeriod: getEnvAsDuration("SHUTDOWN_GRACE_PERIOD", 1*time.Second), // 1s grace period
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Load",
		"package":     "config",
		"server_port": config.ServerPort,
		"dev_mode":    config.EnableDevMode,
		"log_level":   config.LogLevel,
	}).Debug("configuration loaded, starting validation")

	if err := config.validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Load",
			"package":  "config",
			"error":    err,
		}).Error("configuration validation failed")
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Load",
		"package":     "config",
		"server_port": config.ServerPort,
		"dev_mode":    config.EnableDevMode,
		"log_level":   config.LogLevel,
	}).Debug("exiting Load - configuration successfully loaded and validated")

	return config, nil
}

// validate checks that all configuration values are valid and
// consistent. It coordinates validation of all configuration sections
// including server settings, timeouts, world tick cadence, rate
// limiting, and retry policies.
func (c *Config) validate() error {
	if err := c.validateServerSettings(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateSecuritySettings(); err != nil {
		return err
	}
	if err := c.validateWorldTickSettings(); err != nil {
		return err
	}
	if err := c.validateRateLimitConfig(); err != nil {
		return err
	}
	if err := c.validateRetryConfig(); err != nil {
		return err
	}
	return nil
}

// validateServerSettings checks the listener port and log level.
func (c *Config) validateServerSettings() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.ServerPort)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	found := false
	for _, level := range validLogLevels {
		if strings.ToLower(c.LogLevel) == level {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("log level must be one of %v, got %s", validLogLevels, c.LogLevel)
	}
	return nil
}

// validateTimeouts ensures timeout values meet minimum requirements.
func (c *Config) validateTimeouts() error {
	if c.IdleTimeout < time.Minute {
		return fmt.Errorf("idle timeout must be at least 1 minute, got %v", c.IdleTimeout)
	}
	if c.RequestTimeout < time.Second {
		return fmt.Errorf("request timeout must be at least 1 second, got %v", c.RequestTimeout)
	}
	return nil
}

// validateSecuritySettings checks security-related configuration.
func (c *Config) validateSecuritySettings() error {
	if c.MaxLineLength < 64 {
		return fmt.Errorf("max line length must be at least 64 bytes, got %d", c.MaxLineLength)
	}
	if !c.EnableDevMode && len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("allowed origins must be specified when dev mode is disabled")
	}
	return nil
}

// validateWorldTickSettings ensures the executor's ticker cadences are
// positive and the combat round and effect quantum are not finer than
// the base tick (which would starve the executor's inbound drain).
func (c *Config) validateWorldTickSettings() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.TickInterval)
	}
	if c.CombatRoundInterval < c.TickInterval {
		return fmt.Errorf("combat round interval must be at least the tick interval (%v), got %v", c.TickInterval, c.CombatRoundInterval)
	}
	if c.EffectTickQuantum < c.TickInterval {
		return fmt.Errorf("effect tick quantum must be at least the tick interval (%v), got %v", c.TickInterval, c.EffectTickQuantum)
	}
	if c.LoginMaxAttempts < 1 {
		return fmt.Errorf("login max attempts must be at least 1, got %d", c.LoginMaxAttempts)
	}
	return nil
}

// validateRateLimitConfig ensures rate limiting parameters are valid
// when enabled.
func (c *Config) validateRateLimitConfig() error {
	if c.RateLimitEnabled {
		if c.RateLimitRequestsPerSecond <= 0 {
			return fmt.Errorf("rate limit requests per second must be greater than 0 when rate limiting is enabled")
		}
		if c.RateLimitBurst <= 0 {
			return fmt.Errorf("rate limit burst must be greater than 0 when rate limiting is enabled")
		}
	}
	return nil
}

// validateRetryConfig ensures retry policy parameters are valid when
// enabled.
func (c *Config) validateRetryConfig() error {
	if c.RetryEnabled {
		if c.RetryMaxAttempts < 1 {
			return fmt.Errorf("retry max attempts must be at least 1 when retry is enabled")
		}
		if c.RetryInitialDelay < 0 {
			return fmt.Errorf("retry initial delay must be non-negative when retry is enabled")
		}
		if c.RetryMaxDelay < c.RetryInitialDelay {
			return fmt.Errorf("retry max delay must be greater than or equal to initial delay when retry is enabled")
		}
		if c.RetryBackoffMultiplier <= 1.0 {
			return fmt.Errorf("retry backoff multiplier must be greater than 1.0 when retry is enabled")
		}
		if c.RetryJitterPercent < 0 || c.RetryJitterPercent > 100 {
			return fmt.Errorf("retry jitter percent must be between 0 and 100 when retry is enabled")
		}
	}
	return nil
}

// IsOriginAllowed checks if the given origin is allowed for WebSocket
// connections. In development mode, all origins are allowed. In
// production mode, only explicitly allowed origins are permitted. This
// method is thread-safe.
func (c *Config) IsOriginAllowed(origin string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.EnableDevMode {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// GetRetryConfig creates a retry.RetryConfig from the current
// configuration. This converts the application-level retry settings
// into the format expected by the retry package. The returned
// configuration can be used directly with retry.NewRetrier() to create
// a retrier instance.
func (c *Config) GetRetryConfig() retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts:       c.RetryMaxAttempts,
		InitialDelay:      c.RetryInitialDelay,
		MaxDelay:          c.RetryMaxDelay,
		BackoffMultiplier: c.RetryBackoffMultiplier,
		JitterMaxPercent:  c.RetryJitterPercent,
		RetryableErrors:   []error{}, // will use default error classification
	}
}

// Helper functions for environment variable parsing with type safety and defaults

func getEnvAsString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
