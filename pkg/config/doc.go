// Package config provides configuration management for the duskward MUD
// engine.
//
// This package handles environment variable loading with type-safe
// parsing, applies secure production defaults, and performs extensive
// validation of all configuration values.
//
// # Loading Configuration
//
// Configuration is loaded from plain environment variables (no prefix):
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
// Server settings:
//   - SERVER_PORT: WebSocket listener port (default: 8080)
//   - LOG_LEVEL: Logging verbosity (default: "info")
//
// Timeouts:
//   - IDLE_TIMEOUT: Connection inactivity timeout (default: 30m)
//   - REQUEST_TIMEOUT: Maximum duration to process one inbound command (default: 30s)
//
// Security:
//   - ENABLE_DEV_MODE: Enable development mode (default: true)
//   - ALLOWED_ORIGINS: CORS allowed origins (comma-separated)
//   - MAX_LINE_LENGTH: Maximum inbound command line size in bytes (default: 4KB)
//
// World tick:
//   - TICK_INTERVAL: Executor main-loop cadence (default: 100ms)
//   - COMBAT_ROUND_INTERVAL: Combat round ticker period (default: 2s)
//   - EFFECT_TICK_QUANTUM: Effect timer heap drain granularity (default: 1s)
//   - MOB_WANDER_INTERVAL: Idle mob wander consideration period (default: 30s)
//   - SHOP_RESTOCK_INTERVAL: Shopkeeper inventory restock period (default: 10m)
//
// World/character:
//   - DUNGEON_DATA_DIR: Directory of dungeon/template/archetype YAML data (default: "./world")
//   - GRAVEYARD_ROOM_REF: Room reference a corpse/spirit resolves to on death (default: "@town1{1,1,0}")
//   - LOGIN_MAX_ATTEMPTS: Failed password attempts tolerated before disconnect (default: 3)
//   - LINKDEAD_ENABLED: Keep a disconnecting mob in the world as linkdead (default: true)
//
// Rate limiting (per-connection input flood guard):
//   - RATE_LIMIT_ENABLED: Enable rate limiting (default: true)
//   - RATE_LIMIT_REQUESTS_PER_SECOND: Command lines per second (default: 5)
//   - RATE_LIMIT_BURST: Burst allowance (default: 10)
//
// Retry policy:
//   - RETRY_MAX_ATTEMPTS: Maximum attempts, including the first (default: 3)
//   - RETRY_INITIAL_DELAY: First retry delay (default: 100ms)
//   - RETRY_MAX_DELAY: Maximum retry delay (default: 30s)
//   - RETRY_BACKOFF_MULTIPLIER: Backoff factor (default: 2.0)
//
// Persistence:
//   - DATA_DIR: Character/world-save storage directory (default: "./data")
//   - AUTO_SAVE_INTERVAL: Auto-save frequency (default: 30s)
//
// # Validation
//
// All configuration values are validated on load:
//   - Port must be in valid range (1-65535)
//   - Timeouts must meet minimum requirements
//   - Combat round interval and effect tick quantum must not be finer than the tick interval
//   - Rate limit values must be positive when enabled
//   - Retry configuration must be sensible when enabled
//
// # CORS Support
//
// Use IsOriginAllowed to check WebSocket origins:
//
//	if cfg.IsOriginAllowed(origin) {
//	    // Allow connection
//	}
//
// In development mode (EnableDevMode=true), all origins are allowed.
//
// # Retry Configuration
//
// GetRetryConfig returns a retry.RetryConfig that can be used directly
// with the retry package:
//
//	retryConfig := cfg.GetRetryConfig()
//	retrier := retry.NewRetrier(retryConfig)
package config
