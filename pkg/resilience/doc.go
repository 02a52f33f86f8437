// Package resilience implements the circuit breaker pattern for fault tolerance.
//
// This package protects external dependencies and prevents cascade failures by
// enabling fast-fail behavior when services become unavailable, with automatic
// recovery testing when conditions improve.
//
// # Circuit Breaker Pattern
//
// A circuit breaker operates in three states:
//
//   - Closed: Normal operation, all requests pass through
//   - Open: Service failing, requests fail immediately (fast-fail)
//   - HalfOpen: Testing recovery with limited requests
//
// State transitions:
//
//	Closed → Open: After MaxFailures consecutive failures
//	Open → HalfOpen: After Timeout period expires
//	HalfOpen → Closed: After successful test requests
//	HalfOpen → Open: If test requests fail
//
// # Guarding world-snapshot persistence
//
// This engine has exactly one externally-flaky dependency: the file
// store SaveAll/LoadAll read and write through. PersistenceConfig trips
// after 3 consecutive save/load failures and probes again after 10s:
//
//	err := resilience.ExecuteWithPersistenceCircuitBreaker(ctx, func(ctx context.Context) error {
//	    return store.Save("world.yaml", snapshot)
//	})
//	if errors.Is(err, resilience.ErrCircuitBreakerOpen) {
//	    // disk is unhealthy; skip this autosave tick rather than block it
//	}
//
// # Managing Multiple Breakers
//
// Use CircuitBreakerManager for multiple dependencies:
//
//	manager := resilience.NewCircuitBreakerManager()
//	cb := manager.GetOrCreate("database", config)
//	stats := manager.GetAllStats()
//
// # Other Pre-configured Breakers
//
// FileSystemConfig, WebSocketConfig, and ConfigLoaderConfig remain as
// general-purpose defaults for dependencies this engine doesn't
// currently drive through the manager, alongside PersistenceConfig for
// the one it does.
//
// # Monitoring
//
// Query circuit breaker state and statistics:
//
//	state := cb.GetState()       // StateClosed, StateOpen, or StateHalfOpen
//	stats := cb.GetStats()       // Failure counts, request counts, timestamps
//
// # Thread Safety
//
// All circuit breaker operations are thread-safe via internal mutex protection.
// Multiple goroutines can safely execute through the same breaker.
package resilience
