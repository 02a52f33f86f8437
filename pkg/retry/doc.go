// Package retry provides configurable retry mechanisms with exponential backoff
// for transient failures. It integrates with circuit breakers and respects
// context deadlines to provide resilient operation handling.
//
// # Saving and loading the world snapshot
//
// pkg/orchestrator's SaveAll/LoadAll wrap the file store's Save/Load
// calls in a Retrier built from PersistenceRetryConfig, riding out a
// momentary NFS hiccup without stalling the autosave ticker for more
// than a couple seconds:
//
//	retrier := retry.NewRetrier(retry.PersistenceRetryConfig())
//	err := retrier.Execute(ctx, func(ctx context.Context) error {
//	    return store.Save("world.yaml", snapshot)
//	})
//
// # Backoff Strategy
//
// Delays increase exponentially between retries:
//
//	Attempt 1: InitialDelay (e.g. 50ms)
//	Attempt 2: InitialDelay * BackoffMultiplier
//	Attempt 3: Previous * BackoffMultiplier
//	...up to MaxDelay
//
// Jitter is applied to prevent synchronized retries across clients.
//
// # Other Pre-configured Retriers
//
// DefaultRetryConfig, NetworkRetryConfig, and FileSystemRetryConfig
// remain as general-purpose defaults for operations this engine doesn't
// currently retry, alongside PersistenceRetryConfig for the one it does.
//
// # Retryable Errors
//
// Every non-nil error triggers a retry. RetryableErrors can list specific
// errors, but listing them does not stop other errors from being retried:
//
//	config.RetryableErrors = []error{
//	    syscall.ECONNREFUSED,
//	    io.ErrUnexpectedEOF,
//	}
//
// # Context Support
//
// Retries respect context cancellation and deadlines:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	err := retrier.Execute(ctx, operation)
//
// # Logging
//
// Retry attempts are logged with structured context including attempt number,
// delay duration, and error details for debugging transient failures.
package retry
