package orchestrator

import (
	"context"
	"fmt"

	"duskward/pkg/character"
	"duskward/pkg/resilience"
	"duskward/pkg/retry"
)

// worldSnapshot is the single document SaveAll writes and boot-time
// load reads back: every known character account keyed by username.
// Live mobs are not part of it. A full deployment would split
// this into per-dungeon and per-account files; one document is enough
// for the in-code starter content this engine seeds in register.go.
type worldSnapshot struct {
	Characters map[string]*character.Character `yaml:"characters"`
}

const worldSnapshotFile = "world.yaml"

// SaveAll persists every character account to the file store, guarded
// by the persistence circuit breaker and retrier: disk I/O is the one
// externally-flaky boundary a cooperative-executor world model has
// (disk full, permission errors, a slow NFS mount), and both need to
// fail the autosave tick cleanly rather than block the executor
// goroutine on a stuck filesystem.
func (e *Engine) SaveAll() error {
	if !e.cfg.EnablePersistence {
		return nil
	}
	snap := &worldSnapshot{Characters: e.characters}
	retrier := retry.NewRetrier(retry.PersistenceRetryConfig())

	return resilience.ExecuteWithPersistenceCircuitBreaker(context.Background(), func(ctx context.Context) error {
		return retrier.Execute(ctx, func(ctx context.Context) error {
			if err := e.store.Save(worldSnapshotFile, snap); err != nil {
				return fmt.Errorf("orchestrator: saving world snapshot: %w", err)
			}
			return nil
		})
	})
}

// LoadAll restores the character account table from the file store at
// boot. A missing snapshot file is not an error: it means this is a
// fresh world with no accounts yet.
func (e *Engine) LoadAll() error {
	if !e.cfg.EnablePersistence {
		return nil
	}
	var snap worldSnapshot
	retrier := retry.NewRetrier(retry.PersistenceRetryConfig())

	err := resilience.ExecuteWithPersistenceCircuitBreaker(context.Background(), func(ctx context.Context) error {
		return retrier.Execute(ctx, func(ctx context.Context) error {
			return e.store.Load(worldSnapshotFile, &snap)
		})
	})
	if err != nil {
		e.logger.WithError(err).Info("no prior world snapshot loaded; starting fresh")
		return nil
	}
	if snap.Characters != nil {
		e.characters = snap.Characters
	}
	return nil
}
