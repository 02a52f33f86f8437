package config

import (
	"context"
	"fmt"
	"os"

	"duskward/pkg/resilience"
	"duskward/pkg/retry"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads filename and unmarshals it into out (a pointer to the
// caller's target type: a dungeon room list, an entity template slice,
// an archetype table, and so on). The read runs under the shared
// "config_loader" circuit breaker and a filesystem-tuned retrier, so a
// flaky mount degrades gracefully instead of panicking bootstrap.
//
// pkg/config deliberately stays ignorant of pkg/entity/pkg/dungeon's
// concrete types here (out is `any`) to avoid an import cycle — the
// bootstrap phase functions in pkg/orchestrator own the target types.
func LoadYAML(filename string, out any) error {
	ctx := context.Background()

	return resilience.ExecuteWithConfigLoaderCircuitBreaker(ctx, func(ctx context.Context) error {
		return retry.ExecuteFileSystem(ctx, func(ctx context.Context) error {
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("reading %s: %w", filename, err)
			}
			if err := yaml.Unmarshal(data, out); err != nil {
				return fmt.Errorf("parsing %s: %w", filename, err)
			}
			return nil
		})
	})
}
