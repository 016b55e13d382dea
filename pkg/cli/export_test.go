package cli

import (
	"context"

	"github.com/fireup-dev/fireup/pkg/cli/config"
)

// RunSeedForTest exposes runSeed for testing.
func RunSeedForTest(ctx context.Context, cfg *config.Firestore, dataPath string) error {
	return runSeed(ctx, cfg, dataPath)
}
