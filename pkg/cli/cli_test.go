package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fireup-dev/fireup/pkg/cli"
	"github.com/fireup-dev/fireup/pkg/cli/config"
	"github.com/fireup-dev/fireup/pkg/utils/dryrun"
	"github.com/m-mizutani/gt"
)

func TestSetupRejectsConflictingSeedFlags(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"fireup", "--log-quiet", "setup", "--seed", "--no-seed",
	})
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("mutually exclusive")
}

func TestDeployRejectsUnknownTarget(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"fireup", "--log-quiet", "deploy", "--only", "hosting",
	})
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("unknown deploy target")
}

func TestSeedRejectsMissingDataFile(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"fireup", "--log-quiet", "seed",
		"--data", filepath.Join(t.TempDir(), "absent.yml"),
		"--dry-run",
	})
	gt.Error(t, err)
}

func TestSeedDryRunNeedsNoProject(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "seed.yml")
	gt.NoError(t, os.WriteFile(dataPath, []byte("users:\n  - name: Alice\n"), 0600))

	gt.NoError(t, cli.Run(context.Background(), []string{
		"fireup", "--log-quiet", "seed", "--data", dataPath, "--dry-run",
	}))
}

func TestSeedRequiresProjectID(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "seed.yml")
	gt.NoError(t, os.WriteFile(dataPath, []byte("users:\n  - name: Alice\n"), 0600))

	var cfg config.Firestore
	err := cli.RunSeedForTest(context.Background(), &cfg, dataPath)
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("firestore-project-id is required")
}

func TestSeedDryRunDirect(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "seed.yml")
	gt.NoError(t, os.WriteFile(dataPath, []byte("users:\n  - _id: alice\n    name: Alice\n"), 0600))

	var cfg config.Firestore
	ctx := dryrun.With(context.Background(), true)
	gt.NoError(t, cli.RunSeedForTest(ctx, &cfg, dataPath))
}

func TestMigrateRequiresProjectID(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"fireup", "--log-quiet", "migrate", "--dry-run",
	})
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("firestore-project-id is required")
}

func TestInvalidLogLevel(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"fireup", "--log-level", "verbose", "setup",
	})
	gt.Error(t, err)
}
