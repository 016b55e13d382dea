package cli

import (
	"context"

	"github.com/fireup-dev/fireup/pkg/cli/config"
	"github.com/fireup-dev/fireup/pkg/domain/interfaces"
	"github.com/fireup-dev/fireup/pkg/domain/model/seed"
	"github.com/fireup-dev/fireup/pkg/repository/memory"
	seedsvc "github.com/fireup-dev/fireup/pkg/service/seed"
	"github.com/fireup-dev/fireup/pkg/utils/dryrun"
	"github.com/fireup-dev/fireup/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var cfg config.Firestore
	var dataPath string
	var dryRun bool

	return &cli.Command{
		Name:  "seed",
		Usage: "Write a YAML sample dataset straight into Firestore",
		Flags: joinFlags(cfg.Flags(), []cli.Flag{
			&cli.StringFlag{
				Name:        "data",
				Aliases:     []string{"d"},
				Usage:       "Path to the YAML seed dataset",
				Value:       "seed.yml",
				Destination: &dataPath,
				Sources:     cli.EnvVars("FIREUP_SEED_DATA"),
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Show what would be written without connecting",
				Destination: &dryRun,
			},
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			return runSeed(dryrun.With(ctx, dryRun), &cfg, dataPath)
		},
	}
}

func runSeed(ctx context.Context, cfg *config.Firestore, dataPath string) error {
	logger := logging.From(ctx)

	ds, err := seed.Load(dataPath)
	if err != nil {
		return err
	}

	var store interfaces.SeedStore
	if dryrun.IsDryRun(ctx) {
		store = memory.New()
	} else {
		if !cfg.IsConfigured() {
			return goerr.New("firestore-project-id is required")
		}
		fs, err := cfg.Configure(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := fs.Close(); err != nil {
				logger.Warn("failed to close firestore client", "error", err)
			}
		}()
		store = fs
	}

	written, err := seedsvc.New(store).Apply(ctx, ds)
	if err != nil {
		return goerr.Wrap(err, "seeding aborted", goerr.V("written", written))
	}

	logger.Info("seeding completed", "documents", written, "data", dataPath)
	return nil
}
