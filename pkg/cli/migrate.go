package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	firestoreadmin "cloud.google.com/go/firestore/apiv1/admin"
	adminpb "cloud.google.com/go/firestore/apiv1/admin/adminpb"
	"github.com/fireup-dev/fireup/pkg/cli/config"
	"github.com/fireup-dev/fireup/pkg/domain/model/index"
	"github.com/fireup-dev/fireup/pkg/service/workflow"
	"github.com/fireup-dev/fireup/pkg/utils/logging"
	"github.com/fireup-dev/fireup/pkg/utils/safe"
	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/iterator"
)

const indexesFileName = "firestore.indexes.json"

func cmdMigrate() *cli.Command {
	var cfg config.Firestore
	var indexesFile string
	var dryRun, noWait bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Reconcile Firestore composite indexes from firestore.indexes.json via the Admin API",
		Flags: joinFlags(cfg.Flags(), []cli.Flag{
			&cli.StringFlag{
				Name:        "indexes-file",
				Usage:       "Path to firestore.indexes.json (default: project root)",
				Destination: &indexesFile,
				Sources:     cli.EnvVars("FIREUP_INDEXES_FILE"),
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Show what would be changed without applying",
				Destination: &dryRun,
			},
			&cli.BoolFlag{
				Name:        "no-wait",
				Usage:       "Return without waiting for indexes to become READY",
				Destination: &noWait,
			},
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			return runMigrate(ctx, &cfg, indexesFile, dryRun, noWait)
		},
	}
}

func runMigrate(ctx context.Context, cfg *config.Firestore, indexesFile string, dryRun, noWait bool) error {
	logger := logging.From(ctx)

	if !cfg.IsConfigured() {
		return goerr.New("firestore-project-id is required")
	}
	projectID := cfg.ProjectID()
	databaseID := cfg.DatabaseID()

	if indexesFile == "" {
		wd, err := os.Getwd()
		if err != nil {
			return goerr.Wrap(err, "failed to get working directory")
		}
		root, err := workflow.FindProjectRoot(wd)
		if err != nil {
			return err
		}
		indexesFile = filepath.Join(root, indexesFileName)
	}

	file, err := index.Load(indexesFile)
	if err != nil {
		return err
	}
	indexConfig, err := file.ToFireconf()
	if err != nil {
		return err
	}

	logger.Info("starting index migration",
		"project_id", projectID,
		"database_id", databaseID,
		"indexes_file", indexesFile,
		"dry_run", dryRun,
	)

	opts := []fireconf.Option{fireconf.WithLogger(logger)}
	if dryRun {
		logger.Info("dry-run mode: showing planned changes without applying")
		opts = append(opts, fireconf.WithDryRun(true))
	}

	client, err := fireconf.NewClient(ctx, projectID, databaseID, opts...)
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		)
	}

	if err := client.Migrate(ctx, indexConfig); err != nil {
		return goerr.Wrap(err, "failed to migrate indexes",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		)
	}

	if !dryRun && !noWait {
		// fireconf's LRO wait can return before new composite indexes are
		// actually queryable, so poll the Admin API until READY.
		if err := waitForIndexesReady(ctx, projectID, databaseID, indexConfig, logger.With("phase", "wait_ready")); err != nil {
			return goerr.Wrap(err, "indexes did not become ready",
				goerr.V("project_id", projectID),
				goerr.V("database_id", databaseID),
			)
		}
	}

	logger.Info("index migration completed")
	return nil
}

// waitForIndexesReady polls the Firestore Admin API until every index of the
// managed collections reports READY.
func waitForIndexesReady(ctx context.Context, projectID, databaseID string, cfg *fireconf.Config, logger interface{ Info(string, ...any) }) error {
	adminClient, err := firestoreadmin.NewFirestoreAdminClient(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to create firestore admin client")
	}
	defer safe.Close(ctx, adminClient)

	var collections []string
	for _, col := range cfg.Collections {
		collections = append(collections, col.Name)
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		allReady := true

		for _, collectionName := range collections {
			parent := "projects/" + projectID + "/databases/" + databaseID + "/collectionGroups/" + collectionName

			it := adminClient.ListIndexes(ctx, &adminpb.ListIndexesRequest{Parent: parent})
			for {
				idx, err := it.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to list indexes",
						goerr.V("collection", collectionName))
				}

				state := idx.GetState()
				if state == adminpb.Index_CREATING || state == adminpb.Index_NEEDS_REPAIR {
					allReady = false
					logger.Info("index not yet ready, waiting",
						"collection", collectionName,
						"index", idx.GetName(),
						"state", state.String(),
					)
				}
			}
		}

		if allReady {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
