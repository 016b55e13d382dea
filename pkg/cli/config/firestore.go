package config

import (
	"context"
	"log/slog"

	"github.com/fireup-dev/fireup/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Firestore holds the direct database connection settings used by the
// native seed and migrate commands.
type Firestore struct {
	projectID  string
	databaseID string
}

func (x *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID",
			Destination: &x.projectID,
			Category:    "Firestore",
			Sources:     cli.EnvVars("FIREUP_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Destination: &x.databaseID,
			Category:    "Firestore",
			Sources:     cli.EnvVars("FIREUP_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
		},
	}
}

func (x Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project_id", x.projectID),
		slog.String("database_id", x.databaseID),
	)
}

func (x *Firestore) Configure(ctx context.Context) (*repository.Firestore, error) {
	return repository.NewFirestore(ctx, x.projectID, x.databaseID)
}

func (x *Firestore) ProjectID() string  { return x.projectID }
func (x *Firestore) DatabaseID() string { return x.databaseID }

// IsConfigured reports whether a project ID was supplied.
func (x *Firestore) IsConfigured() bool { return x.projectID != "" }
