package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/fireup-dev/fireup/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Firestore writes seed documents through the Firestore client.
type Firestore struct {
	db *firestore.Client
}

var _ interfaces.SeedStore = &Firestore{}

func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	db, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		)
	}

	return &Firestore{db: db}, nil
}

func (x *Firestore) Put(ctx context.Context, collection, id string, doc map[string]any) error {
	if _, err := x.db.Collection(collection).Doc(id).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to write seed document",
			goerr.V("collection", collection),
			goerr.V("id", id),
		)
	}
	return nil
}

func (x *Firestore) Close() error {
	return x.db.Close()
}
