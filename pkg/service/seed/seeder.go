// Package seed writes sample datasets straight into the document database,
// replacing the node-based seeding script for operators with Go tooling only.
package seed

import (
	"context"

	"github.com/fireup-dev/fireup/pkg/domain/interfaces"
	"github.com/fireup-dev/fireup/pkg/domain/model/seed"
	"github.com/fireup-dev/fireup/pkg/utils/dryrun"
	"github.com/fireup-dev/fireup/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type Seeder struct {
	store interfaces.SeedStore
}

func New(store interfaces.SeedStore) *Seeder {
	return &Seeder{store: store}
}

// Apply writes every document of the dataset and returns the number of
// documents written. Documents without a pinned ID get a random one. The
// first write failure aborts the run; documents already written stay.
func (x *Seeder) Apply(ctx context.Context, ds seed.Dataset) (int, error) {
	logger := logging.From(ctx)
	written := 0

	for _, collection := range ds.Collections() {
		for _, doc := range ds[collection] {
			id := doc.ID()
			if id == "" {
				id = uuid.NewString()
			}

			if dryrun.IsDryRun(ctx) {
				logger.Info("dry-run: would write document",
					"collection", collection, "id", id)
				written++
				continue
			}

			if err := x.store.Put(ctx, collection, id, doc.Fields()); err != nil {
				return written, goerr.Wrap(err, "failed to seed document",
					goerr.V("collection", collection),
					goerr.V("id", id),
				)
			}
			written++
		}

		logger.Info("seeded collection", "collection", collection,
			"documents", len(ds[collection]))
	}

	return written, nil
}
