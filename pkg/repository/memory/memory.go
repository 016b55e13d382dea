// Package memory is an in-memory SeedStore for tests and dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/fireup-dev/fireup/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type Store struct {
	mu   sync.Mutex
	docs map[string]map[string]map[string]any
}

var _ interfaces.SeedStore = &Store{}

func New() *Store {
	return &Store{
		docs: make(map[string]map[string]map[string]any),
	}
}

func (x *Store) Put(ctx context.Context, collection, id string, doc map[string]any) error {
	if collection == "" || id == "" {
		return goerr.New("collection and id must not be empty",
			goerr.V("collection", collection), goerr.V("id", id))
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.docs[collection] == nil {
		x.docs[collection] = make(map[string]map[string]any)
	}
	copied := make(map[string]any, len(doc))
	for k, v := range doc {
		copied[k] = v
	}
	x.docs[collection][id] = copied

	return nil
}

func (x *Store) Close() error {
	return nil
}

// Get returns a stored document, or nil when absent.
func (x *Store) Get(collection, id string) map[string]any {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.docs[collection] == nil {
		return nil
	}
	return x.docs[collection][id]
}

// Count returns the number of documents in a collection.
func (x *Store) Count(collection string) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	return len(x.docs[collection])
}

// IDs returns the document IDs of a collection.
func (x *Store) IDs(collection string) []string {
	x.mu.Lock()
	defer x.mu.Unlock()

	var ids []string
	for id := range x.docs[collection] {
		ids = append(ids, id)
	}
	return ids
}
