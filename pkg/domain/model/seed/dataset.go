package seed

import (
	"os"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Document is one record to be written. The reserved "_id" key pins the
// document ID; it is stripped before the write.
type Document map[string]any

const idKey = "_id"

// Dataset maps collection names to the documents seeded into them.
type Dataset map[string][]Document

// Load reads and validates a YAML dataset file.
func Load(path string) (Dataset, error) {
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read seed data file", goerr.V("path", path))
	}

	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seed data file", goerr.V("path", path))
	}

	if len(ds) == 0 {
		return nil, goerr.New("seed data file has no collections", goerr.V("path", path))
	}
	for name, docs := range ds {
		if name == "" {
			return nil, goerr.New("seed data file has an empty collection name", goerr.V("path", path))
		}
		for i, doc := range docs {
			if len(doc) == 0 {
				return nil, goerr.New("seed document is empty",
					goerr.V("collection", name), goerr.V("position", i))
			}
			if id, ok := doc[idKey]; ok {
				if _, ok := id.(string); !ok {
					return nil, goerr.New("seed document _id must be a string",
						goerr.V("collection", name), goerr.V("position", i))
				}
			}
		}
	}

	return ds, nil
}

// Collections returns the collection names in deterministic order.
func (x Dataset) Collections() []string {
	names := make([]string, 0, len(x))
	for name := range x {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ID returns the pinned document ID, or empty when none is set.
func (x Document) ID() string {
	if id, ok := x[idKey].(string); ok {
		return id
	}
	return ""
}

// Fields returns the document content without the reserved ID key.
func (x Document) Fields() map[string]any {
	fields := make(map[string]any, len(x))
	for k, v := range x {
		if k == idKey {
			continue
		}
		fields[k] = v
	}
	return fields
}
