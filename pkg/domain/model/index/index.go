// Package index parses firebase-format firestore.indexes.json files and
// converts them into fireconf configurations for native migration.
package index

import (
	"encoding/json"
	"os"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
)

// File is the root of a firestore.indexes.json document.
type File struct {
	Indexes        []Index           `json:"indexes"`
	FieldOverrides []json.RawMessage `json:"fieldOverrides,omitempty"`
}

// Index is one composite index definition.
type Index struct {
	CollectionGroup string  `json:"collectionGroup"`
	QueryScope      string  `json:"queryScope"`
	Fields          []Field `json:"fields"`
}

// Field is one indexed field. Exactly one of Order, ArrayConfig or
// VectorConfig is set.
type Field struct {
	FieldPath    string        `json:"fieldPath"`
	Order        string        `json:"order,omitempty"`
	ArrayConfig  string        `json:"arrayConfig,omitempty"`
	VectorConfig *VectorConfig `json:"vectorConfig,omitempty"`
}

// VectorConfig mirrors the firebase vector index field settings.
type VectorConfig struct {
	Dimension int             `json:"dimension"`
	Flat      json.RawMessage `json:"flat,omitempty"`
}

const (
	queryScopeCollection      = "COLLECTION"
	queryScopeCollectionGroup = "COLLECTION_GROUP"

	orderAscending  = "ASCENDING"
	orderDescending = "DESCENDING"
)

// Load reads and parses an index definition file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read index definition file", goerr.V("path", path))
	}
	return Parse(raw)
}

// Parse decodes and validates the index definition document.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse index definitions")
	}

	for _, idx := range f.Indexes {
		if idx.CollectionGroup == "" {
			return nil, goerr.New("index definition has no collectionGroup")
		}
		if len(idx.Fields) == 0 {
			return nil, goerr.New("index definition has no fields",
				goerr.V("collection", idx.CollectionGroup))
		}
		for _, field := range idx.Fields {
			if field.FieldPath == "" {
				return nil, goerr.New("index field has no fieldPath",
					goerr.V("collection", idx.CollectionGroup))
			}
		}
	}

	return &f, nil
}

// ToFireconf converts the parsed definitions into a fireconf configuration,
// grouped by collection. Array-contains fields cannot be expressed through
// the migration path and are rejected; deploy those with the firebase CLI.
func (x *File) ToFireconf() (*fireconf.Config, error) {
	byName := map[string]int{}
	var collections []fireconf.Collection

	for _, idx := range x.Indexes {
		scope := fireconf.QueryScopeCollection
		switch idx.QueryScope {
		case queryScopeCollection, "":
		case queryScopeCollectionGroup:
			scope = fireconf.QueryScopeCollectionGroup
		default:
			return nil, goerr.New("unknown query scope",
				goerr.V("collection", idx.CollectionGroup),
				goerr.V("scope", idx.QueryScope))
		}

		var fields []fireconf.IndexField
		for _, field := range idx.Fields {
			if field.ArrayConfig != "" {
				return nil, goerr.New("array index fields are not supported, deploy them with the firebase CLI",
					goerr.V("collection", idx.CollectionGroup),
					goerr.V("field", field.FieldPath))
			}

			converted := fireconf.IndexField{Path: field.FieldPath}
			switch {
			case field.VectorConfig != nil:
				converted.Vector = &fireconf.VectorConfig{
					Dimension: field.VectorConfig.Dimension,
				}
			case field.Order == orderAscending:
				converted.Order = fireconf.OrderAscending
			case field.Order == orderDescending:
				converted.Order = fireconf.OrderDescending
			default:
				return nil, goerr.New("unknown field order",
					goerr.V("collection", idx.CollectionGroup),
					goerr.V("field", field.FieldPath),
					goerr.V("order", field.Order))
			}
			fields = append(fields, converted)
		}

		pos, ok := byName[idx.CollectionGroup]
		if !ok {
			pos = len(collections)
			byName[idx.CollectionGroup] = pos
			collections = append(collections, fireconf.Collection{Name: idx.CollectionGroup})
		}
		collections[pos].Indexes = append(collections[pos].Indexes, fireconf.Index{
			QueryScope: scope,
			Fields:     fields,
		})
	}

	if len(collections) == 0 {
		return nil, goerr.New("no indexes defined")
	}

	return &fireconf.Config{Collections: collections}, nil
}
