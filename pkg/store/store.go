// Package store is the single source of truth for the persisted
// treasury document. A store holds exactly one document; every read
// loads it whole and every write overwrites it whole.
package store

import (
	"errors"

	"github.com/sarratt/treasury/pkg/config"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrCorruptStorage indicates the persisted document exists but does
	// not parse as the expected schema.
	ErrCorruptStorage = errors.New("stored document is corrupt")
)

// Store loads and saves the whole treasury document.
type Store interface {
	// Load parses the persisted document into data. A missing document is
	// created empty first, so Load never fails on absence.
	Load(data any) error

	// Save serializes data and overwrites the persisted document
	// completely.
	Save(data any) error

	// Healthy verifies the persisted document still exists and parses,
	// recreating an empty one if it vanished. It returns
	// ErrCorruptStorage when the content is invalid.
	Healthy() error
}

// New creates the store selected by the configuration.
func New(cfg *config.Config) (Store, error) {
	log.Debug("Storage type:", cfg.StoreType)
	if cfg.StoreType == config.StoreTypeMongo {
		return newMongoStore(cfg)
	}
	return newFileStore(cfg.StoragePath), nil
}
