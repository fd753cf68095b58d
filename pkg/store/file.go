package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

var emptyDocument = []byte("{}")

// fileStore persists the document as a single JSON file.
type fileStore struct {
	mu   sync.Mutex
	path string
}

// newFileStore creates a file store at the given path. The file itself
// is created lazily on the first load or save.
func newFileStore(path string) *fileStore {
	return &fileStore{
		path: path,
	}
}

// Load reads and parses the document file, creating an empty document
// if the file does not exist.
func (f *fileStore) Load(data any) error {
	log.Trace("--> Load")
	defer log.Trace("<-- Load")

	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := f.read()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptStorage, f.path, err)
	}
	return nil
}

// Save overwrites the document file completely.
func (f *fileStore) Save(data any) error {
	log.Trace("--> Save")
	defer log.Trace("<-- Save")

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.WriteFile(f.path, b, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}

// Healthy recreates the document file if it vanished and verifies the
// content still parses.
func (f *fileStore) Healthy() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := f.read()
	if err != nil {
		return err
	}
	if !json.Valid(b) {
		return fmt.Errorf("%w: %s", ErrCorruptStorage, f.path)
	}
	return nil
}

// read returns the file content, creating an empty document when the
// file is absent. Callers must hold the mutex.
func (f *fileStore) read() ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if err == nil {
		return b, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	log.Warningf("Storage file %s not found, creating an empty document", f.path)
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.path, emptyDocument, 0644); err != nil {
		return nil, fmt.Errorf("creating %s: %w", f.path, err)
	}
	return emptyDocument, nil
}
