// Package economy is the ledger and cooldown engine: it atomically
// reads, mutates and persists the per-guild, per-member records held by
// the store, and reports every committed mutation to the host.
package economy

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sarratt/treasury/pkg/config"
	"github.com/sarratt/treasury/pkg/docpath"
	"github.com/sarratt/treasury/pkg/notify"
	"github.com/sarratt/treasury/pkg/store"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Engine serializes every mutation of the treasury document. Each
// public mutating operation performs one read, one in-memory transform
// and one write inside the same critical section, so concurrent calls
// never interleave their reads and writes.
type Engine struct {
	cfg      *config.Config
	store    store.Store
	notifier notify.Notifier
	locale   language.Tag

	mu  sync.RWMutex
	rng *rand.Rand

	ready    atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates an engine backed by the given store. A nil notifier
// discards all events.
func New(cfg *config.Config, st store.Store, notifier notify.Notifier) *Engine {
	if notifier == nil {
		notifier = notify.Noop{}
	}

	locale, err := language.Parse(cfg.DateLocale)
	if err != nil {
		log.Error("Unable to parse the date locale, error:", err)
		locale = language.English
	}

	return &Engine{
		cfg:      cfg,
		store:    st,
		notifier: notifier,
		locale:   locale,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		done:     make(chan struct{}),
	}
}

// Start loads the document for the first time, retrying a corrupt store
// per the configured policy, and launches the storage health watcher.
// Operations invoked before Start fail with ErrNotReady.
func (e *Engine) Start() error {
	log.Trace("--> Start")
	defer log.Trace("<-- Start")

	var doc Document
	for attempt := 1; ; attempt++ {
		err := e.store.Load(&doc)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrCorruptStorage) {
			return err
		}
		if e.cfg.RetryAttempts > 0 && attempt >= e.cfg.RetryAttempts {
			return fmt.Errorf("storage failed to load after %d attempts: %w", attempt, err)
		}
		log.Warningf("Storage failed to load (attempt %d), retrying in %s, error=%s", attempt, e.cfg.RetryDelay, err.Error())
		time.Sleep(e.cfg.RetryDelay)
	}

	e.ready.Store(true)
	e.wg.Add(1)
	go e.watch()
	return nil
}

// Stop halts the health watcher. The engine rejects further operations.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.ready.Store(false)
		close(e.done)
	})
	e.wg.Wait()
}

// watch periodically verifies the stored document still exists and
// parses. It shares the engine's critical section so the check never
// interleaves with an in-flight mutation's write.
func (e *Engine) watch() {
	defer e.wg.Done()

	interval := e.cfg.UpdateCountdown
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			e.mu.Lock()
			err := e.store.Healthy()
			e.mu.Unlock()
			if err != nil {
				log.Error("Storage health check failed, error:", err)
			}
		}
	}
}

// Update runs fn against a freshly loaded document inside the write
// critical section. The document is persisted only when fn reports a
// mutation, so a failed transform leaves the stored document unchanged.
func (e *Engine) Update(fn func(doc Document) (bool, error)) error {
	if !e.ready.Load() {
		return ErrNotReady
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	doc := Document{}
	if err := e.store.Load(&doc); err != nil {
		return err
	}
	save, err := fn(doc)
	if err != nil {
		return err
	}
	if !save {
		return nil
	}
	return e.store.Save(doc)
}

// View runs fn against the latest committed document without blocking
// other readers.
func (e *Engine) View(fn func(doc Document) error) error {
	if !e.ready.Load() {
		return ErrNotReady
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	doc := Document{}
	if err := e.store.Load(&doc); err != nil {
		return err
	}
	return fn(doc)
}

// Notify reports a committed mutation to the host.
func (e *Engine) Notify(event notify.Event) {
	e.notifier.Emit(event)
}

// Config returns the global configuration the engine was created with.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// FormatDate renders a timestamp the way the configured locale writes
// dates, for storage in shop and history records.
func (e *Engine) FormatDate(t time.Time) string {
	base, _ := e.locale.Base()
	if base.String() == "en" {
		return t.Format("1/2/2006, 3:04:05 PM")
	}
	return t.Format("2.1.2006, 15:04:05")
}

// Fetch returns the raw value at a dotted path into the document, such
// as "guildID.memberID.money". The second return value is false when
// any key along the path is absent.
func (e *Engine) Fetch(path string) (any, bool, error) {
	if !e.ready.Load() {
		return nil, false, ErrNotReady
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	raw := make(map[string]any)
	if err := e.store.Load(&raw); err != nil {
		return nil, false, err
	}
	value, ok := docpath.Get(raw, path)
	return value, ok, nil
}

// HasValue reports whether a value exists at the dotted path.
func (e *Engine) HasValue(path string) (bool, error) {
	_, ok, err := e.Fetch(path)
	return ok, err
}

// SetValue writes a raw value at the dotted path, creating intermediate
// levels as needed. It bypasses the typed record model; callers are
// responsible for keeping the value schema-compatible.
func (e *Engine) SetValue(path string, value any) error {
	if !e.ready.Load() {
		return ErrNotReady
	}
	if path == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	raw := make(map[string]any)
	if err := e.store.Load(&raw); err != nil {
		return err
	}
	raw = docpath.Set(raw, path, value)
	return e.store.Save(raw)
}

// validateIDs rejects empty guild or member identifiers.
func validateIDs(guildID string, memberID string) error {
	if guildID == "" {
		return fmt.Errorf("%w: guild ID is empty", ErrInvalidArgument)
	}
	if memberID == "" {
		return fmt.Errorf("%w: member ID is empty", ErrInvalidArgument)
	}
	return nil
}
