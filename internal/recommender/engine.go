package recommender

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"prep-pilot/internal/domain/catalog"
)

// CatalogLoader is the slice of the catalog store the engine needs.
type CatalogLoader interface {
	Load() ([]catalog.Row, error)
}

// Engine owns the shared snapshot. Readers take the current snapshot through
// Snapshot(); a refit builds a replacement and publishes it atomically, so a
// request never observes a half-built vector space.
type Engine struct {
	loader      CatalogLoader
	maxFeatures int
	log         *zap.Logger

	snap  atomic.Pointer[Snapshot]
	fitMu sync.Mutex
}

func NewEngine(loader CatalogLoader, maxFeatures int, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{loader: loader, maxFeatures: maxFeatures, log: log}
}

// Ready reports whether a fitted snapshot has been published.
func (e *Engine) Ready() bool {
	return e.snap.Load() != nil
}

// Warmup kicks off the initial fit in the background so the first request
// doesn't pay the full load-and-fit latency. Failure is only logged; the next
// request will retry synchronously.
func (e *Engine) Warmup() {
	go func() {
		if err := e.Fit(); err != nil {
			e.log.Warn("background catalog fit failed", zap.Error(err))
		}
	}()
}

// Fit reloads the catalog, rebuilds the vector space and swaps the shared
// snapshot. Concurrent fits serialize; concurrent readers keep the previous
// snapshot until the swap.
func (e *Engine) Fit() error {
	e.fitMu.Lock()
	defer e.fitMu.Unlock()
	return e.fitLocked()
}

func (e *Engine) fitLocked() error {
	rows, err := e.loader.Load()
	if err != nil {
		return err
	}
	snap, err := buildSnapshot(rows, e.maxFeatures)
	if err != nil {
		return err
	}
	e.snap.Store(snap)
	e.log.Info("catalog fitted",
		zap.Int("rows", len(snap.Rows)),
		zap.Int("features", snap.Space.Size()),
	)
	return nil
}

// Snapshot returns the current snapshot, fitting synchronously when none has
// been published yet. Callers arriving while a fit is in flight block on it
// rather than scoring against an unfit space.
func (e *Engine) Snapshot() (*Snapshot, error) {
	if snap := e.snap.Load(); snap != nil {
		return snap, nil
	}

	e.fitMu.Lock()
	defer e.fitMu.Unlock()
	if snap := e.snap.Load(); snap != nil {
		return snap, nil
	}
	if err := e.fitLocked(); err != nil {
		return nil, err
	}
	return e.snap.Load(), nil
}
