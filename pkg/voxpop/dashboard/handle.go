package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/cognicore/voxpop/pkg/voxpop/config"
	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
	"github.com/cognicore/voxpop/pkg/voxpop/loader"
)

// LoadFunc produces a fresh dataset.
type LoadFunc func(ctx context.Context) (*dataset.Dataset, error)

// FileLoader loads path with the column mapping and source selection of
// the profile.
func FileLoader(path string, profile *config.Profile, logger *slog.Logger) LoadFunc {
	opts := loader.Options{
		Columns: profile.Columns,
		Sheet:   profile.Source.Sheet,
		Table:   profile.Source.Table,
		Logger:  logger,
	}
	return func(ctx context.Context) (*dataset.Dataset, error) {
		return loader.Load(ctx, path, opts)
	}
}

// LoadHook observes every load attempt.
type LoadHook func(ds *dataset.Dataset, took time.Duration, err error)

// Handle is the session-wide, read-only dataset. The first call to Dataset
// loads it; concurrent first calls share one load. The dataset is replaced
// only by an explicit Reload. Failed loads are not cached.
//
// A shared load outlives the caller that started it: each caller stops
// waiting when its own context ends, and the load runs on.
type Handle struct {
	load  LoadFunc
	clock clockwork.Clock
	hook  LoadHook
	group singleflight.Group

	mu       sync.RWMutex
	ds       *dataset.Dataset
	loadedAt time.Time
	// started numbers fetches; applied is the number of the fetch whose
	// dataset is current. An older fetch never replaces a newer one.
	started uint64
	applied uint64
}

// HandleOption configures a Handle.
type HandleOption func(*Handle)

// WithHandleClock sets the clock used for load timestamps.
func WithHandleClock(c clockwork.Clock) HandleOption {
	return func(h *Handle) { h.clock = c }
}

// WithLoadHook registers a hook called after each load attempt.
func WithLoadHook(hook LoadHook) HandleOption {
	return func(h *Handle) { h.hook = hook }
}

// NewHandle creates a handle that loads lazily through load.
func NewHandle(load LoadFunc, opts ...HandleOption) *Handle {
	h := &Handle{load: load, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Dataset returns the loaded dataset, loading it on first use.
func (h *Handle) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	if ds := h.Current(); ds != nil {
		return ds, nil
	}
	return h.wait(ctx, "load", func(ctx context.Context) (*dataset.Dataset, error) {
		if cached := h.Current(); cached != nil {
			return cached, nil
		}
		return h.fetch(ctx)
	})
}

// Reload reads the source again and swaps the dataset in on success. On
// failure the previous dataset stays in place.
func (h *Handle) Reload(ctx context.Context) (*dataset.Dataset, error) {
	return h.wait(ctx, "reload", h.fetch)
}

// wait joins the shared call for key. The call runs detached from ctx so
// one caller giving up does not fail the others.
func (h *Handle) wait(ctx context.Context, key string, fn LoadFunc) (*dataset.Dataset, error) {
	detached := context.WithoutCancel(ctx)
	ch := h.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dataset.Dataset), nil
	}
}

// Current returns the loaded dataset without triggering a load, or nil.
func (h *Handle) Current() *dataset.Dataset {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ds
}

// LoadedAt returns when the current dataset was loaded, or the zero time.
func (h *Handle) LoadedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loadedAt
}

func (h *Handle) fetch(ctx context.Context) (*dataset.Dataset, error) {
	h.mu.Lock()
	h.started++
	seq := h.started
	h.mu.Unlock()

	start := h.clock.Now()
	ds, err := h.load(ctx)
	took := h.clock.Since(start)
	if h.hook != nil {
		h.hook(ds, took, err)
	}
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if seq < h.applied {
		return h.ds, nil
	}
	h.ds = ds
	h.loadedAt = h.clock.Now()
	h.applied = seq
	return ds, nil
}
