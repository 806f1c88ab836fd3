package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/types"
	"golang.org/x/sync/singleflight"
)

const fetchKey = "catalog"

// Fetcher retrieves the full product collection.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Loader is the process-wide catalog cache. It is filled by Fetch and kept
// until Reset; concurrent fetches share one upstream request.
type Loader struct {
	fetcher Fetcher
	logg    *logger.Logger
	metrics *metrics.CatalogMetrics

	group singleflight.Group

	mu       sync.RWMutex
	products []Product
	index    map[types.ProductID]int
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithMetrics records fetch outcomes and cache size.
func WithMetrics(m *metrics.CatalogMetrics) LoaderOption {
	return func(l *Loader) { l.metrics = m }
}

// NewLoader wires a loader over fetcher.
func NewLoader(fetcher Fetcher, logg *logger.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{fetcher: fetcher, logg: logg}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch requests the catalog and replaces the cache on success. Failures are
// logged and yield an empty slice; there is no retry. The upstream call is
// shared by concurrent callers, so it runs detached from any one caller's
// cancellation and is bounded by the client timeout instead.
func (l *Loader) Fetch(ctx context.Context) []Product {
	shared := context.WithoutCancel(ctx)
	v, err, _ := l.group.Do(fetchKey, func() (any, error) {
		start := time.Now()
		products, err := l.fetcher.FetchProducts(shared)
		l.metrics.ObserveFetch(err, time.Since(start))
		if err != nil {
			return nil, err
		}
		return l.store(shared, products), nil
	})
	if err != nil {
		if l.logg != nil {
			l.logg.Error(ctx, "catalog fetch failed", err)
		}
		return []Product{}
	}
	return v.([]Product)
}

// Ensure returns the cached catalog, fetching only when the cache is empty.
func (l *Loader) Ensure(ctx context.Context) []Product {
	if cached := l.Products(); len(cached) > 0 {
		return cached
	}
	return l.Fetch(ctx)
}

// Products returns the cached catalog in upstream order.
func (l *Loader) Products() []Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Product, len(l.products))
	copy(out, l.products)
	return out
}

// Find looks up a cached product by id.
func (l *Loader) Find(id types.ProductID) (Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx, ok := l.index[id]
	if !ok {
		return Product{}, false
	}
	return l.products[idx], true
}

// Reset clears the cache so the next Ensure refetches.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.products = nil
	l.index = nil
	l.metrics.SetCached(0)
}

func (l *Loader) store(ctx context.Context, fetched []Product) []Product {
	products := make([]Product, 0, len(fetched))
	index := make(map[types.ProductID]int, len(fetched))
	for _, p := range fetched {
		if _, dup := index[p.ID]; dup {
			l.warn(ctx, p.ID, "duplicate product id dropped")
			continue
		}
		if p.Price.IsNegative() {
			l.warn(ctx, p.ID, "product with negative price dropped")
			continue
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}

	l.mu.Lock()
	l.products = products
	l.index = index
	l.mu.Unlock()
	l.metrics.SetCached(len(products))

	if l.logg != nil {
		l.logg.Info(l.logg.WithField(ctx, "products", len(products)), "catalog cached")
	}

	out := make([]Product, len(products))
	copy(out, products)
	return out
}

func (l *Loader) warn(ctx context.Context, id types.ProductID, msg string) {
	if l.logg != nil {
		l.logg.Warn(l.logg.WithField(ctx, "product_id", id.String()), msg)
	}
}
