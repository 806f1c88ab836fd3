// Package storefront assembles the per-request components that operate on
// one visitor's document and storage.
package storefront

import (
	"context"

	"github.com/angelmondragon/storefront/internal/account"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/notifications"
	"github.com/angelmondragon/storefront/internal/page"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/storage"
)

// Layout selects the regions a document exposes.
type Layout struct {
	Title   string
	Regions []page.Region
	Badges  int
}

var (
	HomeLayout = Layout{
		Title:   "Storefront",
		Regions: []page.Region{page.RegionAccount, page.RegionSearch, page.RegionGrid, page.RegionLoadMore, page.RegionShowAll},
		Badges:  1,
	}
	SearchLayout = Layout{
		Title:   "Search",
		Regions: []page.Region{page.RegionAccount, page.RegionSearch, page.RegionGrid},
		Badges:  1,
	}
	DetailLayout = Layout{
		Title:   "Product",
		Regions: []page.Region{page.RegionAccount, page.RegionDetail},
		Badges:  1,
	}
	CartLayout = Layout{
		Title:   "Cart",
		Regions: []page.Region{page.RegionAccount, page.RegionCartItems, page.RegionSubtotal, page.RegionTotal},
		Badges:  1,
	}
	// APILayout backs JSON requests; only banners and the badge are tracked.
	APILayout = Layout{Title: "api", Badges: 1}
	// CartFragmentLayout backs JSON requests that return the re-rendered cart.
	CartFragmentLayout = Layout{
		Title:   "cart",
		Regions: []page.Region{page.RegionCartItems, page.RegionSubtotal, page.RegionTotal},
		Badges:  1,
	}
)

// Deps are the process-wide collaborators shared by every session.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Storage     storage.Store
	Loader      *catalog.Loader
	CartMetrics *metrics.CartMetrics
	Scheduler   notifications.Scheduler
}

// Builder opens sessions over shared dependencies.
type Builder struct {
	deps Deps
}

// NewBuilder validates deps.
func NewBuilder(deps Deps) (*Builder, error) {
	if deps.Config == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "config required")
	}
	if deps.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "storage required")
	}
	if deps.Loader == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog loader required")
	}
	return &Builder{deps: deps}, nil
}

// Loader exposes the shared catalog cache.
func (b *Builder) Loader() *catalog.Loader {
	return b.deps.Loader
}

// Session is one request's view of the storefront.
type Session struct {
	ID       string
	Doc      *page.Document
	KV       storage.KV
	Notifier *notifications.Notifier
	Cart     *cart.Store
	Catalog  *catalog.View
	Links    []account.Link

	cfg  *config.Config
	logg *logger.Logger
}

// Open builds a session for sessionID with the given layout.
func (b *Builder) Open(ctx context.Context, sessionID string, layout Layout) (*Session, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	cfg := b.deps.Config

	doc := page.New(layout.Title, layout.Regions...).AddBadges(layout.Badges)
	kv := storage.Scope(b.deps.Storage, sessionID)

	var notifierOpts []notifications.Option
	if b.deps.Scheduler != nil {
		notifierOpts = append(notifierOpts, notifications.WithScheduler(b.deps.Scheduler))
	}
	notifier := notifications.New(doc, cfg.Notify, b.deps.Logger, notifierOpts...)

	cartStore, err := cart.NewStore(kv, doc, notifier, b.deps.Logger, cfg.Cart, cart.WithMetrics(b.deps.CartMetrics))
	if err != nil {
		notifier.Close()
		return nil, err
	}
	view, err := catalog.NewView(b.deps.Loader, doc, cartStore, b.deps.Logger, cfg.Catalog.PageSize)
	if err != nil {
		notifier.Close()
		return nil, err
	}

	return &Session{
		ID:       sessionID,
		Doc:      doc,
		KV:       kv,
		Notifier: notifier,
		Cart:     cartStore,
		Catalog:  view,
		cfg:      cfg,
		logg:     b.deps.Logger,
	}, nil
}

// Boot runs the page-load steps: account links, count badge, and the cart
// view when the layout has one. Failures are logged and leave the page usable.
func (s *Session) Boot(ctx context.Context) {
	s.Links = account.Header(ctx, s.Doc, s.KV, s.cfg.Cart.LoginKey, s.logg)
	_ = s.Cart.RefreshCountBadge(ctx)
	if s.Doc.Has(page.RegionCartItems) {
		_ = s.Cart.RenderCart(ctx)
	}
}

// Close stops pending banner timers.
func (s *Session) Close() {
	if s.Notifier != nil {
		s.Notifier.Close()
	}
}
