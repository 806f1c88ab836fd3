package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/page"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/money"
	"github.com/angelmondragon/storefront/pkg/pagination"
	"github.com/angelmondragon/storefront/pkg/types"
)

// Target identifies which part of a product card was activated.
type Target string

const (
	TargetCard      Target = "product-card"
	TargetAddToCart Target = "add-to-cart-btn"
)

// CartAdder is the cart surface the catalog delegates to.
type CartAdder interface {
	Add(ctx context.Context, p cart.ProductRef) error
	RefreshCountBadge(ctx context.Context) error
}

// View renders the catalog into one document and owns that request's
// pagination cursor.
type View struct {
	loader *Loader
	doc    *page.Document
	cart   CartAdder
	logg   *logger.Logger
	cursor pagination.Cursor
}

// NewView wires a catalog view. cart may be nil on pages without add actions.
func NewView(loader *Loader, doc *page.Document, cart CartAdder, logg *logger.Logger, pageSize int) (*View, error) {
	if loader == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog loader required")
	}
	if doc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog document required")
	}
	return &View{
		loader: loader,
		doc:    doc,
		cart:   cart,
		logg:   logg,
		cursor: pagination.NewCursor(0, pageSize),
	}, nil
}

// Cursor returns the current pagination cursor.
func (v *View) Cursor() pagination.Cursor {
	return v.cursor
}

// Restore positions the cursor so that pages already shown count as loaded.
func (v *View) Restore(pagesShown int) {
	v.cursor = pagination.NewCursor(pagesShown, v.cursor.Size)
}

// LoadPage shows the next page, or the whole catalog when all is set. The
// catalog is fetched only when the cache is empty. It returns the visible slice.
func (v *View) LoadPage(ctx context.Context, all bool) []Product {
	products := v.loader.Ensure(ctx)
	if !all {
		v.cursor = v.cursor.Next()
	}

	end := v.cursor.End(len(products), all)
	visible := products[:end]
	v.RenderCatalog(ctx, visible)

	more := v.cursor.HasMore(len(products), all)
	v.doc.SetHidden(page.RegionLoadMore, !more)
	v.doc.SetValue(page.RegionLoadMore, "/?page="+strconv.Itoa(v.cursor.Page+1))
	return visible
}

// Search renders cached products whose title, category, or description
// contains query, ignoring case. The cache and cursor are not touched.
func (v *View) Search(ctx context.Context, query string) []Product {
	needle := strings.ToLower(query)
	matches := make([]Product, 0)
	for _, p := range v.loader.Products() {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			(p.Description != "" && strings.Contains(strings.ToLower(p.Description), needle)) {
			matches = append(matches, p)
		}
	}
	v.doc.SetValue(page.RegionSearch, query)
	v.RenderCatalog(ctx, matches)
	return matches
}

type cardView struct {
	ID          types.ProductID
	Href        string
	Title       string
	Category    string
	Description string
	Image       string
	Price       string
	Stars       []string
	RatingCount int
}

func newCardView(p Product) cardView {
	return cardView{
		ID:          p.ID,
		Href:        DetailPath(p.ID),
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Price:       money.Format(p.Price),
		Stars:       Stars(p.Rating.Rate).Glyphs(),
		RatingCount: p.Rating.Count,
	}
}

// RenderCatalog replaces the grid with one card per product.
func (v *View) RenderCatalog(ctx context.Context, products []Product) {
	if !v.doc.Has(page.RegionGrid) {
		v.warn(ctx, "product grid region not present")
		return
	}
	cards := make([]cardView, 0, len(products))
	for _, p := range products {
		cards = append(cards, newCardView(p))
	}
	html, err := page.Fragment("product-cards", cards)
	if err != nil {
		v.logError(ctx, "render product cards", err)
		return
	}
	v.doc.SetHTML(page.RegionGrid, html)
}

// RenderDetail renders one product into the detail region.
func (v *View) RenderDetail(ctx context.Context, id types.ProductID) (Product, error) {
	v.loader.Ensure(ctx)
	p, ok := v.loader.Find(id)
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if !v.doc.Has(page.RegionDetail) {
		v.warn(ctx, "product detail region not present")
		return p, nil
	}
	html, err := page.Fragment("product-detail", newCardView(p))
	if err != nil {
		v.logError(ctx, "render product detail", err)
		return p, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render product detail")
	}
	v.doc.SetHTML(page.RegionDetail, html)
	return p, nil
}

// DetailPath is the route of a product's detail page.
func DetailPath(id types.ProductID) string {
	return "/products/" + id.String()
}

// OnCardActivate returns where activating a card navigates. Activations on
// the add-to-cart control do not navigate.
func (v *View) OnCardActivate(id types.ProductID, target Target) (string, bool) {
	if target == TargetAddToCart {
		return "", false
	}
	return DetailPath(id), true
}

// AddFromCard adds a cached product to the cart. Unknown ids are logged and
// reported as not found without a banner.
func (v *View) AddFromCard(ctx context.Context, id types.ProductID) error {
	if v.cart == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "cart not available")
	}
	v.loader.Ensure(ctx)
	p, ok := v.loader.Find(id)
	if !ok {
		err := pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		if v.logg != nil {
			v.logg.Error(v.logg.WithField(ctx, "product_id", id.String()), "add from card: product not in catalog", err)
		}
		return err
	}
	if err := v.cart.Add(ctx, p.Ref()); err != nil {
		return err
	}
	return v.cart.RefreshCountBadge(ctx)
}

func (v *View) warn(ctx context.Context, msg string) {
	if v.logg != nil {
		v.logg.Warn(ctx, msg)
	}
}

func (v *View) logError(ctx context.Context, msg string, err error) {
	if v.logg != nil {
		v.logg.Error(ctx, msg, err)
	}
}
