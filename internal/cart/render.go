package cart

import (
	"context"
	"html/template"

	"github.com/angelmondragon/storefront/internal/page"
	"github.com/angelmondragon/storefront/pkg/money"
	"github.com/angelmondragon/storefront/pkg/types"
)

type lineView struct {
	ID        types.ProductID
	Title     string
	Image     string
	Quantity  int
	Increment int
	Decrement int
	LineTotal string
}

// RenderCart repopulates the cart region from storage. Pages without the cart
// region, subtotal, and total are left untouched.
func (s *Store) RenderCart(ctx context.Context) error {
	if !s.hasCartView() {
		if s.logg != nil {
			s.logg.Warn(ctx, "cart display regions not present")
		}
		return nil
	}
	items, err := s.Items(ctx)
	if err != nil {
		s.logError(ctx, "render cart", err)
		return err
	}
	s.render(ctx, items)
	return nil
}

func (s *Store) hasCartView() bool {
	return s.doc.Has(page.RegionCartItems) && s.doc.Has(page.RegionSubtotal) && s.doc.Has(page.RegionTotal)
}

func (s *Store) render(ctx context.Context, items []Item) {
	if !s.hasCartView() {
		return
	}

	var (
		html template.HTML
		err  error
	)
	if len(items) == 0 {
		html, err = page.Fragment("cart-empty", nil)
	} else {
		lines := make([]lineView, 0, len(items))
		for _, item := range items {
			lines = append(lines, lineView{
				ID:        item.ID,
				Title:     item.Title,
				Image:     item.Image,
				Quantity:  item.Quantity,
				Increment: item.Quantity + 1,
				Decrement: item.Quantity - 1,
				LineTotal: money.Format(item.LineTotal()),
			})
		}
		html, err = page.Fragment("cart-items", lines)
	}
	if err != nil {
		s.logError(ctx, "render cart items", err)
		return
	}

	subtotal, total := formatTotals(s.Totals(items))
	s.doc.SetHTML(page.RegionCartItems, html)
	s.doc.SetText(page.RegionSubtotal, subtotal)
	s.doc.SetText(page.RegionTotal, total)
}
