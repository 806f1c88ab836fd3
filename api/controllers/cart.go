package controllers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/page"
	"github.com/angelmondragon/storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

func cartLayout(r *http.Request) storefront.Layout {
	if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get(viewParam)), viewCartMode) {
		return storefront.CartFragmentLayout
	}
	return storefront.APILayout
}

// CartGet returns the visitor's cart lines and totals.
func CartGet(builder *storefront.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := openSession(w, r, builder, cartLayout(r), logg)
		if !ok {
			return
		}
		defer s.Close()
		writeCart(w, r, s, http.StatusOK, logg)
	}
}

// CartAddItem adds one unit of a catalog product.
func CartAddItem(builder *storefront.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		s, ok := openSession(w, r, builder, cartLayout(r), logg)
		if !ok {
			return
		}
		defer s.Close()

		if err := s.Catalog.AddFromCard(r.Context(), payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, s, http.StatusCreated, logg)
	}
}

// CartUpdateItem sets a line's quantity. Zero or negative removes the line.
func CartUpdateItem(builder *storefront.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ProductIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		s, ok := openSession(w, r, builder, cartLayout(r), logg)
		if !ok {
			return
		}
		defer s.Close()

		if err := s.Cart.SetQuantity(r.Context(), id, *payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, s, http.StatusOK, logg)
	}
}

// CartRemoveItem deletes a line. Removing an absent line succeeds.
func CartRemoveItem(builder *storefront.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ProductIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		s, ok := openSession(w, r, builder, cartLayout(r), logg)
		if !ok {
			return
		}
		defer s.Close()

		if err := s.Cart.Remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, s, http.StatusOK, logg)
	}
}

func writeCart(w http.ResponseWriter, r *http.Request, s *storefront.Session, status int, logg *logger.Logger) {
	items, err := s.Cart.Items(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	resp := newCartResponse(items, s.Cart.Totals(items), s.Doc.Banners())

	if s.Doc.Has(page.RegionCartItems) {
		var buf bytes.Buffer
		if err := s.Doc.RenderRegion(&buf, page.RegionCartItems); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render cart fragment"))
			return
		}
		resp.CartHTML = buf.String()
	}
	responses.WriteSuccessStatus(w, status, resp)
}
