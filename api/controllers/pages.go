package controllers

import (
	"bytes"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const (
	maxPage      = 1000
	maxQueryLen  = 200
	searchParam  = "q"
	pageParam    = "page"
	allParam     = "all"
	viewParam    = "view"
	viewCartMode = "cart"
)

// HomePage renders the product grid. ?page=N shows the first N pages and
// ?all=1 shows the whole catalog.
func HomePage(builder *storefront.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNum, err := validators.ParseQueryInt(r, pageParam, 1, 1, maxPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		s, ok := openSession(w, r, builder, storefront.HomeLayout, logg)
		if !ok {
			return
		}
		defer s.Close()

		all := validators.ParseQueryBool(r, allParam)
		if !all {
			s.Catalog.Restore(pageNum - 1)
		}
		s.Catalog.LoadPage(r.Context(), all)

		responses.WriteHTML(r.Context(), logg, w, http.StatusOK, func(buf *bytes.Buffer) error {
			return s.Doc.Render(buf)
		})
	}
}

// SearchPage renders cached products matching ?q=.
func SearchPage(builder *storefront.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := openSession(w, r, builder, storefront.SearchLayout, logg)
		if !ok {
			return
		}
		defer s.Close()

		query := validators.SanitizeString(r.URL.Query().Get(searchParam), maxQueryLen)
		builder.Loader().Ensure(r.Context())
		s.Catalog.Search(r.Context(), query)

		responses.WriteHTML(r.Context(), logg, w, http.StatusOK, func(buf *bytes.Buffer) error {
			return s.Doc.Render(buf)
		})
	}
}

// ProductPage renders one product's detail view.
func ProductPage(builder *storefront.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ProductIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		s, ok := openSession(w, r, builder, storefront.DetailLayout, logg)
		if !ok {
			return
		}
		defer s.Close()

		status := http.StatusOK
		if _, err := s.Catalog.RenderDetail(r.Context(), id); err != nil {
			if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			status = pkgerrors.CodeNotFound.Status()
		}

		responses.WriteHTML(r.Context(), logg, w, status, func(buf *bytes.Buffer) error {
			return s.Doc.Render(buf)
		})
	}
}

// CartPage renders the visitor's cart with totals.
func CartPage(builder *storefront.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := openSession(w, r, builder, storefront.CartLayout, logg)
		if !ok {
			return
		}
		defer s.Close()

		responses.WriteHTML(r.Context(), logg, w, http.StatusOK, func(buf *bytes.Buffer) error {
			return s.Doc.Render(buf)
		})
	}
}
