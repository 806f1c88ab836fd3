package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// ProductList returns the catalog as JSON. It honours page, all, and q the
// same way the HTML pages do.
func ProductList(builder *storefront.Builder, logg *logger.Logger) http.HandlerFunc {
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
		query := validators.SanitizeString(r.URL.Query().Get(searchParam), maxQueryLen)
		cached := builder.Loader().Ensure(r.Context())

		var visible []catalog.Product
		resp := productListResponse{Total: len(cached)}
		if query != "" {
			visible = s.Catalog.Search(r.Context(), query)
			resp.Query = query
		} else {
			if !all {
				s.Catalog.Restore(pageNum - 1)
			}
			visible = s.Catalog.LoadPage(r.Context(), all)
			cursor := s.Catalog.Cursor()
			resp.Page = cursor.Page
			resp.HasMore = cursor.HasMore(len(cached), all)
		}

		resp.Products = make([]productResponse, 0, len(visible))
		for _, p := range visible {
			resp.Products = append(resp.Products, newProductResponse(p))
		}
		responses.WriteSuccess(w, resp)
	}
}
