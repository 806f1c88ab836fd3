package validators

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/types"
)

// ProductIDParam parses the {productId} URL parameter.
func ProductIDParam(r *http.Request) (types.ProductID, error) {
	id, err := types.ParseProductID(chi.URLParam(r, "productId"))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id").WithDetails(map[string]any{"field": "productId"})
	}
	return id, nil
}
