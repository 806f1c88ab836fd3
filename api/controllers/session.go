package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// openSession builds the visitor's session for this request. On failure the
// error response is already written.
func openSession(w http.ResponseWriter, r *http.Request, builder *storefront.Builder, layout storefront.Layout, logg *logger.Logger) (*storefront.Session, bool) {
	if builder == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
		return nil, false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "visitor session missing"))
		return nil, false
	}
	s, err := builder.Open(r.Context(), sessionID, layout)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, false
	}
	s.Boot(r.Context())
	return s, true
}
