package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func queryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// ParseQueryInt reads an integer query parameter bounded to [lo, hi]. An
// absent or blank value yields def.
func ParseQueryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := queryValue(r, key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("%s must be a whole number", key)).
			WithDetails(map[string]any{key: raw})
	}
	if n < lo || n > hi {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be between %d and %d", key, lo, hi)).
			WithDetails(map[string]any{key: n})
	}
	return n, nil
}

// ParseQueryBool treats 1, true and yes as set.
func ParseQueryBool(r *http.Request, key string) bool {
	switch strings.ToLower(queryValue(r, key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
