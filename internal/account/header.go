package account

import (
	"context"
	"strings"

	"github.com/angelmondragon/storefront/internal/page"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/storage"
)

const DefaultLoginKey = "isLoggedIn"

// Link is one header navigation entry.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

var (
	profileLinks = []Link{{Label: "Profile", Href: "/profile"}}
	guestLinks   = []Link{{Label: "Login", Href: "/login"}, {Label: "Register", Href: "/register"}}
)

// LoggedIn reports whether the stored login flag is set. Any non-empty value
// counts as logged in except "false", "0" and "null" in any case, so a
// stored false never reads as a session.
func LoggedIn(ctx context.Context, kv storage.KV, key string) (bool, error) {
	if strings.TrimSpace(key) == "" {
		key = DefaultLoginKey
	}
	raw, ok, err := kv.GetItem(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "false", "0", "null":
		return false, nil
	}
	return true, nil
}

// Header returns the account links for the visitor and renders them into the
// account region when present. Storage failures fall back to guest links.
func Header(ctx context.Context, doc *page.Document, kv storage.KV, key string, logg *logger.Logger) []Link {
	loggedIn, err := LoggedIn(ctx, kv, key)
	if err != nil && logg != nil {
		logg.Error(ctx, "read login flag", err)
	}
	links := guestLinks
	if loggedIn {
		links = profileLinks
	}

	if doc != nil && doc.Has(page.RegionAccount) {
		html, err := page.Fragment("account-links", links)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "render account links", err)
			}
		} else {
			doc.SetHTML(page.RegionAccount, html)
		}
	}

	out := make([]Link, len(links))
	copy(out, links)
	return out
}
