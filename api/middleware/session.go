package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/storefront/pkg/auth"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// VisitorSession resolves the visitor's session from its cookie. A missing,
// expired, or tampered cookie is replaced by a freshly minted session.
func VisitorSession(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				claims, err := auth.ParseSessionToken(cfg, cookie.Value)
				if err == nil {
					sessionID = claims.SessionID()
				} else if logg != nil {
					logg.Debug(ctx, "session.cookie_rejected")
				}
			}

			if sessionID == "" {
				now := time.Now()
				token, claims, err := auth.MintSessionToken(cfg, now, auth.NewSessionID())
				if err != nil {
					if logg != nil {
						logg.Error(ctx, "session.mint_failed", err)
					}
					next.ServeHTTP(w, r)
					return
				}
				sessionID = claims.SessionID()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					Expires:  now.Add(cfg.TTL),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
				if logg != nil {
					logg.Debug(logg.WithSessionID(ctx, sessionID), "session.created")
				}
			}

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
