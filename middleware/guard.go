package middleware

import (
	"context"
	"net/http"
	"strings"

	goCred "github.com/MrEthical07/goCred"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the verified claims injected by [Guard], if any.
func ClaimsFromContext(ctx context.Context) (*goCred.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*goCred.Claims)
	return claims, ok
}

// Guard returns middleware that requires a verified bearer token. Verified
// claims are injected into the request context for the wrapped handler.
//
// Every rejection is a plain 401; the reason (missing header, bad signature,
// stale version, expiry) is not disclosed to the caller.
func Guard(engine *goCred.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := engine.Authenticate(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
