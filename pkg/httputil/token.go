package httputil

import (
	"errors"
	"net/http"
	"strings"
)

// TokenQueryParam carries the token on WebSocket upgrades, where browsers
// cannot set an Authorization header.
const TokenQueryParam = "token"

var ErrNoToken = errors.New("no auth token found in header or query")

func GetTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Support "Bearer <token>" format
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return strings.TrimSpace(token), nil
		}
		return authHeader, nil
	}

	if token := r.URL.Query().Get(TokenQueryParam); token != "" {
		return token, nil
	}

	return "", ErrNoToken
}
