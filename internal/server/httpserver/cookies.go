package httpserver

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/server/services"
)

func (s *HTTPServer) refreshCookiePath() string {
	return strings.TrimRight(s.config.APIPrefix, "/") + "/auth"
}

func (s *HTTPServer) authCookie(name, value, path string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	}
}

func (s *HTTPServer) setAuthCookies(w http.ResponseWriter, pair *services.TokenPair) {
	http.SetCookie(w, s.authCookie(common.AccessTokenCookieName, pair.AccessToken, "/",
		int(s.config.AccessTokenValidityDuration.Seconds())))
	http.SetCookie(w, s.authCookie(common.RefreshTokenCookieName, pair.RefreshToken, s.refreshCookiePath(),
		int(s.config.RefreshTokenValidityDuration.Seconds())))
}

// clearAuthCookies expires both cookies. Attributes must match the ones used
// when setting them or browsers keep the originals.
func (s *HTTPServer) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, s.authCookie(common.AccessTokenCookieName, "", "/", -1))
	http.SetCookie(w, s.authCookie(common.RefreshTokenCookieName, "", s.refreshCookiePath(), -1))
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
