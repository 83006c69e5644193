// Package common contains shared constants and errors used across the
// kanban server components.
package common

const (
	// AccessTokenCookieName carries the short-lived access token.
	AccessTokenCookieName = "accessToken"

	// RefreshTokenCookieName carries the long-lived refresh token. The
	// cookie is scoped to the auth routes only.
	RefreshTokenCookieName = "refreshToken"

	// AuthorizationHeaderName is checked when the access cookie is absent.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
)
