package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/server/models"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

type publicUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type authResponse struct {
	Message string     `json:"message"`
	User    publicUser `json:"user"`
}

type refreshResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type meResponse struct {
	User publicUser `json:"user"`
}

func toPublicUser(u *models.User) publicUser {
	return publicUser{ID: u.ID, Username: u.UserName, Email: u.Email}
}

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) error {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	user, pair, err := s.users.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	s.setAuthCookies(w, pair)
	writeJSON(w, http.StatusCreated, authResponse{Message: "Account created", User: toPublicUser(user)})
	return nil
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	user, pair, err := s.users.Login(r.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		return err
	}
	s.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", User: toPublicUser(user)})
	return nil
}

// handleRefresh rotates the refresh cookie. On any rejection the stale
// cookies are cleared so the client falls back to login.
func (s *HTTPServer) handleRefresh(w http.ResponseWriter, r *http.Request) error {
	_, pair, err := s.users.Refresh(r.Context(), cookieValue(r, common.RefreshTokenCookieName))
	if err != nil {
		if common.CodeOf(err) == common.CodeUnauthorized {
			s.clearAuthCookies(w)
		}
		return err
	}
	s.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, refreshResponse{Message: "Token refreshed", AccessToken: pair.AccessToken})
	return nil
}

// handleLogout is idempotent: a missing or unknown cookie still succeeds.
func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) error {
	if err := s.users.Logout(r.Context(), cookieValue(r, common.RefreshTokenCookieName)); err != nil {
		return err
	}
	s.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
	return nil
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) error {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return common.NewUnauthorizedError(msgUnauthorized, nil)
	}
	pu := toPublicUser(user)
	created := user.CreatedAt
	pu.CreatedAt = &created
	writeJSON(w, http.StatusOK, meResponse{User: pu})
	return nil
}
