// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, logout, and issuing/rotating the
// access and refresh JWTs together with their server-side refresh records.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/dbx"
	"github.com/dmitrijs2005/kanban/internal/server/auth"
	"github.com/dmitrijs2005/kanban/internal/server/models"
	"github.com/dmitrijs2005/kanban/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

const (
	msgSignupFieldsRequired = "username, email and password required"
	msgCredentialsRequired  = "Credentials required"
	msgInvalidCredentials   = "Invalid credentials"
	msgUserExists           = "User with email or username already exists"
	msgPasswordTooLong      = "password must be at most 72 bytes"
	msgRefreshMissing       = "Unauthorized: refresh token missing"
	msgRefreshInvalid       = "Unauthorized: invalid or expired refresh token"
	msgInvalidPayload       = "Unauthorized: invalid token payload"
	msgUserNotFound         = "Unauthorized: user not found"
	msgRefreshReused        = "Unauthorized: refresh token already used or revoked"
)

// UserService provides authentication-related operations:
// - Signup: create users
// - Login: verify credentials and mint tokens
// - Refresh: rotate refresh tokens and mint new access tokens
// - Logout: revoke the presented refresh token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenManager
	bcryptCost  int
	dummyHash   string
}

// NewUserService constructs a UserService. bcryptCost is passed to
// auth.HashPassword on signup.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenManager, bcryptCost int) *UserService {
	// Compared against on logins for unknown users so both paths cost one bcrypt run.
	seed, _ := common.MakeRandHexString(16)
	dummy, _ := auth.HashPassword(seed, bcryptCost)
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		bcryptCost:  bcryptCost,
		dummyHash:   dummy,
	}
}

// Signup creates a user and issues its first token pair.
func (s *UserService) Signup(ctx context.Context, username, email, password string) (*models.User, *TokenPair, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, nil, common.NewValidationError(msgSignupFieldsRequired)
	}
	if len(password) > auth.MaxPasswordLength {
		return nil, nil, common.NewValidationError(msgPasswordTooLong)
	}

	repo := s.repomanager.Users(s.db)
	exists, err := repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, nil, common.NewInternalError("error checking user", err)
	}
	if exists {
		return nil, nil, common.NewConflictError(msgUserExists)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, common.NewInternalError("error hashing password", err)
	}

	var (
		user *models.User
		pair *TokenPair
	)
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			UserName:     username,
			Email:        email,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.NewConflictError(msgUserExists)
			}
			return common.NewInternalError("error creating user", err)
		}
		user = u
		pair, err = s.generateTokenPair(ctx, u, tx)
		return err
	})
	if err != nil {
		return nil, nil, asServiceError(err)
	}
	user.PasswordHash = ""
	return user, pair, nil
}

// Login verifies the password for the user identified by email or username and
// returns a new TokenPair. Unknown users and wrong passwords are reported
// with the same error.
func (s *UserService) Login(ctx context.Context, emailOrUsername, password string) (*models.User, *TokenPair, error) {
	login := strings.TrimSpace(emailOrUsername)
	if login == "" || password == "" {
		return nil, nil, common.NewValidationError(msgCredentialsRequired)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(password, s.dummyHash)
			return nil, nil, common.NewValidationError(msgInvalidCredentials)
		}
		return nil, nil, common.NewInternalError("error searching user", err)
	}
	if len(password) > auth.MaxPasswordLength || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, nil, common.NewValidationError(msgInvalidCredentials)
	}

	pair, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, nil, asServiceError(err)
	}
	user.PasswordHash = ""
	return user, pair, nil
}

// Refresh validates a refresh token, rotates it transactionally, and returns a
// fresh TokenPair. A token that verifies but is no longer stored has already
// been rotated or revoked and is rejected.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, common.NewUnauthorizedError(msgRefreshMissing, nil)
	}
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, common.NewUnauthorizedError(msgRefreshInvalid, err)
	}
	if claims.UserID == "" {
		return nil, nil, common.NewUnauthorizedError(msgInvalidPayload, nil)
	}

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.NewUnauthorizedError(msgUserNotFound, err)
		}
		return nil, nil, common.NewInternalError("error searching user", err)
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Consume(ctx, user.ID, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NewUnauthorizedError(msgRefreshReused, err)
			}
			return common.NewInternalError("error consuming refresh token", err)
		}
		if err := repoTx.DeleteExpired(ctx, user.ID); err != nil {
			return common.NewInternalError("error pruning refresh tokens", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	})
	if err != nil {
		return nil, nil, asServiceError(err)
	}
	return user, pair, nil
}

// Logout revokes refreshToken. An empty or unknown token is not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return common.NewInternalError("error deleting refresh token", err)
	}
	return nil
}

// GetUser returns the public projection of the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewUnauthorizedError(msgUserNotFound, err)
		}
		return nil, common.NewInternalError("error searching user", err)
	}
	return user, nil
}

// Authenticate verifies an access token and loads its user.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, common.NewUnauthorizedError("Unauthorized: invalid or expired access token", err)
	}
	if claims.UserID == "" {
		return nil, common.NewUnauthorizedError(msgInvalidPayload, nil)
	}
	return s.GetUser(ctx, claims.UserID)
}

// --- helpers below ---

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.tokens.SignAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, common.NewInternalError("error signing access token", err)
	}
	refresh, err := s.tokens.SignRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, common.NewInternalError("error signing refresh token", err)
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, user.ID, refresh, s.tokens.RefreshValidity()); err != nil {
		return nil, common.NewInternalError("error storing refresh token", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// asServiceError keeps typed errors and wraps anything else (commit failures)
// as internal.
func asServiceError(err error) error {
	var e *common.Error
	if errors.As(err, &e) {
		return err
	}
	return common.NewInternalError("transaction failed", err)
}
