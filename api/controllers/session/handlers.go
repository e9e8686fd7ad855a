// Package session issues and renews the anonymous device identity every
// client carries. A session exists before any account does; register and
// login later bind an account onto the same flow.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/api/validators"
	pkgauth "github.com/brewdeck/brewdeck-backend/pkg/auth"
	"github.com/brewdeck/brewdeck-backend/pkg/auth/session"
	"github.com/brewdeck/brewdeck-backend/pkg/config"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

// TokenPair is the credential payload returned to clients.
type TokenPair struct {
	Token            string `json:"token"`
	RefreshToken     string `json:"refreshToken"`
	CustomerID       string `json:"customerId"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}

// Manager is the slice of the session store the handlers need.
type Manager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type refreshRequest struct {
	Token        string `json:"token" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Start mints a fresh anonymous identity: a new customer id, an access
// token, and the refresh token backing it.
func Start(cfg config.JWTConfig, manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := pkgauth.AccessTokenPayload{
			CustomerID: uuid.NewString(),
			Role:       enums.UserRoleCustomer,
			JTI:        session.NewAccessID(),
		}
		pair, err := Issue(r, cfg, manager, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, pair)
	}
}

// Refresh rotates the refresh token and reissues the access token for the
// same identity. The expired access token carries the identity; the refresh
// token proves possession.
func Refresh(cfg config.JWTConfig, manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgauth.ParseAccessTokenAllowExpired(cfg, req.Token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token"))
			return
		}

		newAccessID, refreshToken, err := manager.Rotate(r.Context(), claims.ID, req.RefreshToken)
		if err != nil {
			if errors.Is(err, session.ErrInvalidRefreshToken) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session"))
			return
		}

		payload := pkgauth.AccessTokenPayload{
			CustomerID: claims.CustomerID,
			UserID:     claims.UserID,
			Name:       claims.Name,
			Role:       claims.Role,
			JTI:        newAccessID,
		}
		token, err := pkgauth.MintAccessToken(cfg, time.Now().UTC(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token"))
			return
		}
		responses.WriteSuccess(w, TokenPair{
			Token:            token,
			RefreshToken:     refreshToken,
			CustomerID:       claims.CustomerID,
			ExpiresInSeconds: cfg.ExpirationMinutes * 60,
		})
	}
}

// Logout revokes the refresh session behind the presented access token.
// Expired tokens are accepted so a stale client can still sign out.
func Logout(cfg config.JWTConfig, manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token"))
			return
		}
		claims, err := pkgauth.ParseAccessTokenAllowExpired(cfg, raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token"))
			return
		}
		if err := manager.Revoke(r.Context(), claims.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// Issue mints an access token bound to the payload and opens its refresh
// session. Shared with the account handlers so register and login hand back
// the same credential shape.
func Issue(r *http.Request, cfg config.JWTConfig, manager Manager, payload pkgauth.AccessTokenPayload) (*TokenPair, error) {
	token, err := pkgauth.MintAccessToken(cfg, time.Now().UTC(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	refreshToken, err := manager.Generate(r.Context(), payload.JTI)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open session")
	}
	return &TokenPair{
		Token:            token,
		RefreshToken:     refreshToken,
		CustomerID:       payload.CustomerID,
		ExpiresInSeconds: cfg.ExpirationMinutes * 60,
	}, nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
