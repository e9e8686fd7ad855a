// Package users exposes account registration, name sign-in, and the
// account-scoped operations behind /users/me.
package users

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brewdeck/brewdeck-backend/api/controllers/session"
	"github.com/brewdeck/brewdeck-backend/api/middleware"
	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/api/validators"
	internalusers "github.com/brewdeck/brewdeck-backend/internal/users"
	pkgauth "github.com/brewdeck/brewdeck-backend/pkg/auth"
	sessionpkg "github.com/brewdeck/brewdeck-backend/pkg/auth/session"
	"github.com/brewdeck/brewdeck-backend/pkg/config"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

type registerRequest struct {
	Name string `json:"name" validate:"required,min=2,max=64"`
}

type loginRequest struct {
	Name string `json:"name" validate:"required"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type favouriteRequest struct {
	Item types.OrderItem `json:"item" validate:"required"`
}

// authenticatedUser is the register/login response: the account plus the
// credentials binding it to this device session.
type authenticatedUser struct {
	User    internalusers.UserView `json:"user"`
	Session session.TokenPair      `json:"session"`
}

// Register creates a customer account and signs the device in as it.
func Register(svc internalusers.Service, cfg config.JWTConfig, manager session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), internalusers.RegisterInput{
			Name:      req.Name,
			Role:      enums.UserRoleCustomer,
			ActorRole: enums.UserRoleCustomer,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := issueFor(r, cfg, manager, user)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, authenticatedUser{
			User:    internalusers.NewView(*user),
			Session: *pair,
		})
	}
}

// Login signs the device in as an existing account by display name.
func Login(svc internalusers.Service, cfg config.JWTConfig, manager session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Login(r.Context(), req.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := issueFor(r, cfg, manager, user)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, authenticatedUser{
			User:    internalusers.NewView(*user),
			Session: *pair,
		})
	}
}

// Me returns the signed-in account.
func Me(svc internalusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalusers.NewView(*user))
	}
}

// List returns every account. Admin only.
func List(svc internalusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalusers.NewViewList(users))
	}
}

// UpdateRole changes an account's role. Admin only; the service blocks an
// admin from demoting themselves out of the last admin seat.
func UpdateRole(svc internalusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		targetID, err := parseUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateRoleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role := enums.UserRole(strings.TrimSpace(req.Role))
		if !role.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown role"))
			return
		}

		user, err := svc.UpdateRole(r.Context(), actorID, targetID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalusers.NewView(*user))
	}
}

// Delete removes an account. Admin only.
func Delete(svc internalusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		targetID, err := parseUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), actorID, targetID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SaveFavourite stores a configured drink on the signed-in account.
func SaveFavourite(svc internalusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req favouriteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.SaveFavourite(r.Context(), userID, req.Item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalusers.NewView(*user))
	}
}

// RemoveFavourite drops a saved drink from the signed-in account.
func RemoveFavourite(svc internalusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}
		user, err := svc.RemoveFavourite(r.Context(), userID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalusers.NewView(*user))
	}
}

// CompleteTutorial marks the onboarding tour as finished for the account.
func CompleteTutorial(svc internalusers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.CompleteTutorial(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalusers.NewView(*user))
	}
}

// issueFor keeps the device's customer id when one is already present so an
// anonymous cart and loyalty trail survive signing in.
func issueFor(r *http.Request, cfg config.JWTConfig, manager session.Manager, user *models.User) (*session.TokenPair, error) {
	customerID := strings.TrimSpace(middleware.CustomerIDFromContext(r.Context()))
	if customerID == "" {
		customerID = uuid.NewString()
	}
	payload := pkgauth.AccessTokenPayload{
		CustomerID: customerID,
		UserID:     &user.ID,
		Name:       user.Name,
		Role:       user.Role,
		JTI:        sessionpkg.NewAccessID(),
	}
	return session.Issue(r, cfg, manager, payload)
}

func requireUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account sign-in required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid account id")
	}
	return userID, nil
}

func parseUserID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "userId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return id, nil
}
