package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// RegisterInput creates an account. There are no passwords; the display name
// is the credential, so it must be unique case-insensitively.
type RegisterInput struct {
	Name      string
	Role      enums.UserRole
	ActorRole enums.UserRole
}

// Service owns accounts: registration, name sign-in, role management,
// favourites, and the tutorial flag.
type Service interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, name string) (*models.User, error)
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role enums.UserRole) (*models.User, error)
	Delete(ctx context.Context, actorID, targetID uuid.UUID) error

	SaveFavourite(ctx context.Context, userID uuid.UUID, item types.OrderItem) (*models.User, error)
	RemoveFavourite(ctx context.Context, userID uuid.UUID, itemID string) (*models.User, error)
	CompleteTutorial(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type service struct {
	repo Repository
}

// NewService builds the users service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return users, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	role := input.Role
	if role == "" {
		role = enums.UserRoleCustomer
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}
	if role != enums.UserRoleCustomer && input.ActorRole != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only administrators can create staff accounts")
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "that name is already taken")
	} else if err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check name")
	}

	user := &models.User{
		ID:         uuid.New(),
		Name:       name,
		Role:       role,
		Favourites: types.OrderItems{},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// The GetByName check above races with a concurrent register.
		if db.IsUniqueViolation(err, "idx_users_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "that name is already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	user, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no account with that name")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

// UpdateRole changes an account's role. Administrators cannot change their
// own role, so a café always keeps at least the acting admin.
func (s *service) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role enums.UserRole) (*models.User, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}
	if actorID == targetID {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "you cannot change your own role")
	}
	if _, err := s.Get(ctx, targetID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, targetID, map[string]any{"role": role}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
	}
	return s.Get(ctx, targetID)
}

func (s *service) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "you cannot delete your own account")
	}
	if _, err := s.Get(ctx, targetID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, targetID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

// SaveFavourite stores a drink configuration for one-tap reordering. Saving
// an item whose id already exists replaces it.
func (s *service) SaveFavourite(ctx context.Context, userID uuid.UUID, item types.OrderItem) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	replaced := false
	for i := range user.Favourites {
		if user.Favourites[i].ID == item.ID {
			user.Favourites[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		user.Favourites = append(user.Favourites, item)
	}

	if err := s.repo.Update(ctx, userID, map[string]any{"favourites": user.Favourites}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save favourite")
	}
	return user, nil
}

func (s *service) RemoveFavourite(ctx context.Context, userID uuid.UUID, itemID string) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := make(types.OrderItems, 0, len(user.Favourites))
	for _, fav := range user.Favourites {
		if fav.ID != itemID {
			kept = append(kept, fav)
		}
	}
	if len(kept) == len(user.Favourites) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "favourite not found")
	}
	user.Favourites = kept

	if err := s.repo.Update(ctx, userID, map[string]any{"favourites": user.Favourites}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favourite")
	}
	return user, nil
}

func (s *service) CompleteTutorial(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, map[string]any{"has_completed_tutorial": true}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete tutorial")
	}
	return s.Get(ctx, userID)
}
