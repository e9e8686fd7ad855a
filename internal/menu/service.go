package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type changeNotifier interface {
	MenuChanged(ctx context.Context)
}

// Snapshot is the full catalog as served to clients: every drink, category,
// and modifier group.
type Snapshot struct {
	Drinks         []models.Drink
	Categories     []models.Category
	ModifierGroups []models.ModifierGroup
}

// Service owns the catalog: CRUD on drinks, categories, and modifier groups,
// plus whole-snapshot replace for admin import.
type Service interface {
	GetSnapshot(ctx context.Context) (*Snapshot, error)
	ReplaceSnapshot(ctx context.Context, snapshot Snapshot) error

	CreateDrink(ctx context.Context, drink models.Drink) (*models.Drink, error)
	UpdateDrink(ctx context.Context, drink models.Drink) (*models.Drink, error)
	DeleteDrink(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, category models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateModifierGroup(ctx context.Context, group models.ModifierGroup) (*models.ModifierGroup, error)
	UpdateModifierGroup(ctx context.Context, group models.ModifierGroup) (*models.ModifierGroup, error)
	DeleteModifierGroup(ctx context.Context, id string) error

	SeedIfEmpty(ctx context.Context) error
}

type service struct {
	repo     Repository
	tx       txRunner
	notifier changeNotifier
}

// NewService builds the catalog service.
func NewService(repo Repository, tx txRunner, notifier changeNotifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("change notifier required")
	}
	return &service{repo: repo, tx: tx, notifier: notifier}, nil
}

func (s *service) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	drinks, err := s.repo.ListDrinks(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drinks")
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	groups, err := s.repo.ListModifierGroups(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list modifier groups")
	}
	return &Snapshot{Drinks: drinks, Categories: categories, ModifierGroups: groups}, nil
}

// ReplaceSnapshot swaps the entire catalog in one transaction. The
// Uncategorised fallback category always survives.
func (s *service) ReplaceSnapshot(ctx context.Context, snapshot Snapshot) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteAllMenuEntities(ctx); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear catalog")
		}
		for i := range snapshot.Categories {
			category := snapshot.Categories[i]
			if category.ID == models.UncategorisedCategoryID {
				continue
			}
			if err := repo.CreateCategory(ctx, &category); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write category")
			}
		}
		for i := range snapshot.ModifierGroups {
			group := snapshot.ModifierGroups[i]
			if err := repo.CreateModifierGroup(ctx, &group); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write modifier group")
			}
		}
		for i := range snapshot.Drinks {
			drink := snapshot.Drinks[i]
			if err := repo.CreateDrink(ctx, &drink); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write drink")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.MenuChanged(ctx)
	return nil
}

func (s *service) CreateDrink(ctx context.Context, drink models.Drink) (*models.Drink, error) {
	if err := s.validateDrink(ctx, &drink); err != nil {
		return nil, err
	}
	if drink.ID == "" {
		drink.ID = "drink-" + uuid.NewString()
	}
	if err := s.repo.CreateDrink(ctx, &drink); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create drink")
	}
	s.notifier.MenuChanged(ctx)
	return &drink, nil
}

func (s *service) UpdateDrink(ctx context.Context, drink models.Drink) (*models.Drink, error) {
	if drink.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink id required")
	}
	if _, err := s.repo.GetDrink(ctx, drink.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drink not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load drink")
	}
	if err := s.validateDrink(ctx, &drink); err != nil {
		return nil, err
	}
	if err := s.repo.SaveDrink(ctx, &drink); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save drink")
	}
	s.notifier.MenuChanged(ctx)
	return &drink, nil
}

func (s *service) DeleteDrink(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "drink id required")
	}
	if err := s.repo.DeleteDrink(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete drink")
	}
	s.notifier.MenuChanged(ctx)
	return nil
}

func (s *service) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	if category.ID == "" {
		category.ID = "cat-" + uuid.NewString()
	}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	s.notifier.MenuChanged(ctx)
	return &category, nil
}

func (s *service) UpdateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	if category.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if strings.TrimSpace(category.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	if _, err := s.repo.GetCategory(ctx, category.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if err := s.repo.SaveCategory(ctx, &category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save category")
	}
	s.notifier.MenuChanged(ctx)
	return &category, nil
}

// DeleteCategory removes a category and moves its drinks to the
// Uncategorised fallback. The fallback itself cannot be deleted.
func (s *service) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if id == models.UncategorisedCategoryID {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "the fallback category cannot be deleted")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.GetCategory(ctx, models.UncategorisedCategoryID); err != nil {
			if err != gorm.ErrRecordNotFound {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load fallback category")
			}
			fallback := models.Category{ID: models.UncategorisedCategoryID, Name: "Uncategorised"}
			if err := repo.CreateCategory(ctx, &fallback); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create fallback category")
			}
		}
		if err := repo.ReassignDrinks(ctx, id, models.UncategorisedCategoryID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reassign drinks")
		}
		if err := repo.DeleteCategory(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.MenuChanged(ctx)
	return nil
}

func (s *service) CreateModifierGroup(ctx context.Context, group models.ModifierGroup) (*models.ModifierGroup, error) {
	if strings.TrimSpace(group.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "modifier group name required")
	}
	if group.ID == "" {
		group.ID = "mod-group-" + uuid.NewString()
	}
	if err := s.repo.CreateModifierGroup(ctx, &group); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create modifier group")
	}
	s.notifier.MenuChanged(ctx)
	return &group, nil
}

func (s *service) UpdateModifierGroup(ctx context.Context, group models.ModifierGroup) (*models.ModifierGroup, error) {
	if group.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "modifier group id required")
	}
	if strings.TrimSpace(group.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "modifier group name required")
	}
	if _, err := s.repo.GetModifierGroup(ctx, group.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "modifier group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load modifier group")
	}
	if err := s.repo.SaveModifierGroup(ctx, &group); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save modifier group")
	}
	s.notifier.MenuChanged(ctx)
	return &group, nil
}

// DeleteModifierGroup removes the group and strips its reference from every
// drink that carries it.
func (s *service) DeleteModifierGroup(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "modifier group id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		drinks, err := repo.ListDrinks(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drinks")
		}
		for i := range drinks {
			if !drinks[i].ModifierGroups.Contains(id) {
				continue
			}
			drinks[i].ModifierGroups = drinks[i].ModifierGroups.Without(id)
			if err := repo.SaveDrink(ctx, &drinks[i]); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "strip modifier group reference")
			}
		}
		if err := repo.DeleteModifierGroup(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete modifier group")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.MenuChanged(ctx)
	return nil
}

func (s *service) validateDrink(ctx context.Context, drink *models.Drink) error {
	if strings.TrimSpace(drink.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "drink name required")
	}
	if drink.CategoryID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "drink category required")
	}
	if drink.BasePrice.IsNegative() || drink.BaseCost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "drink price and cost must not be negative")
	}
	if _, err := s.repo.GetCategory(ctx, drink.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	for _, groupID := range drink.ModifierGroups {
		if _, err := s.repo.GetModifierGroup(ctx, groupID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown modifier group %q", groupID))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load modifier group")
		}
	}
	return nil
}
