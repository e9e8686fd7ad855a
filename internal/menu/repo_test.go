package menu

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

func setupMenuTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	modifierGroups := `
CREATE TABLE IF NOT EXISTS modifier_groups (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  options TEXT NOT NULL DEFAULT '[]',
  created_at DATETIME,
  updated_at DATETIME
);`
	drinks := `
CREATE TABLE IF NOT EXISTS drinks (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category_id TEXT NOT NULL,
  base_price NUMERIC NOT NULL,
  base_cost NUMERIC NOT NULL,
  image_url TEXT,
  description TEXT,
  modifier_groups TEXT NOT NULL DEFAULT '[]',
  created_at DATETIME,
  updated_at DATETIME
);`
	for _, stmt := range []string{categories, modifierGroups, drinks} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	require.NoError(t, db.Create(&models.Category{ID: models.UncategorisedCategoryID, Name: "Uncategorised"}).Error)
	return db
}

func TestRepositoryDrinkLifecycle(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, &models.Category{ID: "cat-1", Name: "Hot Drinks"}))
	require.NoError(t, repo.CreateModifierGroup(ctx, &models.ModifierGroup{
		ID:   "mod-group-1",
		Name: "Milk Type",
		Options: types.ModifierOptions{
			{ID: "mod-1-5", Name: "Oat", Price: decimal.NewFromFloat(0.75), Cost: decimal.NewFromFloat(0.25)},
		},
	}))

	drink := &models.Drink{
		ID: "drink-1", Name: "Latte", CategoryID: "cat-1",
		BasePrice:      decimal.NewFromFloat(4.00),
		BaseCost:       decimal.NewFromFloat(1.20),
		ModifierGroups: types.StringList{"mod-group-1"},
	}
	require.NoError(t, repo.CreateDrink(ctx, drink))

	count, err := repo.CountDrinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	loaded, err := repo.GetDrink(ctx, "drink-1")
	require.NoError(t, err)
	assert.Equal(t, "Latte", loaded.Name)
	assert.True(t, loaded.BasePrice.Equal(decimal.NewFromFloat(4.00)))
	assert.Equal(t, types.StringList{"mod-group-1"}, loaded.ModifierGroups)

	loaded.Name = "Latte (large)"
	require.NoError(t, repo.SaveDrink(ctx, loaded))

	reloaded, err := repo.GetDrink(ctx, "drink-1")
	require.NoError(t, err)
	assert.Equal(t, "Latte (large)", reloaded.Name)

	require.NoError(t, repo.DeleteDrink(ctx, "drink-1"))
	_, err = repo.GetDrink(ctx, "drink-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryReassignDrinks(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, &models.Category{ID: "cat-1", Name: "Hot Drinks"}))
	for _, id := range []string{"drink-1", "drink-2"} {
		require.NoError(t, repo.CreateDrink(ctx, &models.Drink{
			ID: id, Name: id, CategoryID: "cat-1",
			BasePrice: decimal.NewFromFloat(3.50),
			BaseCost:  decimal.NewFromFloat(1.00),
		}))
	}

	require.NoError(t, repo.ReassignDrinks(ctx, "cat-1", models.UncategorisedCategoryID))

	drinks, err := repo.ListDrinks(ctx)
	require.NoError(t, err)
	require.Len(t, drinks, 2)
	for _, d := range drinks {
		assert.Equal(t, models.UncategorisedCategoryID, d.CategoryID)
	}
}

func TestRepositoryDeleteAllKeepsFallback(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, &models.Category{ID: "cat-1", Name: "Hot Drinks"}))
	require.NoError(t, repo.CreateModifierGroup(ctx, &models.ModifierGroup{ID: "mod-group-1", Name: "Milk Type"}))
	require.NoError(t, repo.CreateDrink(ctx, &models.Drink{
		ID: "drink-1", Name: "Latte", CategoryID: "cat-1",
		BasePrice: decimal.NewFromFloat(4.00),
		BaseCost:  decimal.NewFromFloat(1.20),
	}))

	require.NoError(t, repo.DeleteAllMenuEntities(ctx))

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, models.UncategorisedCategoryID, categories[0].ID)

	drinks, err := repo.ListDrinks(ctx)
	require.NoError(t, err)
	assert.Empty(t, drinks)

	groups, err := repo.ListModifierGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestRepositoryModifierGroupOptionsRoundTrip(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	group := &models.ModifierGroup{
		ID:   "mod-group-3",
		Name: "Espresso",
		Options: types.ModifierOptions{
			{ID: "mod-3-1", Name: "Double Shot", Price: decimal.NewFromFloat(0.50), Cost: decimal.NewFromFloat(0.40)},
			{ID: "mod-3-2", Name: "Triple Shot", Price: decimal.NewFromFloat(1.00), Cost: decimal.NewFromFloat(0.80)},
		},
	}
	require.NoError(t, repo.CreateModifierGroup(ctx, group))

	loaded, err := repo.GetModifierGroup(ctx, "mod-group-3")
	require.NoError(t, err)
	require.Len(t, loaded.Options, 2)
	opt, ok := loaded.Options.Find("mod-3-1")
	require.True(t, ok)
	assert.True(t, opt.Price.Equal(decimal.NewFromFloat(0.50)))
	assert.True(t, opt.Cost.Equal(decimal.NewFromFloat(0.40)))
}

func TestRepositoryStoresEmptyArraysForNilSlices(t *testing.T) {
	db := setupMenuTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateModifierGroup(ctx, &models.ModifierGroup{ID: "mod-bare", Name: "Bare"}))
	require.NoError(t, repo.CreateDrink(ctx, &models.Drink{
		ID: "drink-bare", Name: "Espresso", CategoryID: models.UncategorisedCategoryID,
		BasePrice: decimal.NewFromFloat(2.50),
		BaseCost:  decimal.NewFromFloat(0.60),
	}))

	group, err := repo.GetModifierGroup(ctx, "mod-bare")
	require.NoError(t, err)
	assert.NotNil(t, group.Options)
	assert.Len(t, group.Options, 0)

	drink, err := repo.GetDrink(ctx, "drink-bare")
	require.NoError(t, err)
	assert.NotNil(t, drink.ModifierGroups)
	assert.Len(t, drink.ModifierGroups, 0)
}
