package menu

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
	"gorm.io/gorm"
)

const seedImageParams = "?auto=format&fit=crop&w=500&q=60"

// SeedIfEmpty loads the starter catalog when no drinks exist yet.
func (s *service) SeedIfEmpty(ctx context.Context) error {
	count, err := s.repo.CountDrinks(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count drinks")
	}
	if count > 0 {
		return nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, category := range seedCategories() {
			c := category
			if c.ID == models.UncategorisedCategoryID {
				// Seeded by migration.
				continue
			}
			if err := repo.CreateCategory(ctx, &c); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed category")
			}
		}
		for _, group := range seedModifierGroups() {
			g := group
			if err := repo.CreateModifierGroup(ctx, &g); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed modifier group")
			}
		}
		for _, drink := range seedDrinks() {
			d := drink
			if err := repo.CreateDrink(ctx, &d); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed drink")
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

func seedCategories() []models.Category {
	return []models.Category{
		{ID: "cat-1", Name: "Hot Drinks"},
		{ID: "cat-2", Name: "Iced Drinks"},
		{ID: "cat-3", Name: "Teas"},
		{ID: "cat-4", Name: "Other"},
		{ID: models.UncategorisedCategoryID, Name: "Uncategorised"},
	}
}

func seedModifierGroups() []models.ModifierGroup {
	return []models.ModifierGroup{
		{
			ID:   "mod-group-1",
			Name: "Milk Type",
			Options: types.ModifierOptions{
				{ID: "mod-1-1", Name: "Full Cream", Price: cents(0), Cost: cents(10)},
				{ID: "mod-1-2", Name: "Light", Price: cents(0), Cost: cents(10)},
				{ID: "mod-1-3", Name: "Almond", Price: cents(75), Cost: cents(25)},
				{ID: "mod-1-4", Name: "Soy", Price: cents(50), Cost: cents(20)},
				{ID: "mod-1-5", Name: "Oat", Price: cents(75), Cost: cents(25)},
				{ID: "mod-1-6", Name: "Lactose Free", Price: cents(75), Cost: cents(25)},
			},
		},
		{
			ID:   "mod-group-2",
			Name: "Sweetness",
			Options: types.ModifierOptions{
				{ID: "mod-2-1", Name: "1 Sugar", Price: cents(0), Cost: cents(5)},
				{ID: "mod-2-2", Name: "2 Sugars", Price: cents(0), Cost: cents(10)},
				{ID: "mod-2-3", Name: "Vanilla Syrup", Price: cents(50), Cost: cents(15)},
			},
		},
		{
			ID:   "mod-group-3",
			Name: "Espresso",
			Options: types.ModifierOptions{
				{ID: "mod-3-1", Name: "Double Shot", Price: cents(50), Cost: cents(40)},
				{ID: "mod-3-2", Name: "Triple Shot", Price: cents(100), Cost: cents(80)},
			},
		},
		{
			ID:   "mod-group-4",
			Name: "Chocolate",
			Options: types.ModifierOptions{
				{ID: "mod-4-1", Name: "Extra Milk Chocolate", Price: cents(50), Cost: cents(20)},
				{ID: "mod-4-2", Name: "Extra White Chocolate", Price: cents(50), Cost: cents(20)},
			},
		},
		{
			ID:   "mod-group-5",
			Name: "Marshmallow",
			Options: types.ModifierOptions{
				{ID: "mod-5-1", Name: "In", Price: cents(0), Cost: cents(10)},
				{ID: "mod-5-2", Name: "Out", Price: cents(0), Cost: cents(0)},
			},
		},
	}
}

func seedDrinks() []models.Drink {
	return []models.Drink{
		{
			ID: "drink-1", Name: "Latte", CategoryID: "cat-1",
			BasePrice: cents(400), BaseCost: cents(120),
			ImageURL:       "https://images.unsplash.com/photo-1541167760496-1628856ab772" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2", "mod-group-3"},
			Description:    "A smooth, creamy coffee made with a shot of espresso and steamed milk.",
		},
		{
			ID: "drink-2", Name: "Cappuccino", CategoryID: "cat-1",
			BasePrice: cents(400), BaseCost: cents(110),
			ImageURL:       "https://images.unsplash.com/photo-1572442388796-11668a65342d" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2", "mod-group-3"},
			Description:    "The perfect balance of espresso, steamed milk, and a thick layer of foam.",
		},
		{
			ID: "drink-3", Name: "Flat White", CategoryID: "cat-1",
			BasePrice: cents(400), BaseCost: cents(130),
			ImageURL:       "https://images.unsplash.com/photo-1596707442116-232537a7442a" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2", "mod-group-3"},
			Description:    "A rich espresso shot topped with velvety steamed milk for a smooth finish.",
		},
		{
			ID: "drink-4", Name: "Short Black", CategoryID: "cat-1",
			BasePrice: cents(300), BaseCost: cents(80),
			ImageURL:       "https://images.unsplash.com/photo-1621267860477-1632432a8314" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-3"},
			Description:    "A pure, intense shot of espresso, also known as an espresso.",
		},
		{
			ID: "drink-5", Name: "Long Black", CategoryID: "cat-1",
			BasePrice: cents(350), BaseCost: cents(90),
			ImageURL:       "https://images.unsplash.com/photo-1518004856236-717c5dbb03f1" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-3"},
			Description:    "A double-shot of espresso pulled over hot water to retain its crema.",
		},
		{
			ID: "drink-6", Name: "Macchiato", CategoryID: "cat-1",
			BasePrice: cents(325), BaseCost: cents(90),
			ImageURL:       "https://images.unsplash.com/photo-1561737710-60a5b6fcf01b" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-3"},
			Description:    "A bold shot of espresso 'stained' with a small dollop of steamed milk froth.",
		},
		{
			ID: "drink-7", Name: "Hot Chocolate", CategoryID: "cat-1",
			BasePrice: cents(450), BaseCost: cents(130),
			ImageURL:       "https://images.unsplash.com/photo-1605333240291-05a8d9a43fe4" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-4", "mod-group-5"},
			Description:    "Rich, decadent chocolate melted into creamy steamed milk.",
		},
		{
			ID: "drink-8", Name: "Mocha", CategoryID: "cat-1",
			BasePrice: cents(475), BaseCost: cents(140),
			ImageURL:       "https://images.unsplash.com/photo-1577968897966-3d4325b36def" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2", "mod-group-3", "mod-group-4"},
			Description:    "A delicious blend of rich chocolate, espresso, and steamed milk.",
		},
		{
			ID: "drink-9", Name: "White Hot Chocolate", CategoryID: "cat-1",
			BasePrice: cents(450), BaseCost: cents(150),
			ImageURL:       "https://images.unsplash.com/photo-1572498284483-7923a105d3b3" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-4", "mod-group-5"},
			Description:    "A creamy and sweet alternative made from rich white chocolate and steamed milk.",
		},
		{
			ID: "drink-10", Name: "Piccolo", CategoryID: "cat-1",
			BasePrice: cents(350), BaseCost: cents(100),
			ImageURL:       "https://images.unsplash.com/photo-1616870830113-a41ac2a2f814" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-3"},
			Description:    "A mini latte with a restricted ristretto shot for a strong, balanced flavour.",
		},
		{
			ID: "drink-22", Name: "Americano", CategoryID: "cat-1",
			BasePrice: cents(350), BaseCost: cents(80),
			ImageURL:       "https://images.unsplash.com/photo-1593443320739-7356223b3a43" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-3"},
			Description:    "A shot of espresso diluted with hot water for a gentler strength.",
		},
		{
			ID: "drink-11", Name: "Chai Latte", CategoryID: "cat-3",
			BasePrice: cents(450), BaseCost: cents(140),
			ImageURL:       "https://images.unsplash.com/photo-1573326140384-031e6ab9b48f" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2"},
			Description:    "A sweet and spicy blend of black tea, aromatic spices, and steamed milk.",
		},
		{
			ID: "drink-12", Name: "Dirty Chai", CategoryID: "cat-3",
			BasePrice: cents(500), BaseCost: cents(180),
			ImageURL:       "https://images.unsplash.com/photo-1594744453366-e84084724810" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2", "mod-group-3"},
			Description:    "A classic chai latte with an added shot of espresso for an extra kick.",
		},
		{
			ID: "drink-13", Name: "Sticky Chai", CategoryID: "cat-3",
			BasePrice: cents(500), BaseCost: cents(180),
			ImageURL:       "https://images.unsplash.com/photo-1601923161314-54c7a6591741" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1"},
			Description:    "Aromatic chai spices and black tea candied in honey, brewed to perfection.",
		},
		{
			ID: "drink-14", Name: "Matcha Latte", CategoryID: "cat-3",
			BasePrice: cents(475), BaseCost: cents(150),
			ImageURL:       "https://images.unsplash.com/photo-1563514212933-2023a100db27" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2"},
			Description:    "Vibrant Japanese green tea powder whisked with steamed milk.",
		},
		{
			ID: "drink-24", Name: "English Breakfast Tea", CategoryID: "cat-3",
			BasePrice: cents(350), BaseCost: cents(50),
			ImageURL:       "https://images.unsplash.com/photo-1589136113881-857b32f91a66" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2"},
			Description:    "A traditional blend of black teas. A robust, full-bodied cup.",
		},
		{
			ID: "drink-15", Name: "Iced Coffee", CategoryID: "cat-2",
			BasePrice: cents(425), BaseCost: cents(100),
			ImageURL:       "https://images.unsplash.com/photo-1461023058943-07fcbe16d735" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2", "mod-group-3"},
			Description:    "Chilled coffee served over ice, perfect for a warm day.",
		},
		{
			ID: "drink-19", Name: "Iced Latte", CategoryID: "cat-2",
			BasePrice: cents(425), BaseCost: cents(120),
			ImageURL:       "https://images.unsplash.com/photo-1586348943529-beaae6c28db9" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2", "mod-group-3"},
			Description:    "A shot of espresso poured over milk and ice for a refreshing coffee hit.",
		},
		{
			ID: "drink-20", Name: "Iced Chocolate", CategoryID: "cat-2",
			BasePrice: cents(475), BaseCost: cents(150),
			ImageURL:       "https://images.unsplash.com/photo-1587882390399-190644f0525d" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-4"},
			Description:    "Rich chocolate syrup mixed with cold milk, served over ice.",
		},
		{
			ID: "drink-21", Name: "Iced Matcha Latte", CategoryID: "cat-2",
			BasePrice: cents(500), BaseCost: cents(160),
			ImageURL:       "https://images.unsplash.com/photo-1509082025158-6c827339734e" + seedImageParams,
			ModifierGroups: types.StringList{"mod-group-1", "mod-group-2"},
			Description:    "Vibrant Japanese green tea powder whisked with cold milk and served over ice.",
		},
		{
			ID: "drink-16", Name: "Babyccino", CategoryID: "cat-4",
			BasePrice: cents(150), BaseCost: cents(50),
			ImageURL:       "https://images.unsplash.com/photo-1610892013197-01e409395f17" + seedImageParams,
			ModifierGroups: types.StringList{},
			Description:    "Steamed, frothy milk in a tiny cup, perfect for the little ones.",
		},
		{
			ID: "drink-17", Name: "Cookie", CategoryID: "cat-4",
			BasePrice: cents(300), BaseCost: cents(100),
			ImageURL:       "https://images.unsplash.com/photo-1558961363-fa8fdf82db35" + seedImageParams,
			ModifierGroups: types.StringList{},
			Description:    "A freshly baked, deliciously chewy cookie, the perfect partner for any drink.",
		},
		{
			ID: "drink-18", Name: "Coffee Beans", CategoryID: "cat-4",
			BasePrice: cents(1800), BaseCost: cents(900),
			ImageURL:       "https://images.unsplash.com/photo-1509042239860-f550ce710b93" + seedImageParams,
			ModifierGroups: types.StringList{},
			Description:    "Take our signature house blend home with you; whole beans for ultimate freshness.",
		},
		{
			ID: "drink-23", Name: "Affogato", CategoryID: "cat-4",
			BasePrice: cents(550), BaseCost: cents(200),
			ImageURL:       "https://images.unsplash.com/photo-1627762226499-2245d44a29a1" + seedImageParams,
			ModifierGroups: types.StringList{},
			Description:    "A scoop of vanilla ice cream drowned with a shot of hot espresso.",
		},
	}
}

func cents(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}
