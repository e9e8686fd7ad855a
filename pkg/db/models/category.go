package models

import "time"

// UncategorisedCategoryID is the fallback bucket drinks move into when their
// category is deleted. The row itself cannot be deleted.
const UncategorisedCategoryID = "cat-uncategorised"

// Category is a menu grouping for drinks.
type Category struct {
	ID        string    `gorm:"column:id;type:text;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
