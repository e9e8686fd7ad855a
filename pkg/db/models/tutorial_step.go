package models

import "time"

// TutorialStep is one step of the guided onboarding tour shown to customers.
type TutorialStep struct {
	ID            string    `gorm:"column:id;type:text;primaryKey"`
	Title         string    `gorm:"column:title;not null"`
	Content       string    `gorm:"column:content;not null"`
	Target        string    `gorm:"column:target;not null"`
	Position      string    `gorm:"column:position;not null;default:'bottom'"`
	WaitForAction bool      `gorm:"column:wait_for_action;not null;default:false"`
	SortOrder     int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
