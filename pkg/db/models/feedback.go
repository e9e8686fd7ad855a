package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is an anonymous rating with an optional message.
type Feedback struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Rating    int       `gorm:"column:rating;not null"`
	Message   string    `gorm:"column:message"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
