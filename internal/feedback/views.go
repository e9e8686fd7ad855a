package feedback

import (
	"time"

	"github.com/google/uuid"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
)

// FeedbackView is the JSON shape feedback entries take on the wire.
type FeedbackView struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewView maps a stored feedback entry onto its wire shape.
func NewView(entry models.Feedback) FeedbackView {
	return FeedbackView{
		ID:        entry.ID,
		Rating:    entry.Rating,
		Message:   entry.Message,
		CreatedAt: entry.CreatedAt,
	}
}

// NewViewList maps stored feedback entries onto their wire shape, preserving order.
func NewViewList(entries []models.Feedback) []FeedbackView {
	views := make([]FeedbackView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, NewView(entry))
	}
	return views
}
