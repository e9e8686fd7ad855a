package tutorials

import "github.com/brewdeck/brewdeck-backend/pkg/db/models"

// StepView is the JSON shape tutorial steps take on the wire.
type StepView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Target        string `json:"target"`
	Position      string `json:"position"`
	WaitForAction bool   `json:"waitForAction"`
	SortOrder     int    `json:"sortOrder"`
}

// NewView maps a stored step onto its wire shape.
func NewView(step models.TutorialStep) StepView {
	return StepView{
		ID:            step.ID,
		Title:         step.Title,
		Content:       step.Content,
		Target:        step.Target,
		Position:      step.Position,
		WaitForAction: step.WaitForAction,
		SortOrder:     step.SortOrder,
	}
}

// NewViewList maps stored steps onto their wire shape, preserving order.
func NewViewList(steps []models.TutorialStep) []StepView {
	views := make([]StepView, 0, len(steps))
	for _, step := range steps {
		views = append(views, NewView(step))
	}
	return views
}
