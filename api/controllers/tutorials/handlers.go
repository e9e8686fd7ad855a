// Package tutorials exposes the onboarding tour steps: a public read and an
// admin-side replace.
package tutorials

import (
	"net/http"
	"strings"

	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/api/validators"
	internaltutorials "github.com/brewdeck/brewdeck-backend/internal/tutorials"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type stepRequest struct {
	ID            string `json:"id"`
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
	Target        string `json:"target" validate:"required"`
	Position      string `json:"position"`
	WaitForAction bool   `json:"waitForAction"`
	SortOrder     int    `json:"sortOrder"`
}

type replaceRequest struct {
	Steps []stepRequest `json:"steps" validate:"dive"`
}

// List returns the tour steps in display order.
func List(svc internaltutorials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		steps, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internaltutorials.NewViewList(steps))
	}
}

// Replace swaps the whole tour atomically. Admin only.
func Replace(svc internaltutorials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req replaceRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		steps := make([]models.TutorialStep, 0, len(req.Steps))
		for _, step := range req.Steps {
			steps = append(steps, models.TutorialStep{
				ID:            strings.TrimSpace(step.ID),
				Title:         step.Title,
				Content:       step.Content,
				Target:        step.Target,
				Position:      step.Position,
				WaitForAction: step.WaitForAction,
				SortOrder:     step.SortOrder,
			})
		}
		stored, err := svc.Replace(r.Context(), steps)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internaltutorials.NewViewList(stored))
	}
}
