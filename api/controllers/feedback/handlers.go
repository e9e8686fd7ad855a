// Package feedback exposes anonymous rating submission and the admin-side
// listing.
package feedback

import (
	"net/http"

	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/api/validators"
	internalfeedback "github.com/brewdeck/brewdeck-backend/internal/feedback"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type submitRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Message string `json:"message" validate:"max=2000"`
}

// Submit records an anonymous rating with an optional message.
func Submit(svc internalfeedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := svc.Submit(r.Context(), req.Rating, req.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, internalfeedback.NewView(*entry))
	}
}

// List returns every feedback entry, newest first. Admin only.
func List(svc internalfeedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalfeedback.NewViewList(entries))
	}
}
