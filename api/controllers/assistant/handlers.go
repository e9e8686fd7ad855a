// Package assistant exposes the barista assistant: a single ask endpoint
// backed by the generative language client.
package assistant

import (
	"context"
	"net/http"

	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/api/validators"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type askRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
}

type askResponse struct {
	Reply string `json:"reply"`
}

// Ask forwards a customer prompt to the assistant and returns its reply.
func Ask(client generator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reply, err := client.GenerateContent(r.Context(), req.Prompt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, askResponse{Reply: reply})
	}
}
