// Package qrcode renders the printable table code pointing customers at the
// ordering frontend.
package qrcode

import (
	"net/http"
	"strconv"
	"strings"

	qr "github.com/skip2/go-qrcode"

	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/pkg/config"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

const (
	defaultSize = 512
	minSize     = 64
	maxSize     = 2048
)

// Image renders the ordering URL as a PNG. Admin only.
func Image(cfg config.QRConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := strings.TrimSpace(cfg.PublicBaseURL)
		if target == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "public base url not configured"))
			return
		}

		size := defaultSize
		if raw := strings.TrimSpace(r.URL.Query().Get("size")); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < minSize || parsed > maxSize {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "size must be between 64 and 2048"))
				return
			}
			size = parsed
		}

		png, err := qr.Encode(target, qr.Medium, size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode qr code"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
