// Package reports exposes the admin sales summary.
package reports

import (
	"net/http"
	"strings"
	"time"

	"github.com/brewdeck/brewdeck-backend/api/responses"
	internalreports "github.com/brewdeck/brewdeck-backend/internal/reports"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

// Summary computes the sales report for [from, to). Bounds accept RFC 3339
// timestamps or bare dates; a bare date is midnight UTC.
func Summary(svc internalreports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := parseBound(r.URL.Query().Get("from"), "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := parseBound(r.URL.Query().Get("to"), "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summarize(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalreports.NewSummaryView(*summary))
	}
}

func parseBound(raw, name string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name+" bound")
	}
	return t.UTC(), nil
}
