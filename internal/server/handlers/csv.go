package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/AlexTLDR/wedding/internal/export"
)

func attachment(w http.ResponseWriter, contentType, ext string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=guest-list-%s.%s", time.Now().Format("2006-01-02"), ext))
}

// HandleAdminDownloadCSV exports the guest list to CSV
func HandleAdminDownloadCSV(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guests, err := s.GetAPI().ListGuests(r.Context())
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("csv export failed")
			http.Error(w, "Failed to load guests", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteGuestsCSV(&buf, guests); err != nil {
			http.Error(w, "Failed to write CSV", http.StatusInternalServerError)
			return
		}
		attachment(w, "text/csv; charset=utf-8", "csv")
		_, _ = buf.WriteTo(w)
	}
}

// HandleAdminDownloadXLSX exports every collection to a workbook.
func HandleAdminDownloadXLSX(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := export.Collect(r.Context(), s.GetAPI())
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("xlsx export failed")
			http.Error(w, "Failed to load guests", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteWorkbook(&buf, snap); err != nil {
			http.Error(w, "Failed to write workbook", http.StatusInternalServerError)
			return
		}
		attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
		_, _ = buf.WriteTo(w)
	}
}
