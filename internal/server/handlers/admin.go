package handlers

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/AlexTLDR/wedding/internal/backup"
	"github.com/AlexTLDR/wedding/internal/dashboard"
	"github.com/AlexTLDR/wedding/templates"
)

// AdminServer extends Server with admin-specific methods
type AdminServer interface {
	Server
	GetCurrentUser(r *http.Request) (string, string)
	GetDashboard() *dashboard.Dashboard
	GetBackuper() *backup.Backuper
	AddFlash(w http.ResponseWriter, r *http.Request, b dashboard.Banner)
	Flashes(w http.ResponseWriter, r *http.Request) []dashboard.Banner
}

// HandleAdminDashboard renders one dashboard tab. A confirm parameter opens
// the delete prompt for that key.
func HandleAdminDashboard(s AdminServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, userName := s.GetCurrentUser(r)
		tab := dashboard.ParseTab(r.URL.Query().Get("tab"))

		data := templates.AdminData{
			UserName:      userName,
			Banners:       s.Flashes(w, r),
			BackupEnabled: s.GetBackuper() != nil,
		}

		view, err := s.GetDashboard().Load(r.Context(), tab)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Str("tab", string(tab)).Msg("failed to load dashboard tab")
			data.Banners = append(data.Banners, dashboard.Banner{Kind: dashboard.BannerError, Message: dashboard.LoadError(tab)})
		}
		data.View = view

		if key := r.URL.Query().Get("confirm"); key != "" {
			p := dashboard.DeletePrompt(tab, key)
			data.Prompt = &p
		}

		if err := templates.Admin(data).Render(r.Context(), w); err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// HandleAdminMutation applies a create, update, delete or promote posted
// from a tab, then redirects back to that tab so the list is fetched again.
func HandleAdminMutation(s AdminServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab, ok := parseTab(r.PathValue("collection"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		values := make(dashboard.Values, len(r.PostForm))
		for k := range r.PostForm {
			values[k] = r.PostForm.Get(k)
		}

		op := dashboard.Op(r.PathValue("op"))
		banner := s.GetDashboard().Apply(r.Context(), tab, op, values)
		hlog.FromRequest(r).Info().
			Str("tab", string(tab)).
			Str("op", string(op)).
			Str("result", string(banner.Kind)).
			Msg("dashboard mutation")

		s.AddFlash(w, r, banner)
		http.Redirect(w, r, "/admin?tab="+string(tab), http.StatusSeeOther)
	}
}

// parseTab is strict, unlike dashboard.ParseTab, so unknown collections in
// form actions 404.
func parseTab(name string) (dashboard.Tab, bool) {
	for _, t := range dashboard.Tabs {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// HandleAdminBackup uploads a snapshot on demand.
func HandleAdminBackup(s AdminServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := s.GetBackuper()
		if b == nil {
			s.AddFlash(w, r, dashboard.Banner{Kind: dashboard.BannerError, Message: "Backups are not configured"})
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}

		key, err := b.Run(r.Context())
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("manual backup failed")
			s.AddFlash(w, r, dashboard.Banner{Kind: dashboard.BannerError, Message: "Backup failed"})
		} else {
			s.AddFlash(w, r, dashboard.Banner{Kind: dashboard.BannerSuccess, Message: fmt.Sprintf("Backup uploaded to %s", key)})
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}
