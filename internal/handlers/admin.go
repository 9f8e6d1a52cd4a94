package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shalliecode/volydog/internal/models"
	"github.com/shalliecode/volydog/internal/uploads"
)

type AdminHandler struct {
	*Base
	Uploads       *uploads.Saver
	MaxUploadSize int64
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		slog.Error("Failed to fetch dashboard stats", "error", err)
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "admin_dashboard.html", map[string]interface{}{
		"Stats":  stats,
		"Orders": stats.RecentOrders,
	})
}

func (h *AdminHandler) SiteSettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.GetSiteSettings()
	if err != nil {
		slog.Error("Failed to fetch site settings", "error", err)
		http.Error(w, "Error fetching settings", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "admin_site_settings.html", map[string]interface{}{
		"Settings": settings,
	})
}

// SiteSettingsPost upserts the singleton settings row. Social links are
// always the full four-key mapping; platforms left blank are stored as empty
// strings so stale URLs never survive a save.
func (h *AdminHandler) SiteSettingsPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.addFlash(w, r, "danger", "Invalid form data.")
		http.Redirect(w, r, "/admin/site-settings", http.StatusSeeOther)
		return
	}

	settings := &models.SiteSettings{
		Location:      r.FormValue("location"),
		Phone:         r.FormValue("phone"),
		WhatsApp:      r.FormValue("whatsapp"),
		ContactEmail:  r.FormValue("contact_email"),
		BusinessHours: r.FormValue("business_hours"),
		SocialLinks: map[string]string{
			"facebook":  strings.TrimSpace(r.FormValue("social_facebook")),
			"twitter":   strings.TrimSpace(r.FormValue("social_twitter")),
			"instagram": strings.TrimSpace(r.FormValue("social_instagram")),
			"youtube":   strings.TrimSpace(r.FormValue("social_youtube")),
		},
	}

	if err := h.Store.UpsertSiteSettings(settings); err != nil {
		slog.Error("Failed to save site settings", "error", err)
		h.addFlash(w, r, "danger", "Error saving settings.")
		http.Redirect(w, r, "/admin/site-settings", http.StatusSeeOther)
		return
	}

	h.addFlash(w, r, "success", "Site settings updated")
	http.Redirect(w, r, "/admin/site-settings", http.StatusSeeOther)
}
