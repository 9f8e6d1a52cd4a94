package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/shalliecode/volydog/internal/models"
	"github.com/shalliecode/volydog/internal/store"
)

const sessionName = "volydog-session"

// Base carries the dependencies every handler needs: the store, the cookie
// session store, and the parsed template cache.
type Base struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (b *Base) session(r *http.Request) *sessions.Session {
	session, _ := b.SessionStore.Get(r, sessionName)
	return session
}

// currentUser resolves the logged-in user from the session, or nil.
func (b *Base) currentUser(r *http.Request) *models.User {
	session := b.session(r)
	uid, ok := session.Values["user_id"].(int64)
	if !ok {
		return nil
	}
	user, err := b.Store.GetUserByID(uid)
	if err != nil {
		return nil
	}
	return user
}

// addFlash queues a flash message and saves the session immediately so it
// survives the redirect that usually follows.
func (b *Base) addFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	session := b.session(r)
	session.AddFlash(FlashMessage{Type: kind, Message: message})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
}

// render executes a cached template with the page data plus the common
// context every page expects: breed list for the nav filter, site settings,
// current time, the logged-in user, flashes and the CSRF field.
func (b *Base) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	tmpl := b.Templates.Get(name)
	if tmpl == nil {
		slog.Error("Template not found", "name", name)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]interface{}{}
	}

	session := b.session(r)
	if _, ok := data["Flashes"]; !ok {
		data["Flashes"] = GetFlash(session)
	}
	data["CsrfField"] = csrf.TemplateField(r)
	data["CsrfToken"] = csrf.Token(r)
	data["CurrentTime"] = time.Now().UTC()

	// Nav breed filter and footer settings are tolerant of store errors,
	// pages render without them.
	if breeds, err := b.Store.ListBreeds(); err == nil {
		data["Breeds"] = breeds
	}
	if settings, err := b.Store.GetSiteSettings(); err == nil {
		data["SiteSettings"] = settings
	}

	user := b.currentUser(r)
	data["CurrentUser"] = user
	data["IsAdmin"] = user != nil && user.IsAdmin

	session.Save(r, w) // Save session to clear flashes
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("Failed to execute template", "name", name, "error", err)
	}
}
