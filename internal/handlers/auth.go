package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/shalliecode/volydog/internal/models"
	"github.com/shalliecode/volydog/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Persistent session lifetime when "remember me" is checked.
const rememberMaxAge = 30 * 24 * 60 * 60

var (
	formDecoder = newFormDecoder()
	validate    = validator.New()
)

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	// Forms carry the CSRF token field; don't error on it.
	d.IgnoreUnknownKeys(true)
	return d
}

type AuthHandler struct {
	*Base
}

type registerForm struct {
	Username string `schema:"username" validate:"required,min=3,max=80"`
	Email    string `schema:"email" validate:"required,email"`
	Password string `schema:"password" validate:"required,min=6"`
	Phone    string `schema:"phone" validate:"max=20"`
	Address  string `schema:"address"`
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", map[string]interface{}{
		"Next": r.URL.Query().Get("next"),
	})
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	remember := r.FormValue("remember") != ""

	user, err := h.Store.GetUserByUsername(username)
	if err != nil {
		slog.Error("Failed to look up user", "error", err)
		h.addFlash(w, r, "danger", "Internal Server Error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		h.addFlash(w, r, "danger", "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session := h.session(r)
	session.Values["user_id"] = user.ID
	if remember {
		session.Options.MaxAge = rememberMaxAge
	} else {
		session.Options.MaxAge = 0 // browser-session cookie
	}
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, loginRedirectTarget(r, user), http.StatusSeeOther)
}

// loginRedirectTarget returns the caller-supplied "next" destination when it
// is a safe local path, otherwise the role-based default.
func loginRedirectTarget(r *http.Request, user *models.User) string {
	next := r.URL.Query().Get("next")
	if next != "" && strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	if user.IsAdmin {
		return "/admin"
	}
	return "/"
}

func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", nil)
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.addFlash(w, r, "danger", "Invalid form data.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	var form registerForm
	if err := formDecoder.Decode(&form, r.PostForm); err != nil {
		h.addFlash(w, r, "danger", "Invalid form data.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err := validate.Struct(form); err != nil {
		h.addFlash(w, r, "danger", "Please fill in a valid username, email and password (min 6 characters).")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		h.addFlash(w, r, "danger", "Internal Server Error")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	user := &models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: string(hashed),
		Phone:    form.Phone,
		Address:  form.Address,
	}
	if err := h.Store.CreateUser(user); err != nil {
		switch err {
		case store.ErrUsernameTaken:
			h.addFlash(w, r, "danger", "Username already exists")
		case store.ErrEmailTaken:
			h.addFlash(w, r, "danger", "Email already registered")
		default:
			slog.Error("Failed to create user", "error", err)
			h.addFlash(w, r, "danger", "Internal Server Error")
		}
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	h.addFlash(w, r, "success", "Registration successful! Please login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RequireLogin redirects unauthenticated callers to the login page,
// preserving the requested path as the post-login destination.
func (h *AuthHandler) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.currentUser(r) == nil {
			h.addFlash(w, r, "info", "Please log in to access this page.")
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin guards back-office pages: unauthenticated callers go to the
// login page, authenticated non-admins go home with a warning.
func (h *AuthHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := h.currentUser(r)
		if user == nil {
			h.addFlash(w, r, "info", "Please log in to access this page.")
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
			return
		}
		if !user.IsAdmin {
			slog.Warn("Non-admin user attempted to access admin page", "user_id", user.ID, "path", r.URL.Path)
			h.addFlash(w, r, "danger", "Access denied")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminJSON is the guard for JSON endpoints: authorization failures
// get a 403 with a structured error body instead of a redirect.
func (h *AuthHandler) RequireAdminJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := h.currentUser(r)
		if user == nil || !user.IsAdmin {
			respondWithError(w, http.StatusForbidden, "Access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}
