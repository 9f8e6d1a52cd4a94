package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/shalliecode/volydog/internal/config"
	"github.com/shalliecode/volydog/internal/handlers"
	"github.com/shalliecode/volydog/internal/models"
	"github.com/shalliecode/volydog/internal/notify"
	"github.com/shalliecode/volydog/internal/store"
	"github.com/shalliecode/volydog/internal/uploads"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the admin account on first launch
	if err := seedAdmin(db, cfg); err != nil {
		slog.Error("Failed to seed admin user", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	templates.AddFunc("money", func(amount float64) string {
		return fmt.Sprintf("$%.2f", amount)
	})
	templates.AddFunc("stars", func(rating float64) string {
		return fmt.Sprintf("%.1f / 5.0", rating)
	})
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Uploads & notifications
	saver, err := uploads.NewSaver(cfg.UploadDir)
	if err != nil {
		slog.Error("Failed to prepare upload directory", "error", err)
		os.Exit(1)
	}
	notifier := notify.New(cfg)

	// 6. Setup Handlers
	base := &handlers.Base{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	authHandler := &handlers.AuthHandler{Base: base}
	catalogHandler := &handlers.CatalogHandler{Base: base}
	checkoutHandler := &handlers.CheckoutHandler{Base: base, Notifier: notifier}
	adminHandler := &handlers.AdminHandler{
		Base:          base,
		Uploads:       saver,
		MaxUploadSize: cfg.MaxUploadSize,
	}

	router := handlers.NewRouter(authHandler, catalogHandler, checkoutHandler, adminHandler)

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Router
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(router),
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: http.MaxBytesHandler(handler, cfg.MaxUploadSize+1<<20),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "host", cfg.Host, "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}

// seedAdmin creates the back-office account on first launch. Unconfigured
// credentials fall back to well-known defaults; those fallbacks are warned
// about loudly because they must not reach production unchanged.
func seedAdmin(db *store.Store, cfg *config.Config) error {
	existing, err := db.GetUserByUsername(cfg.AdminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	email := cfg.AdminEmail
	if email == "" {
		email = cfg.ContactEmail
	}
	if email == "" {
		email = cfg.AdminUsername + "@gmail.com"
		slog.Warn("ADMIN_EMAIL not set; using generated placeholder", "email", email)
	}

	password := cfg.AdminPassword
	if password == "" {
		password = "change_me"
		slog.Warn("ADMIN_PASSWORD not set; seeding admin with the default password. CHANGE IT IMMEDIATELY!")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: cfg.AdminUsername,
		Email:    email,
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := db.CreateUser(admin); err != nil {
		return err
	}
	slog.Info("Seeded admin user", "username", admin.Username)
	return nil
}
