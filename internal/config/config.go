package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         string
	DatabaseURL  string
	SessionKey   []byte
	CSRFKey      []byte
	CookieDomain string
	CookieSecure bool

	UploadDir     string
	MaxUploadSize int64

	AdminUsername string
	AdminPassword string
	AdminEmail    string

	// Mail settings are loaded but unused: email delivery is a placeholder.
	MailServer   string
	MailPort     int
	MailUseTLS   bool
	MailUsername string
	MailPassword string
	MailSender   string
	ContactEmail string

	// WhatsApp settings are loaded but unused: messaging is a placeholder.
	WhatsAppAPIKey string
	WhatsAppPhone  string
	AdminPhone     string
}

func LoadConfig() (*Config, error) {
	// Optional .env file, same convention as the hosting platforms we target.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg := &Config{
		Host:          getEnv("HOST", "0.0.0.0"),
		Port:          getEnv("PORT", "5000"),
		DatabaseURL:   getEnv("DATABASE_URL", "./volydog.db"),
		CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
		UploadDir:     getEnv("UPLOAD_FOLDER", "static/uploads"),
		MaxUploadSize: getEnvInt64("MAX_UPLOAD_SIZE", 16<<20), // 16 MiB

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),

		MailServer:   getEnv("MAIL_SERVER", "smtp.gmail.com"),
		MailPort:     int(getEnvInt64("MAIL_PORT", 587)),
		MailUseTLS:   getEnv("MAIL_USE_TLS", "true") == "true",
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailSender:   os.Getenv("MAIL_DEFAULT_SENDER"),
		ContactEmail: os.Getenv("CONTACT_EMAIL"),

		WhatsAppAPIKey: os.Getenv("WHATSAPP_API_KEY"),
		WhatsAppPhone:  os.Getenv("WHATSAPP_PHONE_NUMBER"),
		AdminPhone:     os.Getenv("ADMIN_PHONE"),
	}

	cfg.SessionKey = loadKey("SECRET_KEY")
	cfg.CSRFKey = loadKey("CSRF_KEY")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "5000"
	}

	return cfg, nil
}

// loadKey reads a base64 signing key from the environment, generating a
// random development key with a loud warning when it is unset or too short.
func loadKey(envVar string) []byte {
	raw := os.Getenv(envVar)
	if raw == "" {
		slog.Warn(envVar + " environment variable not set. Generating a random key for development. This key will change on each restart. PLEASE SET " + envVar + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(envVar + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + envVar + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		slog.Warn("Invalid integer environment variable, using default", "key", key, "value", value)
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		os.Exit(1)
	}
	return b
}
