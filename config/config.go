package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort          = "8080"
	defaultDBPort        = "5432"
	defaultSSLMode       = "disable"
	defaultStoreBackend  = "postgres"
	defaultBlobBackend   = "drive"
	defaultMaxUploadSize = 10 << 20
	defaultCartTTL       = 12 * time.Hour
	defaultGreeting      = "Hi! I'd like to request the following commissions:"
)

// Config holds runtime configuration read from the environment.
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Blob     BlobConfig
	Auth     AuthConfig
	Handoff  HandoffConfig
	Chrome   ChromeConfig
	Cart     CartConfig
}

type ServerConfig struct {
	Port    string
	BaseURL string
}

// DatabaseConfig selects the record store. Backend "memory" keeps rows in
// process and is meant for local development only.
type DatabaseConfig struct {
	Backend       string
	URL           string
	RunMigrations bool
}

type BlobConfig struct {
	Backend         string
	CredentialsPath string
	DriveFolderID   string
	GCSBucket       string
	MaxUploadBytes  int64
}

type AuthConfig struct {
	JWTSecret string
	AdminRole string
}

type HandoffConfig struct {
	WhatsAppPhone string
	Greeting      string
}

type ChromeConfig struct {
	Path string
}

type CartConfig struct {
	SessionTTL time.Duration
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Env: getenv("ENV", "development"),
		Server: ServerConfig{
			Port:    strings.TrimPrefix(getenv("PORT", defaultPort), ":"),
			BaseURL: strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		},
		Database: DatabaseConfig{
			Backend:       strings.ToLower(getenv("STORE_BACKEND", defaultStoreBackend)),
			RunMigrations: getbool("DB_MIGRATE", true),
		},
		Blob: BlobConfig{
			Backend:         strings.ToLower(getenv("BLOB_BACKEND", defaultBlobBackend)),
			CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			DriveFolderID:   os.Getenv("DRIVE_FOLDER_ID"),
			GCSBucket:       os.Getenv("GCS_BUCKET"),
			MaxUploadBytes:  getint64("MAX_UPLOAD_BYTES", defaultMaxUploadSize),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			AdminRole: getenv("ADMIN_ROLE", "admin"),
		},
		Handoff: HandoffConfig{
			WhatsAppPhone: os.Getenv("WHATSAPP_PHONE"),
			Greeting:      getenv("WHATSAPP_GREETING", defaultGreeting),
		},
		Chrome: ChromeConfig{
			Path: os.Getenv("CHROME_PATH"),
		},
		Cart: CartConfig{
			SessionTTL: getduration("CART_SESSION_TTL", defaultCartTTL),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:" + cfg.Server.Port
	}

	if cfg.Database.Backend == "postgres" {
		dbURL, err := databaseURL()
		if err != nil {
			return nil, err
		}
		cfg.Database.URL = dbURL
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.Database.Backend {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Database.Backend)
	}

	switch c.Blob.Backend {
	case "drive":
		if c.Blob.CredentialsPath == "" {
			return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
		}
		if c.Blob.DriveFolderID == "" {
			return fmt.Errorf("DRIVE_FOLDER_ID environment variable is not set")
		}
	case "gcs":
		if c.Blob.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET environment variable is not set")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported BLOB_BACKEND %q", c.Blob.Backend)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if c.Handoff.WhatsAppPhone == "" {
		return fmt.Errorf("WHATSAPP_PHONE environment variable is not set")
	}
	return nil
}

// databaseURL returns DATABASE_URL or builds a postgres URL from the DB_*
// variables.
func databaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, os.Getenv("DB_PASSWORD")),
		Host:     host + ":" + getenv("DB_PORT", defaultDBPort),
		Path:     "/" + dbname,
		RawQuery: "sslmode=" + getenv("DB_SSLMODE", defaultSSLMode),
	}
	return u.String(), nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getint64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getduration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
