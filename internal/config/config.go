package config

import (
	"os"

	"github.com/spf13/cast"
)

// Config holds environment-driven configuration. Admin credentials are
// provisioned out of band through the environment; there are no hard-coded
// seed values.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// WhatsAppPhone receives checkout orders, international format without +.
	WhatsAppPhone string

	CartDBPath string
	UploadsDir string

	// AdminPassword and AdminRecoveryCode seed site_settings on first run
	// only; existing rows are never overwritten.
	AdminPassword     string
	AdminRecoveryCode string

	Debug bool
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:              getenv("BAKERY_ADDR", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		WhatsAppPhone:     getenv("WHATSAPP_PHONE", "5527996487579"),
		CartDBPath:        getenv("CART_DB_PATH", "./data/carts.db"),
		UploadsDir:        getenv("UPLOADS_DIR", "./uploads"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminRecoveryCode: os.Getenv("ADMIN_RECOVERY_CODE"),
		Debug:             cast.ToBool(os.Getenv("DEBUG")),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
