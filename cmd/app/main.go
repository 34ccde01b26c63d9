package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/asaskevich/EventBus"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/docesonho/bakery-backend/internal/admin"
	"github.com/docesonho/bakery-backend/internal/cart"
	"github.com/docesonho/bakery-backend/internal/catalog"
	"github.com/docesonho/bakery-backend/internal/checkout"
	"github.com/docesonho/bakery-backend/internal/config"
	"github.com/docesonho/bakery-backend/internal/hero"
	"github.com/docesonho/bakery-backend/internal/imagestore"
	"github.com/docesonho/bakery-backend/internal/notify"
	"github.com/docesonho/bakery-backend/internal/settings"
	"github.com/docesonho/bakery-backend/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	initLogger(cfg.Debug)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	if err := os.MkdirAll(filepath.Dir(cfg.CartDBPath), 0o755); err != nil {
		zap.S().Fatalf("cart db dir: %v", err)
	}
	cartDB, err := bolt.Open(cfg.CartDBPath, 0o600, nil)
	if err != nil {
		zap.S().Fatalf("cart db open: %v", err)
	}
	defer cartDB.Close()

	bus := EventBus.New()
	notifier := notify.NewZapNotifier()

	settingsRepo := settings.NewPostgresRepository(db)
	catalogSvc := catalog.NewService(catalog.NewPostgresRepository(db), notifier, bus)
	heroSvc := hero.NewService(settingsRepo, notifier, bus)
	gate := admin.NewGate(settingsRepo, notifier, bus)

	cartStorage, err := cart.NewBoltStorage(cartDB)
	if err != nil {
		zap.S().Fatalf("cart storage: %v", err)
	}
	carts := cart.NewManager(cartStorage, notifier, bus)

	ctx := context.Background()
	if err := gate.Seed(ctx, cfg.AdminPassword, cfg.AdminRecoveryCode); err != nil {
		zap.S().Fatalf("admin credential seed: %v", err)
	}

	st := store.New(catalogSvc, heroSvc, carts, gate, bus)
	if err := st.Load(ctx); err != nil {
		zap.S().Fatalf("initial load: %v", err)
	}

	images, err := imagestore.New(cfg.UploadsDir, "/uploads")
	if err != nil {
		zap.S().Fatalf("image store: %v", err)
	}
	wa := checkout.New(cfg.WhatsAppPhone)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + cart.HeaderCartKey,
	}))

	catalogHandler := catalog.NewHandler(catalogSvc)
	heroHandler := hero.NewHandler(heroSvc)
	cartHandler := cart.NewHandler(carts, catalogSvc)
	checkoutHandler := checkout.NewHandler(wa, carts, catalogSvc)
	adminHandler := admin.NewHandler(gate, cfg.JWTSecret)
	imageHandler := imagestore.NewHandler(images)

	catalogHandler.RegisterPublicRoutes(app)
	heroHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterPublicRoutes(app)
	adminHandler.RegisterPublicRoutes(app)

	// uploaded images are public
	app.Static("/uploads", cfg.UploadsDir)

	adminGroup := app.Group("/api/v1/admin", jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))
	catalogHandler.RegisterAdminRoutes(adminGroup)
	heroHandler.RegisterAdminRoutes(adminGroup)
	adminHandler.RegisterAdminRoutes(adminGroup)
	imageHandler.RegisterAdminRoutes(adminGroup)

	zap.S().Infof("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		zap.S().Fatalf("server stopped: %v", err)
	}
}

func initLogger(debug bool) {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		zap.S().Fatal("DATABASE_URL is not set")
	}
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		zap.S().Fatalf("db open: %v", err)
	}
	if err := db.Ping(); err != nil {
		zap.S().Fatalf("db ping: %v", err)
	}
	return db
}

// ensureSchema creates the storefront tables when missing. Timestamps are
// stored as text so listings can scan them without driver-specific types.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS categories (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			name text NOT NULL,
			order_index int NOT NULL DEFAULT 0,
			active boolean NOT NULL DEFAULT true
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			name text NOT NULL,
			description text,
			price numeric(10,2) NOT NULL CHECK (price > 0),
			image_url text,
			category_id uuid REFERENCES categories(id),
			featured boolean NOT NULL DEFAULT false,
			active boolean NOT NULL DEFAULT true,
			created_at text NOT NULL DEFAULT now()::text,
			updated_at text NOT NULL DEFAULT now()::text
		)`,
		`CREATE TABLE IF NOT EXISTS site_settings (
			key text PRIMARY KEY,
			value text NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			zap.S().Fatalf("schema: %v", err)
		}
	}
}
