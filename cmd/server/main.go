package main // Entry point package

import (
	"context" // context for the startup Drive client build
	"log"     // Logging library
	"time"    // startup timeout

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/idsynccam/registration-api/internal/config"     // Internal config loader
	"github.com/idsynccam/registration-api/internal/database"   // MySQL pool setup
	"github.com/idsynccam/registration-api/internal/gdrive"     // Drive/Sheets provider client
	"github.com/idsynccam/registration-api/internal/handler"    // HTTP handlers
	"github.com/idsynccam/registration-api/internal/queue"      // background registration consumer
	"github.com/idsynccam/registration-api/internal/repository" // SQL repositories
	"github.com/idsynccam/registration-api/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: when unreachable the login rate limiter and the
	// roster response cache are simply disabled.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	drv, err := gdrive.New(ctx, cfg.CredentialsPath, cfg.TokenPath, cfg.DriveRootFolderID)
	cancel()
	if err != nil {
		log.Fatalf("drive: %v (run cmd/authtoken to create token.json)", err)
	}

	users := repository.NewUserRepo(db)
	peserta := repository.NewPesertaRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true, // cookies carry the web session tokens
	}))

	router.Register(e, router.Deps{
		Cfg:         cfg,
		Users:       users,
		Auth:        handler.NewAuthHandler(cfg, users),
		User:        handler.NewUserHandler(cfg, users),
		Peserta:     handler.NewPesertaHandler(peserta),
		Upload:      handler.NewUploadHandler(cfg, drv, peserta),
		Spreadsheet: handler.NewSpreadsheetHandler(drv, peserta),
		Redis:       rdb,
	})

	// Background consumer logs each successful registration; it reconnects
	// on broker failures and never takes the server down.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
