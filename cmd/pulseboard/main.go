package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"pulseboard/internal/api"
	"pulseboard/internal/cli"
	"pulseboard/internal/config"
	"pulseboard/internal/db"
	"pulseboard/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if len(os.Args) > 1 {
		if err := runSubcommand(cfg, os.Args[1], os.Args[2:]); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	runServer(cfg)
}

func runSubcommand(cfg config.Config, name string, args []string) error {
	switch name {
	case "adduser":
		flags := flag.NewFlagSet("adduser", flag.ExitOnError)
		email := flags.String("email", "", "email address for the new user")
		password := flags.String("password", "", "password (omit to be prompted)")
		fullName := flags.String("full-name", "", "full name")
		nickname := flags.String("nickname", "", "nickname")
		role := flags.String("role", "viewer", "role: viewer or admin")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return cli.RunAddUserCommand(cfg.DBPath, *email, *password, *fullName, *nickname, *role)

	case "resetpw":
		flags := flag.NewFlagSet("resetpw", flag.ExitOnError)
		email := flags.String("email", "", "email address of the user to reset")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return cli.RunResetPasswordCommand(cfg.DBPath, *email)

	case "seed":
		flags := flag.NewFlagSet("seed", flag.ExitOnError)
		subjects := flags.Int("subjects", 25, "number of demo subjects")
		days := flags.Int("days", 30, "number of trailing days to fill")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return cli.RunSeedCommand(cfg.DBPath, *subjects, *days)

	default:
		return fmt.Errorf("unknown command %q (expected adduser, resetpw, or seed)", name)
	}
}

func runServer(cfg config.Config) {
	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	repositories := db.NewRepositories(database)
	accounts := services.NewAccountService(repositories.Accounts)
	if cfg.PasswordDenylistPath != "" {
		denylist, err := services.LoadPasswordDenylistFile(cfg.PasswordDenylistPath)
		if err != nil {
			log.Fatalf("password denylist load failed: %v", err)
		}
		accounts.SetPasswordDenylist(denylist)
	}
	settings := services.NewSettingsService(repositories.Settings)
	status := services.NewStatusService(repositories.Ingestion, repositories.Vitals, repositories.Settings, location)

	handler := api.NewHandler(accounts, settings, status, []byte(cfg.SecretKey), location)

	app := fiber.New(fiber.Config{
		AppName:               "pulseboard",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("pulseboard listening on http://%s (db: %s, tz: %s)", cfg.ListenAddr(), cfg.DBPath, location.String())
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
