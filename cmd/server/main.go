package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"itgirls-web/internal/api"
	"itgirls-web/internal/apiclient"
	"itgirls-web/internal/backend"
	"itgirls-web/internal/carousel"
	"itgirls-web/internal/catalog"
	"itgirls-web/internal/config"
	"itgirls-web/internal/events"
	"itgirls-web/internal/fixtures"
	"itgirls-web/internal/inbox"
	"itgirls-web/internal/normalize"
	"itgirls-web/internal/s3"
	"itgirls-web/internal/service"
	"itgirls-web/internal/session"
	"itgirls-web/internal/tracing"
	_ "itgirls-web/migrations"
)

const serviceName = "web-service"

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler(serviceName)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg.DatabaseURL)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.InitTracerProvider(ctx, serviceName)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	persistent, purge := persistentStore(cfg)
	transient := transientStore(cfg)
	sessions := session.NewManager(persistent, transient, cfg.RememberTTL, cfg.TabSessionTTL)

	publisher := eventPublisher(cfg)

	client := backend.NewClient(apiclient.New(cfg.APIBase, cfg.APITimeout,
		apiclient.WithTokenSource(session.TokenFromContext),
	))

	set := fixtures.MustLoad()
	inboxes := inbox.NewRegistry(client, publisher)
	authService := service.NewAuthService(client, sessions, publisher, inboxes)

	community := carousel.NewLoop(0)
	go community.Run(ctx, cfg.CommunityInterval, nil)

	go housekeeping(ctx, purge, inboxes, cfg.TabSessionTTL, time.Hour)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many request, please try again later.",
			})
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(api.VisitorMiddleware(cfg.CookieSecure))
	app.Use(api.SessionMiddleware(authService))
	api.SetupRoutes(app, api.Handlers{
		Auth:      api.NewAuthHandler(authService, cvPresigner(ctx, cfg), cfg.IdentityProvider, cfg.CookieSecure),
		Public:    api.NewPublicHandler(client, catalog.NewSearcher(client), set, normalize.Blog{PublicURL: cfg.PublicURL}, community, publisher),
		Dashboard: api.NewDashboardHandler(client, inboxes, set.Expert, publisher),
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Listening %s on port %s", serviceName, cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal(err)
	}
}

// persistentStore returns the Postgres store when DATABASE_URL is set,
// along with its purge hook.
func persistentStore(cfg *config.Config) (session.Store, *session.PostgresStore) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, remembered sessions are kept in memory.")
		return session.NewMemoryStore(), nil
	}

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")

	store := session.NewPostgresStore(db)
	return store, store
}

func transientStore(cfg *config.Config) session.Store {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, tab sessions are kept in memory.")
		return session.NewMemoryStore()
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Successfully connected to Redis.")
	return session.NewRedisStore(rdb)
}

func eventPublisher(cfg *config.Config) events.EventPublisher {
	if cfg.NatsURL == "" {
		log.Println("NATS_URL not set, domain events are not published.")
		return events.NoopPublisher{}
	}

	publisher, _, err := events.NewNatsPublisher(cfg.NatsURL)
	if err != nil {
		log.Printf("WARNING: Failed to connect to NATS: %v", err)
		return events.NoopPublisher{}
	}
	log.Println("Successfully connected to NATS.")
	return publisher
}

func cvPresigner(ctx context.Context, cfg *config.Config) s3.CVPresigner {
	if !cfg.S3.Enabled() {
		log.Println("S3 not configured, CV uploads are disabled.")
		return nil
	}

	presigner, err := s3.NewFilePresigner(ctx, cfg.S3)
	if err != nil {
		log.Printf("WARNING: Failed to configure S3 presigner: %v", err)
		return nil
	}
	return presigner
}

// housekeeping purges expired remembered sessions, when they live in
// Postgres, and evicts inboxes idle for longer than idle.
func housekeeping(ctx context.Context, store *session.PostgresStore, inboxes *inbox.Registry, idle, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := inboxes.Evict(idle); n > 0 {
				log.Printf("Evicted %d idle inboxes", n)
			}
			if store == nil {
				continue
			}
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Printf("Failed to purge expired sessions: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Purged %d expired sessions", n)
			}
		}
	}
}

func handleMigrations(dbURL string) {
	fmt.Println("Running database migrations...")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required to run migrations")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
