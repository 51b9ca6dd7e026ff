package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/partshub/autoparts-backend/internal/config"
	"github.com/partshub/autoparts-backend/internal/database"
	"github.com/partshub/autoparts-backend/internal/events"
	"github.com/partshub/autoparts-backend/internal/modules/auth"
	"github.com/partshub/autoparts-backend/internal/modules/cart"
	"github.com/partshub/autoparts-backend/internal/modules/catalog"
	"github.com/partshub/autoparts-backend/internal/modules/customer"
	"github.com/partshub/autoparts-backend/internal/modules/directory"
	"github.com/partshub/autoparts-backend/internal/modules/inventory"
	"github.com/partshub/autoparts-backend/internal/modules/order"
	"github.com/partshub/autoparts-backend/internal/modules/purchase"
	"github.com/partshub/autoparts-backend/internal/modules/reports"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "autoparts-api").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load configuration")
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()
	logger.Info().Msg("connected to database")

	// ── Services ────────────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)

	storeRepo := directory.NewStorePostgresRepository(db)
	employeeRepo := directory.NewEmployeePostgresRepository(db)
	directoryService := directory.NewService(storeRepo, employeeRepo, cfg.Retail.DefaultStoreID)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)

	authService := auth.NewService(customerRepo, employeeRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	cartStore := newCartStore(cfg, logger)
	cartService := cart.NewService(cartStore, catalogService)

	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo)

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, catalogService, directoryService, cartService, publisher)

	purchaseRepo := purchase.NewPostgresRepository(db)
	purchaseService := purchase.NewService(purchaseRepo, catalogService, directoryService)

	reportsRepo := reports.NewPostgresRepository(db)
	reportsService := reports.NewService(reportsRepo, directoryService)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(auth.Middleware(authService))

	catalog.NewHandler(catalogService).RegisterRoutes(router)
	directory.NewHandler(directoryService).RegisterRoutes(router)
	customer.NewHandler(customerService).RegisterRoutes(router)
	auth.NewHandler(authService).RegisterRoutes(router)
	cart.NewHandler(cartService).RegisterRoutes(router)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)
	order.NewHandler(orderService).RegisterRoutes(router)
	purchase.NewHandler(purchaseService).RegisterRoutes(router)
	reports.NewHandler(reportsService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.Info().Str("port", cfg.Server.Port).Msg("api server starting")
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// newCartStore backs carts with Redis, falling back to process memory
// when Redis is unreachable so development setups still work.
func newCartStore(cfg *config.Config, logger zerolog.Logger) cart.Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(client.Context()).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, using in-memory cart store")
		return cart.NewMemoryStore()
	}
	return cart.NewRedisStore(client, cfg.Redis.CartTTL)
}

func newPublisher(cfg *config.Config, logger zerolog.Logger) events.Publisher {
	if cfg.Kafka.Brokers == "" {
		logger.Info().Msg("no kafka brokers configured, order events disabled")
		return events.NewNopPublisher()
	}
	return events.NewKafkaPublisher(strings.Split(cfg.Kafka.Brokers, ","), cfg.Kafka.Topic)
}
