package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftscape-studio/storefront-core/internal/api/handlers"
	"github.com/giftscape-studio/storefront-core/internal/api/middleware"
	"github.com/giftscape-studio/storefront-core/internal/catalog"
	"github.com/giftscape-studio/storefront-core/internal/config"
	"github.com/giftscape-studio/storefront-core/internal/health"
	"github.com/giftscape-studio/storefront-core/internal/metrics"
	repository "github.com/giftscape-studio/storefront-core/internal/repositories"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/storage"
	"github.com/giftscape-studio/storefront-core/internal/tracing"
	"github.com/giftscape-studio/storefront-core/pkg/gemini"
	"github.com/giftscape-studio/storefront-core/pkg/sendGrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	if cfg.Telemetry.Enabled {

		shutdownTracing, err := tracing.Init(context.Background(), "storefront-core", cfg.Telemetry.ExporterEndpoint)
		if err != nil {
			slog.Error("❌ Error initializing tracing", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdownTracing(shutdownCtx); err != nil {
				slog.Warn("⚠️ Error flushing traces", slog.String("error", err.Error()))
			}
		}()
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := storage.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	store := storage.NewRedisStore(redisClient)

	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// External collaborators
	geminiClient := gemini.NewClient(&cfg.Gemini)
	emailService := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Services
	sessionService := services.NewSessionService(store, cfg.Security.JWTKey, logger)
	cartService := services.NewCartService(logger)
	wishlistService := services.NewWishlistService(store, logger)
	rewardService := services.NewRewardService(store, sessionService, cfg.Reward.PollInterval, logger)
	referralService := services.NewReferralService(logger)
	productService := services.NewProductService(catalog.Default(), geminiClient, store, logger)
	checkoutService := services.NewCheckoutService(cartService, rewardService, referralService,
		emailService, repos.Orders, cfg.Checkout, logger)
	orderService := services.NewOrderService(repos.Orders, logger)
	profileService := services.NewProfileService(store, logger)

	// Balance watcher, runs until shutdown
	watcherCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()

	go rewardService.Start(watcherCtx)

	// Demo fixtures outside production
	if cfg.Env != "production" {
		if err := repos.Orders.SeedDemoOrders(context.Background(), catalog.DemoOrders()); err != nil {
			slog.Warn("⚠️ Failed to seed demo orders", slog.String("error", err.Error()))
		}

		if payload, err := json.Marshal(catalog.DemoAddresses()); err == nil {
			if err := store.Set(context.Background(), storage.AddressBookKey("demo@giftscape.studio"), string(payload)); err != nil {
				slog.Warn("⚠️ Failed to seed the demo address book", slog.String("error", err.Error()))
			}
		}
	}

	// Handlers
	sessionHandler := handlers.NewSessionHandler(sessionService, referralService)
	productHandler := handlers.NewProductHandler(productService, catalog.Strings())
	cartHandler := handlers.NewCartHandler(cartService, productService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService, productService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	customizeHandler := handlers.NewCustomizeHandler(geminiClient, productService, cartService, wishlistService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	profileHandler := handlers.NewProfileHandler(profileService)

	sessionMiddleware := middleware.NewSessionMiddleware(sessionService)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating the health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/users/register", sessionHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", sessionHandler.Login())
	routerMux.HandleFunc("POST /api/v1/users/logout", sessionHandler.Logout())
	routerMux.HandleFunc("GET /api/v1/users/me", sessionHandler.Me())

	routerMux.HandleFunc("GET /api/v1/products", productHandler.List())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.Get())
	routerMux.HandleFunc("GET /api/v1/products/{id}/description", productHandler.Description())
	routerMux.HandleFunc("GET /api/v1/products/{id}/reviews", productHandler.Reviews())
	routerMux.HandleFunc("POST /api/v1/products/{id}/reviews", productHandler.AddReview())
	routerMux.HandleFunc("GET /api/v1/categories", productHandler.Categories())

	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.Get())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{itemId}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{itemId}", cartHandler.RemoveItem())

	routerMux.HandleFunc("GET /api/v1/wishlist", wishlistHandler.List())
	routerMux.HandleFunc("POST /api/v1/wishlist", wishlistHandler.Add())
	routerMux.HandleFunc("DELETE /api/v1/wishlist/{itemId}", wishlistHandler.Remove())

	routerMux.HandleFunc("GET /api/v1/rewards", rewardHandler.Balance())

	routerMux.HandleFunc("POST /api/v1/customize/image", customizeHandler.Upload())
	routerMux.HandleFunc("GET /api/v1/customize", customizeHandler.State())
	routerMux.HandleFunc("PUT /api/v1/customize/filters", customizeHandler.SetFilters())
	routerMux.HandleFunc("PUT /api/v1/customize/text", customizeHandler.SetText())
	routerMux.HandleFunc("POST /api/v1/customize/restore", customizeHandler.Restore())
	routerMux.HandleFunc("DELETE /api/v1/customize", customizeHandler.Reset())
	routerMux.HandleFunc("POST /api/v1/customize/cart", customizeHandler.AddToCart())
	routerMux.HandleFunc("POST /api/v1/customize/wishlist", customizeHandler.SaveToWishlist())
	routerMux.HandleFunc("GET /api/v1/customize/wishlist", customizeHandler.InWishlist())
	routerMux.HandleFunc("POST /api/v1/customize/wishlist/{itemId}/edit", customizeHandler.EditWishlistItem())

	routerMux.HandleFunc("GET /api/v1/checkout/quote", checkoutHandler.Quote())
	routerMux.HandleFunc("POST /api/v1/checkout/discount", checkoutHandler.ApplyDiscount())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Begin())
	routerMux.HandleFunc("POST /api/v1/checkout/confirm", checkoutHandler.Confirm())
	routerMux.HandleFunc("DELETE /api/v1/checkout/{challengeId}", checkoutHandler.Abandon())

	routerMux.HandleFunc("GET /api/v1/orders", orderHandler.List())
	routerMux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.Get())
	routerMux.HandleFunc("GET /api/v1/orders/{id}/track", orderHandler.Track())
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", orderHandler.UpdateStatus())
	routerMux.HandleFunc("POST /api/v1/orders/{id}/cancel", orderHandler.Cancel())

	routerMux.HandleFunc("GET /api/v1/profile/addresses", profileHandler.Addresses())
	routerMux.HandleFunc("POST /api/v1/profile/addresses", profileHandler.AddAddress())
	routerMux.HandleFunc("PATCH /api/v1/profile/addresses/{addressId}/default", profileHandler.SetDefaultAddress())
	routerMux.HandleFunc("DELETE /api/v1/profile/addresses/{addressId}", profileHandler.RemoveAddress())
	routerMux.HandleFunc("GET /api/v1/profile/image", profileHandler.ProfileImage())
	routerMux.HandleFunc("PUT /api/v1/profile/image", profileHandler.SetProfileImage())
	routerMux.HandleFunc("DELETE /api/v1/profile/image", profileHandler.RemoveProfileImage())

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /healthz", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.ReferralCapture(referralService)(handler)
	handler = sessionMiddleware.Attach(handler)
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)

	if cfg.Telemetry.Enabled {
		handler = otelhttp.NewHandler(handler, "storefront-core")
	}

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	stopWatcher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
