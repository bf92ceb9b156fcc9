package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/jtbakery/storefront-backend/api/controllers"
	"github.com/jtbakery/storefront-backend/api/routes"
	"github.com/jtbakery/storefront-backend/internal/accounts"
	"github.com/jtbakery/storefront-backend/internal/cart"
	"github.com/jtbakery/storefront-backend/internal/checkout"
	"github.com/jtbakery/storefront-backend/internal/chat"
	"github.com/jtbakery/storefront-backend/internal/newsletter"
	"github.com/jtbakery/storefront-backend/internal/payments"
	stripewebhook "github.com/jtbakery/storefront-backend/internal/webhooks/stripe"
	"github.com/jtbakery/storefront-backend/pkg/config"
	"github.com/jtbakery/storefront-backend/pkg/db"
	"github.com/jtbakery/storefront-backend/pkg/logger"
	"github.com/jtbakery/storefront-backend/pkg/metrics"
	"github.com/jtbakery/storefront-backend/pkg/redis"
	pkgstripe "github.com/jtbakery/storefront-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := db.MaybeMigrate(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := pkgstripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to initialize stripe", err)
		os.Exit(1)
	}

	snapshotStore, err := cart.NewSnapshotStore(redisClient, cfg.Cart.SnapshotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart snapshot store", err)
		os.Exit(1)
	}
	flatFee, err := decimal.NewFromString(cfg.Cart.ShippingFlatFee)
	if err != nil {
		logg.Error(context.Background(), "invalid shipping flat fee", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(snapshotStore, flatFee, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		Client:         payments.NewStripeClient(stripeClient),
		DefaultPriceID: cfg.Stripe.SubscriptionPriceID,
		SiteURL:        cfg.App.BaseURL,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartService, paymentsService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	accountsService, err := accounts.NewService(accounts.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts service", err)
		os.Exit(1)
	}

	webhookGuard, err := stripewebhook.NewGuard(redisClient, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook guard", err)
		os.Exit(1)
	}
	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		Accounts: accountsService,
		Guard:    webhookGuard,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook service", err)
		os.Exit(1)
	}

	chatService, err := chat.NewService(cfg.Chat, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	newsletterStore, err := newsletter.NewStore(cfg.Newsletter.ListPath)
	if err != nil {
		logg.Error(context.Background(), "failed to open newsletter store", err)
		os.Exit(1)
	}
	newsletterService, err := newsletter.NewService(
		newsletterStore,
		newsletter.NewSMTPMailer(cfg.SMTP, cfg.Newsletter.NotifyTo),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"stripe_env": stripeClient.Environment(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			Metrics:  httpMetrics,
			Gatherer: registry,
			ReadyDeps: map[string]controllers.Pinger{
				"postgres": dbClient,
				"redis":    redisClient,
			},
			Cart:       cartService,
			Checkout:   checkoutService,
			Payments:   paymentsService,
			Accounts:   accountsService,
			Chat:       chatService,
			Newsletter: newsletterService,
			Webhooks:   webhookService,
			Stripe:     stripeClient,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
