package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jtbakery/storefront-backend/api/controllers"
	cartcontrollers "github.com/jtbakery/storefront-backend/api/controllers/cart"
	webhookcontrollers "github.com/jtbakery/storefront-backend/api/controllers/webhooks"
	"github.com/jtbakery/storefront-backend/api/middleware"
	"github.com/jtbakery/storefront-backend/internal/accounts"
	"github.com/jtbakery/storefront-backend/internal/cart"
	checkoutsvc "github.com/jtbakery/storefront-backend/internal/checkout"
	"github.com/jtbakery/storefront-backend/internal/chat"
	"github.com/jtbakery/storefront-backend/internal/newsletter"
	"github.com/jtbakery/storefront-backend/internal/payments"
	stripewebhook "github.com/jtbakery/storefront-backend/internal/webhooks/stripe"
	"github.com/jtbakery/storefront-backend/pkg/config"
	"github.com/jtbakery/storefront-backend/pkg/logger"
	"github.com/jtbakery/storefront-backend/pkg/metrics"
	pkgstripe "github.com/jtbakery/storefront-backend/pkg/stripe"
)

type RouterParams struct {
	Config     *config.Config
	Logger     *logger.Logger
	Metrics    *metrics.HTTPMetrics
	Gatherer   prometheus.Gatherer
	ReadyDeps  map[string]controllers.Pinger
	Cart       cart.Service
	Checkout   checkoutsvc.Service
	Payments   payments.Service
	Accounts   accounts.Service
	Chat       chat.Service
	Newsletter newsletter.Service
	Webhooks   *stripewebhook.Service
	Stripe     *pkgstripe.Client
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.ReadyDeps))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	// Webhooks authenticate by signature, not by browser session.
	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/stripe", webhookcontrollers.StripeWebhook(p.Webhooks, p.Stripe, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/menu", controllers.CatalogMenu())
		r.Get("/catalog/menu/{slug}", controllers.CatalogCategory(logg))
		r.Get("/catalog/beverages", controllers.CatalogBeverages())
		r.Get("/locations", controllers.Locations())
		r.Get("/locations/{id}", controllers.LocationByID(logg))

		r.Post("/chat", controllers.ChatComplete(p.Chat, p.Config.Chat.MaxBodySize, logg))
		r.Post("/chat/stream", controllers.ChatStream(p.Chat, p.Config.Chat.MaxBodySize, logg))
		r.Post("/newsletter/subscribe", controllers.NewsletterSubscribe(p.Newsletter, logg))
		r.Get("/account", controllers.AccountLookup(p.Accounts, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg, cfg.App.IsProd()))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.Fetch(p.Cart, logg))
				r.Delete("/", cartcontrollers.Clear(p.Cart, logg))
				r.Post("/items", cartcontrollers.AddItem(p.Cart, logg))
				r.Patch("/items/{itemID}", cartcontrollers.UpdateQty(p.Cart, logg))
				r.Delete("/items/{itemID}", cartcontrollers.RemoveItem(p.Cart, logg))
				r.Put("/contact", cartcontrollers.SetContact(p.Cart, logg))
				r.Put("/shipping", cartcontrollers.SetShipping(p.Cart, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.CheckoutState(p.Checkout, logg))
				r.Post("/next", controllers.CheckoutNext(p.Checkout, logg))
				r.Post("/back", controllers.CheckoutBack(p.Checkout, logg))
				r.Post("/goto", controllers.CheckoutGoto(p.Checkout, logg))
				// Upgrade funnel: hosted subscription checkout.
				r.Post("/session", controllers.PaymentSubscriptionCheckout(p.Payments, logg))
			})

			r.Post("/payments/create-intent", controllers.PaymentCreateIntent(p.Payments, logg))
			r.Post("/portal", controllers.PaymentPortal(p.Payments, logg))
		})
	})

	return r
}
