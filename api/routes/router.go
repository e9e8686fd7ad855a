package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brewdeck/brewdeck-backend/api/controllers"
	assistantcontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/assistant"
	cartcontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/cart"
	discountcontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/discounts"
	feedbackcontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/feedback"
	kitchencontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/kitchen"
	menucontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/menu"
	ordercontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/orders"
	qrcodecontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/qrcode"
	reportcontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/reports"
	sessioncontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/session"
	tutorialcontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/tutorials"
	usercontrollers "github.com/brewdeck/brewdeck-backend/api/controllers/users"
	"github.com/brewdeck/brewdeck-backend/api/middleware"
	"github.com/brewdeck/brewdeck-backend/internal/cart"
	"github.com/brewdeck/brewdeck-backend/internal/discounts"
	"github.com/brewdeck/brewdeck-backend/internal/feedback"
	"github.com/brewdeck/brewdeck-backend/internal/kitchen"
	"github.com/brewdeck/brewdeck-backend/internal/menu"
	"github.com/brewdeck/brewdeck-backend/internal/orders"
	"github.com/brewdeck/brewdeck-backend/internal/realtime"
	"github.com/brewdeck/brewdeck-backend/internal/reports"
	"github.com/brewdeck/brewdeck-backend/internal/tutorials"
	"github.com/brewdeck/brewdeck-backend/internal/users"
	"github.com/brewdeck/brewdeck-backend/pkg/assistant"
	"github.com/brewdeck/brewdeck-backend/pkg/auth/session"
	"github.com/brewdeck/brewdeck-backend/pkg/config"
	"github.com/brewdeck/brewdeck-backend/pkg/db"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
	"github.com/brewdeck/brewdeck-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// NewRouter wires every HTTP surface: health probes, the public ordering
// routes, the authed customer routes, and the staff subtree.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager sessionManager,
	menuService menu.Service,
	ordersService orders.Service,
	kitchenService kitchen.Service,
	cartService cart.Service,
	usersService users.Service,
	discountsService discounts.Service,
	feedbackService feedback.Service,
	tutorialsService tutorials.Service,
	reportsService reports.Service,
	assistantClient *assistant.Client,
	hub *realtime.Hub,
	bridge *realtime.Bridge,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginNameLimit,
	)
	feedbackPolicy := middleware.NewAuthRateLimitPolicy(
		"feedback",
		cfg.RateLimit.FeedbackWindow,
		cfg.RateLimit.FeedbackIPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbP, redisClient, logg))
	})

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Post("/", sessioncontrollers.Start(cfg.JWT, sessionManager, logg))
		r.Post("/refresh", sessioncontrollers.Refresh(cfg.JWT, sessionManager, logg))
		r.Post("/logout", sessioncontrollers.Logout(cfg.JWT, sessionManager, logg))
	})

	// The public catalog reads power the menu screen before any session
	// exists.
	r.Get("/api/v1/menu", menucontrollers.GetSnapshot(menuService, logg))
	r.Get("/api/v1/tutorials", tutorialcontrollers.List(tutorialsService, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/v1/users", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", usercontrollers.Login(usersService, cfg.JWT, sessionManager, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/register", usercontrollers.Register(usersService, cfg.JWT, sessionManager, logg))
		})
		r.With(middleware.AuthRateLimit(feedbackPolicy, redisClient, logg)).Post("/v1/feedback", feedbackcontrollers.Submit(feedbackService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

			r.Route("/v1/users/me", func(r chi.Router) {
				r.Get("/", usercontrollers.Me(usersService, logg))
				r.Post("/favourites", usercontrollers.SaveFavourite(usersService, logg))
				r.Delete("/favourites/{itemId}", usercontrollers.RemoveFavourite(usersService, logg))
				r.Post("/tutorial-complete", usercontrollers.CompleteTutorial(usersService, logg))
			})

			r.Route("/v1/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.Get(cartService, logg))
				r.Delete("/", cartcontrollers.Clear(cartService, logg))
				r.Post("/lines", cartcontrollers.AddLine(cartService, logg))
				r.Put("/lines/{lineId}", cartcontrollers.UpdateLine(cartService, logg))
				r.Delete("/lines/{lineId}", cartcontrollers.RemoveLine(cartService, logg))
				r.Post("/checkout", cartcontrollers.Checkout(cartService, ordersService, logg))
			})

			r.Route("/v1/orders", func(r chi.Router) {
				r.Post("/", ordercontrollers.Place(ordersService, logg))
				r.Get("/{orderId}", ordercontrollers.Get(ordersService, logg))
			})

			r.Post("/v1/discounts/apply", discountcontrollers.ApplyCode(discountsService, logg))

			if assistantClient != nil {
				r.Post("/v1/assistant", assistantcontrollers.Ask(assistantClient, logg))
			}

			r.Route("/admin/v1", func(r chi.Router) {
				r.Use(middleware.RequireStaff(logg))

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", ordercontrollers.History(ordersService, logg))
					r.Get("/feed", ordercontrollers.Feed(ordersService, logg))
					r.Post("/{orderId}/verify-payment", ordercontrollers.VerifyPayment(ordersService, logg))
					r.Post("/{orderId}/complete", ordercontrollers.Complete(ordersService, logg))
					r.Post("/{orderId}/requeue", ordercontrollers.Requeue(ordersService, logg))
					r.Post("/{orderId}/items/{itemId}/toggle", ordercontrollers.ToggleItem(ordersService, logg))
				})

				r.Route("/kitchen", func(r chi.Router) {
					r.Get("/board", kitchencontrollers.Board(kitchenService, logg))
					r.Get("/events", kitchencontrollers.Events(hub, bridge, logg))
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin(logg))

					r.Put("/menu", menucontrollers.ReplaceSnapshot(menuService, logg))
					r.Route("/menu/drinks", func(r chi.Router) {
						r.Post("/", menucontrollers.CreateDrink(menuService, logg))
						r.Put("/{drinkId}", menucontrollers.UpdateDrink(menuService, logg))
						r.Delete("/{drinkId}", menucontrollers.DeleteDrink(menuService, logg))
					})
					r.Route("/menu/categories", func(r chi.Router) {
						r.Post("/", menucontrollers.CreateCategory(menuService, logg))
						r.Put("/{categoryId}", menucontrollers.UpdateCategory(menuService, logg))
						r.Delete("/{categoryId}", menucontrollers.DeleteCategory(menuService, logg))
					})
					r.Route("/menu/modifier-groups", func(r chi.Router) {
						r.Post("/", menucontrollers.CreateModifierGroup(menuService, logg))
						r.Put("/{groupId}", menucontrollers.UpdateModifierGroup(menuService, logg))
						r.Delete("/{groupId}", menucontrollers.DeleteModifierGroup(menuService, logg))
					})

					r.Route("/discounts", func(r chi.Router) {
						r.Get("/", discountcontrollers.List(discountsService, logg))
						r.Post("/", discountcontrollers.Create(discountsService, logg))
						r.Put("/{discountId}", discountcontrollers.Update(discountsService, logg))
						r.Delete("/{discountId}", discountcontrollers.Delete(discountsService, logg))
					})

					r.Route("/users", func(r chi.Router) {
						r.Get("/", usercontrollers.List(usersService, logg))
						r.Patch("/{userId}/role", usercontrollers.UpdateRole(usersService, logg))
						r.Delete("/{userId}", usercontrollers.Delete(usersService, logg))
					})

					r.Get("/feedback", feedbackcontrollers.List(feedbackService, logg))
					r.Put("/tutorials", tutorialcontrollers.Replace(tutorialsService, logg))
					r.Get("/reports/summary", reportcontrollers.Summary(reportsService, logg))
					r.Get("/qrcode", qrcodecontrollers.Image(cfg.QR, logg))
				})
			})
		})
	})

	return r
}
