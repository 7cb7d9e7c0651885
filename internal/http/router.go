package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/OgheneDev/technest-frontend-sub001/internal/gate"
	"github.com/OgheneDev/technest-frontend-sub001/internal/session"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxRequestBodySize int64
}

// NewRouter assembles the gateway surface: gated page routes plus the /api
// endpoints the client script talks to.
func NewRouter(
	cfg RouterConfig,
	sessions *session.Manager,
	auth *AuthHandler,
	cart *CartHandler,
	wishlist *WishlistHandler,
	products *ProductHandler,
	checkout *CheckoutHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	r.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(SessionToken(sessions))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)
			r.Post("/forgotpassword", auth.ForgotPassword)
			r.Put("/resetpassword/{resetToken}", auth.ResetPassword)
			r.Get("/me", auth.Me)
			r.Put("/updatepassword", auth.UpdatePassword)
			r.Put("/updatedetails", auth.UpdateDetails)
			r.Delete("/deleteaccount", auth.DeleteAccount)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.GetCart)
			r.Post("/", cart.AddItem)
			r.Delete("/", cart.ClearCart)
			r.Get("/count", cart.GetCount)
			r.Put("/{productID}", cart.UpdateQuantity)
			r.Delete("/{productID}", cart.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlist.GetWishlist)
			r.Post("/", wishlist.AddItem)
			r.Delete("/{productID}", wishlist.RemoveItem)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/{productID}", products.Get)
			r.Get("/{productID}/reviews", products.ListReviews)
			r.Post("/{productID}/reviews", products.PostReview)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/initialize", checkout.Initialize)
			r.Get("/verify/{reference}", checkout.Verify)
			r.Get("/callback", checkout.Callback)
			r.Get("/progress", checkout.GetProgress)
			r.Delete("/progress", checkout.ResetProgress)
			r.Get("/shipping", checkout.GetShipping)
			r.Put("/shipping", checkout.SaveShipping)
			r.Get("/history", checkout.History)
			r.Get("/{checkoutID}", checkout.GetByID)
			r.Put("/{checkoutID}/cancel", checkout.Cancel)
		})
	})

	// Page routes go through the route gate; API and assets do not.
	r.Group(func(r chi.Router) {
		r.Use(gate.Middleware)
		for path := range pages {
			r.Get(path, PageHandler)
		}
	})

	return r
}
