package router

import (
	"net/http"

	"shoply/internal/handler"
	"shoply/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	// Health check endpoint (APIKeyAuth skips it)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.GetAll)
		r.Get("/products/{productID}", productHandler.GetByID)

		r.Route("/cart", func(r chi.Router) {
			r.Post("/add", cartHandler.AddItem)
			r.Get("/items", cartHandler.ListItems)
			r.Post("/calculate-total", cartHandler.CalculateTotal)
			r.Put("/{itemID}", cartHandler.UpdateItem)
			r.Delete("/{itemID}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.Clear)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/place", orderHandler.Place)
			r.Get("/", orderHandler.List)
			r.Get("/{orderID}", orderHandler.GetByID)
			r.Put("/payment/{orderID}", orderHandler.SettlePayment)
		})
	})

	return r
}
