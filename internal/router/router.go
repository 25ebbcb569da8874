package router

import (
	"net/http"

	"beast-tins/internal/handler"
	"beast-tins/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Buyer routes require a bearer token; admin routes require the API key.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	notificationHandler *handler.NotificationHandler,
	apiKey string,
	jwtSecret string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	jwtAuth := middleware.JWTAuth(jwtSecret, logger)
	adminAuth := middleware.APIKeyAuth(apiKey, logger)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public catalogue
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)

	// Buyer routes
	buyer := func(h http.HandlerFunc) http.Handler { return jwtAuth(h) }
	mux.Handle("GET /api/cart", buyer(cartHandler.Get))
	mux.Handle("DELETE /api/cart", buyer(cartHandler.Clear))
	mux.Handle("POST /api/cart/items", buyer(cartHandler.AddItem))
	mux.Handle("PUT /api/cart/items/{id}", buyer(cartHandler.UpdateItem))
	mux.Handle("DELETE /api/cart/items/{id}", buyer(cartHandler.RemoveItem))
	mux.Handle("POST /api/checkout", buyer(orderHandler.PlaceOrder))
	mux.Handle("GET /api/orders", buyer(orderHandler.ListMine))
	mux.Handle("GET /api/orders/{id}", buyer(orderHandler.GetByID))
	mux.Handle("PUT /api/orders/{id}/reference", buyer(orderHandler.AttachReference))

	// Admin back-office
	admin := func(h http.HandlerFunc) http.Handler { return adminAuth(h) }
	mux.Handle("POST /api/admin/products", admin(productHandler.Create))
	mux.Handle("PUT /api/admin/products/{id}", admin(productHandler.Update))
	mux.Handle("DELETE /api/admin/products/{id}", admin(productHandler.Delete))
	mux.Handle("POST /api/admin/products/{id}/image", admin(productHandler.UploadImage))
	mux.Handle("GET /api/admin/orders", admin(orderHandler.ListAll))
	mux.Handle("PUT /api/admin/orders/{id}/status", admin(orderHandler.UpdateStatus))
	mux.Handle("GET /api/admin/stats", admin(orderHandler.Stats))
	mux.Handle("GET /api/admin/notifications", admin(notificationHandler.List))
	mux.Handle("POST /api/admin/notifications/{id}/read", admin(notificationHandler.MarkRead))
	mux.Handle("POST /api/admin/notifications/read-all", admin(notificationHandler.MarkAllRead))
	mux.Handle("GET /api/admin/notifications/stream", admin(notificationHandler.Stream))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
