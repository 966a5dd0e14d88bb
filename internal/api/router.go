package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vantis/storefront-state/internal/api/handlers"
	"github.com/vantis/storefront-state/internal/cart"
)

// NewRouter builds the HTTP router hosting the state engine.
func NewRouter(sessions *cart.Store, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	h := handlers.NewStateHandler(sessions, logger)

	// Stateless transforms, one endpoint per engine operation.
	r.Post("/pricing/preview", h.PreviewDiscount)
	r.Post("/checkout/parse", h.ParseCheckout)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/products/view", h.ApplyProductsView)
		r.Post("/selection/toggle", h.ToggleSelection)
		r.Post("/options/payload", h.BuildOptionPayload)
		r.Post("/options/validate", h.ValidateOptionValues)
	})

	// Optimistic cart sessions.
	r.Route("/carts/{cartID}", func(r chi.Router) {
		r.Put("/", h.ReplaceCart)
		r.Get("/", h.GetCart)
		r.Delete("/", h.DeleteCart)
		r.Post("/items/{itemID}", h.UpdateItemQuantity)
		r.Delete("/items/{itemID}", h.RemoveItem)
		r.Post("/confirm", h.ConfirmMutation)
		r.Post("/fail", h.FailMutation)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
