package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/luxehairplug/bookings/internal/catalog"
	"github.com/luxehairplug/bookings/internal/http/response"
	"github.com/luxehairplug/bookings/internal/payments"
	"github.com/luxehairplug/bookings/internal/webhooks"
)

type Handlers struct {
	catalog   *catalog.Catalog
	payments  payments.Client
	webhooks  *webhooks.Handler
	staticDir string
}

func New(cat *catalog.Catalog, pay payments.Client, wh *webhooks.Handler, staticDir string) *Handlers {
	return &Handlers{
		catalog:   cat,
		payments:  pay,
		webhooks:  wh,
		staticDir: staticDir,
	}
}

// Routes is the routing table. Body access is explicit per route: the
// webhook route reads the raw bytes for signature verification, every other
// POST route decodes JSON.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.Health)

	r.Post("/create-payment-intent", h.CreatePaymentIntent) // JSON body
	r.Post("/webhook", h.Webhook)                           // raw body, no JSON parsing
	r.Get("/booking/{id}", h.GetBooking)

	r.Get("/", h.Index)
	r.Handle("/*", http.FileServer(http.Dir(h.staticDir)))

	return r
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
