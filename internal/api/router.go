// internal/api/router.go
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medassist-workers/internal/app"
	"medassist-workers/internal/common/logger"
)

type Handler struct {
	svc    *app.Services
	logger logger.Logger
}

// NewRouter mounts the JSON API under /api plus /health, /ready and /metrics.
func NewRouter(svc *app.Services, log logger.Logger) http.Handler {
	h := &Handler{svc: svc, logger: log.With(map[string]interface{}{"component": "api"})}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Get("/ready", h.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/symptoms", func(r chi.Router) {
			r.Post("/analyze", h.analyzeSymptoms)
			r.Post("/emergency-check", h.checkEmergency)
		})

		r.Get("/medicines/{category}", h.medicineRecommendations)

		r.Route("/pharmacy", func(r chi.Router) {
			r.Get("/", h.listPharmacies)
			r.Get("/search", h.searchMedicine)
			r.Get("/prescription", h.checkPrescription)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.placeOrder)
			r.Get("/{orderId}/tracking", h.trackOrder)
		})

		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.queryRecords)
			r.Post("/", h.addRecord)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", h.listReminders)
			r.Post("/", h.setReminder)
			r.Delete("/{id}", h.deactivateReminder)
		})
	})

	return r
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.svc.Ready(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
