package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-dispatch/internal/http/handlers"
	mw "service-dispatch/internal/http/middleware"
	"service-dispatch/internal/http/middleware/ratelimit"
	"service-dispatch/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and all
// dispatch routes mounted under /delivery.
func New(
	base *handlers.Handlers,
	driver *handlers.DriverHandler,
	delivery *handlers.DeliveryHandler,
	rl *ratelimit.Middleware,
	logger logx.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(mw.Observability(logger))
	if rl != nil {
		r.Use(rl.Handler())
	}

	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/delivery", func(r chi.Router) {
		r.Post("/update-location", delivery.UpdateLocation)
		r.Post("/create", delivery.Create)
		r.Post("/mark-delivered/{driverId}", delivery.MarkDelivered)
		r.Get("/by-driver/{driverId}", delivery.GetByDriver)
		r.Get("/completed-deliveries/{driverId}", delivery.ListCompleted)
		r.Delete("/completed-deliveries/order/{orderId}", delivery.DeleteCompleted)

		r.Get("/drivers", driver.List)
		r.Get("/drivers/status/{status}", driver.ListByStatus)
		r.Put("/drivers/{driverId}/status", driver.UpdateStatus)
		r.Delete("/drivers/{driverId}", driver.Delete)

		// catch-all tracking lookup; keep last so named routes win
		r.Get("/{orderId}", delivery.GetTracking)
	})

	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
