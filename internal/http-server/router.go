package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/YusovID/order-faker/internal/config"
	"github.com/YusovID/order-faker/internal/http-server/handlers/form"
	"github.com/YusovID/order-faker/internal/http-server/handlers/run/cancel"
	"github.com/YusovID/order-faker/internal/http-server/handlers/run/get"
	"github.com/YusovID/order-faker/internal/http-server/handlers/run/start"
	mwLogger "github.com/YusovID/order-faker/internal/http-server/middleware/logger"
	resp "github.com/YusovID/order-faker/lib/api/response"
)

type Registry interface {
	start.RunStarter
	get.RunGetter
	cancel.RunCanceller
}

func NewRouter(log *slog.Logger, defaults config.Defaults, registry Registry) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)

	router.Get("/", form.New(log, defaults, registry))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, resp.OK())
	})

	router.Route("/runs", func(r chi.Router) {
		r.Post("/", start.New(log, defaults, registry))
		r.Get("/{id}", get.New(log, registry))
		r.Delete("/{id}", cancel.New(log, registry, false))
		r.Post("/{id}/cancel", cancel.New(log, registry, true))
	})

	return router
}
