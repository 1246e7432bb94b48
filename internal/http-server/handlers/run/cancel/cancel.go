package cancel

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/YusovID/order-faker/internal/runs"
	resp "github.com/YusovID/order-faker/lib/api/response"
	"github.com/YusovID/order-faker/lib/logger/sl"
)

type RunCanceller interface {
	Cancel(id string) error
}

// New отменяет запуск. С redirect клиент возвращается на страницу
// запуска: так работает кнопка остановки в HTML.
func New(log *slog.Logger, canceller RunCanceller, redirect bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const fn = "handlers.run.cancel.New"

		log := log.With(
			slog.String("fn", fn),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		err := canceller.Cancel(id)
		if errors.Is(err, runs.ErrNotFound) {
			log.Info("run not found", slog.String("run_id", id))

			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, resp.Error("run not found"))

			return
		}
		if err != nil {
			log.Error("failed to cancel run", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("internal error"))

			return
		}

		log.Info("run cancelled", slog.String("run_id", id))

		if redirect {
			http.Redirect(w, r, "/runs/"+id, http.StatusSeeOther)
			return
		}

		render.JSON(w, r, resp.OK())
	}
}
