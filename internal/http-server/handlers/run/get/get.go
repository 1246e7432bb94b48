package get

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/YusovID/order-faker/internal/http-server/view"
	"github.com/YusovID/order-faker/internal/models"
	"github.com/YusovID/order-faker/internal/report"
	"github.com/YusovID/order-faker/internal/runs"
	resp "github.com/YusovID/order-faker/lib/api/response"
	"github.com/YusovID/order-faker/lib/logger/sl"
)

type Run struct {
	ID           string           `json:"id"`
	Domain       string           `json:"domain"`
	StartedAt    time.Time        `json:"started_at"`
	Interval     string           `json:"interval"`
	ProductName  string           `json:"product_name"`
	ProductPrice string           `json:"product_price"`
	Summary      report.Summary   `json:"summary"`
	Message      string           `json:"message"`
	Lines        []string         `json:"lines"`
	Outcomes     []models.Outcome `json:"outcomes"`
}

type Response struct {
	resp.Response
	Run *Run `json:"run,omitempty"`
}

type RunGetter interface {
	Get(id string) (*runs.Run, error)
}

func New(log *slog.Logger, getter RunGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const fn = "handlers.run.get.New"

		log := log.With(
			slog.String("fn", fn),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		run, err := getter.Get(id)
		if errors.Is(err, runs.ErrNotFound) {
			log.Info("run not found", slog.String("run_id", id))

			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, resp.Error("run not found"))

			return
		}
		if err != nil {
			log.Error("failed to get run", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("internal error"))

			return
		}

		summary := run.Log.Summary()
		outcomes := run.Log.Outcomes()

		if render.GetAcceptedContentType(r) == render.ContentTypeHTML {
			data := view.RunData{
				ID:        run.ID,
				Domain:    run.Domain,
				State:     string(summary.State),
				Running:   summary.State == report.StateRunning || summary.State == report.StateIdle,
				Requested: run.Params.Count,
				Interval:  run.Params.Interval.String(),
				Product:   run.Params.ProductName,
				Message:   summary.Message(),
			}
			for _, o := range outcomes {
				data.Lines = append(data.Lines, view.Line{OK: o.Success, Text: o.StatusLine()})
			}

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if err := view.Run(w, data); err != nil {
				log.Error("failed to render run", sl.Err(err))
			}

			return
		}

		lines := make([]string, 0, len(outcomes))
		for _, o := range outcomes {
			lines = append(lines, o.StatusLine())
		}

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Run: &Run{
				ID:           run.ID,
				Domain:       run.Domain,
				StartedAt:    run.StartedAt,
				Interval:     run.Params.Interval.String(),
				ProductName:  run.Params.ProductName,
				ProductPrice: run.Params.ProductPrice.StringFixed(2),
				Summary:      summary,
				Message:      summary.Message(),
				Lines:        lines,
				Outcomes:     outcomes,
			},
		})
	}
}
