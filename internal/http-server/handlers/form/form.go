package form

import (
	"log/slog"
	"net/http"

	"github.com/YusovID/order-faker/internal/config"
	"github.com/YusovID/order-faker/internal/http-server/view"
	"github.com/YusovID/order-faker/internal/runs"
	"github.com/YusovID/order-faker/lib/logger/sl"
)

type RunLister interface {
	List() []*runs.Run
}

// Data возвращает форму со значениями по умолчанию и списком запусков.
func Data(defaults config.Defaults, lister RunLister) view.FormData {
	data := view.FormData{
		Count:        defaults.Count,
		DelayValue:   defaults.DelayValue,
		DelayUnit:    defaults.DelayUnit,
		ProductName:  defaults.ProductName,
		ProductPrice: defaults.ProductPrice,
	}

	for _, run := range lister.List() {
		data.Runs = append(data.Runs, view.RunRow{
			ID:      run.ID,
			Domain:  run.Domain,
			State:   string(run.Log.State()),
			Message: run.Log.Summary().Message(),
		})
	}

	return data
}

func New(log *slog.Logger, defaults config.Defaults, lister RunLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const fn = "handlers.form.New"

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if err := view.Form(w, Data(defaults, lister)); err != nil {
			log.Error("failed to render form", slog.String("fn", fn), sl.Err(err))
		}
	}
}
