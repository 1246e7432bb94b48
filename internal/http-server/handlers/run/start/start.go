package start

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/YusovID/order-faker/internal/config"
	"github.com/YusovID/order-faker/internal/http-server/handlers/form"
	"github.com/YusovID/order-faker/internal/http-server/view"
	"github.com/YusovID/order-faker/internal/models"
	"github.com/YusovID/order-faker/internal/runs"
	resp "github.com/YusovID/order-faker/lib/api/response"
	"github.com/YusovID/order-faker/lib/logger/sl"
)

// Request принимается и как urlencoded-форма, и как JSON. Count и DelayValue
// - указатели: отсутствующее поле получает значение по умолчанию, а явный
// ноль проходит через валидацию и отклоняется.
type Request struct {
	ShopDomain   string `json:"shop_domain" form:"shop_domain" validate:"required,hostname_rfc1123"`
	AccessToken  string `json:"access_token" form:"access_token" validate:"required"`
	Count        *int   `json:"count" form:"count" validate:"min=1,max=100"`
	DelayValue   *int   `json:"delay_value" form:"delay_value" validate:"min=1,max=60"`
	DelayUnit    string `json:"delay_unit" form:"delay_unit" validate:"oneof=seconds minutes hours days"`
	ProductName  string `json:"product_name" form:"product_name" validate:"max=255"`
	ProductPrice string `json:"product_price" form:"product_price" validate:"omitempty,numeric"`
}

type Response struct {
	resp.Response
	RunID string `json:"run_id,omitempty"`
}

type RunStarter interface {
	Start(creds models.Credentials, params models.Params) (*runs.Run, error)
	form.RunLister
}

var validate = validator.New()

// applyDefaults заполняет поля, которые JSON-клиент не передал.
func (req *Request) applyDefaults(defaults config.Defaults) {
	req.ShopDomain = models.NormalizeDomain(req.ShopDomain)
	req.AccessToken = strings.TrimSpace(req.AccessToken)

	if req.Count == nil {
		count := defaults.Count
		req.Count = &count
	}
	if req.DelayValue == nil {
		delay := defaults.DelayValue
		req.DelayValue = &delay
	}
	if req.DelayUnit == "" {
		req.DelayUnit = defaults.DelayUnit
	}
	if strings.TrimSpace(req.ProductName) == "" {
		req.ProductName = defaults.ProductName
	}
	if strings.TrimSpace(req.ProductPrice) == "" {
		req.ProductPrice = defaults.ProductPrice
	}
}

func (req Request) Credentials() models.Credentials {
	return models.Credentials{Domain: req.ShopDomain, AccessToken: req.AccessToken}
}

func (req Request) Params() (models.Params, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(req.ProductPrice))
	if err != nil {
		return models.Params{}, errors.New("field ProductPrice is not a number")
	}
	if price.IsNegative() {
		return models.Params{}, errors.New("field ProductPrice must not be negative")
	}

	interval, err := models.Delay(*req.DelayValue, models.DelayUnit(req.DelayUnit))
	if err != nil {
		return models.Params{}, err
	}

	return models.Params{
		Count:        *req.Count,
		Interval:     interval,
		ProductName:  req.ProductName,
		ProductPrice: price,
	}, nil
}

func New(log *slog.Logger, defaults config.Defaults, starter RunStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const fn = "handlers.run.start.New"

		log := log.With(
			slog.String("fn", fn),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		isForm := render.GetRequestContentType(r) == render.ContentTypeForm

		fail := func(status int, req Request, msg string) {
			if isForm {
				data := form.Data(defaults, starter)
				data.ShopDomain = req.ShopDomain
				data.Error = msg

				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(status)

				if err := view.Form(w, data); err != nil {
					log.Error("failed to render form", sl.Err(err))
				}

				return
			}

			render.Status(r, status)
			render.JSON(w, r, resp.Error(msg))
		}

		var req Request

		if err := render.Decode(r, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			fail(http.StatusBadRequest, req, "failed to decode request")

			return
		}

		req.applyDefaults(defaults)

		if err := validate.Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if !errors.As(err, &validateErr) {
				log.Error("failed to validate request", sl.Err(err))
				fail(http.StatusInternalServerError, req, "internal error")

				return
			}

			log.Info("invalid request", sl.Err(err))

			if !isForm {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.ValidationError(validateErr))

				return
			}

			fail(http.StatusBadRequest, req, resp.ValidationMessage(validateErr))

			return
		}

		params, err := req.Params()
		if err != nil {
			log.Info("invalid request", sl.Err(err))
			fail(http.StatusBadRequest, req, err.Error())

			return
		}

		run, err := starter.Start(req.Credentials(), params)
		if errors.Is(err, runs.ErrTooManyRuns) {
			log.Warn("run rejected", sl.Err(err))
			fail(http.StatusConflict, req, "another run is in progress, try again later")

			return
		}
		if err != nil {
			log.Error("failed to start run", sl.Err(err))
			fail(http.StatusInternalServerError, req, "failed to start run")

			return
		}

		log.Info("run started", slog.String("run_id", run.ID), slog.String("domain", run.Domain))

		if isForm {
			http.Redirect(w, r, "/runs/"+run.ID, http.StatusSeeOther)
			return
		}

		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, Response{
			Response: resp.OK(),
			RunID:    run.ID,
		})
	}
}
