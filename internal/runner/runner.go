// Package runner выполняет один запуск генерации: собрать заказ, отправить,
// записать результат, подождать и повторить. Отправки строго
// последовательные, неудачные не повторяются и не прерывают цикл.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/YusovID/order-faker/internal/models"
	"github.com/YusovID/order-faker/internal/report"
	"github.com/YusovID/order-faker/internal/shopify"
	orderGen "github.com/YusovID/order-faker/lib/generator/order"
	"github.com/YusovID/order-faker/lib/logger/sl"
	"github.com/brianvoe/gofakeit/v7"
)

var (
	ErrMissingCredentials = errors.New("shop domain and access token are required")
	ErrInvalidParams      = errors.New("invalid generation parameters")
)

type Submitter interface {
	CreateOrder(ctx context.Context, creds models.Credentials, order models.Order) (int, error)
}

type Generator interface {
	Person() models.Identity
	Address(person models.Identity) models.Address
}

type Runner struct {
	submitter      Submitter
	generator      Generator
	faker          *gofakeit.Faker
	recorders      []report.Recorder
	skipFinalDelay bool
	now            func() time.Time
	log            *slog.Logger
}

type Option func(r *Runner)

func WithFaker(faker *gofakeit.Faker) Option {
	return func(r *Runner) {
		r.faker = faker
	}
}

// WithRecorders добавляет получателей, которым результат передается после журнала запуска.
func WithRecorders(recorders ...report.Recorder) Option {
	return func(r *Runner) {
		r.recorders = append(r.recorders, recorders...)
	}
}

// WithSkipFinalDelay убирает паузу после последней отправки.
func WithSkipFinalDelay(skip bool) Option {
	return func(r *Runner) {
		r.skipFinalDelay = skip
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func New(submitter Submitter, generator Generator, log *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		submitter: submitter,
		generator: generator,
		faker:     gofakeit.GlobalFaker,
		now:       time.Now,
		log:       log.With(slog.String("component", "runner")),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run делает params.Count отправок и записывает в rep ровно один результат
// на каждую. Контекст проверяется между итерациями и во время паузы:
// отмененный запуск завершается в report.StateCancelled и возвращает
// ошибку контекста. Получатели видят результат и после отмены.
func (r *Runner) Run(ctx context.Context, creds models.Credentials, params models.Params, rep *report.Log) (report.Summary, error) {
	const fn = "runner.Run"

	log := r.log.With(slog.String("fn", fn), slog.String("run_id", rep.RunID()))

	if !creds.Complete() {
		return rep.Summary(), ErrMissingCredentials
	}

	if params.Count < 1 || params.Interval < 0 || params.ProductPrice.IsNegative() {
		return rep.Summary(), fmt.Errorf("%s: %w: count=%d interval=%s price=%s",
			fn, ErrInvalidParams, params.Count, params.Interval, params.ProductPrice)
	}

	rec := append(report.Multi{rep}, r.recorders...)

	rep.SetState(report.StateRunning)
	log.Info("run started",
		slog.Int("count", params.Count),
		slog.String("interval", params.Interval.String()),
		slog.String("domain", creds.Domain),
	)

	for i := 0; i < params.Count; i++ {
		if err := ctx.Err(); err != nil {
			return r.cancel(log, rep, err)
		}

		rec.Record(context.WithoutCancel(ctx), r.submit(ctx, log, rep.RunID(), i, creds, params))

		if r.skipFinalDelay && i == params.Count-1 {
			break
		}

		if err := sleep(ctx, params.Interval); err != nil {
			return r.cancel(log, rep, err)
		}
	}

	rep.SetState(report.StateCompleted)

	summary := rep.Summary()
	log.Info(summary.Message(), slog.Int("failed", summary.Failed()))

	return summary, nil
}

func (r *Runner) submit(
	ctx context.Context,
	log *slog.Logger,
	runID string,
	index int,
	creds models.Credentials,
	params models.Params,
) models.Outcome {
	person := r.generator.Person()
	address := r.generator.Address(person)
	order := orderGen.Build(params, person, address, orderGen.CreatedAt(r.faker, r.now()))

	outcome := models.Outcome{
		RunID:       runID,
		Index:       index,
		Customer:    person.FullName(),
		SubmittedAt: r.now(),
	}

	status, err := r.submitter.CreateOrder(ctx, creds, order)
	outcome.StatusCode = status

	var apiErr *shopify.APIError

	switch {
	case err == nil && status == http.StatusCreated:
		outcome.Success = true
	case errors.As(err, &apiErr):
		outcome.Error = apiErr.Body
		if outcome.Error == "" {
			outcome.Error = apiErr.Error()
		}
	case err != nil:
		log.Debug("submission failed", slog.Int("order", index+1), sl.Err(err))
		outcome.Error = err.Error()
	default:
		outcome.Error = fmt.Sprintf("unexpected status %d", status)
	}

	return outcome
}

func (r *Runner) cancel(log *slog.Logger, rep *report.Log, err error) (report.Summary, error) {
	rep.SetState(report.StateCancelled)

	summary := rep.Summary()
	log.Info("run cancelled", slog.String("summary", summary.Message()))

	return summary, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
