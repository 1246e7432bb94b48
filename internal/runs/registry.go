// Package runs хранит запуски, начатые оператором. Каждый запуск идет
// в своей горутине, число одновременных запусков ограничено пулом
// воркеров. Ничего не переживает процесс.
package runs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/YusovID/order-faker/internal/models"
	"github.com/YusovID/order-faker/internal/report"
	"github.com/YusovID/order-faker/internal/runner"
	"github.com/YusovID/order-faker/lib/logger/sl"
	wp "github.com/YusovID/order-faker/lib/workerpool"
	"github.com/google/uuid"
)

// historySize ограничивает число завершенных запусков в истории.
const historySize = 100

var (
	ErrNotFound    = errors.New("run not found")
	ErrTooManyRuns = errors.New("too many runs in progress")
)

type Runner interface {
	Run(ctx context.Context, creds models.Credentials, params models.Params, rep *report.Log) (report.Summary, error)
}

type Run struct {
	ID        string
	Domain    string
	Params    models.Params
	StartedAt time.Time
	Log       *report.Log

	creds  models.Credentials
	cancel context.CancelFunc
	done   chan struct{}
}

// Done закрывается, когда горутина запуска завершилась.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

func (r *Run) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

type Registry struct {
	mu     sync.RWMutex
	runs   map[string]*Run
	ctx    context.Context
	pool   *wp.Pool[*Run]
	runner Runner
	log    *slog.Logger
}

// New создает реестр. Отмена ctx отменяет все запуски.
func New(ctx context.Context, r Runner, maxRuns int, log *slog.Logger) *Registry {
	reg := &Registry{
		runs:   make(map[string]*Run),
		ctx:    ctx,
		runner: r,
		log:    log.With(slog.String("component", "runs")),
	}

	reg.pool = wp.New(maxRuns, reg.execute)
	reg.pool.OnError(func(run *Run, err error) {
		reg.log.Error("run failed", slog.String("run_id", run.ID), sl.Err(err))
	})

	return reg
}

// Start регистрирует запуск и запускает его в фоне.
func (r *Registry) Start(creds models.Credentials, params models.Params) (*Run, error) {
	const fn = "runs.Start"

	if !creds.Complete() {
		return nil, runner.ErrMissingCredentials
	}

	ctx, cancel := context.WithCancel(r.ctx)

	id := uuid.NewString()
	run := &Run{
		ID:        id,
		Domain:    creds.Domain,
		Params:    params,
		StartedAt: time.Now(),
		Log:       report.NewLog(id, params.Count),
		creds:     creds,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	r.mu.Lock()
	r.runs[id] = run
	r.prune()
	r.mu.Unlock()

	if err := r.pool.TryHandle(ctx, run); err != nil {
		cancel()

		r.mu.Lock()
		delete(r.runs, id)
		r.mu.Unlock()

		if errors.Is(err, wp.ErrNoWorkers) {
			return nil, ErrTooManyRuns
		}

		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	r.log.Debug("run scheduled",
		slog.String("run_id", id),
		slog.Int("active", r.Active()),
	)

	return run, nil
}

func (r *Registry) Get(id string) (*Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, ErrNotFound
	}

	return run, nil
}

// Cancel останавливает запуск перед следующей итерацией. Отмена
// завершенного запуска ничего не делает.
func (r *Registry) Cancel(id string) error {
	run, err := r.Get(id)
	if err != nil {
		return err
	}

	run.cancel()

	return nil
}

// List возвращает запуски, новые первыми.
func (r *Registry) List() []*Run {
	r.mu.RLock()
	list := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		list = append(list, run)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].StartedAt.After(list[j].StartedAt)
	})

	return list
}

// Active возвращает число выполняющихся запусков.
func (r *Registry) Active() int {
	return r.pool.Busy()
}

// Wait ждет завершения всех запусков.
func (r *Registry) Wait() {
	r.pool.Wait()
}

func (r *Registry) execute(ctx context.Context, run *Run) error {
	defer close(run.done)
	defer run.cancel()

	_, err := r.runner.Run(ctx, run.creds, run.Params, run.Log)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// prune удаляет самые старые завершенные запуски сверх historySize.
// Вызывается под mu.
func (r *Registry) prune() {
	if len(r.runs) <= historySize {
		return
	}

	finished := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		if run.finished() {
			finished = append(finished, run)
		}
	}

	sort.Slice(finished, func(i, j int) bool {
		return finished[i].StartedAt.Before(finished[j].StartedAt)
	})

	for _, run := range finished {
		if len(r.runs) <= historySize {
			return
		}
		delete(r.runs, run.ID)
	}
}
