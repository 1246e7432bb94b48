// Package report накапливает результаты отправок одного запуска и отдает их
// для отображения. Ничего не фильтрует и не удаляет дубликаты.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/YusovID/order-faker/internal/models"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Recorder получает результаты в порядке итераций.
type Recorder interface {
	Record(ctx context.Context, outcome models.Outcome)
}

type Summary struct {
	RunID     string `json:"run_id"`
	State     State  `json:"state"`
	Requested int    `json:"requested"`
	Attempted int    `json:"attempted"`
	Created   int    `json:"created"`
}

func (s Summary) Failed() int {
	return s.Attempted - s.Created
}

// Message - итоговая строка для оператора.
func (s Summary) Message() string {
	noun := "orders"
	if s.Created == 1 {
		noun = "order"
	}

	return fmt.Sprintf("%d %s created out of %d", s.Created, noun, s.Attempted)
}

// Log - журнал запуска в памяти. Пишет горутина запуска, читают
// HTTP-обработчики.
type Log struct {
	mu        sync.RWMutex
	runID     string
	requested int
	state     State
	outcomes  []models.Outcome
	created   int
}

func NewLog(runID string, requested int) *Log {
	return &Log{
		runID:     runID,
		requested: requested,
		state:     StateIdle,
		outcomes:  make([]models.Outcome, 0, requested),
	}
}

func (l *Log) RunID() string {
	return l.runID
}

func (l *Log) Record(_ context.Context, outcome models.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.outcomes = append(l.outcomes, outcome)
	if outcome.Success {
		l.created++
	}
}

func (l *Log) SetState(state State) {
	l.mu.Lock()
	l.state = state
	l.mu.Unlock()
}

func (l *Log) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.state
}

// Outcomes возвращает копию записанных результатов.
func (l *Log) Outcomes() []models.Outcome {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Outcome, len(l.outcomes))
	copy(out, l.outcomes)

	return out
}

func (l *Log) Lines() []string {
	outcomes := l.Outcomes()

	lines := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		lines = append(lines, o.StatusLine())
	}

	return lines
}

func (l *Log) Summary() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Summary{
		RunID:     l.runID,
		State:     l.state,
		Requested: l.requested,
		Attempted: len(l.outcomes),
		Created:   l.created,
	}
}

// Logger пишет каждый результат в лог строкой статуса.
type Logger struct {
	log *slog.Logger
}

func NewLogger(log *slog.Logger) *Logger {
	return &Logger{log: log.With(slog.String("component", "report"))}
}

func (r *Logger) Record(ctx context.Context, o models.Outcome) {
	attrs := []any{
		slog.String("run_id", o.RunID),
		slog.Int("order", o.Index+1),
	}

	if o.Success {
		r.log.InfoContext(ctx, o.StatusLine(), attrs...)
		return
	}

	attrs = append(attrs, slog.Int("status", o.StatusCode))
	r.log.ErrorContext(ctx, o.StatusLine(), attrs...)
}

// Multi передает результат всем получателям по порядку.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, o models.Outcome) {
	for _, r := range m {
		if r != nil {
			r.Record(ctx, o)
		}
	}
}
