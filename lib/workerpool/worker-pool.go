package workerpool

import (
	"context"
	"errors"
	"sync"
)

var ErrNoWorkers = errors.New("no free workers")

type Worker struct{}

// Pool выполняет handler в фоновых горутинах, не больше size одновременно.
// Свободного воркера пул не ждет: TryHandle сразу возвращает ошибку.
type Pool[Data any] struct {
	pool    chan *Worker
	handler func(ctx context.Context, msg Data) error
	onError func(msg Data, err error)
	wg      sync.WaitGroup
}

func New[Data any](size int, handler func(ctx context.Context, msg Data) error) *Pool[Data] {
	if size < 1 {
		size = 1
	}

	p := &Pool[Data]{
		pool:    make(chan *Worker, size),
		handler: handler,
	}

	for range size {
		p.pool <- &Worker{}
	}

	return p
}

// OnError задает обработчик ошибок handler. Вызывать до начала работы.
func (p *Pool[Data]) OnError(fn func(msg Data, err error)) {
	p.onError = fn
}

// TryHandle берет свободного воркера и выполняет на нем handler в новой
// горутине. Если все воркеры заняты, возвращает ErrNoWorkers.
func (p *Pool[Data]) TryHandle(ctx context.Context, data Data) error {
	var w *Worker

	select {
	case w = <-p.pool:
	default:
		return ErrNoWorkers
	}

	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		defer func() { p.pool <- w }()

		if err := p.handler(ctx, data); err != nil && p.onError != nil {
			p.onError(data, err)
		}
	}()

	return nil
}

// Busy возвращает число выполняющихся handler.
func (p *Pool[Data]) Busy() int {
	return cap(p.pool) - len(p.pool)
}

// Wait ждет завершения всех запущенных handler.
func (p *Pool[Data]) Wait() {
	p.wg.Wait()
}
