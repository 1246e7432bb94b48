// package main является точкой входа генератора фейковых заказов.
// Сервис поднимает HTTP-форму для оператора; по каждой отправке формы
// запускается прогон, который последовательно создает заказы в магазине
// через Admin API с фиксированной паузой между запросами.
// При получении SIGINT или SIGTERM активные прогоны отменяются,
// сервер корректно останавливается.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/YusovID/order-faker/internal/broker/kafka"
	"github.com/YusovID/order-faker/internal/config"
	httpserver "github.com/YusovID/order-faker/internal/http-server"
	"github.com/YusovID/order-faker/internal/report"
	"github.com/YusovID/order-faker/internal/runner"
	"github.com/YusovID/order-faker/internal/runs"
	"github.com/YusovID/order-faker/internal/shopify"
	"github.com/YusovID/order-faker/lib/generator/identity"
	"github.com/YusovID/order-faker/lib/logger/sl"
	"github.com/YusovID/order-faker/lib/logger/slogpretty"
)

func main() {
	// Корневой контекст: его отмена останавливает все прогоны.
	ctx, cancel := context.WithCancel(context.Background())

	wg := &sync.WaitGroup{}

	cfg := config.MustLoad()

	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting order generator", slog.String("env", cfg.Env))

	generator, err := identity.New(nil, identity.French)
	if err != nil {
		log.Error("failed to init identity generator", sl.Err(err))
		os.Exit(1)
	}

	recorders := []report.Recorder{report.NewLogger(log)}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer, err = kafka.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Error("failed to init producer", sl.Err(err))
			os.Exit(1)
		}
		log.Info("producer init successful", slog.String("topic", cfg.Kafka.Topic))

		wg.Add(1)
		go producer.HandleResult(ctx, wg)

		recorders = append(recorders, producer)
	}

	client := shopify.NewClient(cfg.Shopify, log)

	r := runner.New(client, generator, log,
		runner.WithRecorders(recorders...),
		runner.WithSkipFinalDelay(cfg.Runner.SkipFinalDelay),
	)

	registry := runs.New(ctx, r, cfg.Runner.MaxRuns, log)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      httpserver.NewRouter(log, cfg.Defaults, registry),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting http server", slog.String("address", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to serve", sl.Err(err))
			os.Exit(1)
		}
	}()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	<-sigchan

	log.Info("stopping http server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", sl.Err(err))
	}

	// Отменяем прогоны и ждем, пока они запишут последний результат.
	cancel()
	registry.Wait()
	wg.Wait()

	if producer != nil {
		log.Info("stopping producer")
		if err := producer.Close(); err != nil {
			log.Error("failed to close producer", sl.Err(err))
		}
	}

	log.Info("order generator stopped")
}
