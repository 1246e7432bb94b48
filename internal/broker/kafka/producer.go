// Package kafka публикует результаты отправок в топик Kafka, чтобы другие
// системы могли следить за запуском. Сам запуск от Kafka не зависит:
// ошибки публикации только пишутся в лог.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/IBM/sarama"
	"github.com/YusovID/order-faker/internal/config"
	"github.com/YusovID/order-faker/internal/models"
	"github.com/YusovID/order-faker/lib/logger/sl"
)

type Producer struct {
	Producer sarama.AsyncProducer
	Topic    string
	Log      *slog.Logger
}

func NewProducer(cfg config.Kafka, log *slog.Logger) (*Producer, error) {
	config := sarama.NewConfig()

	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Producer.Acks)
	config.Producer.Retry.Max = cfg.Producer.Retries

	p, err := sarama.NewAsyncProducer(cfg.BootstrapServers, config)
	if err != nil {
		return nil, fmt.Errorf("can't create producer: %v", err)
	}

	return New(p, cfg.Topic, log), nil
}

func New(p sarama.AsyncProducer, topic string, log *slog.Logger) *Producer {
	return &Producer{
		Producer: p,
		Topic:    topic,
		Log:      log.With(slog.String("component", "kafka")),
	}
}

// Record публикует результат с ключом run id, поэтому результаты одного
// запуска остаются упорядоченными внутри партиции. Отмена ctx не отменяет
// публикацию: результат последней попытки отмененного запуска тоже уходит
// в топик.
func (p *Producer) Record(_ context.Context, outcome models.Outcome) {
	const fn = "broker.kafka.Record"

	value, err := json.Marshal(outcome)
	if err != nil {
		p.Log.Error("can't marshal outcome", slog.String("fn", fn), sl.Err(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.Topic,
		Key:   sarama.StringEncoder(outcome.RunID),
		Value: sarama.ByteEncoder(value),
	}

	p.Producer.Input() <- msg
}

// HandleResult пишет в лог отчеты о доставке, пока ctx не завершен.
func (p *Producer) HandleResult(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	go func() {
		for success := range p.Producer.Successes() {
			p.Log.Debug("outcome published",
				slog.Int("partition", int(success.Partition)),
				slog.Int64("offset", success.Offset),
			)
		}
	}()

	go func() {
		for err := range p.Producer.Errors() {
			p.Log.Error("failed to publish outcome", sl.Err(err))
		}
	}()

	<-ctx.Done()
}

func (p *Producer) Close() error {
	return p.Producer.Close()
}
