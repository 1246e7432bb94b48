// Package config определяет структуры конфигурации генератора заказов
// и загружает их из YAML-файла и переменных окружения с помощью cleanenv.
//
// Учетные данные магазина (домен и токен) сюда намеренно не входят:
// оператор вводит их в форме для каждого запуска.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config - корневая структура конфигурации приложения.
type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Shopify    Shopify    `yaml:"shopify"`
	Runner     Runner     `yaml:"runner"`
	Defaults   Defaults   `yaml:"defaults"`
	Kafka      Kafka      `yaml:"kafka"`
}

// HTTPServer содержит параметры HTTP-сервера с формой оператора.
type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

// Shopify описывает обращение к Admin API.
type Shopify struct {
	APIVersion     string        `yaml:"api_version" env:"SHOPIFY_API_VERSION" env-default:"2023-10"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SHOPIFY_REQUEST_TIMEOUT" env-default:"30s"`
}

// Runner управляет циклом отправки.
//
// SkipFinalDelay=false повторяет исходное поведение: пауза выдерживается
// и после последнего заказа. MaxRuns ограничивает число одновременных
// запусков; при значении 1 в каждый момент времени выполняется не больше
// одного запроса к API.
type Runner struct {
	SkipFinalDelay bool `yaml:"skip_final_delay" env:"RUNNER_SKIP_FINAL_DELAY" env-default:"false"`
	MaxRuns        int  `yaml:"max_runs" env:"RUNNER_MAX_RUNS" env-default:"1"`
}

// Defaults - значения, которыми заполняется форма.
type Defaults struct {
	ProductName  string `yaml:"product_name" env-default:"Ghost Product"`
	ProductPrice string `yaml:"product_price" env-default:"29.99"`
	Count        int    `yaml:"count" env-default:"5"`
	DelayValue   int    `yaml:"delay_value" env-default:"5"`
	DelayUnit    string `yaml:"delay_unit" env-default:"seconds"`
}

// Kafka - необязательный приемник результатов отправки.
type Kafka struct {
	Enabled          bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	BootstrapServers []string `yaml:"bootstrap.servers" env:"KAFKA_BOOTSTRAP_SERVERS"`
	Topic            string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"order-outcomes"`
	Producer         Producer `yaml:"producer"`
}

// Producer определяет настройки Kafka-продюсера.
type Producer struct {
	Acks    int `yaml:"acks" env-default:"1"`
	Retries int `yaml:"retries" env-default:"3"`
}

// MustLoad читает .env (если он есть), затем файл из CONFIG_PATH и
// переменные окружения. При любой ошибке завершает процесс через log.Fatalf.
func MustLoad() *Config {
	// .env необязателен: при запуске в контейнере переменные приходят снаружи.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

// Load читает конфигурацию из файла configPath и переменных окружения.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	if cfg.Runner.MaxRuns < 1 {
		return nil, fmt.Errorf("runner.max_runs must be positive, got %d", cfg.Runner.MaxRuns)
	}

	if cfg.Kafka.Enabled && len(cfg.Kafka.BootstrapServers) == 0 {
		return nil, fmt.Errorf("kafka is enabled but bootstrap.servers is empty")
	}

	return &cfg, nil
}
