package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/YusovID/order-faker/internal/config"
	"github.com/YusovID/order-faker/internal/models"
	orderGen "github.com/YusovID/order-faker/lib/generator/order"
)

const (
	DefaultAPIVersion = "2023-10"
	AccessTokenHeader = "X-Shopify-Access-Token"
)

// ErrTransport - любая ошибка, при которой HTTP-ответ не получен,
// включая таймауты.
var ErrTransport = errors.New("transport error")

// APIError возвращается, когда магазин ответил чем угодно, кроме 201 Created.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify API error: status %d, body: %s", e.StatusCode, e.Body)
}

type Client struct {
	apiVersion string
	scheme     string
	httpClient *http.Client
	log        *slog.Logger
}

type Option func(c *Client)

// WithHTTPClient заменяет HTTP-клиент, например на httptest.Server.Client().
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithScheme нужен тестам, которые обращаются к серверу по plain HTTP.
func WithScheme(scheme string) Option {
	return func(c *Client) {
		c.scheme = scheme
	}
}

// NewClient создает клиент Admin REST API. Учетные данные передаются
// в каждый вызов: у каждого запуска свой магазин.
func NewClient(cfg config.Shopify, log *slog.Logger, opts ...Option) *Client {
	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		apiVersion: version,
		scheme:     "https",
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With(slog.String("component", "shopify")),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) OrdersURL(domain string) string {
	return fmt.Sprintf("%s://%s/admin/api/%s/orders.json", c.scheme, models.NormalizeDomain(domain), c.apiVersion)
}

// CreateOrder отправляет один заказ. Если ответ получен, возвращается его
// статус; при статусе, отличном от 201, ошибка - *APIError с телом ответа.
func (c *Client) CreateOrder(ctx context.Context, creds models.Credentials, order models.Order) (int, error) {
	const fn = "shopify.CreateOrder"

	jsonData, err := json.Marshal(orderGen.Envelope(order))
	if err != nil {
		return 0, fmt.Errorf("%s: failed to marshal order: %w", fn, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.OrdersURL(creds.Domain), bytes.NewReader(jsonData))
	if err != nil {
		return 0, fmt.Errorf("%s: failed to create request: %w", fn, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AccessTokenHeader, creds.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", fn, ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%s: %w: failed to read response: %w", fn, ErrTransport, err)
	}

	c.log.Debug("order request completed",
		slog.String("domain", creds.Domain),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode != http.StatusCreated {
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return resp.StatusCode, nil
}
