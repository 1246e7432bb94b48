package runner

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/YusovID/order-faker/internal/config"
	"github.com/YusovID/order-faker/internal/models"
	"github.com/YusovID/order-faker/internal/report"
	"github.com/YusovID/order-faker/internal/shopify"
	"github.com/YusovID/order-faker/lib/generator/identity"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	creds = models.Credentials{Domain: "ghost-shop.myshopify.com", AccessToken: "shpat_test"}

	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func params(count int, interval time.Duration) models.Params {
	return models.Params{
		Count:        count,
		Interval:     interval,
		ProductName:  "Ghost Product",
		ProductPrice: decimal.RequireFromString("29.99"),
	}
}

type call struct {
	at    time.Time
	order models.Order
}

// fakeSubmitter отвечает статусами по порядку и запоминает каждый вызов.
type fakeSubmitter struct {
	mu       sync.Mutex
	statuses []int
	calls    []call
}

func (f *fakeSubmitter) CreateOrder(_ context.Context, _ models.Credentials, order models.Order) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := http.StatusCreated
	if len(f.calls) < len(f.statuses) {
		status = f.statuses[len(f.calls)]
	}

	f.calls = append(f.calls, call{at: time.Now(), order: order})

	if status != http.StatusCreated {
		return status, &shopify.APIError{StatusCode: status, Body: `{"errors":{"order":["is invalid"]}}`}
	}

	return status, nil
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

func newRunner(t *testing.T, s Submitter, opts ...Option) *Runner {
	t.Helper()

	g, err := identity.New(gofakeit.New(11), identity.French)
	require.NoError(t, err)

	opts = append([]Option{WithFaker(gofakeit.New(12))}, opts...)

	return New(s, g, discard, opts...)
}

func TestRunAllCreated(t *testing.T) {
	s := &fakeSubmitter{}
	rep := report.NewLog("run", 3)

	summary, err := newRunner(t, s).Run(context.Background(), creds, params(3, 0), rep)
	require.NoError(t, err)

	assert.Equal(t, 3, s.count())
	assert.Equal(t, report.StateCompleted, summary.State)
	assert.Equal(t, 3, summary.Created)
	assert.Equal(t, 3, summary.Attempted)
	assert.Contains(t, summary.Message(), "3 orders created")

	outcomes := rep.Outcomes()
	require.Len(t, outcomes, 3)
	for i, o := range outcomes {
		assert.Equal(t, i, o.Index)
		assert.True(t, o.Success)
		assert.Equal(t, http.StatusCreated, o.StatusCode)
		assert.Equal(t, s.calls[i].order.Customer.FirstName+" "+s.calls[i].order.Customer.LastName, o.Customer)
	}
}

func TestRunFailureDoesNotStopLoop(t *testing.T) {
	s := &fakeSubmitter{statuses: []int{http.StatusUnprocessableEntity, http.StatusCreated}}
	rep := report.NewLog("run", 2)

	summary, err := newRunner(t, s).Run(context.Background(), creds, params(2, 0), rep)
	require.NoError(t, err)

	assert.Equal(t, 2, s.count())
	assert.Equal(t, 1, summary.Created)
	assert.Contains(t, summary.Message(), "1 order created")

	lines := rep.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "order 1 failed")
	assert.Contains(t, lines[0], `{"errors":{"order":["is invalid"]}}`)
	assert.Contains(t, lines[1], "order 2 created")
}

func TestRunMissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds models.Credentials
	}{
		{name: "no domain", creds: models.Credentials{AccessToken: "x"}},
		{name: "no token", creds: models.Credentials{Domain: "shop.myshopify.com"}},
		{name: "nothing", creds: models.Credentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSubmitter{}
			rep := report.NewLog("run", 5)

			_, err := newRunner(t, s).Run(context.Background(), tt.creds, params(5, 0), rep)
			require.ErrorIs(t, err, ErrMissingCredentials)

			assert.Zero(t, s.count())
			assert.Empty(t, rep.Outcomes())
			assert.Equal(t, report.StateIdle, rep.State())
		})
	}
}

func TestRunInvalidParams(t *testing.T) {
	s := &fakeSubmitter{}

	_, err := newRunner(t, s).Run(context.Background(), creds, params(0, 0), report.NewLog("run", 0))
	require.ErrorIs(t, err, ErrInvalidParams)
	assert.Zero(t, s.count())
}

func TestRunWaitsBetweenSubmissions(t *testing.T) {
	const interval = 150 * time.Millisecond

	s := &fakeSubmitter{}

	_, err := newRunner(t, s).Run(context.Background(), creds, params(2, interval), report.NewLog("run", 2))
	require.NoError(t, err)

	require.Len(t, s.calls, 2)
	assert.GreaterOrEqual(t, s.calls[1].at.Sub(s.calls[0].at), interval)
}

func TestRunFinalDelay(t *testing.T) {
	const interval = 200 * time.Millisecond

	t.Run("kept by default", func(t *testing.T) {
		start := time.Now()

		_, err := newRunner(t, &fakeSubmitter{}).Run(context.Background(), creds, params(1, interval), report.NewLog("run", 1))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, time.Since(start), interval)
	})

	t.Run("skipped", func(t *testing.T) {
		start := time.Now()

		_, err := newRunner(t, &fakeSubmitter{}, WithSkipFinalDelay(true)).
			Run(context.Background(), creds, params(1, interval), report.NewLog("run", 1))
		require.NoError(t, err)

		assert.Less(t, time.Since(start), interval)
	})
}

func TestRunCancel(t *testing.T) {
	s := &fakeSubmitter{}
	rep := report.NewLog("run", 10)

	r := newRunner(t, s)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)

		_, err := r.Run(ctx, creds, params(10, time.Hour), rep)
		assert.ErrorIs(t, err, context.Canceled)
	}()

	require.Eventually(t, func() bool { return s.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not stop after cancel")
	}

	assert.Equal(t, 1, s.count())
	assert.Len(t, rep.Outcomes(), 1)
	assert.Equal(t, report.StateCancelled, rep.State())
}

func TestRunRecorders(t *testing.T) {
	var mu sync.Mutex
	var seen []int

	sink := recorderFunc(func(_ context.Context, o models.Outcome) {
		mu.Lock()
		seen = append(seen, o.Index)
		mu.Unlock()
	})

	_, err := newRunner(t, &fakeSubmitter{}, WithRecorders(sink)).
		Run(context.Background(), creds, params(3, 0), report.NewLog("run-42", 3))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, seen)
}

// cancellingSubmitter отменяет запуск, пока заказ еще отправляется.
type cancellingSubmitter struct {
	cancel context.CancelFunc
}

func (c cancellingSubmitter) CreateOrder(context.Context, models.Credentials, models.Order) (int, error) {
	c.cancel()
	return http.StatusCreated, nil
}

func TestRunRecordsLastOutcomeAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		seen    []models.Outcome
		seenErr []error
	)

	sink := recorderFunc(func(ctx context.Context, o models.Outcome) {
		seen = append(seen, o)
		seenErr = append(seenErr, ctx.Err())
	})

	rep := report.NewLog("run", 3)

	_, err := newRunner(t, cancellingSubmitter{cancel: cancel}, WithRecorders(sink)).
		Run(ctx, creds, params(3, time.Hour), rep)
	require.ErrorIs(t, err, context.Canceled)

	require.Len(t, seen, 1)
	assert.True(t, seen[0].Success)
	assert.NoError(t, seenErr[0])
	assert.Len(t, rep.Outcomes(), 1)
	assert.Equal(t, report.StateCancelled, rep.State())
}

type recorderFunc func(ctx context.Context, o models.Outcome)

func (f recorderFunc) Record(ctx context.Context, o models.Outcome) { f(ctx, o) }

func TestRunAgainstShop(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []models.OrderEnvelope
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/api/2023-10/orders.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		if r.Header.Get(shopify.AccessTokenHeader) != "shpat_test" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":"[API] Invalid API key or access token"}`))
			return
		}

		var env models.OrderEnvelope
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&env))

		mu.Lock()
		bodies = append(bodies, env)
		mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"order":{"id":1}}`))
	}))
	defer srv.Close()

	client := shopify.NewClient(config.Shopify{RequestTimeout: time.Second}, discard,
		shopify.WithHTTPClient(srv.Client()),
		shopify.WithScheme("http"),
	)

	domain := srv.Listener.Addr().String()

	t.Run("valid token", func(t *testing.T) {
		rep := report.NewLog("run", 2)

		summary, err := newRunner(t, client).Run(context.Background(),
			models.Credentials{Domain: domain, AccessToken: "shpat_test"}, params(2, 0), rep)
		require.NoError(t, err)

		assert.Equal(t, 2, summary.Created)
		require.Len(t, bodies, 2)
		for _, env := range bodies {
			assert.Equal(t, "paid", env.Order.FinancialStatus)
			assert.Equal(t, env.Order.BillingAddress, env.Order.ShippingAddress)
			assert.Zero(t, env.Order.CreatedAt.Second())
		}
	})

	t.Run("invalid token fails every order", func(t *testing.T) {
		rep := report.NewLog("run", 3)

		summary, err := newRunner(t, client).Run(context.Background(),
			models.Credentials{Domain: domain, AccessToken: "wrong"}, params(3, 0), rep)
		require.NoError(t, err)

		assert.Zero(t, summary.Created)
		assert.Equal(t, 3, summary.Attempted)
		for _, o := range rep.Outcomes() {
			assert.Equal(t, http.StatusUnauthorized, o.StatusCode)
			assert.Contains(t, o.Error, "Invalid API key")
		}
	})
}

func TestRunTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	domain := srv.Listener.Addr().String()
	srv.Close()

	client := shopify.NewClient(config.Shopify{RequestTimeout: time.Second}, discard, shopify.WithScheme("http"))
	rep := report.NewLog("run", 2)

	summary, err := newRunner(t, client).Run(context.Background(),
		models.Credentials{Domain: domain, AccessToken: "t"}, params(2, 0), rep)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Attempted)
	assert.Zero(t, summary.Created)
	for _, o := range rep.Outcomes() {
		assert.False(t, o.Success)
		assert.Contains(t, o.Error, "transport error")
	}
}

func TestRunTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := shopify.NewClient(config.Shopify{RequestTimeout: 50 * time.Millisecond}, discard, shopify.WithScheme("http"))
	rep := report.NewLog("run", 1)

	_, err := newRunner(t, client).Run(context.Background(),
		models.Credentials{Domain: srv.Listener.Addr().String(), AccessToken: "t"}, params(1, 0), rep)
	require.NoError(t, err)

	outcomes := rep.Outcomes()
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Success)
	assert.Contains(t, outcomes[0].Error, "transport error")
}
