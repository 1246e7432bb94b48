package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Credentials - учетные данные магазина. Приходят из формы оператора,
// не сохраняются и не пишутся в лог.
type Credentials struct {
	Domain      string
	AccessToken string
}

func (c Credentials) Complete() bool {
	return c.Domain != "" && c.AccessToken != ""
}

// NormalizeDomain убирает из домена магазина схему и завершающие слэши.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")

	return strings.TrimRight(domain, "/")
}

type DelayUnit string

const (
	Seconds DelayUnit = "seconds"
	Minutes DelayUnit = "minutes"
	Hours   DelayUnit = "hours"
	Days    DelayUnit = "days"
)

var unitDurations = map[DelayUnit]time.Duration{
	Seconds: time.Second,
	Minutes: time.Minute,
	Hours:   time.Hour,
	Days:    24 * time.Hour,
}

// Delay переводит value в единицах unit в time.Duration.
func Delay(value int, unit DelayUnit) (time.Duration, error) {
	d, ok := unitDurations[unit]
	if !ok {
		return 0, fmt.Errorf("unknown delay unit %q", unit)
	}

	return time.Duration(value) * d, nil
}

// Params не меняются в течение запуска.
type Params struct {
	Count        int             `json:"count"`
	Interval     time.Duration   `json:"interval"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
}

// Outcome - результат одной отправки.
type Outcome struct {
	RunID       string    `json:"run_id"`
	Index       int       `json:"index"`
	Success     bool      `json:"success"`
	Customer    string    `json:"customer"`
	StatusCode  int       `json:"status_code,omitempty"`
	Error       string    `json:"error,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// StatusLine - строка для оператора. Index считается с нуля,
// в строке заказы нумеруются с единицы.
func (o Outcome) StatusLine() string {
	if o.Success {
		return fmt.Sprintf("order %d created: %s", o.Index+1, o.Customer)
	}

	return fmt.Sprintf("order %d failed: %s", o.Index+1, o.Error)
}
