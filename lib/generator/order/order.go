// Package orderGen собирает тело запроса на создание заказа из параметров
// генерации и сгенерированного покупателя. Правила вывода полей (e-mail,
// цена строкой, одинаковые адреса оплаты и доставки, статус "paid")
// фиксированы, так как от них зависит совместимость с удаленным API.
package orderGen

import (
	"strings"
	"time"

	"github.com/YusovID/order-faker/internal/models"
	"github.com/brianvoe/gofakeit/v7"
)

const (
	FinancialStatusPaid = "paid"
	EmailDomain         = "example.com"
	lineItemQuantity    = 1
)

// Build создает один заказ. Функция чистая: время создания передается
// готовым, см. CreatedAt.
func Build(params models.Params, person models.Identity, address models.Address, createdAt time.Time) models.Order {
	return models.Order{
		LineItems: []models.LineItem{
			{
				Title:    params.ProductName,
				Price:    params.ProductPrice.StringFixed(2),
				Quantity: lineItemQuantity,
			},
		},
		Customer: models.Customer{
			FirstName: person.FirstName,
			LastName:  person.LastName,
			Email:     Email(person),
		},
		BillingAddress:  address,
		ShippingAddress: address,
		FinancialStatus: FinancialStatusPaid,
		CreatedAt:       createdAt,
	}
}

// Email возвращает адрес вида firstname.lastname@example.com в нижнем регистре.
func Email(person models.Identity) string {
	return strings.ToLower(person.FirstName) + "." + strings.ToLower(person.LastName) + "@" + EmailDomain
}

// CreatedAt возвращает текущую календарную дату now со случайными
// часом [0,23] и минутой [0,59]; секунды и наносекунды обнулены.
func CreatedAt(faker *gofakeit.Faker, now time.Time) time.Time {
	if faker == nil {
		faker = gofakeit.GlobalFaker
	}

	year, month, day := now.Date()

	return time.Date(year, month, day, faker.Number(0, 23), faker.Number(0, 59), 0, 0, now.Location())
}

// Envelope оборачивает заказ в ключ "order", как того ждет эндпоинт.
func Envelope(order models.Order) models.OrderEnvelope {
	return models.OrderEnvelope{Order: order}
}
