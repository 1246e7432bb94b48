package models

import "time"

// OrderEnvelope - тело запроса на создание заказа.
type OrderEnvelope struct {
	Order Order `json:"order"`
}

type Order struct {
	LineItems       []LineItem `json:"line_items"`
	Customer        Customer   `json:"customer"`
	BillingAddress  Address    `json:"billing_address"`
	ShippingAddress Address    `json:"shipping_address"`
	FinancialStatus string     `json:"financial_status"`
	CreatedAt       time.Time  `json:"created_at"`
}

type LineItem struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address1"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
}
