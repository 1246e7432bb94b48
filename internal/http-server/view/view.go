// Package view рендерит страницы оператора.
package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Scopes - права, которые нужны токену доступа.
var Scopes = []string{"read_orders", "write_orders", "read_customers", "write_customers"}

var Units = []string{"seconds", "minutes", "hours", "days"}

type FormData struct {
	ShopDomain   string
	Count        int
	DelayValue   int
	DelayUnit    string
	ProductName  string
	ProductPrice string
	Units        []string
	Scopes       []string
	Error        string
	Runs         []RunRow
}

type RunRow struct {
	ID      string
	Domain  string
	State   string
	Message string
}

type Line struct {
	OK   bool
	Text string
}

type RunData struct {
	ID        string
	Domain    string
	State     string
	Running   bool
	Requested int
	Interval  string
	Product   string
	Lines     []Line
	Message   string
}

func Form(w io.Writer, data FormData) error {
	if data.Units == nil {
		data.Units = Units
	}
	if data.Scopes == nil {
		data.Scopes = Scopes
	}

	return templates.ExecuteTemplate(w, "form.html", data)
}

func Run(w io.Writer, data RunData) error {
	return templates.ExecuteTemplate(w, "run.html", data)
}
