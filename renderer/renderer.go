// Package renderer turns ledger views into markdown, and markdown into HTML.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/fintrack"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"money": func(currency string, a fintrack.Amount) string { return a.Format(currency) },
	"pct":   func(d decimal.Decimal) string { return d.StringFixed(2) + "%" },
	"sign": func(tx fintrack.Transaction) string {
		if tx.Type == fintrack.Income {
			return "+"
		}
		return "-"
	},
}

// RenderDashboard renders the dashboard view.
func RenderDashboard(d *Dashboard) string {
	partials := map[string]string{
		"advice":     "advice.md",
		"categories": "categories.md",
		"recent":     "transaction_rows.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// RenderAccounts renders the accounts view.
func RenderAccounts(a *Accounts) string {
	return renderTemplate("accounts", "accounts.md", nil, a)
}

// RenderStocks renders the stocks view.
func RenderStocks(s *Stocks) string {
	return renderTemplate("stocks", "stocks.md", nil, s)
}

// RenderTransactions renders the transactions view.
func RenderTransactions(t *Transactions) string {
	partials := map[string]string{"rows": "transaction_rows.md"}
	return renderTemplate("transactions", "transactions.md", partials, t)
}

// renderTemplate renders a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}
	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}
	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts markdown to an HTML fragment. Tables are supported.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown: %w", err)
	}
	return buf.String(), nil
}
