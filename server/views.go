package server

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
)

// page wraps a rendered view.
var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>fintrack</title></head>
<body>
<nav><a href="/">Dashboard</a> | <a href="/accounts">Accounts</a> | <a href="/stocks">Stocks</a> | <a href="/transactions">Transactions</a></nav>
{{.}}
</body>
</html>
`))

// a viewFunc renders a markdown view of the ledger.
type viewFunc func(s *Server, r *http.Request, l *fintrack.Ledger) (string, error)

// dashboard asks for the advice before rendering, the ledger is locked
// during rendering.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	advice, _ := s.app.Advice(r.Context())
	u, _ := s.app.User()
	s.view(func(s *Server, _ *http.Request, l *fintrack.Ledger) (string, error) {
		return renderer.RenderDashboard(renderer.NewDashboard(l, u.Username, s.app.Today(), advice)), nil
	})(w, r)
}

func accountsView(_ *Server, _ *http.Request, l *fintrack.Ledger) (string, error) {
	return renderer.RenderAccounts(renderer.NewAccounts(l)), nil
}

func stocksView(_ *Server, _ *http.Request, l *fintrack.Ledger) (string, error) {
	return renderer.RenderStocks(renderer.NewStocks(l)), nil
}

func transactionsView(s *Server, r *http.Request, l *fintrack.Ledger) (string, error) {
	f, err := transactionFilter(r, s.app.Today())
	if err != nil {
		return "", err
	}
	return renderer.RenderTransactions(renderer.NewTransactions(l, f)), nil
}

// view serves a view as HTML.
func (s *Server) view(fn viewFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			md  string
			err error
		)
		if verr := s.app.View(func(l *fintrack.Ledger) { md, err = fn(s, r, l) }); verr != nil {
			http.Error(w, verr.Error(), http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		html, err := renderer.HTML(md)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, template.HTML(html)); err != nil {
			fmt.Fprintln(w, err)
		}
	}
}
