package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/app"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/renderer"
	"github.com/gorilla/mux"
)

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	u, _ := s.app.User()
	writeJSON(w, http.StatusOK, u)
}

type loginRequest struct {
	Username string `json:"username"`
	Demo     bool   `json:"demo"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Username == "" {
		writeError(w, fmt.Errorf("%w: missing username", errBadRequest))
		return
	}
	if err := s.app.Login(r.Context(), req.Username, app.LoginOptions{Demo: req.Demo}); err != nil {
		writeError(w, err)
		return
	}
	s.session(w, r)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// read runs fn on the ledger and writes its result.
func (s *Server) read(w http.ResponseWriter, fn func(l *fintrack.Ledger) any) {
	var v any
	if err := s.app.View(func(l *fintrack.Ledger) { v = fn(l) }); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	on := s.app.Today()
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := date.Parse(q)
		if err != nil {
			writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
			return
		}
		on = d
	}
	s.read(w, func(l *fintrack.Ledger) any { return l.Summary(on) })
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

func (s *Server) advice(w http.ResponseWriter, r *http.Request) {
	text, err := s.app.Advice(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Advice: text})
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	s.read(w, func(l *fintrack.Ledger) any { return l.Accounts() })
}

func (s *Server) addAccount(w http.ResponseWriter, r *http.Request) {
	var acc fintrack.Account
	if err := decode(r, &acc); err != nil {
		writeError(w, err)
		return
	}
	if _, err := fintrack.ParseAccountType(string(acc.Type)); err != nil {
		writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	added, err := s.app.AddAccount(acc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) editAccount(w http.ResponseWriter, r *http.Request) {
	var acc fintrack.Account
	if err := decode(r, &acc); err != nil {
		writeError(w, err)
		return
	}
	acc.ID = mux.Vars(r)["id"]
	if err := s.app.EditAccount(acc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.app.DeleteAccount(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listStocks(w http.ResponseWriter, r *http.Request) {
	s.read(w, func(l *fintrack.Ledger) any { return l.Stocks() })
}

func (s *Server) trade(w http.ResponseWriter, r *http.Request) {
	var t fintrack.Trade
	if err := decode(r, &t); err != nil {
		writeError(w, err)
		return
	}
	tx, err := s.app.ExecuteTrade(t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

type refreshResponse struct {
	Updated int `json:"updated"`
}

func (s *Server) refreshPrices(w http.ResponseWriter, r *http.Request) {
	n, err := s.app.RefreshPrices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Updated: n})
}

// transactionFilter reads the filter from the query: period, date, account,
// category, type and limit.
func transactionFilter(r *http.Request, today date.Date) (renderer.TransactionFilter, error) {
	q := r.URL.Query()
	f := renderer.TransactionFilter{AccountID: q.Get("account"), Category: q.Get("category")}
	if t := q.Get("type"); t != "" {
		tt, err := fintrack.ParseTransactionType(t)
		if err != nil {
			return f, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		f.Type = tt
	}
	if p := q.Get("period"); p != "" {
		period, err := date.ParsePeriod(p)
		if err != nil {
			return f, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		on := today
		if d := q.Get("date"); d != "" {
			if on, err = date.Parse(d); err != nil {
				return f, fmt.Errorf("%w: %w", errBadRequest, err)
			}
		}
		f.Range = date.NewRange(on, period)
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			return f, fmt.Errorf("%w: invalid limit %q", errBadRequest, l)
		}
		f.Limit = n
	}
	return f, nil
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := transactionFilter(r, s.app.Today())
	if err != nil {
		writeError(w, err)
		return
	}
	s.read(w, func(l *fintrack.Ledger) any {
		rows := renderer.NewTransactions(l, f).Rows
		txs := make([]fintrack.Transaction, 0, len(rows))
		for _, row := range rows {
			txs = append(txs, row.Transaction)
		}
		return txs
	})
}

func (s *Server) addTransaction(w http.ResponseWriter, r *http.Request) {
	var tx fintrack.Transaction
	if err := decode(r, &tx); err != nil {
		writeError(w, err)
		return
	}
	if _, err := fintrack.ParseTransactionType(string(tx.Type)); err != nil {
		writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	if !tx.Amount.IsPositive() {
		writeError(w, fmt.Errorf("%w: amount must be positive", errBadRequest))
		return
	}
	recorded, err := s.app.RecordTransaction(tx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, recorded)
}
