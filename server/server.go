// Package server exposes the App over HTTP: a JSON API, the rendered views,
// and the prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/app"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server routes requests to the App.
type Server struct {
	app    *app.App
	router *mux.Router
}

// New returns a Server over a. Metrics are served from gatherer when not nil.
func New(a *app.App, gatherer prometheus.Gatherer) *Server {
	s := &Server{app: a, router: mux.NewRouter()}
	s.routes(gatherer)
	return s
}

func (s *Server) routes(gatherer prometheus.Gatherer) {
	s.router.Use(requestID, requestLogging)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(jsonContentType)
	api.HandleFunc("/session", s.session).Methods(http.MethodGet)
	api.HandleFunc("/session", s.login).Methods(http.MethodPost)
	api.HandleFunc("/session", s.logout).Methods(http.MethodDelete)
	api.HandleFunc("/summary", s.summary).Methods(http.MethodGet)
	api.HandleFunc("/advice", s.advice).Methods(http.MethodGet)
	api.HandleFunc("/accounts", s.listAccounts).Methods(http.MethodGet)
	api.HandleFunc("/accounts", s.addAccount).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id}", s.editAccount).Methods(http.MethodPut)
	api.HandleFunc("/accounts/{id}", s.deleteAccount).Methods(http.MethodDelete)
	api.HandleFunc("/stocks", s.listStocks).Methods(http.MethodGet)
	api.HandleFunc("/trades", s.trade).Methods(http.MethodPost)
	api.HandleFunc("/prices/refresh", s.refreshPrices).Methods(http.MethodPost)
	api.HandleFunc("/transactions", s.listTransactions).Methods(http.MethodGet)
	api.HandleFunc("/transactions", s.addTransaction).Methods(http.MethodPost)

	s.router.HandleFunc("/", s.dashboard).Methods(http.MethodGet)
	s.router.HandleFunc("/accounts", s.view(accountsView)).Methods(http.MethodGet)
	s.router.HandleFunc("/stocks", s.view(stocksView)).Methods(http.MethodGet)
	s.router.HandleFunc("/transactions", s.view(transactionsView)).Methods(http.MethodGet)

	if gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // price refresh and advice wait for the advisor
		IdleTimeout:  60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info().Str("addr", addr).Msg("serving")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}

type ctxKey int

const requestIDKey ctxKey = 0

// requestID adds a unique request ID to each request.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()[:8]
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		id, _ := r.Context().Value(requestIDKey).(string)
		log.Debug().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("cannot write response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps err to an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrNotLoggedIn):
		status = http.StatusUnauthorized
	case errors.Is(err, app.ErrUnknownAccount):
		status = http.StatusNotFound
	case errors.Is(err, fintrack.ErrInvalidTrade), errors.Is(err, fintrack.ErrUnheldPosition), errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}
