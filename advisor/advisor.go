// Package advisor asks a text generation service for stock price estimates
// and short financial advice.
package advisor

import (
	"context"
	"errors"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/config"
	"github.com/etnz/fintrack/metrics"
	"github.com/rs/zerolog/log"
)

// Advice returned when no real advice can be produced.
const (
	NoKeyAdvice       = "Configure an API key to get financial advice."
	UnavailableAdvice = "Advice is temporarily unavailable."
	DefaultAdvice     = "Keep up the good bookkeeping habits!"
)

// errThrottled is reported when a request is denied by the rate limiter.
var errThrottled = errors.New("advisor request throttled")

// Advisor is the advisory gateway.
type Advisor interface {
	fintrack.PriceEstimator
	// Summarize returns a short advice about the figures. It never fails: on
	// any error it returns one of the fallback advices.
	Summarize(ctx context.Context, in fintrack.AdviceInput) string
}

// New returns a Gemini advisor when an API key is configured, the Offline
// advisor otherwise.
func New(ctx context.Context, cfg config.Advisor, m *metrics.Registry) Advisor {
	if cfg.APIKey == "" {
		log.Debug().Msg("no API key, advisor is offline")
		return Offline{}
	}
	g, err := NewGemini(ctx, cfg, m)
	if err != nil {
		log.Warn().Err(err).Msg("cannot create the Gemini client, advisor is offline")
		return Offline{}
	}
	return g
}

// Offline is the advisor used without an API key.
type Offline struct{}

// EstimatePrices returns no update.
func (Offline) EstimatePrices(context.Context, []string) ([]fintrack.PriceUpdate, error) {
	return nil, nil
}

// Summarize returns NoKeyAdvice.
func (Offline) Summarize(context.Context, fintrack.AdviceInput) string { return NoKeyAdvice }
