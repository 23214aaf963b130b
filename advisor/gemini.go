package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/config"
	"github.com/etnz/fintrack/metrics"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// operation labels
const (
	opPrices = "prices"
	opAdvice = "advice"
)

// generator is the part of the genai client used by Gemini.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini is the Advisor backed by the Gemini API.
//
// Requests go through a circuit breaker and, per operation, a rate limiter, so
// that polling the dashboard does not hammer the service.
type Gemini struct {
	model   string
	gen     generator
	breaker *gobreaker.CircuitBreaker
	limits  map[string]*rate.Limiter
	metrics *metrics.Registry
}

// NewGemini creates a client for the Gemini API.
func NewGemini(ctx context.Context, cfg config.Advisor, m *metrics.Registry) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create genai client: %w", err)
	}
	return newGemini(client.Models, cfg, m), nil
}

func newGemini(gen generator, cfg config.Advisor, m *metrics.Registry) *Gemini {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}
	every := rate.Inf
	if cfg.MinInterval > 0 {
		every = rate.Every(cfg.MinInterval)
	}
	return &Gemini{
		model: cfg.Model,
		gen:   gen,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "gemini",
			Timeout: cfg.OpenTimeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Info().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("advisor state changed")
			},
		}),
		limits: map[string]*rate.Limiter{
			opPrices: rate.NewLimiter(every, 1),
			opAdvice: rate.NewLimiter(every, 1),
		},
		metrics: m,
	}
}

// generate sends prompt and returns the text of the first candidate.
func (g *Gemini) generate(ctx context.Context, op, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if !g.limits[op].Allow() {
		g.metrics.Advise(op, metrics.Skipped)
		return "", errThrottled
	}
	text, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.gen.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err != nil {
			return nil, err
		}
		return responseText(resp), nil
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		g.metrics.Advise(op, metrics.Skipped)
		return "", err
	case err != nil:
		g.metrics.Advise(op, metrics.Failed)
		return "", err
	}
	g.metrics.Advise(op, metrics.OK)
	return text.(string), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// priceSchema is the JSON shape requested for price estimates.
var priceSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"symbol":       {Type: genai.TypeString},
			"currentPrice": {Type: genai.TypeNumber},
			"name":         {Type: genai.TypeString},
		},
		Required: []string{"symbol", "currentPrice", "name"},
	},
}

func pricePrompt(symbols []string) string {
	return fmt.Sprintf(`I have a portfolio with these stock symbols: %s.
Please provide the current approximate market price of each, in the currency usually associated with the stock (TWD for Taiwan stocks, USD for US stocks).
If you cannot get the exact real-time price, provide a reasonable estimate based on the last closing price you know.

Return a JSON array where each object contains:
- "symbol": the stock symbol, matched exactly
- "currentPrice": the price, as a number
- "name": a short display name for the stock
`, strings.Join(symbols, ", "))
}

// EstimatePrices implements fintrack.PriceEstimator. Failures and unreadable
// replies are logged and reported as no update.
func (g *Gemini) EstimatePrices(ctx context.Context, symbols []string) ([]fintrack.PriceUpdate, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	text, err := g.generate(ctx, opPrices, pricePrompt(symbols), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   priceSchema,
	})
	if err != nil {
		log.Warn().Err(err).Strs("symbols", symbols).Msg("price request failed")
		return nil, nil
	}
	if text == "" {
		return nil, nil
	}
	updates, err := parsePrices(text)
	if err != nil {
		log.Warn().Err(err).Msg("price reply ignored")
		return nil, nil
	}
	return updates, nil
}

func advicePrompt(in fintrack.AdviceInput) string {
	return fmt.Sprintf(`As a professional financial advisor, give one short sentence of encouragement or advice based on these figures:
Net worth: %s
Total expenses this month: %s
Top expense category: %s

Keep the tone professional and friendly, in no more than 50 words.
`, in.NetWorth.StringFixed(2), in.MonthlyExpense.StringFixed(2), in.TopExpenseCategory)
}

// Summarize implements Advisor.
func (g *Gemini) Summarize(ctx context.Context, in fintrack.AdviceInput) string {
	text, err := g.generate(ctx, opAdvice, advicePrompt(in), nil)
	if err != nil {
		log.Warn().Err(err).Msg("advice request failed")
		return UnavailableAdvice
	}
	if text == "" {
		return DefaultAdvice
	}
	return text
}
