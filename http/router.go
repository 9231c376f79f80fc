package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Loan        *LoanHandler
	Eligibility *EligibilityHandler
}

// NewRouter wires all routes. POST endpoints sit behind the rate limiter.
func NewRouter(h Handlers, limiter *RateLimiter, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	limited := func(route string, fn http.HandlerFunc) {
		mux.Handle(route, RateLimitMiddleware(limiter, route, fn))
	}

	limited("/eligibility/evaluate", h.Eligibility.Evaluate)
	limited("/eligibility/prequalify", h.Eligibility.Prequalify)
	limited("/loan/emi", h.Loan.CalculateLoan)
	mux.HandleFunc("/policies", h.Eligibility.ListPolicies)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return LoggingMiddleware(logger, mux)
}
