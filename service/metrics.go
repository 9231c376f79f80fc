package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eligibility_evaluations_total",
		Help: "Full pipeline evaluations by outcome.",
	}, []string{"outcome"})

	prequalificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eligibility_prequalifications_total",
		Help: "Policy-only prequalification queries by outcome.",
	}, []string{"outcome"})

	valuationSourceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eligibility_valuations_total",
		Help: "Vehicle valuations by effective source.",
	}, []string{"source"})

	externalEstimateFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eligibility_external_estimate_failures_total",
		Help: "External valuation calls that degraded to the depreciation model.",
	})
)

func outcomeLabel(err error, eligible bool) string {
	switch {
	case err != nil:
		return "error"
	case eligible:
		return "eligible"
	default:
		return "not_eligible"
	}
}
