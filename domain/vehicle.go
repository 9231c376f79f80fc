package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type VehicleProfile struct {
	Make             string    `json:"make"`
	Model            string    `json:"model"`
	RegistrationDate time.Time `json:"registration_date"`
	FuelType         string    `json:"fuel_type"`
	Color            string    `json:"color"`
	OwnerName        string    `json:"owner_name"`
	FinancerName     string    `json:"financer_name"`
}

// AgeYears is the calendar-year difference between asOf and registration,
// never negative.
func (v VehicleProfile) AgeYears(asOf time.Time) int {
	age := asOf.Year() - v.RegistrationDate.Year()
	if age < 0 {
		return 0
	}
	return age
}

// Financed reports whether the registry lists a hypothecation.
func (v VehicleProfile) Financed() bool {
	name := strings.ToLower(strings.TrimSpace(v.FinancerName))
	switch name {
	case "", "na", "n/a", "nil", "none", "-":
		return false
	}
	return !strings.Contains(name, "not financed")
}

type ValuationSource string

const (
	ValuationSourceDepreciation ValuationSource = "depreciation_model"
	ValuationSourceExternal     ValuationSource = "external_estimate"
)

// MarketValuation holds both the deterministic estimate and the effective
// market value. DeterministicValue is always populated so a caller can fall
// back to it.
type MarketValuation struct {
	Vehicle            VehicleProfile  `json:"vehicle"`
	AgeYears           int             `json:"age_years"`
	BaseValue          decimal.Decimal `json:"base_value"`
	DepreciationRate   decimal.Decimal `json:"depreciation_rate"`
	DeterministicValue decimal.Decimal `json:"deterministic_value"`
	MarketValue        decimal.Decimal `json:"market_value"`
	Source             ValuationSource `json:"source"`
	Rationale          string          `json:"rationale,omitempty"`
}

// ExternalEstimate is a valuation supplied by a third party or a generative
// model.
type ExternalEstimate struct {
	Value     decimal.Decimal `json:"value"`
	Rationale string          `json:"rationale"`
}
