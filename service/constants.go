package service

import "github.com/shopspring/decimal"

const (
	MaxLoanAmount   = 1_000_000_000 // 100 crore
	MaxInterestRate = 100           // percent per annum
	MaxTermMonths   = 600
	MinTermMonths   = 1

	DefaultFallbackTenureMonths = 60

	// Primary auto loan heuristic: tenure must match exactly.
	AutoLoanTenureMonths = 60
)

var (
	DefaultFallbackRatePercent = decimal.NewFromInt(12)

	AutoLoanMinAmount = decimal.NewFromInt(200_000)
	AutoLoanMaxAmount = decimal.NewFromInt(2_000_000)

	DepreciationPerYear = decimal.NewFromFloat(0.08)
	MaxDepreciation     = decimal.NewFromFloat(0.5)
	DefaultBaseValue    = decimal.NewFromInt(500_000)

	lakh    = decimal.NewFromInt(100_000)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)
