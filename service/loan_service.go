package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"loan-eligibility/domain"
)

// RateCard holds the fallbacks used when a tradeline omits its rate or tenure.
type RateCard struct {
	FallbackAnnualRatePercent decimal.Decimal
	FallbackTenureMonths      int
}

func DefaultRateCard() RateCard {
	return RateCard{
		FallbackAnnualRatePercent: DefaultFallbackRatePercent,
		FallbackTenureMonths:      DefaultFallbackTenureMonths,
	}
}

// MonthlyInstallment computes EMI = P*r*(1+r)^n / ((1+r)^n - 1) with
// r = annualRatePercent/12/100. A zero rate degrades to P/n.
func MonthlyInstallment(
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	tenureMonths int,
) (decimal.Decimal, error) {
	if tenureMonths <= 0 {
		return decimal.Zero, domain.NewInvalidArgumentError("tenureMonths", "must be positive")
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, domain.NewInvalidArgumentError("annualRatePercent", "must not be negative")
	}
	if !principal.IsPositive() {
		return decimal.Zero, nil
	}

	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePercent.IsZero() {
		return principal.Div(n).Round(2), nil
	}

	r := annualRatePercent.Div(twelve).Div(hundred)
	growth := decimal.NewFromInt(1).Add(r).Pow(n)
	emi := principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	return emi.Round(2), nil
}

// ReconstructInstallment returns the tradeline's scheduled payment, or derives
// one from its current balance when the bureau left it blank or zero. A zero
// bureau rate counts as absent, like a zero payment.
func ReconstructInstallment(
	t domain.CreditTradeline,
	card RateCard,
) (emi decimal.Decimal, reconstructed bool, err error) {
	if t.ScheduledMonthlyPayment.Valid && t.ScheduledMonthlyPayment.Decimal.IsPositive() {
		return t.ScheduledMonthlyPayment.Decimal, false, nil
	}

	rate := card.FallbackAnnualRatePercent
	if t.InterestRatePercent.Valid && t.InterestRatePercent.Decimal.IsPositive() {
		rate = t.InterestRatePercent.Decimal
	}
	tenure := t.RepaymentTenureMonths
	if tenure <= 0 {
		tenure = card.FallbackTenureMonths
	}

	emi, err = MonthlyInstallment(t.CurrentBalance, rate, tenure)
	if err != nil {
		return decimal.Zero, false, err
	}
	return emi, true, nil
}

type LoanService struct{}

func NewLoanService() *LoanService {
	return &LoanService{}
}

// CalculateLoan quotes EMI, total payment and total interest for a new loan.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {

	if !input.Amount.IsPositive() {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("amount", "must be positive")
	}
	if input.Amount.GreaterThan(decimal.NewFromInt(MaxLoanAmount)) {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("amount", fmt.Sprintf("exceeds maximum of %d", MaxLoanAmount))
	}
	if input.InterestRate.IsNegative() {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("interest_rate", "must not be negative")
	}
	if input.InterestRate.GreaterThan(decimal.NewFromInt(MaxInterestRate)) {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("interest_rate", fmt.Sprintf("exceeds maximum of %d%%", MaxInterestRate))
	}
	if input.TermMonths < MinTermMonths {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("term_months", "must be positive")
	}
	if input.TermMonths > MaxTermMonths {
		return domain.LoanResult{}, domain.NewInvalidArgumentError("term_months", fmt.Sprintf("exceeds maximum of %d months", MaxTermMonths))
	}

	emi, err := MonthlyInstallment(input.Amount, input.InterestRate, input.TermMonths)
	if err != nil {
		return domain.LoanResult{}, err
	}

	total := emi.Mul(decimal.NewFromInt(int64(input.TermMonths)))

	return domain.LoanResult{
		MonthlyPayment: emi,
		TotalPayment:   total.Round(2),
		TotalInterest:  total.Sub(input.Amount).Round(2),
	}, nil
}
