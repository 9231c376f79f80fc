package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"loan-eligibility/domain"
)

// PrimaryAutoLoanStrategy picks the primary auto loan among the tradelines
// that satisfy IsAutoLoanCandidate, or returns nil.
type PrimaryAutoLoanStrategy func(candidates []domain.CreditTradeline) *domain.CreditTradeline

// FirstMatchAutoLoan keeps the first candidate in input order.
func FirstMatchAutoLoan(candidates []domain.CreditTradeline) *domain.CreditTradeline {
	if len(candidates) == 0 {
		return nil
	}
	primary := candidates[0]
	return &primary
}

// LargestBalanceAutoLoan keeps the candidate with the highest current
// balance; ties go to the earlier tradeline.
func LargestBalanceAutoLoan(candidates []domain.CreditTradeline) *domain.CreditTradeline {
	if len(candidates) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].CurrentBalance.GreaterThan(candidates[best].CurrentBalance) {
			best = i
		}
	}
	primary := candidates[best]
	return &primary
}

// IsAutoLoanCandidate applies the auto loan heuristic: secured-loan account
// type, original amount within [2 lakh, 20 lakh] and a 60 month tenure.
func IsAutoLoanCandidate(t domain.CreditTradeline) bool {
	return t.AccountTypeCode == domain.SecuredLoanAccountType &&
		t.OriginalLoanAmount.GreaterThanOrEqual(AutoLoanMinAmount) &&
		t.OriginalLoanAmount.LessThanOrEqual(AutoLoanMaxAmount) &&
		t.RepaymentTenureMonths == AutoLoanTenureMonths
}

type TradelineClassifier struct {
	primary PrimaryAutoLoanStrategy
}

// NewTradelineClassifier returns a classifier using strategy to choose the
// primary auto loan. A nil strategy means FirstMatchAutoLoan.
func NewTradelineClassifier(strategy PrimaryAutoLoanStrategy) *TradelineClassifier {
	if strategy == nil {
		strategy = FirstMatchAutoLoan
	}
	return &TradelineClassifier{primary: strategy}
}

// Classify buckets tradelines into secured and unsecured loans and detects the
// primary auto loan. The input is not modified; a nil slice is treated as
// empty.
func (c *TradelineClassifier) Classify(
	tradelines []domain.CreditTradeline,
) (domain.TradelineClassification, error) {

	for i, t := range tradelines {
		if err := validateTradeline(t); err != nil {
			return domain.TradelineClassification{}, fmt.Errorf("tradeline %d: %w", i, err)
		}
	}

	result := domain.TradelineClassification{
		SecuredLoans:   domain.TradelineBucket{Tradelines: []domain.CreditTradeline{}, Total: decimal.Zero},
		UnsecuredLoans: domain.TradelineBucket{Tradelines: []domain.CreditTradeline{}, Total: decimal.Zero},
	}

	var candidates []domain.CreditTradeline
	for _, t := range tradelines {
		active := t.CurrentBalance.IsPositive()
		switch {
		case active && domain.IsSecuredAccountType(t.AccountTypeCode):
			addToBucket(&result.SecuredLoans, t)
		case active && domain.IsUnsecuredAccountType(t.AccountTypeCode):
			addToBucket(&result.UnsecuredLoans, t)
		}
		if IsAutoLoanCandidate(t) {
			candidates = append(candidates, t)
		}
	}

	result.PrimaryAutoLoan = c.primary(candidates)
	return result, nil
}

func addToBucket(b *domain.TradelineBucket, t domain.CreditTradeline) {
	b.Tradelines = append(b.Tradelines, t)
	b.Count++
	b.Total = b.Total.Add(t.CurrentBalance)
}

func validateTradeline(t domain.CreditTradeline) error {
	switch {
	case t.AccountTypeCode < 0:
		return domain.NewValidationError("accountTypeCode", "must not be negative")
	case t.CurrentBalance.IsNegative():
		return domain.NewValidationError("currentBalance", "must not be negative")
	case t.OriginalLoanAmount.IsNegative():
		return domain.NewValidationError("originalLoanAmount", "must not be negative")
	case t.RepaymentTenureMonths < 0:
		return domain.NewValidationError("repaymentTenureMonths", "must not be negative")
	case t.AmountPastDue.IsNegative():
		return domain.NewValidationError("amountPastDue", "must not be negative")
	case t.ScheduledMonthlyPayment.Valid && t.ScheduledMonthlyPayment.Decimal.IsNegative():
		return domain.NewValidationError("scheduledMonthlyPayment", "must not be negative")
	case t.InterestRatePercent.Valid && t.InterestRatePercent.Decimal.IsNegative():
		return domain.NewValidationError("interestRatePercent", "must not be negative")
	}
	return nil
}
