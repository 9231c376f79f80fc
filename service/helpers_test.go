package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"loan-eligibility/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func tradeline(code int, original, balance string, tenure int) domain.CreditTradeline {
	return domain.CreditTradeline{
		AccountTypeCode:       code,
		OriginalLoanAmount:    dec(original),
		CurrentBalance:        dec(balance),
		RepaymentTenureMonths: tenure,
	}
}
