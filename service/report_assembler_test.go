package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-eligibility/domain"
	"loan-eligibility/repository"
)

var fixedNow = time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)

func fixedAssembler() *ReportAssembler {
	return NewReportAssemblerWith(
		func() string { return "report-1" },
		func() time.Time { return fixedNow },
	)
}

func TestAssemble(t *testing.T) {
	classification, err := NewTradelineClassifier(nil).Classify(sampleTradelines())
	require.NoError(t, err)

	valuation, err := newTestValuation(nil, nil).Estimate(vehicle("MARUTI SUZUKI", 2021), asOf2025)
	require.NoError(t, err)
	valuation.Vehicle.FinancerName = "HDFC BANK LTD"

	p := profile(780, "85000")
	p.Name = "ASHA RAO"
	matches, err := NewPolicyMatcher().Match(p, repository.DefaultPolicies())
	require.NoError(t, err)

	affordability := domain.Affordability{
		AutoLoanEMI:              dec("6673.33"),
		AutoLoanEMIReconstructed: true,
		TotalMonthlyObligations:  dec("30000"),
		FOIR:                     dec("0.3529"),
		Offers: []domain.OfferProjection{{
			PolicyID:      1,
			MaxLoanAmount: dec("367200"),
			LoanAmount:    dec("300000"),
			TenureMonths:  60,
			EMIAtRoiMin:   dec("6300.68"),
			EMIAtRoiMax:   dec("6980.37"),
		}},
	}

	report := fixedAssembler().Assemble(classification, valuation, affordability, matches, p)

	assert.Equal(t, "report-1", report.ReportID)
	assert.Equal(t, fixedNow, report.GeneratedAt)

	assert.Equal(t, "ASHA RAO", report.Applicant.Name)
	assert.Equal(t, "Excellent", report.Applicant.CreditRating)
	assert.Equal(t, "₹85,000", report.Applicant.MonthlyIncome)

	assert.Equal(t, 2, report.Credit.SecuredCount)
	assert.Equal(t, "₹28.0L", report.Credit.SecuredTotal)
	assert.Equal(t, 2, report.Credit.UnsecuredCount)
	assert.Equal(t, "₹1.8L", report.Credit.UnsecuredTotal)
	assert.Equal(t, "35.3%", report.Credit.FOIRPercent)

	require.NotNil(t, report.AutoLoan)
	assert.Equal(t, "₹5.0L", report.AutoLoan.OriginalAmount)
	assert.Equal(t, "₹3.0L", report.AutoLoan.CurrentBalance)
	assert.Equal(t, "₹6,673", report.AutoLoan.MonthlyInstallment)
	assert.True(t, report.AutoLoan.Reconstructed)

	assert.Equal(t, "2021-03-15", report.Vehicle.RegistrationDate)
	assert.True(t, report.Vehicle.Financed)
	assert.Equal(t, 4, report.Vehicle.AgeYears)
	assert.Equal(t, "32%", report.Vehicle.DepreciationRate)
	assert.Equal(t, "₹4.1L", report.Vehicle.EstimatedValue)
	assert.Equal(t, "₹4.1L", report.Vehicle.FallbackValue)
	assert.Equal(t, "depreciation_model", report.Vehicle.ValuationSource)

	require.Len(t, report.Offers, 4)
	assert.True(t, report.Eligible)
	assert.Equal(t, "HDFC Bank", report.Offers[0].LenderName)
	assert.Equal(t, "9.5% - 14%", report.Offers[0].InterestRange)
	assert.Equal(t, "₹3.0L", report.Offers[0].LoanAmount)
	assert.Equal(t, "₹6,301 - ₹6,980", report.Offers[0].EMIRange)
	assert.Empty(t, report.Offers[1].EMIRange)
}

func TestAssemble_NoAutoLoanNoOffers(t *testing.T) {
	classification, err := NewTradelineClassifier(nil).Classify(nil)
	require.NoError(t, err)

	valuation, err := newTestValuation(nil, nil).Estimate(vehicle("KIA", 2024), asOf2025)
	require.NoError(t, err)

	report := fixedAssembler().Assemble(classification, valuation, domain.Affordability{}, []domain.LenderPolicy{}, profile(500, "10000"))

	assert.Nil(t, report.AutoLoan)
	assert.False(t, report.Eligible)
	assert.NotNil(t, report.Offers)
	assert.Empty(t, report.Offers)
	assert.Equal(t, "Poor", report.Applicant.CreditRating)
	assert.Equal(t, "0.0%", report.Credit.FOIRPercent)
	assert.False(t, report.Vehicle.Financed)
}

func TestLenderOffers_PairsByPosition(t *testing.T) {
	matches := []domain.LenderPolicy{
		{LenderName: "A", RoiMin: dec("9"), RoiMax: dec("10")},
		{LenderName: "B", RoiMin: dec("20"), RoiMax: dec("22")},
	}
	projections := []domain.OfferProjection{
		{MaxLoanAmount: dec("367200"), LoanAmount: dec("367200"), TenureMonths: 60, EMIAtRoiMin: dec("7622"), EMIAtRoiMax: dec("7802")},
		{MaxLoanAmount: dec("204000"), LoanAmount: dec("204000"), TenureMonths: 60, EMIAtRoiMin: dec("5405"), EMIAtRoiMax: dec("5634")},
	}

	offers := lenderOffers(matches, projections)
	require.Len(t, offers, 2)
	assert.Equal(t, "₹3.7L", offers[0].MaxLoanAmount)
	assert.Equal(t, "₹7,622 - ₹7,802", offers[0].EMIRange)
	assert.Equal(t, "₹2.0L", offers[1].MaxLoanAmount)
	assert.Equal(t, "₹5,405 - ₹5,634", offers[1].EMIRange)
}
