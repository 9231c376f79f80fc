package service

import (
	"time"

	"github.com/google/uuid"

	"loan-eligibility/domain"
)

type ReportAssembler struct {
	newID func() string
	now   func() time.Time
}

func NewReportAssembler() *ReportAssembler {
	return &ReportAssembler{
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
}

// NewReportAssemblerWith fixes the ID source and clock, mainly for tests.
func NewReportAssemblerWith(newID func() string, now func() time.Time) *ReportAssembler {
	return &ReportAssembler{newID: newID, now: now}
}

// Assemble merges upstream results into one report. It performs no I/O and
// does not fail; all inputs must already be validated.
func (a *ReportAssembler) Assemble(
	classification domain.TradelineClassification,
	valuation domain.MarketValuation,
	affordability domain.Affordability,
	matches []domain.LenderPolicy,
	profile domain.ApplicantProfile,
) domain.EligibilityReport {

	report := domain.EligibilityReport{
		ReportID:    a.newID(),
		GeneratedAt: a.now().UTC(),
		Applicant: domain.ApplicantSummary{
			Name:           profile.Name,
			DateOfBirth:    profile.DateOfBirth,
			Gender:         profile.Gender,
			CreditScore:    profile.CreditScore,
			CreditRating:   CreditRating(profile.CreditScore),
			MonthlyIncome:  FormatRupees(profile.MonthlyIncome),
			EmploymentType: profile.EmploymentType,
			LoanPurpose:    profile.LoanPurpose,
			FuelType:       profile.FuelTypePreference,
		},
		Credit: domain.CreditSummary{
			SecuredCount:            classification.SecuredLoans.Count,
			SecuredTotal:            FormatRupees(classification.SecuredLoans.Total),
			UnsecuredCount:          classification.UnsecuredLoans.Count,
			UnsecuredTotal:          FormatRupees(classification.UnsecuredLoans.Total),
			TotalMonthlyObligations: FormatRupees(affordability.TotalMonthlyObligations),
			FOIRPercent:             affordability.FOIR.Mul(hundred).StringFixed(1) + "%",
		},
		Vehicle: vehicleSummary(valuation),
		Offers:  lenderOffers(matches, affordability.Offers),
	}
	report.Eligible = len(report.Offers) > 0

	if auto := classification.PrimaryAutoLoan; auto != nil {
		report.AutoLoan = &domain.AutoLoanSummary{
			OriginalAmount:     FormatRupees(auto.OriginalLoanAmount),
			CurrentBalance:     FormatRupees(auto.CurrentBalance),
			TenureMonths:       auto.RepaymentTenureMonths,
			MonthlyInstallment: FormatRupees(affordability.AutoLoanEMI),
			Reconstructed:      affordability.AutoLoanEMIReconstructed,
			AmountPastDue:      FormatRupees(auto.AmountPastDue),
		}
	}

	return report
}

func vehicleSummary(v domain.MarketValuation) domain.VehicleSummary {
	registered := ""
	if !v.Vehicle.RegistrationDate.IsZero() {
		registered = v.Vehicle.RegistrationDate.Format("2006-01-02")
	}
	return domain.VehicleSummary{
		Make:             v.Vehicle.Make,
		Model:            v.Vehicle.Model,
		RegistrationDate: registered,
		FuelType:         v.Vehicle.FuelType,
		Color:            v.Vehicle.Color,
		OwnerName:        v.Vehicle.OwnerName,
		FinancerName:     v.Vehicle.FinancerName,
		Financed:         v.Vehicle.Financed(),
		AgeYears:         v.AgeYears,
		BaseValue:        FormatRupees(v.BaseValue),
		DepreciationRate: FormatPercent(v.DepreciationRate.Mul(hundred)),
		EstimatedValue:   FormatRupees(v.MarketValue),
		FallbackValue:    FormatRupees(v.DeterministicValue),
		ValuationSource:  string(v.Source),
		Rationale:        v.Rationale,
	}
}

// lenderOffers pairs projections[i] with matches[i]. Policy IDs are not
// trusted to be unique across a caller-supplied snapshot.
func lenderOffers(matches []domain.LenderPolicy, projections []domain.OfferProjection) []domain.LenderOffer {
	offers := make([]domain.LenderOffer, 0, len(matches))
	for i, m := range matches {
		offer := domain.LenderOffer{
			LenderName:    m.LenderName,
			ProductName:   m.ProductName,
			InterestRange: FormatPercent(m.RoiMin) + " - " + FormatPercent(m.RoiMax),
		}
		if i < len(projections) {
			p := projections[i]
			offer.MaxLoanAmount = FormatRupees(p.MaxLoanAmount)
			offer.LoanAmount = FormatRupees(p.LoanAmount)
			offer.TenureMonths = p.TenureMonths
			offer.EMIRange = FormatRupees(p.EMIAtRoiMin) + " - " + FormatRupees(p.EMIAtRoiMax)
		}
		offers = append(offers, offer)
	}
	return offers
}
