package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"loan-eligibility/domain"
)

// EligibilityService runs the full decisioning pipeline over already fetched
// identity, bureau and registry data. It holds no per-applicant state.
type EligibilityService struct {
	classifier *TradelineClassifier
	valuation  *ValuationService
	matcher    *PolicyMatcher
	assembler  *ReportAssembler
	validator  *PayloadValidator
	rates      RateCard
	now        func() time.Time
	logger     zerolog.Logger
}

func NewEligibilityService(
	classifier *TradelineClassifier,
	valuation *ValuationService,
	matcher *PolicyMatcher,
	assembler *ReportAssembler,
	rates RateCard,
	logger zerolog.Logger,
) *EligibilityService {
	if rates.FallbackTenureMonths <= 0 {
		rates.FallbackTenureMonths = DefaultFallbackTenureMonths
	}
	return &EligibilityService{
		classifier: classifier,
		valuation:  valuation,
		matcher:    matcher,
		assembler:  assembler,
		validator:  NewPayloadValidator(),
		rates:      rates,
		now:        time.Now,
		logger:     logger.With().Str("component", "eligibility").Logger(),
	}
}

// WithClock replaces the "as of" clock used for vehicle age.
func (s *EligibilityService) WithClock(now func() time.Time) *EligibilityService {
	s.now = now
	return s
}

// Evaluate produces a complete report or an error; it never returns a partial
// report. policies is a read-only snapshot of the lender table.
func (s *EligibilityService) Evaluate(
	ctx context.Context,
	req domain.EvaluationRequest,
	policies []domain.LenderPolicy,
) (report domain.EligibilityReport, err error) {
	defer func() {
		evaluationsTotal.WithLabelValues(outcomeLabel(err, report.Eligible)).Inc()
	}()

	if err := s.validator.Validate(req); err != nil {
		return domain.EligibilityReport{}, err
	}

	profile, err := s.buildProfile(req)
	if err != nil {
		return domain.EligibilityReport{}, err
	}

	classification, err := s.classifier.Classify(req.Credit.Tradelines())
	if err != nil {
		return domain.EligibilityReport{}, err
	}

	vehicle, err := req.Vehicle.Profile()
	if err != nil {
		return domain.EligibilityReport{}, err
	}
	valuation, err := s.valuation.EstimateWithOverride(ctx, vehicle, s.now())
	if err != nil {
		return domain.EligibilityReport{}, err
	}

	matches, err := s.matcher.Match(profile, policies)
	if err != nil {
		return domain.EligibilityReport{}, err
	}

	affordability, err := s.affordability(classification, valuation, matches, profile, req.Economics)
	if err != nil {
		return domain.EligibilityReport{}, err
	}

	report = s.assembler.Assemble(classification, valuation, affordability, matches, profile)

	s.logger.Info().
		Str("report_id", report.ReportID).
		Int("credit_score", profile.CreditScore).
		Int("secured", classification.SecuredLoans.Count).
		Int("unsecured", classification.UnsecuredLoans.Count).
		Bool("auto_loan", classification.PrimaryAutoLoan != nil).
		Str("valuation_source", string(valuation.Source)).
		Int("offers", len(matches)).
		Msg("Eligibility evaluated")

	return report, nil
}

// Prequalify runs the policy matcher alone, without bureau or registry data.
func (s *EligibilityService) Prequalify(
	input domain.PrequalificationInput,
	policies []domain.LenderPolicy,
) (matches []domain.LenderPolicy, err error) {
	defer func() {
		prequalificationsTotal.WithLabelValues(outcomeLabel(err, len(matches) > 0)).Inc()
	}()

	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if input.MonthlyIncome.IsNegative() {
		return nil, domain.NewValidationError("monthly_income", "must not be negative")
	}

	employment, err := domain.ParseEmploymentType(input.EmploymentType)
	if err != nil {
		return nil, err
	}
	fuel, err := domain.ParseFuelType(input.FuelType)
	if err != nil {
		return nil, err
	}
	purpose, err := domain.ParseLoanPurpose(input.LoanPurpose)
	if err != nil {
		return nil, err
	}

	return s.matcher.Match(domain.ApplicantProfile{
		CreditScore:        input.CreditScore,
		MonthlyIncome:      input.MonthlyIncome,
		EmploymentType:     employment,
		FuelTypePreference: fuel,
		LoanPurpose:        purpose,
	}, policies)
}

func (s *EligibilityService) buildProfile(req domain.EvaluationRequest) (domain.ApplicantProfile, error) {
	income := *req.Economics.MonthlyIncome
	if income.IsNegative() {
		return domain.ApplicantProfile{}, domain.NewValidationError("economics.monthly_income", "must not be negative")
	}

	employment, err := domain.ParseEmploymentType(req.Economics.EmploymentType)
	if err != nil {
		return domain.ApplicantProfile{}, err
	}
	purpose, err := domain.ParseLoanPurpose(req.Economics.LoanPurpose)
	if err != nil {
		return domain.ApplicantProfile{}, err
	}
	fuelInput := req.Economics.FuelTypePreference
	if fuelInput == "" {
		fuelInput = req.Vehicle.FuelType
	}
	fuel, err := domain.ParseFuelType(fuelInput)
	if err != nil {
		return domain.ApplicantProfile{}, err
	}

	return domain.ApplicantProfile{
		Name:               req.Identity.Name,
		DateOfBirth:        req.Identity.DateOfBirth,
		Gender:             req.Identity.Gender,
		CreditScore:        *req.Credit.Score,
		MonthlyIncome:      income,
		EmploymentType:     employment,
		FuelTypePreference: fuel,
		LoanPurpose:        purpose,
	}, nil
}

func (s *EligibilityService) affordability(
	classification domain.TradelineClassification,
	valuation domain.MarketValuation,
	matches []domain.LenderPolicy,
	profile domain.ApplicantProfile,
	economics domain.ApplicantEconomics,
) (domain.Affordability, error) {
	result := domain.Affordability{
		TotalMonthlyObligations: decimal.Zero,
		FOIR:                    decimal.Zero,
		Offers:                  []domain.OfferProjection{},
	}

	if auto := classification.PrimaryAutoLoan; auto != nil {
		emi, reconstructed, err := ReconstructInstallment(*auto, s.rates)
		if err != nil {
			return domain.Affordability{}, err
		}
		result.AutoLoanEMI = emi
		result.AutoLoanEMIReconstructed = reconstructed
	}

	buckets := [][]domain.CreditTradeline{
		classification.SecuredLoans.Tradelines,
		classification.UnsecuredLoans.Tradelines,
	}
	for _, bucket := range buckets {
		for _, t := range bucket {
			emi, _, err := ReconstructInstallment(t, s.rates)
			if err != nil {
				return domain.Affordability{}, err
			}
			result.TotalMonthlyObligations = result.TotalMonthlyObligations.Add(emi)
		}
	}
	if profile.MonthlyIncome.IsPositive() {
		result.FOIR = result.TotalMonthlyObligations.Div(profile.MonthlyIncome).Round(4)
	}

	for _, p := range matches {
		offer, err := s.projectOffer(p, valuation, profile.LoanPurpose, economics)
		if err != nil {
			return domain.Affordability{}, err
		}
		result.Offers = append(result.Offers, offer)
	}
	return result, nil
}

// projectOffer caps the requested amount at the policy's LTV of the market
// value and clamps the tenure into the policy's bounds.
func (s *EligibilityService) projectOffer(
	p domain.LenderPolicy,
	valuation domain.MarketValuation,
	purpose domain.LoanPurpose,
	economics domain.ApplicantEconomics,
) (domain.OfferProjection, error) {
	ltv, err := p.LTVFor(purpose)
	if err != nil {
		return domain.OfferProjection{}, err
	}
	maxAmount := valuation.MarketValue.Mul(ltv).Div(hundred).Round(0)

	amount := maxAmount
	if economics.RequestedAmount.IsPositive() && economics.RequestedAmount.LessThan(maxAmount) {
		amount = economics.RequestedAmount
	}

	tenure := economics.RequestedTenureMonths
	if tenure <= 0 {
		tenure = s.rates.FallbackTenureMonths
	}
	if p.MinTenureMonths > 0 && tenure < p.MinTenureMonths {
		tenure = p.MinTenureMonths
	}
	if p.MaxTenureMonths > 0 && tenure > p.MaxTenureMonths {
		tenure = p.MaxTenureMonths
	}

	low, err := MonthlyInstallment(amount, p.RoiMin, tenure)
	if err != nil {
		return domain.OfferProjection{}, err
	}
	high, err := MonthlyInstallment(amount, p.RoiMax, tenure)
	if err != nil {
		return domain.OfferProjection{}, err
	}

	return domain.OfferProjection{
		PolicyID:      p.ID,
		MaxLoanAmount: maxAmount,
		LoanAmount:    amount,
		TenureMonths:  tenure,
		EMIAtRoiMin:   low,
		EMIAtRoiMax:   high,
		LTVPercent:    ltv,
	}, nil
}
