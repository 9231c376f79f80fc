package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferProjection is the projected new-loan repayment for one matched policy.
type OfferProjection struct {
	PolicyID      int64           `json:"policy_id"`
	MaxLoanAmount decimal.Decimal `json:"max_loan_amount"`
	LoanAmount    decimal.Decimal `json:"loan_amount"`
	TenureMonths  int             `json:"tenure_months"`
	EMIAtRoiMin   decimal.Decimal `json:"emi_at_roi_min"`
	EMIAtRoiMax   decimal.Decimal `json:"emi_at_roi_max"`
	LTVPercent    decimal.Decimal `json:"ltv_percent"`
}

// Affordability collects the repayment numbers derived for one applicant.
// Offers[i] is the projection for the i-th matched policy.
type Affordability struct {
	AutoLoanEMI              decimal.Decimal   `json:"auto_loan_emi"`
	AutoLoanEMIReconstructed bool              `json:"auto_loan_emi_reconstructed"`
	TotalMonthlyObligations  decimal.Decimal   `json:"total_monthly_obligations"`
	FOIR                     decimal.Decimal   `json:"foir"`
	Offers                   []OfferProjection `json:"offers"`
}

type ApplicantSummary struct {
	Name           string         `json:"name"`
	DateOfBirth    string         `json:"date_of_birth,omitempty"`
	Gender         string         `json:"gender,omitempty"`
	CreditScore    int            `json:"credit_score"`
	CreditRating   string         `json:"credit_rating"`
	MonthlyIncome  string         `json:"monthly_income"`
	EmploymentType EmploymentType `json:"employment_type"`
	LoanPurpose    LoanPurpose    `json:"loan_purpose"`
	FuelType       FuelType       `json:"fuel_type"`
}

type CreditSummary struct {
	SecuredCount            int    `json:"secured_count"`
	SecuredTotal            string `json:"secured_total"`
	UnsecuredCount          int    `json:"unsecured_count"`
	UnsecuredTotal          string `json:"unsecured_total"`
	TotalMonthlyObligations string `json:"total_monthly_obligations"`
	FOIRPercent             string `json:"foir_percent"`
}

type AutoLoanSummary struct {
	OriginalAmount     string `json:"original_amount"`
	CurrentBalance     string `json:"current_balance"`
	TenureMonths       int    `json:"tenure_months"`
	MonthlyInstallment string `json:"monthly_installment"`
	Reconstructed      bool   `json:"reconstructed"`
	AmountPastDue      string `json:"amount_past_due"`
}

type VehicleSummary struct {
	Make             string `json:"make"`
	Model            string `json:"model"`
	RegistrationDate string `json:"registration_date"`
	FuelType         string `json:"fuel_type"`
	Color            string `json:"color"`
	OwnerName        string `json:"owner_name"`
	FinancerName     string `json:"financer_name"`
	Financed         bool   `json:"financed"`
	AgeYears         int    `json:"age_years"`
	BaseValue        string `json:"base_value"`
	DepreciationRate string `json:"depreciation_rate"`
	EstimatedValue   string `json:"estimated_value"`
	FallbackValue    string `json:"fallback_value"`
	ValuationSource  string `json:"valuation_source"`
	Rationale        string `json:"rationale,omitempty"`
}

type LenderOffer struct {
	LenderName    string `json:"lender_name"`
	ProductName   string `json:"product_name"`
	InterestRange string `json:"interest_range"`
	MaxLoanAmount string `json:"max_loan_amount,omitempty"`
	LoanAmount    string `json:"loan_amount,omitempty"`
	TenureMonths  int    `json:"tenure_months,omitempty"`
	EMIRange      string `json:"emi_range,omitempty"`
}

// EligibilityReport is the normalized pipeline output. The pipeline keeps no
// reference to it after returning.
type EligibilityReport struct {
	ReportID    string           `json:"report_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Applicant   ApplicantSummary `json:"applicant"`
	Credit      CreditSummary    `json:"credit"`
	AutoLoan    *AutoLoanSummary `json:"auto_loan,omitempty"`
	Vehicle     VehicleSummary   `json:"vehicle"`
	Offers      []LenderOffer    `json:"offers"`
	Eligible    bool             `json:"eligible"`
}
