package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const bureauDateLayout = "2006-01-02"

// IdentityResult is the outcome of a government ID verification.
type IdentityResult struct {
	IDNumber    string `json:"id_number" validate:"required"`
	Name        string `json:"name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender"`
}

// BureauAccount is one entry of the bureau report's accounts list, before
// normalization into a CreditTradeline.
type BureauAccount struct {
	AccountType      *int             `json:"accountType" validate:"required,gte=0"`
	CurrentBalance   *decimal.Decimal `json:"currentBalance" validate:"required"`
	HighCreditAmount *decimal.Decimal `json:"highCreditAmount" validate:"required"`
	RepaymentTenure  int              `json:"repaymentTenure" validate:"gte=0"`
	EMIAmount        *decimal.Decimal `json:"emiAmount"`
	InterestRate     *decimal.Decimal `json:"interestRate"`
	AmountOverdue    *decimal.Decimal `json:"amountOverdue"`
	DateOpened       string           `json:"dateOpened" validate:"omitempty,datetime=2006-01-02"`
}

// Tradeline converts the raw account. Absent optional amounts become zero
// or null.
func (a BureauAccount) Tradeline() CreditTradeline {
	t := CreditTradeline{
		RepaymentTenureMonths: a.RepaymentTenure,
	}
	if a.AccountType != nil {
		t.AccountTypeCode = *a.AccountType
	}
	if a.CurrentBalance != nil {
		t.CurrentBalance = *a.CurrentBalance
	}
	if a.HighCreditAmount != nil {
		t.OriginalLoanAmount = *a.HighCreditAmount
	}
	if a.EMIAmount != nil {
		t.ScheduledMonthlyPayment = decimal.NewNullDecimal(*a.EMIAmount)
	}
	if a.InterestRate != nil {
		t.InterestRatePercent = decimal.NewNullDecimal(*a.InterestRate)
	}
	if a.AmountOverdue != nil {
		t.AmountPastDue = *a.AmountOverdue
	}
	if a.DateOpened != "" {
		if d, err := time.Parse(bureauDateLayout, a.DateOpened); err == nil {
			t.OpenDate = d
		}
	}
	return t
}

// CreditReport is the subset of a bureau response the pipeline reads.
type CreditReport struct {
	Score    *int            `json:"score" validate:"required,gte=0,lte=900"`
	Accounts []BureauAccount `json:"accounts" validate:"dive"`
}

func (r CreditReport) Tradelines() []CreditTradeline {
	out := make([]CreditTradeline, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		out = append(out, a.Tradeline())
	}
	return out
}

// VehicleRegistryResult is the registration record returned for a plate.
type VehicleRegistryResult struct {
	Make             string `json:"make" validate:"required"`
	Model            string `json:"model"`
	RegistrationDate string `json:"registrationDate" validate:"required,datetime=2006-01-02"`
	FuelType         string `json:"fuelType" validate:"required"`
	Color            string `json:"color"`
	OwnerName        string `json:"ownerName"`
	FinancerName     string `json:"financerName"`
}

func (v VehicleRegistryResult) Profile() (VehicleProfile, error) {
	reg, err := time.Parse(bureauDateLayout, v.RegistrationDate)
	if err != nil {
		return VehicleProfile{}, NewValidationError("registrationDate", "expected YYYY-MM-DD")
	}
	return VehicleProfile{
		Make:             v.Make,
		Model:            v.Model,
		RegistrationDate: reg,
		FuelType:         v.FuelType,
		Color:            v.Color,
		OwnerName:        v.OwnerName,
		FinancerName:     v.FinancerName,
	}, nil
}

// ApplicantEconomics carries what the applicant declares about the loan.
type ApplicantEconomics struct {
	MonthlyIncome         *decimal.Decimal `json:"monthly_income" validate:"required"`
	EmploymentType        string           `json:"employment_type" validate:"required"`
	LoanPurpose           string           `json:"loan_purpose" validate:"required"`
	FuelTypePreference    string           `json:"fuel_type_preference"`
	RequestedAmount       decimal.Decimal  `json:"requested_amount"`
	RequestedTenureMonths int              `json:"requested_tenure_months" validate:"gte=0"`
}

// ApplicantProfile is the validated, typed view the policy matcher consumes.
type ApplicantProfile struct {
	Name               string          `json:"name,omitempty"`
	DateOfBirth        string          `json:"date_of_birth,omitempty"`
	Gender             string          `json:"gender,omitempty"`
	CreditScore        int             `json:"credit_score"`
	MonthlyIncome      decimal.Decimal `json:"monthly_income"`
	EmploymentType     EmploymentType  `json:"employment_type"`
	FuelTypePreference FuelType        `json:"fuel_type_preference"`
	LoanPurpose        LoanPurpose     `json:"loan_purpose"`
}

// EvaluationRequest bundles the collaborator outputs for one full pipeline run.
type EvaluationRequest struct {
	Identity  IdentityResult        `json:"identity"`
	Credit    CreditReport          `json:"credit_report"`
	Vehicle   VehicleRegistryResult `json:"vehicle"`
	Economics ApplicantEconomics    `json:"economics"`
}

// PrequalificationInput is the lightweight query that needs no bureau or
// registry pull.
type PrequalificationInput struct {
	CreditScore    int             `json:"credit_score" validate:"gte=0,lte=900"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	EmploymentType string          `json:"employment_type" validate:"required"`
	FuelType       string          `json:"fuel_type" validate:"required"`
	LoanPurpose    string          `json:"loan_purpose" validate:"required"`
}
