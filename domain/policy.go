package domain

import "github.com/shopspring/decimal"

// LenderPolicy is one lender x product underwriting row.
type LenderPolicy struct {
	ID          int64  `json:"id"`
	LenderName  string `json:"lender_name"`
	ProductName string `json:"product_name"`

	PurchaseAllowed        bool `json:"purchase_allowed"`
	RefinanceAllowed       bool `json:"refinance_allowed"`
	BalanceTransferAllowed bool `json:"balance_transfer_allowed"`

	PetrolAllowed   bool `json:"petrol_allowed"`
	DieselAllowed   bool `json:"diesel_allowed"`
	CNGAllowed      bool `json:"cng_allowed"`
	ElectricAllowed bool `json:"electric_allowed"`

	SalariedAllowed     bool `json:"salaried_allowed"`
	SelfEmployedAllowed bool `json:"self_employed_allowed"`

	MinCibilScore   int             `json:"min_cibil_score"`
	MaxDPDAllowed   int             `json:"max_dpd_allowed"`
	MinTenureMonths int             `json:"min_tenure_months"`
	MaxTenureMonths int             `json:"max_tenure_months"`
	MinAge          int             `json:"min_age"`
	MaxAge          int             `json:"max_age"`
	MinIncome       decimal.Decimal `json:"min_income"`
	RoiMin          decimal.Decimal `json:"roi_min"`
	RoiMax          decimal.Decimal `json:"roi_max"`

	PurchaseLTV        decimal.Decimal `json:"purchase_ltv"`
	RefinanceLTV       decimal.Decimal `json:"refinance_ltv"`
	BalanceTransferLTV decimal.Decimal `json:"balance_transfer_ltv"`
}

// PurposeAllowed selects the allow-flag column for purpose. The set of
// columns is closed; anything else is rejected rather than looked up.
func (p LenderPolicy) PurposeAllowed(purpose LoanPurpose) (bool, error) {
	switch purpose {
	case LoanPurposePurchase:
		return p.PurchaseAllowed, nil
	case LoanPurposeRefinance:
		return p.RefinanceAllowed, nil
	case LoanPurposeBalanceTransfer:
		return p.BalanceTransferAllowed, nil
	}
	return false, &UnknownEnumValueError{Kind: "loan purpose", Value: string(purpose)}
}

func (p LenderPolicy) EmploymentAllowed(employment EmploymentType) (bool, error) {
	switch employment {
	case EmploymentSalaried:
		return p.SalariedAllowed, nil
	case EmploymentSelfEmployed:
		return p.SelfEmployedAllowed, nil
	}
	return false, &UnknownEnumValueError{Kind: "employment type", Value: string(employment)}
}

func (p LenderPolicy) FuelAllowed(fuel FuelType) (bool, error) {
	switch fuel {
	case FuelPetrol:
		return p.PetrolAllowed, nil
	case FuelDiesel:
		return p.DieselAllowed, nil
	case FuelCNG:
		return p.CNGAllowed, nil
	case FuelElectric:
		return p.ElectricAllowed, nil
	}
	return false, &UnknownEnumValueError{Kind: "fuel type", Value: string(fuel)}
}

// LTVFor returns the loan-to-value cap, in percent, for purpose.
func (p LenderPolicy) LTVFor(purpose LoanPurpose) (decimal.Decimal, error) {
	switch purpose {
	case LoanPurposePurchase:
		return p.PurchaseLTV, nil
	case LoanPurposeRefinance:
		return p.RefinanceLTV, nil
	case LoanPurposeBalanceTransfer:
		return p.BalanceTransferLTV, nil
	}
	return decimal.Zero, &UnknownEnumValueError{Kind: "loan purpose", Value: string(purpose)}
}
