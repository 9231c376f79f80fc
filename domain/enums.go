package domain

import "strings"

type LoanPurpose string

const (
	LoanPurposePurchase        LoanPurpose = "purchase"
	LoanPurposeRefinance       LoanPurpose = "refinance"
	LoanPurposeBalanceTransfer LoanPurpose = "balance-transfer"
)

func (p LoanPurpose) Valid() bool {
	switch p {
	case LoanPurposePurchase, LoanPurposeRefinance, LoanPurposeBalanceTransfer:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "salaried"
	EmploymentSelfEmployed EmploymentType = "self-employed"
)

func (e EmploymentType) Valid() bool {
	return e == EmploymentSalaried || e == EmploymentSelfEmployed
}

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelCNG      FuelType = "cng"
	FuelElectric FuelType = "electric"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelCNG, FuelElectric:
		return true
	}
	return false
}

var loanPurposeAliases = map[string]LoanPurpose{
	"purchase":         LoanPurposePurchase,
	"new-purchase":     LoanPurposePurchase,
	"refinance":        LoanPurposeRefinance,
	"balance-transfer": LoanPurposeBalanceTransfer,
	"balancetransfer":  LoanPurposeBalanceTransfer,
}

var employmentAliases = map[string]EmploymentType{
	"salaried":        EmploymentSalaried,
	"employed":        EmploymentSalaried,
	"self-employed":   EmploymentSelfEmployed,
	"selfemployed":    EmploymentSelfEmployed,
	"self-employment": EmploymentSelfEmployed,
	"business":        EmploymentSelfEmployed,
}

// Registry fuel descriptions ("PETROL/CNG", "ELECTRIC(BOV)") are folded into
// the four policy fuel columns.
var fuelAliases = map[string]FuelType{
	"petrol":         FuelPetrol,
	"petrol/hybrid":  FuelPetrol,
	"diesel":         FuelDiesel,
	"diesel/hybrid":  FuelDiesel,
	"cng":            FuelCNG,
	"cng-only":       FuelCNG,
	"petrol/cng":     FuelCNG,
	"electric":       FuelElectric,
	"electric(bov)":  FuelElectric,
	"ev":             FuelElectric,
	"battery":        FuelElectric,
	"pure-ev":        FuelElectric,
	"electric-(bov)": FuelElectric,
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.Join(strings.Fields(s), "-")
}

// ParseLoanPurpose maps caller input onto the closed loan purpose set.
func ParseLoanPurpose(s string) (LoanPurpose, error) {
	if p, ok := loanPurposeAliases[normalizeEnum(s)]; ok {
		return p, nil
	}
	return "", &UnknownEnumValueError{Kind: "loan purpose", Value: s}
}

// ParseEmploymentType maps caller input onto the closed employment set.
func ParseEmploymentType(s string) (EmploymentType, error) {
	if e, ok := employmentAliases[normalizeEnum(s)]; ok {
		return e, nil
	}
	return "", &UnknownEnumValueError{Kind: "employment type", Value: s}
}

// ParseFuelType maps caller or registry input onto the closed fuel set.
func ParseFuelType(s string) (FuelType, error) {
	if f, ok := fuelAliases[normalizeEnum(s)]; ok {
		return f, nil
	}
	return "", &UnknownEnumValueError{Kind: "fuel type", Value: s}
}
