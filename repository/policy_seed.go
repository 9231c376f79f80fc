package repository

import (
	"github.com/shopspring/decimal"

	"loan-eligibility/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultPolicies is the lender table loaded at bootstrap when no policy
// store is configured or the store is empty.
func DefaultPolicies() []domain.LenderPolicy {
	return []domain.LenderPolicy{
		{
			ID: 1, LenderName: "HDFC Bank", ProductName: "Used Car Loan",
			PurchaseAllowed: true, RefinanceAllowed: true, BalanceTransferAllowed: true,
			PetrolAllowed: true, DieselAllowed: true, CNGAllowed: true, ElectricAllowed: true,
			SalariedAllowed: true, SelfEmployedAllowed: true,
			MinCibilScore: 700, MaxDPDAllowed: 0, MinTenureMonths: 12, MaxTenureMonths: 84,
			MinAge: 21, MaxAge: 65, MinIncome: d("25000"),
			RoiMin: d("9.5"), RoiMax: d("14"),
			PurchaseLTV: d("90"), RefinanceLTV: d("80"), BalanceTransferLTV: d("100"),
		},
		{
			ID: 2, LenderName: "ICICI Bank", ProductName: "Car Loan Top-Up",
			PurchaseAllowed: true, RefinanceAllowed: true, BalanceTransferAllowed: true,
			PetrolAllowed: true, DieselAllowed: true, CNGAllowed: true, ElectricAllowed: false,
			SalariedAllowed: true, SelfEmployedAllowed: false,
			MinCibilScore: 725, MaxDPDAllowed: 0, MinTenureMonths: 12, MaxTenureMonths: 60,
			MinAge: 23, MaxAge: 60, MinIncome: d("30000"),
			RoiMin: d("10.25"), RoiMax: d("13.5"),
			PurchaseLTV: d("85"), RefinanceLTV: d("75"), BalanceTransferLTV: d("100"),
		},
		{
			ID: 3, LenderName: "Axis Bank", ProductName: "Pre-Owned Car Loan",
			PurchaseAllowed: true, RefinanceAllowed: false, BalanceTransferAllowed: true,
			PetrolAllowed: true, DieselAllowed: true, CNGAllowed: true, ElectricAllowed: true,
			SalariedAllowed: true, SelfEmployedAllowed: true,
			MinCibilScore: 680, MaxDPDAllowed: 30, MinTenureMonths: 12, MaxTenureMonths: 72,
			MinAge: 21, MaxAge: 65, MinIncome: d("20000"),
			RoiMin: d("11"), RoiMax: d("15.5"),
			PurchaseLTV: d("80"), RefinanceLTV: d("0"), BalanceTransferLTV: d("95"),
		},
		{
			ID: 4, LenderName: "Mahindra Finance", ProductName: "Vehicle Refinance",
			PurchaseAllowed: true, RefinanceAllowed: true, BalanceTransferAllowed: false,
			PetrolAllowed: true, DieselAllowed: true, CNGAllowed: true, ElectricAllowed: false,
			SalariedAllowed: true, SelfEmployedAllowed: true,
			MinCibilScore: 600, MaxDPDAllowed: 60, MinTenureMonths: 12, MaxTenureMonths: 60,
			MinAge: 21, MaxAge: 70, MinIncome: d("15000"),
			RoiMin: d("14"), RoiMax: d("19"),
			PurchaseLTV: d("75"), RefinanceLTV: d("70"), BalanceTransferLTV: d("0"),
		},
		{
			ID: 5, LenderName: "Tata Capital", ProductName: "Green Drive",
			PurchaseAllowed: true, RefinanceAllowed: true, BalanceTransferAllowed: true,
			PetrolAllowed: false, DieselAllowed: false, CNGAllowed: true, ElectricAllowed: true,
			SalariedAllowed: true, SelfEmployedAllowed: true,
			MinCibilScore: 650, MaxDPDAllowed: 30, MinTenureMonths: 12, MaxTenureMonths: 84,
			MinAge: 21, MaxAge: 65, MinIncome: d("20000"),
			RoiMin: d("10.75"), RoiMax: d("14.25"),
			PurchaseLTV: d("90"), RefinanceLTV: d("80"), BalanceTransferLTV: d("100"),
		},
	}
}
