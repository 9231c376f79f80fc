package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bureau account-type codes as reported on consumer tradelines.
const (
	AccountTypeAutoLoan            = 1
	AccountTypeHousingLoan         = 2
	AccountTypePropertyLoan        = 3
	AccountTypeLoanAgainstShares   = 4
	AccountTypePersonalLoan        = 5
	AccountTypeConsumerLoan        = 6
	AccountTypeGoldLoan            = 7
	AccountTypeEducationLoan       = 8
	AccountTypeProfessionalLoan    = 9
	AccountTypeCreditCard          = 10
	AccountTypeOverdraft           = 12
	AccountTypeTwoWheelerLoan      = 13
	AccountTypeCommercialVehicle   = 17
	AccountTypeUsedCarLoan         = 32
	AccountTypeBusinessLoanGeneral = 51
	AccountTypeMicrofinance        = 61

	// SecuredLoanAccountType is the code the primary auto loan heuristic keys on.
	SecuredLoanAccountType = AccountTypeAutoLoan
)

var securedAccountTypes = map[int]bool{
	AccountTypeAutoLoan:          true,
	AccountTypeHousingLoan:       true,
	AccountTypePropertyLoan:      true,
	AccountTypeLoanAgainstShares: true,
	AccountTypeGoldLoan:          true,
	AccountTypeTwoWheelerLoan:    true,
	AccountTypeCommercialVehicle: true,
	AccountTypeUsedCarLoan:       true,
}

var unsecuredAccountTypes = map[int]bool{
	AccountTypePersonalLoan:        true,
	AccountTypeConsumerLoan:        true,
	AccountTypeEducationLoan:       true,
	AccountTypeProfessionalLoan:    true,
	AccountTypeCreditCard:          true,
	AccountTypeOverdraft:           true,
	AccountTypeBusinessLoanGeneral: true,
	AccountTypeMicrofinance:        true,
}

func IsSecuredAccountType(code int) bool   { return securedAccountTypes[code] }
func IsUnsecuredAccountType(code int) bool { return unsecuredAccountTypes[code] }

// CreditTradeline is one account record from a credit bureau report.
type CreditTradeline struct {
	AccountTypeCode         int                 `json:"account_type_code"`
	CurrentBalance          decimal.Decimal     `json:"current_balance"`
	OriginalLoanAmount      decimal.Decimal     `json:"original_loan_amount"`
	RepaymentTenureMonths   int                 `json:"repayment_tenure_months"`
	ScheduledMonthlyPayment decimal.NullDecimal `json:"scheduled_monthly_payment"`
	InterestRatePercent     decimal.NullDecimal `json:"interest_rate_percent"`
	AmountPastDue           decimal.Decimal     `json:"amount_past_due"`
	OpenDate                time.Time           `json:"open_date"`
}

type TradelineBucket struct {
	Tradelines []CreditTradeline `json:"tradelines"`
	Count      int               `json:"count"`
	Total      decimal.Decimal   `json:"total"`
}

// TradelineClassification partitions a tradeline list. It is derived on
// every call and never stored.
type TradelineClassification struct {
	SecuredLoans    TradelineBucket  `json:"secured_loans"`
	UnsecuredLoans  TradelineBucket  `json:"unsecured_loans"`
	PrimaryAutoLoan *CreditTradeline `json:"primary_auto_loan,omitempty"`
}
