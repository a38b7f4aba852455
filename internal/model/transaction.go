package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is a normalized bank statement row. Amount keeps the
// bank's sign convention: negative = spend.
type TransactionRecord struct {
	Date         time.Time
	Amount       decimal.Decimal
	Currency     string
	Description  string
	Category     string          // merchant category, when the bank provides one
	BankCurrency string          // the account's settlement currency
	BankAmount   decimal.Decimal // amount deducted in BankCurrency
	Format       string          // source format tag: n26, wise, ...
	Line         int             // row or record number in the source file
}
