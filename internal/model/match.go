package model

// MatchState tags a reconciliation pairing.
type MatchState string

const (
	StateMatched   MatchState = "matched"
	StateDiaryOnly MatchState = "diary-only"
	StateBankOnly  MatchState = "bank-only"
)

// MatchResult pairs at most one diary expense with at most one bank
// transaction. It is a report row only; matching never mutates sources.
type MatchResult struct {
	Expense     *ExpenseRecord
	Transaction *TransactionRecord
	State       MatchState
	DateDiff    int // whole days between the pair, 0 when unpaired
}
