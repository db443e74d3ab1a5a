package domain

import "time"

// BalanceType identifies which running total on a user a ledger entry moved.
type BalanceType string

const (
	BalanceTypeBalance BalanceType = "BALANCE"
	BalanceTypeDebt    BalanceType = "DEBT_TO_COMPANY"
)

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	TransactionCredit TransactionType = "CREDIT"
	TransactionDebit  TransactionType = "DEBIT"
)

// BalanceHistory is an immutable audit record of a single balance or debt
// change. Rows are append-only: never updated or deleted. The invariant
// BalanceAfter == BalanceBefore +/- Amount holds per TransactionType.
type BalanceHistory struct {
	ID            string
	UserID        string
	BalanceType   BalanceType
	Transaction   TransactionType
	Amount        int64
	BalanceBefore int64
	BalanceAfter  int64
	Description   string
	PerformedByID string
	CreatedAt     time.Time
}
