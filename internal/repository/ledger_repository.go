package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

// LedgerTx is the write surface available inside a ledger transaction.
type LedgerTx interface {
	BalanceForUpdate(ctx context.Context, userID string, balanceType domain.BalanceType) (int64, error)
	SetBalance(ctx context.Context, userID string, balanceType domain.BalanceType, value int64) error
	InsertHistory(ctx context.Context, entry *domain.BalanceHistory) error
}

// LedgerStore runs ledger mutations inside a single database transaction:
// the user-field update and the history insert either both persist or
// neither does.
type LedgerStore interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

type ledgerStore struct {
	pool *pgxpool.Pool
}

// NewLedgerStore returns a Postgres-backed implementation.
func NewLedgerStore(pool *pgxpool.Pool) LedgerStore {
	return &ledgerStore{pool: pool}
}

func (s *ledgerStore) WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(&ledgerTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type ledgerTx struct {
	tx pgx.Tx
}

func balanceColumn(balanceType domain.BalanceType) (string, error) {
	switch balanceType {
	case domain.BalanceTypeBalance:
		return "balance", nil
	case domain.BalanceTypeDebt:
		return "debt_to_company", nil
	}
	return "", fmt.Errorf("unknown balance type %q", balanceType)
}

func (t *ledgerTx) BalanceForUpdate(ctx context.Context, userID string, balanceType domain.BalanceType) (int64, error) {
	column, err := balanceColumn(balanceType)
	if err != nil {
		return 0, err
	}
	// Row lock held until commit so concurrent deltas serialize per user.
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id=$1 FOR UPDATE`, column)
	var value int64
	if err := t.tx.QueryRow(ctx, query, userID).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

func (t *ledgerTx) SetBalance(ctx context.Context, userID string, balanceType domain.BalanceType, value int64) error {
	column, err := balanceColumn(balanceType)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE users SET %s=$1, updated_at=NOW() WHERE id=$2`, column)
	cmd, err := t.tx.Exec(ctx, query, value, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (t *ledgerTx) InsertHistory(ctx context.Context, entry *domain.BalanceHistory) error {
	const query = `
        INSERT INTO balance_history (user_id, balance_type, transaction_type, amount, balance_before, balance_after, description, performed_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return t.tx.QueryRow(ctx, query,
		entry.UserID,
		entry.BalanceType,
		entry.Transaction,
		entry.Amount,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.Description,
		entry.PerformedByID,
	).Scan(&entry.ID, &entry.CreatedAt)
}
