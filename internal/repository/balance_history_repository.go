package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

// BalanceHistoryRepository reads the append-only ledger. There is no update
// or delete path; writes go through LedgerStore only.
type BalanceHistoryRepository interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.BalanceHistory, error)
}

type balanceHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceHistoryRepository builds repository.
func NewBalanceHistoryRepository(pool *pgxpool.Pool) BalanceHistoryRepository {
	return &balanceHistoryRepository{pool: pool}
}

func (r *balanceHistoryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.BalanceHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, user_id, balance_type, transaction_type, amount, balance_before, balance_after, description, performed_by, created_at
        FROM balance_history WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BalanceHistory
	for rows.Next() {
		var entry domain.BalanceHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.BalanceType,
			&entry.Transaction,
			&entry.Amount,
			&entry.BalanceBefore,
			&entry.BalanceAfter,
			&entry.Description,
			&entry.PerformedByID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
