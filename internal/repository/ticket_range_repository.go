package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

// TicketRangeRepository stores assigned ticket-number blocks. Ranges are
// immutable: there is no update method.
type TicketRangeRepository interface {
	Create(ctx context.Context, rng *domain.TicketRange) error
	GetByID(ctx context.Context, id string) (*domain.TicketRange, error)
	ListByManager(ctx context.Context, managerID string) ([]domain.TicketRange, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.TicketRange, error)
}

type ticketRangeRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRangeRepository instantiates repository.
func NewTicketRangeRepository(pool *pgxpool.Pool) TicketRangeRepository {
	return &ticketRangeRepository{pool: pool}
}

const rangeColumns = `id, manager_id, range_start, range_end, created_by, created_at`

func (r *ticketRangeRepository) Create(ctx context.Context, rng *domain.TicketRange) error {
	const query = `
        INSERT INTO ticket_ranges (manager_id, range_start, range_end, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		rng.ManagerID,
		rng.Start,
		rng.End,
		rng.CreatedByID,
	).Scan(&rng.ID, &rng.CreatedAt)
}

func (r *ticketRangeRepository) GetByID(ctx context.Context, id string) (*domain.TicketRange, error) {
	var rng domain.TicketRange
	if err := r.pool.QueryRow(ctx, `SELECT `+rangeColumns+` FROM ticket_ranges WHERE id=$1`, id).Scan(
		&rng.ID,
		&rng.ManagerID,
		&rng.Start,
		&rng.End,
		&rng.CreatedByID,
		&rng.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rng, nil
}

func (r *ticketRangeRepository) ListByManager(ctx context.Context, managerID string) ([]domain.TicketRange, error) {
	const query = `SELECT ` + rangeColumns + ` FROM ticket_ranges WHERE manager_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRanges(rows)
}

func (r *ticketRangeRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.TicketRange, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + rangeColumns + ` FROM ticket_ranges ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRanges(rows)
}

func scanRanges(rows pgx.Rows) ([]domain.TicketRange, error) {
	var result []domain.TicketRange
	for rows.Next() {
		var rng domain.TicketRange
		if err := rows.Scan(
			&rng.ID,
			&rng.ManagerID,
			&rng.Start,
			&rng.End,
			&rng.CreatedByID,
			&rng.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rng)
	}
	return result, rows.Err()
}
