package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

// SaleFilter captures sale listing parameters.
type SaleFilter struct {
	ManagerID *string
	Limit     int
	Offset    int
}

// SaleRepository stores the money records produced by ticket sales.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]domain.Sale, error)
}

type saleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository builds repository.
func NewSaleRepository(pool *pgxpool.Pool) SaleRepository {
	return &saleRepository{pool: pool}
}

const saleColumns = `id, reference, ticket_id, manager_id, amount, created_at`

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	const query = `
        INSERT INTO sales (reference, ticket_id, manager_id, amount)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		sale.Reference,
		sale.TicketID,
		sale.ManagerID,
		sale.Amount,
	).Scan(&sale.ID, &sale.CreatedAt)
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	var sale domain.Sale
	if err := r.pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id=$1`, id).Scan(
		&sale.ID,
		&sale.Reference,
		&sale.TicketID,
		&sale.ManagerID,
		&sale.Amount,
		&sale.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, filter SaleFilter) ([]domain.Sale, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ManagerID != nil {
		args = append(args, *filter.ManagerID)
		clauses = append(clauses, fmt.Sprintf("manager_id=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM sales WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		saleColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(
			&sale.ID,
			&sale.Reference,
			&sale.TicketID,
			&sale.ManagerID,
			&sale.Amount,
			&sale.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sale)
	}
	return result, rows.Err()
}
