package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

// TourFilter captures tour listing parameters.
type TourFilter struct {
	CategoryID *string
	Active     *bool
	Limit      int
	Offset     int
}

// TourRepository stores sellable tours.
type TourRepository interface {
	Create(ctx context.Context, tour *domain.Tour) error
	Update(ctx context.Context, tour *domain.Tour) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Tour, error)
	List(ctx context.Context, filter TourFilter) ([]domain.Tour, error)
}

type tourRepository struct {
	pool *pgxpool.Pool
}

// NewTourRepository builds repository.
func NewTourRepository(pool *pgxpool.Pool) TourRepository {
	return &tourRepository{pool: pool}
}

const tourColumns = `id, category_id, name, description, price, active, created_at, updated_at`

func (r *tourRepository) Create(ctx context.Context, tour *domain.Tour) error {
	const query = `
        INSERT INTO tours (category_id, name, description, price, active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		tour.CategoryID,
		tour.Name,
		tour.Description,
		tour.Price,
		tour.Active,
	).Scan(&tour.ID, &tour.CreatedAt, &tour.UpdatedAt)
}

func (r *tourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	const query = `
        UPDATE tours SET category_id=$1, name=$2, description=$3, price=$4, active=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		tour.CategoryID,
		tour.Name,
		tour.Description,
		tour.Price,
		tour.Active,
		tour.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tourRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tours WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tourRepository) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	var tour domain.Tour
	if err := r.pool.QueryRow(ctx, `SELECT `+tourColumns+` FROM tours WHERE id=$1`, id).Scan(
		&tour.ID,
		&tour.CategoryID,
		&tour.Name,
		&tour.Description,
		&tour.Price,
		&tour.Active,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *tourRepository) List(ctx context.Context, filter TourFilter) ([]domain.Tour, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tours WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		tourColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Tour
	for rows.Next() {
		var tour domain.Tour
		if err := rows.Scan(
			&tour.ID,
			&tour.CategoryID,
			&tour.Name,
			&tour.Description,
			&tour.Price,
			&tour.Active,
			&tour.CreatedAt,
			&tour.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tour)
	}
	return result, rows.Err()
}
