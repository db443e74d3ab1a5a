package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

// TicketFilter captures ticket listing parameters.
type TicketFilter struct {
	TourID   *string
	SoldByID *string
	Statuses []domain.TicketStatus
	Limit    int
	Offset   int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ListUsedNumbers(ctx context.Context) (map[string]struct{}, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, tour_id, ticket_number, status, price, buyer_name, buyer_phone, sold_by,
               created_at, updated_at, used_at, cancelled_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (tour_id, ticket_number, status, price, buyer_name, buyer_phone, sold_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TourID,
		ticket.TicketNumber,
		ticket.Status,
		ticket.Price,
		ticket.BuyerName,
		ticket.BuyerPhone,
		ticket.SoldByID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, buyer_name=$2, buyer_phone=$3, used_at=$4, cancelled_at=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Status,
		ticket.BuyerName,
		ticket.BuyerPhone,
		ticket.UsedAt,
		ticket.CancelledAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.fetchSingle(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	return r.fetchSingle(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_number=$1`, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.TourID,
		&ticket.TicketNumber,
		&ticket.Status,
		&ticket.Price,
		&ticket.BuyerName,
		&ticket.BuyerPhone,
		&ticket.SoldByID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.UsedAt,
		&ticket.CancelledAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.TourID != nil {
		args = append(args, *filter.TourID)
		clauses = append(clauses, fmt.Sprintf("tour_id=$%d", len(args)))
	}
	if filter.SoldByID != nil {
		args = append(args, *filter.SoldByID)
		clauses = append(clauses, fmt.Sprintf("sold_by=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TourID,
			&ticket.TicketNumber,
			&ticket.Status,
			&ticket.Price,
			&ticket.BuyerName,
			&ticket.BuyerPhone,
			&ticket.SoldByID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.UsedAt,
			&ticket.CancelledAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

// ListUsedNumbers returns every assigned ticket number as a set. Cancelled
// tickets keep their number, so their numbers stay unavailable.
func (r *ticketRepository) ListUsedNumbers(ctx context.Context) (map[string]struct{}, error) {
	const query = `SELECT ticket_number FROM tickets WHERE ticket_number IS NOT NULL`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	used := make(map[string]struct{})
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, err
		}
		used[number] = struct{}{}
	}
	return used, rows.Err()
}
