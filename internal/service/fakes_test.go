package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/repository"
)

type memRangeRepo struct {
	ranges []domain.TicketRange
}

func (r *memRangeRepo) Create(_ context.Context, rng *domain.TicketRange) error {
	rng.ID = fmt.Sprintf("range-%d", len(r.ranges)+1)
	r.ranges = append(r.ranges, *rng)
	return nil
}

func (r *memRangeRepo) GetByID(_ context.Context, id string) (*domain.TicketRange, error) {
	for _, rng := range r.ranges {
		if rng.ID == id {
			copied := rng
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memRangeRepo) ListByManager(_ context.Context, managerID string) ([]domain.TicketRange, error) {
	var result []domain.TicketRange
	for _, rng := range r.ranges {
		if rng.ManagerID == managerID {
			result = append(result, rng)
		}
	}
	return result, nil
}

func (r *memRangeRepo) ListAll(_ context.Context, _, _ int) ([]domain.TicketRange, error) {
	return append([]domain.TicketRange{}, r.ranges...), nil
}

type memTicketRepo struct {
	tickets   map[string]*domain.Ticket
	nextID    int
	createErr error
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", r.nextID)
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *memTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *memTicketRepo) GetByNumber(_ context.Context, number string) (*domain.Ticket, error) {
	for _, ticket := range r.tickets {
		if ticket.TicketNumber != nil && *ticket.TicketNumber == number {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.SoldByID != nil && ticket.SoldByID != *filter.SoldByID {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (r *memTicketRepo) ListUsedNumbers(_ context.Context) (map[string]struct{}, error) {
	used := make(map[string]struct{})
	for _, ticket := range r.tickets {
		if ticket.TicketNumber != nil {
			used[*ticket.TicketNumber] = struct{}{}
		}
	}
	return used, nil
}

type memTourRepo struct {
	tours map[string]*domain.Tour
}

func (r *memTourRepo) Create(_ context.Context, tour *domain.Tour) error {
	if r.tours == nil {
		r.tours = make(map[string]*domain.Tour)
	}
	tour.ID = fmt.Sprintf("tour-%d", len(r.tours)+1)
	copied := *tour
	r.tours[tour.ID] = &copied
	return nil
}

func (r *memTourRepo) Update(_ context.Context, tour *domain.Tour) error {
	if _, ok := r.tours[tour.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *tour
	r.tours[tour.ID] = &copied
	return nil
}

func (r *memTourRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tours[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tours, id)
	return nil
}

func (r *memTourRepo) GetByID(_ context.Context, id string) (*domain.Tour, error) {
	tour, ok := r.tours[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *tour
	return &copied, nil
}

func (r *memTourRepo) List(_ context.Context, _ repository.TourFilter) ([]domain.Tour, error) {
	var result []domain.Tour
	for _, tour := range r.tours {
		result = append(result, *tour)
	}
	return result, nil
}

type memSaleRepo struct {
	sales []domain.Sale
}

func (r *memSaleRepo) Create(_ context.Context, sale *domain.Sale) error {
	sale.ID = fmt.Sprintf("sale-%d", len(r.sales)+1)
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, id string) (*domain.Sale, error) {
	for _, sale := range r.sales {
		if sale.ID == id {
			copied := sale
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memSaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]domain.Sale, error) {
	var result []domain.Sale
	for _, sale := range r.sales {
		if filter.ManagerID != nil && sale.ManagerID != *filter.ManagerID {
			continue
		}
		result = append(result, sale)
	}
	return result, nil
}
