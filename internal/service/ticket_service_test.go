package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tour-backoffice/internal/domain"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

type ticketFixture struct {
	svc     *TicketService
	ledger  *memLedgerStore
	tickets *memTicketRepo
	sales   *memSaleRepo
	manager *domain.User
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	ctx := context.Background()

	manager := &domain.User{ID: "m1", Role: domain.RoleManager}
	userRepo := &memUserRepo{users: map[string]*domain.User{"m1": manager}}

	ledgerStore := newMemLedgerStore()
	ledgerStore.setBalance("m1", domain.BalanceTypeBalance, 0)
	ledgerStore.setBalance("m1", domain.BalanceTypeDebt, 0)
	ledger := NewLedgerService(LedgerDependencies{Store: ledgerStore, UserRepo: userRepo})

	rangeRepo := &memRangeRepo{}
	ticketRepo := newMemTicketRepo()
	ranges := NewRangeService(RangeDependencies{
		RangeRepo:  rangeRepo,
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
	})
	_, err := ranges.CreateRange(ctx, RangeCreateInput{ManagerID: "m1", Start: "AA00000001", End: "AA00000005"}, "owner1")
	require.NoError(t, err)

	tourRepo := &memTourRepo{}
	require.NoError(t, tourRepo.Create(ctx, &domain.Tour{
		CategoryID: "cat-1",
		Name:       "City walk",
		Price:      300,
		Active:     true,
	}))

	saleRepo := &memSaleRepo{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: ticketRepo,
		TourRepo:   tourRepo,
		SaleRepo:   saleRepo,
		Ranges:     ranges,
		Ledger:     ledger,
	})
	return &ticketFixture{svc: svc, ledger: ledgerStore, tickets: ticketRepo, sales: saleRepo, manager: manager}
}

func TestSellTicketExplicitNumber(t *testing.T) {
	f := newTicketFixture(t)

	ticket, sale, err := f.svc.SellTicket(context.Background(), f.manager, SellInput{
		TourID:       "tour-1",
		TicketNumber: "aa00000002",
		BuyerName:    "Ivan",
	})
	require.NoError(t, err)

	require.NotNil(t, ticket.TicketNumber)
	assert.Equal(t, "AA00000002", *ticket.TicketNumber)
	assert.Equal(t, domain.TicketStatusSold, ticket.Status)
	assert.Equal(t, int64(300), ticket.Price)
	assert.Equal(t, ticket.ID, sale.TicketID)
	assert.NotEmpty(t, sale.Reference)

	// sale amount lands on the manager's debt through the ledger
	assert.Equal(t, int64(300), f.ledger.balances["m1"][domain.BalanceTypeDebt])
	require.Len(t, f.ledger.history, 1)
	assert.Equal(t, domain.TransactionCredit, f.ledger.history[0].Transaction)
	assert.Contains(t, f.ledger.history[0].Description, "AA00000002")
}

func TestSellTicketAutoAssignsFirstAvailable(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.SellTicket(ctx, f.manager, SellInput{
		TourID:       "tour-1",
		TicketNumber: "AA00000001",
		BuyerName:    "Ivan",
	})
	require.NoError(t, err)

	ticket, _, err := f.svc.SellTicket(ctx, f.manager, SellInput{
		TourID:    "tour-1",
		BuyerName: "Maria",
	})
	require.NoError(t, err)
	require.NotNil(t, ticket.TicketNumber)
	assert.Equal(t, "AA00000002", *ticket.TicketNumber)
}

func TestSellTicketRejectsNumberOutsideRanges(t *testing.T) {
	f := newTicketFixture(t)

	_, _, err := f.svc.SellTicket(context.Background(), f.manager, SellInput{
		TourID:       "tour-1",
		TicketNumber: "ZZ00000001",
		BuyerName:    "Ivan",
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestSellTicketRejectsUsedNumber(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.SellTicket(ctx, f.manager, SellInput{
		TourID:       "tour-1",
		TicketNumber: "AA00000002",
		BuyerName:    "Ivan",
	})
	require.NoError(t, err)

	_, _, err = f.svc.SellTicket(ctx, f.manager, SellInput{
		TourID:       "tour-1",
		TicketNumber: "AA00000002",
		BuyerName:    "Maria",
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestSellTicketLostNumberRaceMapsToConflict(t *testing.T) {
	// Two managers can be offered the same number; the unique constraint
	// on tickets.ticket_number arbitrates. The loser's insert failure must
	// surface as a conflict, not an internal error.
	f := newTicketFixture(t)
	f.tickets.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "tickets_ticket_number_key"}

	_, _, err := f.svc.SellTicket(context.Background(), f.manager, SellInput{
		TourID:       "tour-1",
		TicketNumber: "AA00000002",
		BuyerName:    "Ivan",
	})
	require.Error(t, err)
	mapped := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, 400, mapped.HTTPStatus)
}

func TestUseTicketTransitions(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	ticket, _, err := f.svc.SellTicket(ctx, f.manager, SellInput{
		TourID:    "tour-1",
		BuyerName: "Ivan",
	})
	require.NoError(t, err)

	used, err := f.svc.UseTicket(ctx, f.manager, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusUsed, used.Status)
	require.NotNil(t, used.UsedAt)

	// a used ticket cannot be used again
	_, err = f.svc.UseTicket(ctx, f.manager, ticket.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestCancelTicketReversesDebt(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	ticket, _, err := f.svc.SellTicket(ctx, f.manager, SellInput{
		TourID:    "tour-1",
		BuyerName: "Ivan",
	})
	require.NoError(t, err)
	require.Equal(t, int64(300), f.ledger.balances["m1"][domain.BalanceTypeDebt])

	cancelled, err := f.svc.CancelTicket(ctx, f.manager, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(0), f.ledger.balances["m1"][domain.BalanceTypeDebt])

	// the number stays consumed: cancelled tickets keep it out of availability
	used, err := f.tickets.ListUsedNumbers(ctx)
	require.NoError(t, err)
	_, stillUsed := used[*cancelled.TicketNumber]
	assert.True(t, stillUsed)
}

func TestCancelTicketForeignSaleForbiddenForManager(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	ticket, _, err := f.svc.SellTicket(ctx, f.manager, SellInput{
		TourID:    "tour-1",
		BuyerName: "Ivan",
	})
	require.NoError(t, err)

	other := &domain.User{ID: "m2", Role: domain.RoleManager}
	_, err = f.svc.CancelTicket(ctx, other, ticket.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}
