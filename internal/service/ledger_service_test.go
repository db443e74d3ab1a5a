package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// memLedgerStore is an in-memory LedgerStore with transactional semantics:
// writes are staged and only become visible when the callback succeeds.
type memLedgerStore struct {
	balances map[string]map[domain.BalanceType]int64
	history  []domain.BalanceHistory

	failSetBalance    bool
	failInsertHistory bool
}

func newMemLedgerStore() *memLedgerStore {
	return &memLedgerStore{balances: make(map[string]map[domain.BalanceType]int64)}
}

func (s *memLedgerStore) setBalance(userID string, bt domain.BalanceType, value int64) {
	if s.balances[userID] == nil {
		s.balances[userID] = make(map[domain.BalanceType]int64)
	}
	s.balances[userID][bt] = value
}

func (s *memLedgerStore) WithinTx(ctx context.Context, fn func(tx repository.LedgerTx) error) error {
	staged := &memLedgerTx{store: s, balances: make(map[string]map[domain.BalanceType]int64)}
	for user, byType := range s.balances {
		staged.balances[user] = make(map[domain.BalanceType]int64, len(byType))
		for bt, value := range byType {
			staged.balances[user][bt] = value
		}
	}
	if err := fn(staged); err != nil {
		return err
	}
	s.balances = staged.balances
	s.history = append(s.history, staged.history...)
	return nil
}

type memLedgerTx struct {
	store    *memLedgerStore
	balances map[string]map[domain.BalanceType]int64
	history  []domain.BalanceHistory
}

func (t *memLedgerTx) BalanceForUpdate(_ context.Context, userID string, bt domain.BalanceType) (int64, error) {
	byType, ok := t.balances[userID]
	if !ok {
		return 0, errors.New("no such user")
	}
	return byType[bt], nil
}

func (t *memLedgerTx) SetBalance(_ context.Context, userID string, bt domain.BalanceType, value int64) error {
	if t.store.failSetBalance {
		return errors.New("simulated write failure")
	}
	if t.balances[userID] == nil {
		t.balances[userID] = make(map[domain.BalanceType]int64)
	}
	t.balances[userID][bt] = value
	return nil
}

func (t *memLedgerTx) InsertHistory(_ context.Context, entry *domain.BalanceHistory) error {
	if t.store.failInsertHistory {
		return errors.New("simulated insert failure")
	}
	t.history = append(t.history, *entry)
	return nil
}

// memUserRepo backs the reset role checks.
type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) Create(context.Context, *domain.User) error { return errors.New("not implemented") }
func (r *memUserRepo) Update(context.Context, *domain.User) error { return errors.New("not implemented") }
func (r *memUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (r *memUserRepo) List(context.Context, repository.UserFilter) ([]domain.User, error) {
	return nil, errors.New("not implemented")
}
func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.New("no such user")
	}
	return user, nil
}

func newLedgerFixture(users ...*domain.User) (*LedgerService, *memLedgerStore) {
	store := newMemLedgerStore()
	repo := &memUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
		store.setBalance(user.ID, domain.BalanceTypeBalance, user.Balance)
		store.setBalance(user.ID, domain.BalanceTypeDebt, user.DebtToCompany)
	}
	svc := NewLedgerService(LedgerDependencies{Store: store, UserRepo: repo})
	return svc, store
}

func TestApplyDeltaDebit(t *testing.T) {
	manager := &domain.User{ID: "m1", Role: domain.RoleManager, Balance: 250}
	svc, store := newLedgerFixture(manager)

	entry, err := svc.ApplyDelta(context.Background(), LedgerInput{
		UserID:        "m1",
		BalanceType:   domain.BalanceTypeBalance,
		Transaction:   domain.TransactionDebit,
		Amount:        100,
		Description:   "payout",
		PerformedByID: "owner1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(250), entry.BalanceBefore)
	assert.Equal(t, int64(100), entry.Amount)
	assert.Equal(t, int64(150), entry.BalanceAfter)
	assert.Equal(t, int64(150), store.balances["m1"][domain.BalanceTypeBalance])
	require.Len(t, store.history, 1)
	assert.Equal(t, "payout", store.history[0].Description)
}

func TestApplyDeltaCredit(t *testing.T) {
	manager := &domain.User{ID: "m1", Role: domain.RoleManager, DebtToCompany: 40}
	svc, store := newLedgerFixture(manager)

	entry, err := svc.ApplyDelta(context.Background(), LedgerInput{
		UserID:        "m1",
		BalanceType:   domain.BalanceTypeDebt,
		Transaction:   domain.TransactionCredit,
		Amount:        60,
		Description:   "ticket sale",
		PerformedByID: "m1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40), entry.BalanceBefore)
	assert.Equal(t, int64(100), entry.BalanceAfter)
	assert.Equal(t, int64(100), store.balances["m1"][domain.BalanceTypeDebt])
}

func TestApplyDeltaAtomicity(t *testing.T) {
	manager := &domain.User{ID: "m1", Role: domain.RoleManager, Balance: 250}
	svc, store := newLedgerFixture(manager)
	store.failSetBalance = true

	_, err := svc.ApplyDelta(context.Background(), LedgerInput{
		UserID:        "m1",
		BalanceType:   domain.BalanceTypeBalance,
		Transaction:   domain.TransactionDebit,
		Amount:        100,
		Description:   "payout",
		PerformedByID: "owner1",
	})
	require.Error(t, err)

	// neither the ledger row nor the balance update is visible
	assert.Empty(t, store.history)
	assert.Equal(t, int64(250), store.balances["m1"][domain.BalanceTypeBalance])
}

func TestApplyDeltaRejectsNegativeAmount(t *testing.T) {
	svc, _ := newLedgerFixture(&domain.User{ID: "m1", Role: domain.RoleManager})

	_, err := svc.ApplyDelta(context.Background(), LedgerInput{
		UserID:      "m1",
		BalanceType: domain.BalanceTypeBalance,
		Transaction: domain.TransactionDebit,
		Amount:      -5,
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
}

func TestResetBalanceZeroesField(t *testing.T) {
	promoter := &domain.User{ID: "p1", Role: domain.RolePromoter, Balance: 730}
	svc, store := newLedgerFixture(promoter)

	entry, err := svc.ResetBalance(context.Background(), "p1", "season settled in cash", "owner1")
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionDebit, entry.Transaction)
	assert.Equal(t, int64(730), entry.Amount)
	assert.Equal(t, int64(730), entry.BalanceBefore)
	assert.Equal(t, int64(0), entry.BalanceAfter)
	assert.Equal(t, "season settled in cash", entry.Description)
	assert.Equal(t, int64(0), store.balances["p1"][domain.BalanceTypeBalance])
}

func TestResetDebtRejectsNonManager(t *testing.T) {
	promoter := &domain.User{ID: "p1", Role: domain.RolePromoter, DebtToCompany: 10}
	svc, store := newLedgerFixture(promoter)

	_, err := svc.ResetDebt(context.Background(), "p1", "cleanup", "owner1")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Empty(t, store.history)
}

func TestResetBalanceRejectsOwnerTarget(t *testing.T) {
	owner := &domain.User{ID: "o1", Role: domain.RoleOwner, Balance: 100}
	svc, _ := newLedgerFixture(owner)

	_, err := svc.ResetBalance(context.Background(), "o1", "cleanup", "o1")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestResetRequiresReason(t *testing.T) {
	manager := &domain.User{ID: "m1", Role: domain.RoleManager, DebtToCompany: 55}
	svc, _ := newLedgerFixture(manager)

	_, err := svc.ResetDebt(context.Background(), "m1", "   ", "owner1")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestLedgerReconstructsBalance(t *testing.T) {
	manager := &domain.User{ID: "m1", Role: domain.RoleManager}
	svc, store := newLedgerFixture(manager)
	ctx := context.Background()

	deltas := []LedgerInput{
		{UserID: "m1", BalanceType: domain.BalanceTypeBalance, Transaction: domain.TransactionCredit, Amount: 500, Description: "a", PerformedByID: "o"},
		{UserID: "m1", BalanceType: domain.BalanceTypeBalance, Transaction: domain.TransactionDebit, Amount: 120, Description: "b", PerformedByID: "o"},
		{UserID: "m1", BalanceType: domain.BalanceTypeBalance, Transaction: domain.TransactionCredit, Amount: 70, Description: "c", PerformedByID: "o"},
	}
	for _, input := range deltas {
		_, err := svc.ApplyDelta(ctx, input)
		require.NoError(t, err)
	}

	// the sum of ledger deltas reconstructs the running total
	var sum int64
	for _, entry := range store.history {
		if entry.Transaction == domain.TransactionCredit {
			sum += entry.Amount
		} else {
			sum -= entry.Amount
		}
	}
	assert.Equal(t, int64(450), sum)
	assert.Equal(t, sum, store.balances["m1"][domain.BalanceTypeBalance])
}
