package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/events"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// LedgerService applies balance and debt movements. Every mutation of a
// user's running totals goes through ApplyDelta, which records an immutable
// BalanceHistory row in the same transaction as the field update.
type LedgerService struct {
	store      repository.LedgerStore
	users      repository.UserRepository
	history    repository.BalanceHistoryRepository
	dispatcher events.Dispatcher
}

// LedgerDependencies bundles requirements for the ledger service.
type LedgerDependencies struct {
	Store       repository.LedgerStore
	UserRepo    repository.UserRepository
	HistoryRepo repository.BalanceHistoryRepository
	Dispatcher  events.Dispatcher
}

// NewLedgerService builds the service.
func NewLedgerService(deps LedgerDependencies) *LedgerService {
	return &LedgerService{
		store:      deps.Store,
		users:      deps.UserRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// LedgerInput describes one movement to apply.
type LedgerInput struct {
	UserID        string
	BalanceType   domain.BalanceType
	Transaction   domain.TransactionType
	Amount        int64
	Description   string
	PerformedByID string
}

// ApplyDelta records a single credit or debit. The balance snapshot is read
// under a row lock, the history row is inserted and the user field updated
// inside one transaction. No negative-balance guard is applied here; callers
// decide whether negative totals are acceptable.
func (s *LedgerService) ApplyDelta(ctx context.Context, input LedgerInput) (*domain.BalanceHistory, error) {
	if input.Amount < 0 {
		return nil, apperrors.NewValidationError("amount must not be negative", nil)
	}
	if input.Transaction != domain.TransactionCredit && input.Transaction != domain.TransactionDebit {
		return nil, apperrors.NewValidationError("transaction type must be credit or debit", nil)
	}
	if input.BalanceType != domain.BalanceTypeBalance && input.BalanceType != domain.BalanceTypeDebt {
		return nil, apperrors.NewValidationError("unknown balance type", nil)
	}

	var entry *domain.BalanceHistory
	err := s.store.WithinTx(ctx, func(tx repository.LedgerTx) error {
		before, err := tx.BalanceForUpdate(ctx, input.UserID, input.BalanceType)
		if err != nil {
			return err
		}

		after := before + input.Amount
		if input.Transaction == domain.TransactionDebit {
			after = before - input.Amount
		}

		entry = &domain.BalanceHistory{
			UserID:        input.UserID,
			BalanceType:   input.BalanceType,
			Transaction:   input.Transaction,
			Amount:        input.Amount,
			BalanceBefore: before,
			BalanceAfter:  after,
			Description:   strings.TrimSpace(input.Description),
			PerformedByID: input.PerformedByID,
		}
		if err := tx.InsertHistory(ctx, entry); err != nil {
			return err
		}
		return tx.SetBalance(ctx, input.UserID, input.BalanceType, after)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBalanceAdjusted,
		ActorID:   input.PerformedByID,
		Timestamp: time.Now(),
		Payload: events.BalanceAdjustedPayload{
			UserID:        entry.UserID,
			BalanceType:   entry.BalanceType,
			Transaction:   entry.Transaction,
			Amount:        entry.Amount,
			BalanceAfter:  entry.BalanceAfter,
			Description:   entry.Description,
			PerformedByID: entry.PerformedByID,
		},
	})
	return entry, nil
}

// ResetBalance debits the target's full balance down to zero with a single
// ledger entry carrying the operator's reason. Targets must be managers or
// promoters; other roles carry no resettable balance.
func (s *LedgerService) ResetBalance(ctx context.Context, targetID, reason, performedBy string) (*domain.BalanceHistory, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.Role != domain.RoleManager && target.Role != domain.RolePromoter {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("balance reset requires a manager or promoter account, target is %s", target.Role), nil)
	}
	return s.reset(ctx, target, domain.BalanceTypeBalance, reason, performedBy)
}

// ResetDebt debits the target's full debt_to_company down to zero. Only
// managers carry company debt.
func (s *LedgerService) ResetDebt(ctx context.Context, targetID, reason, performedBy string) (*domain.BalanceHistory, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.Role != domain.RoleManager {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("debt reset requires a manager account, target is %s", target.Role), nil)
	}
	return s.reset(ctx, target, domain.BalanceTypeDebt, reason, performedBy)
}

// reset debits the full current value in one entry. The amount is taken
// from the locked row, not the caller's snapshot, so balance_after is
// always exactly zero.
func (s *LedgerService) reset(ctx context.Context, target *domain.User, balanceType domain.BalanceType, reason, performedBy string) (*domain.BalanceHistory, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("reset reason is required", nil)
	}

	var entry *domain.BalanceHistory
	err := s.store.WithinTx(ctx, func(tx repository.LedgerTx) error {
		before, err := tx.BalanceForUpdate(ctx, target.ID, balanceType)
		if err != nil {
			return err
		}
		entry = &domain.BalanceHistory{
			UserID:        target.ID,
			BalanceType:   balanceType,
			Transaction:   domain.TransactionDebit,
			Amount:        before,
			BalanceBefore: before,
			BalanceAfter:  0,
			Description:   strings.TrimSpace(reason),
			PerformedByID: performedBy,
		}
		if err := tx.InsertHistory(ctx, entry); err != nil {
			return err
		}
		return tx.SetBalance(ctx, target.ID, balanceType, 0)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBalanceAdjusted,
		ActorID:   performedBy,
		Timestamp: time.Now(),
		Payload: events.BalanceAdjustedPayload{
			UserID:        entry.UserID,
			BalanceType:   entry.BalanceType,
			Transaction:   entry.Transaction,
			Amount:        entry.Amount,
			BalanceAfter:  entry.BalanceAfter,
			Description:   entry.Description,
			PerformedByID: entry.PerformedByID,
		},
	})
	return entry, nil
}

// History lists ledger entries for a user, newest first.
func (s *LedgerService) History(ctx context.Context, userID string, limit, offset int) ([]domain.BalanceHistory, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.history.ListByUser(ctx, userID, limit, offset)
}

func (s *LedgerService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
