package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hendrawan-dev/saldo-api/internal/currency"
	"github.com/hendrawan-dev/saldo-api/internal/domain"
	"github.com/hendrawan-dev/saldo-api/internal/logging"
	"github.com/hendrawan-dev/saldo-api/internal/request"
)

// TopupService coordinates the credit operation: validate, confirm the owner,
// append the topup record, then mutate the balance. The record is appended
// before the balance moves, so a failed balance step deletes or reverts the
// record before the original error is surfaced.
type TopupService struct {
	users  userDirectory
	topups topupLedger
	saldo  saldoStore
	locks  *OwnerLocks
}

func NewTopupService(users userDirectory, topups topupLedger, saldo saldoStore, locks *OwnerLocks) *TopupService {
	return &TopupService{users: users, topups: topups, saldo: saldo, locks: locks}
}

func (s *TopupService) GetTopups(ctx context.Context) (*domain.APIResponse[[]domain.Topup], error) {
	topups, err := s.topups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetTopups: %w", err)
	}
	return domain.Success("Topup retrieved successfully", topups), nil
}

func (s *TopupService) GetTopup(ctx context.Context, id int) (*domain.APIResponse[*domain.Topup], error) {
	topup, err := s.topups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Topup with id %d not found", id)
		}
		return nil, fmt.Errorf("GetTopup: %w", err)
	}
	return domain.Success("Topup retrieved successfully", topup), nil
}

func (s *TopupService) GetTopupUsers(ctx context.Context, userID int) (*domain.APIResponse[[]domain.Topup], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	topups, err := s.topups.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetTopupUsers: %w", err)
	}
	return domain.Success("Success", topups), nil
}

func (s *TopupService) GetTopupUser(ctx context.Context, userID int) (*domain.APIResponse[*domain.Topup], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	topup, err := s.topups.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Success[*domain.Topup]("Success", nil), nil
		}
		return nil, fmt.Errorf("GetTopupUser: %w", err)
	}
	return domain.Success("Success", topup), nil
}

func (s *TopupService) CreateTopup(ctx context.Context, req request.CreateTopup) (*domain.APIResponse[*domain.Topup], error) {
	log := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		log.Error("topup create validation failed", "error", err)
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", req.UserID)
	}

	// Card topups are referenced by a gateway-minted virtual card number, not
	// the caller-supplied one.
	topupNo := req.TopupNo
	if request.IsCardPaymentMethod(req.TopupMethod) {
		minted, err := currency.RandomCardNumber()
		if err != nil {
			return nil, fmt.Errorf("CreateTopup: %w", err)
		}
		topupNo = minted
	}

	unlock := s.locks.Lock(req.UserID)
	defer unlock()

	topup, err := s.topups.Create(ctx, req.UserID, topupNo, req.TopupAmount, req.TopupMethod, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("CreateTopup: %w", err)
	}

	saldo, err := s.saldo.GetByUserID(ctx, req.UserID)
	switch {
	case err == nil:
		if _, err := s.saldo.SetTotal(ctx, req.UserID, saldo.TotalBalance+topup.TopupAmount); err != nil {
			s.rollbackTopupCreate(ctx, topup.TopupID)
			return nil, fmt.Errorf("CreateTopup: update saldo: %w", err)
		}
	case errors.Is(err, domain.ErrNotFound):
		// First topup for this owner opens the balance record.
		if _, err := s.saldo.Create(ctx, req.UserID, topup.TopupAmount); err != nil {
			s.rollbackTopupCreate(ctx, topup.TopupID)
			return nil, fmt.Errorf("CreateTopup: create saldo: %w", err)
		}
	default:
		s.rollbackTopupCreate(ctx, topup.TopupID)
		return nil, fmt.Errorf("CreateTopup: fetch saldo: %w", err)
	}

	log.Info("topup created",
		"topup_id", topup.TopupID,
		"user_id", topup.UserID,
		"amount", currency.FormatRupiahAmount(topup.TopupAmount),
		"method", topup.TopupMethod,
	)
	return domain.Success("Topup created successfully", topup), nil
}

func (s *TopupService) UpdateTopup(ctx context.Context, req request.UpdateTopup) (*domain.APIResponse[*domain.Topup], error) {
	log := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		log.Error("topup update validation failed", "error", err)
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", req.UserID)
	}

	unlock := s.locks.Lock(req.UserID)
	defer unlock()

	// Read under the lock: the delta must come from the record as it is now,
	// not from a snapshot a concurrent update may have already replaced.
	existing, err := s.topups.GetByID(ctx, req.TopupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Topup with id %d not found", req.TopupID)
		}
		return nil, fmt.Errorf("UpdateTopup: %w", err)
	}

	delta := req.TopupAmount - existing.TopupAmount

	updated, err := s.topups.Update(ctx, req.TopupID, req.TopupAmount, req.TopupMethod)
	if err != nil {
		return nil, fmt.Errorf("UpdateTopup: %w", err)
	}

	saldo, err := s.saldo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.rollbackTopupAmount(ctx, existing)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with user_id %d not found", req.UserID)
		}
		return nil, fmt.Errorf("UpdateTopup: fetch saldo: %w", err)
	}

	if _, err := s.saldo.SetTotal(ctx, req.UserID, saldo.TotalBalance+delta); err != nil {
		s.rollbackTopupAmount(ctx, existing)
		return nil, fmt.Errorf("UpdateTopup: update saldo: %w", err)
	}

	log.Info("topup updated", "topup_id", updated.TopupID, "user_id", updated.UserID, "amount", updated.TopupAmount)
	return domain.Success("Topup updated successfully", updated), nil
}

func (s *TopupService) DeleteTopup(ctx context.Context, userID int) (*domain.APIResponse[any], error) {
	log := logging.FromContext(ctx)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	topup, err := s.topups.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Topup with user_id %d not found", userID)
		}
		return nil, fmt.Errorf("DeleteTopup: %w", err)
	}
	if err := s.topups.Delete(ctx, topup.TopupID); err != nil {
		return nil, fmt.Errorf("DeleteTopup: %w", err)
	}

	log.Info("topup deleted", "topup_id", topup.TopupID, "user_id", userID)
	return domain.Success[any]("Topup deleted successfully", nil), nil
}

// rollbackTopupCreate removes the record appended earlier in the same call.
// Compensation failures are logged, never escalated: the caller still sees
// the error that triggered the rollback.
func (s *TopupService) rollbackTopupCreate(ctx context.Context, topupID int) {
	if err := s.topups.Delete(ctx, topupID); err != nil {
		logging.FromContext(ctx).Error("compensation failed: could not delete topup record",
			"topup_id", topupID, "error", err)
	}
}

// rollbackTopupAmount reverts the record to its pre-update amount.
func (s *TopupService) rollbackTopupAmount(ctx context.Context, original *domain.Topup) {
	if _, err := s.topups.UpdateAmount(ctx, original.TopupID, original.TopupAmount); err != nil {
		logging.FromContext(ctx).Error("compensation failed: could not revert topup amount",
			"topup_id", original.TopupID, "amount", original.TopupAmount, "error", err)
	}
}
