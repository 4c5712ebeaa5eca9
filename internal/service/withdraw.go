package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hendrawan-dev/saldo-api/internal/currency"
	"github.com/hendrawan-dev/saldo-api/internal/domain"
	"github.com/hendrawan-dev/saldo-api/internal/logging"
	"github.com/hendrawan-dev/saldo-api/internal/request"
)

// WithdrawService coordinates the debit operation. The insufficient-funds
// check runs before any mutation; the balance (with its withdrawal metadata)
// moves first and the withdraw record is appended after, so a failed append
// restores the balance snapshot taken at the start of the call.
type WithdrawService struct {
	users     userDirectory
	withdraws withdrawLedger
	saldo     saldoStore
	locks     *OwnerLocks
}

func NewWithdrawService(users userDirectory, withdraws withdrawLedger, saldo saldoStore, locks *OwnerLocks) *WithdrawService {
	return &WithdrawService{users: users, withdraws: withdraws, saldo: saldo, locks: locks}
}

func (s *WithdrawService) GetWithdraws(ctx context.Context) (*domain.APIResponse[[]domain.Withdraw], error) {
	withdraws, err := s.withdraws.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetWithdraws: %w", err)
	}
	return domain.Success("Withdraw retrieved successfully", withdraws), nil
}

func (s *WithdrawService) GetWithdraw(ctx context.Context, id int) (*domain.APIResponse[*domain.Withdraw], error) {
	withdraw, err := s.withdraws.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Withdraw with id %d not found", id)
		}
		return nil, fmt.Errorf("GetWithdraw: %w", err)
	}
	return domain.Success("Withdraw retrieved successfully", withdraw), nil
}

func (s *WithdrawService) GetWithdrawUsers(ctx context.Context, userID int) (*domain.APIResponse[[]domain.Withdraw], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	withdraws, err := s.withdraws.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetWithdrawUsers: %w", err)
	}
	return domain.Success("Success", withdraws), nil
}

func (s *WithdrawService) GetWithdrawUser(ctx context.Context, userID int) (*domain.APIResponse[*domain.Withdraw], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	withdraw, err := s.withdraws.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Success[*domain.Withdraw]("Success", nil), nil
		}
		return nil, fmt.Errorf("GetWithdrawUser: %w", err)
	}
	return domain.Success("Success", withdraw), nil
}

func (s *WithdrawService) CreateWithdraw(ctx context.Context, req request.CreateWithdraw) (*domain.APIResponse[*domain.Withdraw], error) {
	log := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		log.Error("withdraw create validation failed", "error", err)
		return nil, err
	}

	unlock := s.locks.Lock(req.UserID)
	defer unlock()

	saldo, err := s.saldo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with user_id %d not found", req.UserID)
		}
		return nil, fmt.Errorf("CreateWithdraw: fetch saldo: %w", err)
	}

	if saldo.TotalBalance < req.WithdrawAmount {
		return nil, domain.ErrInsufficientBalance
	}

	newTotal := saldo.TotalBalance - req.WithdrawAmount
	if _, err := s.saldo.SetWithdrawal(ctx, req.UserID, newTotal, &req.WithdrawAmount, &req.WithdrawTime); err != nil {
		return nil, fmt.Errorf("CreateWithdraw: update saldo: %w", err)
	}

	withdraw, err := s.withdraws.Create(ctx, req.UserID, req.WithdrawAmount, req.WithdrawTime)
	if err != nil {
		// Put the pre-withdrawal total back and clear the metadata that was
		// written for the withdraw that never happened.
		if _, rbErr := s.saldo.SetWithdrawal(ctx, req.UserID, saldo.TotalBalance, nil, nil); rbErr != nil {
			log.Error("compensation failed: could not restore saldo",
				"user_id", req.UserID, "total_balance", saldo.TotalBalance, "error", rbErr)
		}
		return nil, fmt.Errorf("CreateWithdraw: %w", err)
	}

	log.Info("withdraw created",
		"withdraw_id", withdraw.WithdrawID,
		"user_id", withdraw.UserID,
		"amount", currency.FormatRupiahAmount(withdraw.WithdrawAmount),
	)
	return domain.Success("Withdraw created successfully", withdraw), nil
}

func (s *WithdrawService) UpdateWithdraw(ctx context.Context, req request.UpdateWithdraw) (*domain.APIResponse[*domain.Withdraw], error) {
	log := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		log.Error("withdraw update validation failed", "error", err)
		return nil, err
	}

	unlock := s.locks.Lock(req.UserID)
	defer unlock()

	// Read under the lock so the delta is computed against the record as it
	// is now, not a stale snapshot.
	existing, err := s.withdraws.GetByID(ctx, req.WithdrawID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Withdraw with id %d not found", req.WithdrawID)
		}
		return nil, fmt.Errorf("UpdateWithdraw: %w", err)
	}

	saldo, err := s.saldo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with user_id %d not found", req.UserID)
		}
		return nil, fmt.Errorf("UpdateWithdraw: fetch saldo: %w", err)
	}

	// Replacing the old amount with the new one shifts the balance by the
	// difference only.
	delta := req.WithdrawAmount - existing.WithdrawAmount
	newTotal := saldo.TotalBalance - delta
	if newTotal < 0 {
		return nil, domain.ErrInsufficientBalance
	}

	if _, err := s.saldo.SetWithdrawal(ctx, req.UserID, newTotal, &req.WithdrawAmount, &req.WithdrawTime); err != nil {
		return nil, fmt.Errorf("UpdateWithdraw: update saldo: %w", err)
	}

	updated, err := s.withdraws.Update(ctx, req.WithdrawID, req.WithdrawAmount, req.WithdrawTime)
	if err != nil {
		s.restoreSaldo(ctx, saldo)
		return nil, fmt.Errorf("UpdateWithdraw: %w", err)
	}

	log.Info("withdraw updated", "withdraw_id", updated.WithdrawID, "user_id", updated.UserID, "amount", updated.WithdrawAmount)
	return domain.Success("Withdraw updated successfully", updated), nil
}

func (s *WithdrawService) DeleteWithdraw(ctx context.Context, userID int) (*domain.APIResponse[any], error) {
	log := logging.FromContext(ctx)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	withdraw, err := s.withdraws.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Withdraw with user_id %d not found", userID)
		}
		return nil, fmt.Errorf("DeleteWithdraw: %w", err)
	}
	if err := s.withdraws.Delete(ctx, withdraw.WithdrawID); err != nil {
		return nil, fmt.Errorf("DeleteWithdraw: %w", err)
	}

	log.Info("withdraw deleted", "withdraw_id", withdraw.WithdrawID, "user_id", userID)
	return domain.Success[any]("Withdraw deleted successfully", nil), nil
}

// restoreSaldo writes back the balance snapshot taken before the attempt,
// withdrawal metadata included. Failures are logged; the original error is
// what the caller sees.
func (s *WithdrawService) restoreSaldo(ctx context.Context, snapshot *domain.Saldo) {
	if _, err := s.saldo.SetWithdrawal(ctx, snapshot.UserID, snapshot.TotalBalance, snapshot.WithdrawAmount, snapshot.WithdrawTime); err != nil {
		logging.FromContext(ctx).Error("compensation failed: could not restore saldo",
			"user_id", snapshot.UserID, "total_balance", snapshot.TotalBalance, "error", err)
	}
}
