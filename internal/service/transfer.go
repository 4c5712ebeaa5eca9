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

// TransferService coordinates the two-account movement. Both saldos are read
// and checked before the transfer record is appended; once balances start
// moving, any failure deletes the record and puts the sender back, so the
// conservation invariant (sender + receiver constant) holds on every exit
// path.
type TransferService struct {
	users     userDirectory
	transfers transferLedger
	saldo     saldoStore
	locks     *OwnerLocks
}

func NewTransferService(users userDirectory, transfers transferLedger, saldo saldoStore, locks *OwnerLocks) *TransferService {
	return &TransferService{users: users, transfers: transfers, saldo: saldo, locks: locks}
}

func (s *TransferService) GetTransfers(ctx context.Context) (*domain.APIResponse[[]domain.Transfer], error) {
	transfers, err := s.transfers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetTransfers: %w", err)
	}
	return domain.Success("Transfer retrieved successfully", transfers), nil
}

func (s *TransferService) GetTransfer(ctx context.Context, id int) (*domain.APIResponse[*domain.Transfer], error) {
	transfer, err := s.transfers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Transfer with id %d not found", id)
		}
		return nil, fmt.Errorf("GetTransfer: %w", err)
	}
	return domain.Success("Transfer retrieved successfully", transfer), nil
}

func (s *TransferService) GetTransferUsers(ctx context.Context, userID int) (*domain.APIResponse[[]domain.Transfer], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	transfers, err := s.transfers.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetTransferUsers: %w", err)
	}
	return domain.Success("Success", transfers), nil
}

func (s *TransferService) GetTransferUser(ctx context.Context, userID int) (*domain.APIResponse[*domain.Transfer], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	transfer, err := s.transfers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Success[*domain.Transfer]("Success", nil), nil
		}
		return nil, fmt.Errorf("GetTransferUser: %w", err)
	}
	return domain.Success("Success", transfer), nil
}

func (s *TransferService) CreateTransfer(ctx context.Context, req request.CreateTransfer) (*domain.APIResponse[*domain.Transfer], error) {
	log := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		log.Error("transfer create validation failed", "error", err)
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.TransferFrom); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", req.TransferFrom)
	}
	if _, err := s.users.GetByID(ctx, req.TransferTo); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", req.TransferTo)
	}

	unlock := s.locks.Lock(req.TransferFrom, req.TransferTo)
	defer unlock()

	sender, err := s.saldo.GetByUserID(ctx, req.TransferFrom)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with User id %d not found", req.TransferFrom)
		}
		return nil, fmt.Errorf("CreateTransfer: fetch sender saldo: %w", err)
	}
	if sender.TotalBalance < req.TransferAmount {
		return nil, domain.ErrInsufficientBalance
	}

	receiver, err := s.saldo.GetByUserID(ctx, req.TransferTo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with User id %d not found", req.TransferTo)
		}
		return nil, fmt.Errorf("CreateTransfer: fetch receiver saldo: %w", err)
	}

	transfer, err := s.transfers.Create(ctx, req.TransferFrom, req.TransferTo, req.TransferAmount)
	if err != nil {
		return nil, fmt.Errorf("CreateTransfer: %w", err)
	}

	if _, err := s.saldo.SetTotal(ctx, req.TransferFrom, sender.TotalBalance-req.TransferAmount); err != nil {
		s.rollbackTransferRecord(ctx, transfer.TransferID)
		return nil, fmt.Errorf("CreateTransfer: debit sender: %w", err)
	}

	if _, err := s.saldo.SetTotal(ctx, req.TransferTo, receiver.TotalBalance+req.TransferAmount); err != nil {
		// The sender was already debited; put the funds back before removing
		// the record so conservation holds.
		s.restoreTotal(ctx, req.TransferFrom, sender.TotalBalance)
		s.rollbackTransferRecord(ctx, transfer.TransferID)
		return nil, fmt.Errorf("CreateTransfer: credit receiver: %w", err)
	}

	log.Info("transfer created",
		"transfer_id", transfer.TransferID,
		"transfer_from", transfer.TransferFrom,
		"transfer_to", transfer.TransferTo,
		"amount", currency.FormatRupiahAmount(transfer.TransferAmount),
	)
	return domain.Success("Transfer created successfully", transfer), nil
}

func (s *TransferService) UpdateTransfer(ctx context.Context, req request.UpdateTransfer) (*domain.APIResponse[*domain.Transfer], error) {
	log := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		log.Error("transfer update validation failed", "error", err)
		return nil, err
	}

	// First read only determines which pair of owners to lock.
	existing, err := s.transfers.GetByID(ctx, req.TransferID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Transfer with id %d not found", req.TransferID)
		}
		return nil, fmt.Errorf("UpdateTransfer: %w", err)
	}

	unlock := s.locks.Lock(existing.TransferFrom, existing.TransferTo)
	defer unlock()

	// Re-read under the lock: the delta must come from the record as it is
	// now, not from the pre-lock snapshot a concurrent update may have
	// already replaced.
	existing, err = s.transfers.GetByID(ctx, req.TransferID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Transfer with id %d not found", req.TransferID)
		}
		return nil, fmt.Errorf("UpdateTransfer: %w", err)
	}

	delta := req.TransferAmount - existing.TransferAmount

	sender, err := s.saldo.GetByUserID(ctx, existing.TransferFrom)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with User id %d not found", existing.TransferFrom)
		}
		return nil, fmt.Errorf("UpdateTransfer: fetch sender saldo: %w", err)
	}

	newSenderTotal := sender.TotalBalance - delta
	if newSenderTotal < 0 {
		return nil, domain.Invalid("Insufficient balance for sender")
	}

	if _, err := s.saldo.SetTotal(ctx, existing.TransferFrom, newSenderTotal); err != nil {
		return nil, fmt.Errorf("UpdateTransfer: debit sender: %w", err)
	}

	receiver, err := s.saldo.GetByUserID(ctx, existing.TransferTo)
	if err != nil {
		s.restoreTotal(ctx, existing.TransferFrom, sender.TotalBalance)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with User id %d not found", existing.TransferTo)
		}
		return nil, fmt.Errorf("UpdateTransfer: fetch receiver saldo: %w", err)
	}

	if _, err := s.saldo.SetTotal(ctx, existing.TransferTo, receiver.TotalBalance+delta); err != nil {
		s.restoreTotal(ctx, existing.TransferFrom, sender.TotalBalance)
		return nil, fmt.Errorf("UpdateTransfer: credit receiver: %w", err)
	}

	updated, err := s.transfers.Update(ctx, req.TransferID, req.TransferFrom, req.TransferTo, req.TransferAmount)
	if err != nil {
		// Balances already moved; walk both back before surfacing the error.
		s.restoreTotal(ctx, existing.TransferTo, receiver.TotalBalance)
		s.restoreTotal(ctx, existing.TransferFrom, sender.TotalBalance)
		return nil, fmt.Errorf("UpdateTransfer: %w", err)
	}

	log.Info("transfer updated",
		"transfer_id", updated.TransferID,
		"amount", updated.TransferAmount,
	)
	return domain.Success("Transfer updated successfully", updated), nil
}

func (s *TransferService) DeleteTransfer(ctx context.Context, userID int) (*domain.APIResponse[any], error) {
	log := logging.FromContext(ctx)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	transfer, err := s.transfers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Transfer with user_id %d not found", userID)
		}
		return nil, fmt.Errorf("DeleteTransfer: %w", err)
	}
	if err := s.transfers.Delete(ctx, transfer.TransferID); err != nil {
		return nil, fmt.Errorf("DeleteTransfer: %w", err)
	}

	log.Info("transfer deleted", "transfer_id", transfer.TransferID, "user_id", userID)
	return domain.Success[any]("Transfer deleted successfully", nil), nil
}

func (s *TransferService) rollbackTransferRecord(ctx context.Context, transferID int) {
	if err := s.transfers.Delete(ctx, transferID); err != nil {
		logging.FromContext(ctx).Error("compensation failed: could not delete transfer record",
			"transfer_id", transferID, "error", err)
	}
}

func (s *TransferService) restoreTotal(ctx context.Context, userID int, total int64) {
	if _, err := s.saldo.SetTotal(ctx, userID, total); err != nil {
		logging.FromContext(ctx).Error("compensation failed: could not restore saldo total",
			"user_id", userID, "total_balance", total, "error", err)
	}
}
