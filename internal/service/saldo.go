package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
	"github.com/hendrawan-dev/saldo-api/internal/logging"
	"github.com/hendrawan-dev/saldo-api/internal/request"
)

// SaldoService owns the balance record lifecycle outside the three mutation
// coordinators: explicit creation, direct updates and teardown, plus the read
// surface.
type SaldoService struct {
	users userDirectory
	saldo saldoStore
}

func NewSaldoService(users userDirectory, saldo saldoStore) *SaldoService {
	return &SaldoService{users: users, saldo: saldo}
}

func (s *SaldoService) GetSaldos(ctx context.Context) (*domain.APIResponse[[]domain.Saldo], error) {
	saldos, err := s.saldo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetSaldos: %w", err)
	}
	return domain.Success("Saldos retrieved successfully", saldos), nil
}

func (s *SaldoService) GetSaldo(ctx context.Context, id int) (*domain.APIResponse[*domain.Saldo], error) {
	saldo, err := s.saldo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with id %d not found", id)
		}
		return nil, fmt.Errorf("GetSaldo: %w", err)
	}
	return domain.Success("Saldo retrieved successfully", saldo), nil
}

func (s *SaldoService) GetSaldoUsers(ctx context.Context, userID int) (*domain.APIResponse[[]domain.Saldo], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	saldos, err := s.saldo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetSaldoUsers: %w", err)
	}
	return domain.Success("Success", saldos), nil
}

// GetSaldoUser returns the owner's saldo, or a success envelope with no data
// when the owner has none yet.
func (s *SaldoService) GetSaldoUser(ctx context.Context, userID int) (*domain.APIResponse[*domain.Saldo], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	saldo, err := s.saldo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Success[*domain.Saldo]("Success", nil), nil
		}
		return nil, fmt.Errorf("GetSaldoUser: %w", err)
	}
	return domain.Success("Success", saldo), nil
}

func (s *SaldoService) CreateSaldo(ctx context.Context, req request.CreateSaldo) (*domain.APIResponse[*domain.Saldo], error) {
	log := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		log.Error("saldo create validation failed", "error", err)
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", req.UserID)
	}

	saldo, err := s.saldo.Create(ctx, req.UserID, req.TotalBalance)
	if err != nil {
		return nil, fmt.Errorf("CreateSaldo: %w", err)
	}

	log.Info("saldo created", "saldo_id", saldo.SaldoID, "user_id", saldo.UserID, "total_balance", saldo.TotalBalance)
	return domain.Success("Saldo created successfully", saldo), nil
}

func (s *SaldoService) UpdateSaldo(ctx context.Context, req request.UpdateSaldo) (*domain.APIResponse[*domain.Saldo], error) {
	log := logging.FromContext(ctx)

	if err := req.Validate(); err != nil {
		log.Error("saldo update validation failed", "error", err)
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", req.UserID)
	}
	if _, err := s.saldo.GetByID(ctx, req.SaldoID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with id %d not found", req.SaldoID)
		}
		return nil, fmt.Errorf("UpdateSaldo: %w", err)
	}

	updated, err := s.saldo.Update(ctx, req.SaldoID, req.TotalBalance, req.WithdrawAmount, req.WithdrawTime)
	if err != nil {
		return nil, fmt.Errorf("UpdateSaldo: %w", err)
	}

	log.Info("saldo updated", "saldo_id", updated.SaldoID, "total_balance", updated.TotalBalance)
	return domain.Success("Saldo updated successfully", updated), nil
}

func (s *SaldoService) DeleteSaldo(ctx context.Context, userID int) (*domain.APIResponse[any], error) {
	log := logging.FromContext(ctx)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, domain.NotFoundf("User with id %d not found", userID)
	}
	saldo, err := s.saldo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Saldo with user_id %d not found", userID)
		}
		return nil, fmt.Errorf("DeleteSaldo: %w", err)
	}
	if err := s.saldo.Delete(ctx, saldo.SaldoID); err != nil {
		return nil, fmt.Errorf("DeleteSaldo: %w", err)
	}

	log.Info("saldo deleted", "saldo_id", saldo.SaldoID, "user_id", userID)
	return domain.Success[any]("Saldo deleted successfully", nil), nil
}
