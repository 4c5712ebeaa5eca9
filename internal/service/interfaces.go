package service

import (
	"context"
	"time"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
)

// Narrow capability interfaces over the repositories. Concrete implementations
// are composed once at process start; tests swap in fakes for fault injection.

type userDirectory interface {
	GetByID(ctx context.Context, id int) (*domain.User, error)
}

type saldoStore interface {
	List(ctx context.Context) ([]domain.Saldo, error)
	GetByID(ctx context.Context, id int) (*domain.Saldo, error)
	GetByUserID(ctx context.Context, userID int) (*domain.Saldo, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.Saldo, error)
	Create(ctx context.Context, userID int, totalBalance int64) (*domain.Saldo, error)
	Update(ctx context.Context, id int, totalBalance int64, withdrawAmount *int64, withdrawTime *time.Time) (*domain.Saldo, error)
	SetTotal(ctx context.Context, userID int, newTotal int64) (*domain.Saldo, error)
	SetWithdrawal(ctx context.Context, userID int, newTotal int64, withdrawAmount *int64, withdrawTime *time.Time) (*domain.Saldo, error)
	Delete(ctx context.Context, id int) error
}

type topupLedger interface {
	List(ctx context.Context) ([]domain.Topup, error)
	GetByID(ctx context.Context, id int) (*domain.Topup, error)
	GetByUserID(ctx context.Context, userID int) (*domain.Topup, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.Topup, error)
	Create(ctx context.Context, userID int, topupNo string, amount int64, method string, topupTime time.Time) (*domain.Topup, error)
	Update(ctx context.Context, id int, amount int64, method string) (*domain.Topup, error)
	UpdateAmount(ctx context.Context, id int, amount int64) (*domain.Topup, error)
	Delete(ctx context.Context, id int) error
}

type transferLedger interface {
	List(ctx context.Context) ([]domain.Transfer, error)
	GetByID(ctx context.Context, id int) (*domain.Transfer, error)
	GetByUserID(ctx context.Context, userID int) (*domain.Transfer, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.Transfer, error)
	Create(ctx context.Context, from, to int, amount int64) (*domain.Transfer, error)
	Update(ctx context.Context, id, from, to int, amount int64) (*domain.Transfer, error)
	Delete(ctx context.Context, id int) error
}

type withdrawLedger interface {
	List(ctx context.Context) ([]domain.Withdraw, error)
	GetByID(ctx context.Context, id int) (*domain.Withdraw, error)
	GetByUserID(ctx context.Context, userID int) (*domain.Withdraw, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.Withdraw, error)
	Create(ctx context.Context, userID int, amount int64, withdrawTime time.Time) (*domain.Withdraw, error)
	Update(ctx context.Context, id int, amount int64, withdrawTime time.Time) (*domain.Withdraw, error)
	Delete(ctx context.Context, id int) error
}
