package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
	"github.com/hendrawan-dev/saldo-api/internal/request"
)

func TestCreateSaldo(t *testing.T) {
	ctx := context.Background()

	t.Run("opens the account at the requested balance", func(t *testing.T) {
		svc := NewSaldoService(newFakeUsers(1), newFakeSaldoStore())

		resp, err := svc.CreateSaldo(ctx, request.CreateSaldo{UserID: 1, TotalBalance: 100000})
		require.NoError(t, err)
		assert.Equal(t, "Saldo created successfully", resp.Message)
		assert.Equal(t, int64(100000), resp.Data.TotalBalance)
		assert.Equal(t, 1, resp.Data.UserID)
	})

	t.Run("rejects opening balance below the minimum", func(t *testing.T) {
		saldo := newFakeSaldoStore()
		svc := NewSaldoService(newFakeUsers(1), saldo)

		_, err := svc.CreateSaldo(ctx, request.CreateSaldo{UserID: 1, TotalBalance: 40000})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "total balance must be greater than or equal to 50000", err.Error())

		// Nothing was written.
		_, err = saldo.GetByUserID(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects unknown owner", func(t *testing.T) {
		svc := NewSaldoService(newFakeUsers(), newFakeSaldoStore())

		_, err := svc.CreateSaldo(ctx, request.CreateSaldo{UserID: 9, TotalBalance: 100000})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "User with id 9 not found", err.Error())
	})

	t.Run("rejects a second saldo for the same owner", func(t *testing.T) {
		saldo := newFakeSaldoStore()
		saldo.seed(1, 100000)
		svc := NewSaldoService(newFakeUsers(1), saldo)

		_, err := svc.CreateSaldo(ctx, request.CreateSaldo{UserID: 1, TotalBalance: 60000})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSaldoExists)
	})
}

func TestGetSaldoUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the owner's saldo", func(t *testing.T) {
		saldo := newFakeSaldoStore()
		saldo.seed(1, 80000)
		svc := NewSaldoService(newFakeUsers(1), saldo)

		resp, err := svc.GetSaldoUser(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, resp.Data)
		assert.Equal(t, int64(80000), resp.Data.TotalBalance)
	})

	t.Run("owner without a saldo gets an empty success", func(t *testing.T) {
		svc := NewSaldoService(newFakeUsers(1), newFakeSaldoStore())

		resp, err := svc.GetSaldoUser(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Success", resp.Message)
		assert.Nil(t, resp.Data)
	})

	t.Run("unknown owner is an error", func(t *testing.T) {
		svc := NewSaldoService(newFakeUsers(), newFakeSaldoStore())

		_, err := svc.GetSaldoUser(ctx, 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteSaldo(t *testing.T) {
	ctx := context.Background()
	saldo := newFakeSaldoStore()
	saldo.seed(1, 100000)
	svc := NewSaldoService(newFakeUsers(1), saldo)

	resp, err := svc.DeleteSaldo(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Saldo deleted successfully", resp.Message)

	_, err = saldo.GetByUserID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
