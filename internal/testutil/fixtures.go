package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
)

// SeedTestUser inserts an account owner. Passwords are hashed the way the
// auth layer above this engine would store them; the engine itself never
// reads them.
func SeedTestUser(t *testing.T, db *sql.DB, firstname, lastname, email string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	var u domain.User
	err = db.QueryRow(
		`INSERT INTO users (firstname, lastname, email, password, noc_transfer)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING user_id, firstname, lastname, email, created_at, updated_at`,
		firstname, lastname, email, string(hash), uuid.NewString(),
	).Scan(&u.UserID, &u.Firstname, &u.Lastname, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return &u
}

// SeedTestSaldo opens a balance record for the owner.
func SeedTestSaldo(t *testing.T, db *sql.DB, userID int, totalBalance int64) *domain.Saldo {
	t.Helper()

	var s domain.Saldo
	err := db.QueryRow(
		`INSERT INTO saldo (user_id, total_balance)
		 VALUES ($1, $2)
		 RETURNING saldo_id, user_id, total_balance, created_at, updated_at`,
		userID, totalBalance,
	).Scan(&s.SaldoID, &s.UserID, &s.TotalBalance, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		t.Fatalf("seed saldo for user %d: %v", userID, err)
	}
	return &s
}

func GetSaldoBalance(t *testing.T, db *sql.DB, userID int) int64 {
	t.Helper()

	var balance int64
	err := db.QueryRow(`SELECT total_balance FROM saldo WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		t.Fatalf("get saldo balance for user %d: %v", userID, err)
	}
	return balance
}

func CountTopups(t *testing.T, db *sql.DB, userID int) int {
	t.Helper()

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM topups WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		t.Fatalf("count topups for user %d: %v", userID, err)
	}
	return n
}

func CountSaldoRows(t *testing.T, db *sql.DB, userID int) int {
	t.Helper()

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM saldo WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		t.Fatalf("count saldo rows for user %d: %v", userID, err)
	}
	return n
}

// UniqueEmail builds a collision-free address for parallel test users.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@test.local", prefix, uuid.NewString()[:8])
}
