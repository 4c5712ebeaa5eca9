package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/hendrawan-dev/saldo-api/internal/config"
	"github.com/hendrawan-dev/saldo-api/internal/logging"
	"github.com/hendrawan-dev/saldo-api/internal/repository"
	"github.com/hendrawan-dev/saldo-api/internal/service"
)

// Services is the composition root handed to whichever transport sits above
// the engine. Everything is wired exactly once here; no globals.
type Services struct {
	Saldo    *service.SaldoService
	Topup    *service.TopupService
	Transfer *service.TransferService
	Withdraw *service.WithdrawService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("saldo-api", cfg.LogLevel, cfg.AppEnv)

	db, err := connectDB(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	svcs := buildServices(db)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /ready", handleReady(svcs))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func buildServices(db *sql.DB) *Services {
	users := repository.NewUserRepository(db)
	saldo := repository.NewSaldoRepository(db)
	topups := repository.NewTopupRepository(db)
	transfers := repository.NewTransferRepository(db)
	withdraws := repository.NewWithdrawRepository(db)

	locks := service.NewOwnerLocks()

	return &Services{
		Saldo:    service.NewSaldoService(users, saldo),
		Topup:    service.NewTopupService(users, topups, saldo, locks),
		Transfer: service.NewTransferService(users, transfers, saldo, locks),
		Withdraw: service.NewWithdrawService(users, withdraws, saldo, locks),
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("failed to write health response", "error", err)
	}
}

// handleReady exercises the wired engine end to end: a read through the saldo
// service proves config, pool and repositories are all usable.
func handleReady(svcs *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := svcs.Saldo.GetSaldos(r.Context()); err != nil {
			slog.Error("readiness check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			if err := json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"}); err != nil {
				slog.Error("failed to write readiness response", "error", err)
			}
			return
		}
		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ready"}); err != nil {
			slog.Error("failed to write readiness response", "error", err)
		}
	}
}

func connectDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connectDB: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeS) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeS) * time.Second)

	for i := range 30 {
		if err = db.Ping(); err == nil {
			return db, nil
		}
		slog.Info("waiting for database", "attempt", i+1)
		time.Sleep(time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("connectDB: gave up after 30 attempts: %w", err)
}
