package service

import (
	"context"
	"sync"
	"time"

	"github.com/hendrawan-dev/saldo-api/internal/domain"
)

// In-memory fakes over the repository interfaces. Each carries injectable
// errors so the compensation paths can be forced without a database.

type fakeUsers struct {
	users map[int]*domain.User
}

func newFakeUsers(ids ...int) *fakeUsers {
	f := &fakeUsers{users: make(map[int]*domain.User)}
	for _, id := range ids {
		f.users[id] = &domain.User{UserID: id, Firstname: "Test", Lastname: "User", Email: "test@example.com"}
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.NotFoundf("User with id %d not found", id)
	}
	cp := *u
	return &cp, nil
}

type fakeSaldoStore struct {
	mu     sync.Mutex
	nextID int
	byUser map[int]*domain.Saldo

	createErr        error
	updateErr        error
	deleteErr        error
	setWithdrawalErr error
	// setTotalErrFor fails SetTotal for specific owners only, leaving the
	// other legs of a multi-account mutation free to succeed.
	setTotalErrFor map[int]error
}

func newFakeSaldoStore() *fakeSaldoStore {
	return &fakeSaldoStore{byUser: make(map[int]*domain.Saldo), setTotalErrFor: make(map[int]error)}
}

func (f *fakeSaldoStore) seed(userID int, totalBalance int64) *domain.Saldo {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s := &domain.Saldo{SaldoID: f.nextID, UserID: userID, TotalBalance: totalBalance}
	f.byUser[userID] = s
	return s
}

func (f *fakeSaldoStore) balance(userID int) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byUser[userID].TotalBalance
}

func (f *fakeSaldoStore) List(_ context.Context) ([]domain.Saldo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Saldo, 0, len(f.byUser))
	for _, s := range f.byUser {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSaldoStore) GetByID(_ context.Context, id int) (*domain.Saldo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byUser {
		if s.SaldoID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.NotFoundf("Saldo with id %d not found", id)
}

func (f *fakeSaldoStore) GetByUserID(_ context.Context, userID int) (*domain.Saldo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byUser[userID]
	if !ok {
		return nil, domain.NotFoundf("Saldo with user_id %d not found", userID)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSaldoStore) ListByUserID(ctx context.Context, userID int) ([]domain.Saldo, error) {
	s, err := f.GetByUserID(ctx, userID)
	if err != nil {
		return []domain.Saldo{}, nil
	}
	return []domain.Saldo{*s}, nil
}

func (f *fakeSaldoStore) Create(_ context.Context, userID int, totalBalance int64) (*domain.Saldo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byUser[userID]; ok {
		return nil, domain.ErrSaldoExists
	}
	f.nextID++
	s := &domain.Saldo{SaldoID: f.nextID, UserID: userID, TotalBalance: totalBalance}
	f.byUser[userID] = s
	cp := *s
	return &cp, nil
}

func (f *fakeSaldoStore) Update(_ context.Context, id int, totalBalance int64, withdrawAmount *int64, withdrawTime *time.Time) (*domain.Saldo, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byUser {
		if s.SaldoID == id {
			s.TotalBalance = totalBalance
			s.WithdrawAmount = withdrawAmount
			s.WithdrawTime = withdrawTime
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.NotFoundf("Saldo with id %d not found", id)
}

func (f *fakeSaldoStore) SetTotal(_ context.Context, userID int, newTotal int64) (*domain.Saldo, error) {
	if err := f.setTotalErrFor[userID]; err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byUser[userID]
	if !ok {
		return nil, domain.NotFoundf("Saldo with user_id %d not found", userID)
	}
	s.TotalBalance = newTotal
	cp := *s
	return &cp, nil
}

func (f *fakeSaldoStore) SetWithdrawal(_ context.Context, userID int, newTotal int64, withdrawAmount *int64, withdrawTime *time.Time) (*domain.Saldo, error) {
	if f.setWithdrawalErr != nil {
		return nil, f.setWithdrawalErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byUser[userID]
	if !ok {
		return nil, domain.NotFoundf("Saldo with user_id %d not found", userID)
	}
	s.TotalBalance = newTotal
	s.WithdrawAmount = withdrawAmount
	s.WithdrawTime = withdrawTime
	cp := *s
	return &cp, nil
}

func (f *fakeSaldoStore) Delete(_ context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, s := range f.byUser {
		if s.SaldoID == id {
			delete(f.byUser, userID)
			return nil
		}
	}
	return domain.NotFoundf("Saldo with id %d not found", id)
}

type fakeTopupLedger struct {
	mu      sync.Mutex
	nextID  int
	records map[int]*domain.Topup

	createErr       error
	updateErr       error
	updateAmountErr error
	deleteErr       error
}

func newFakeTopupLedger() *fakeTopupLedger {
	return &fakeTopupLedger{records: make(map[int]*domain.Topup)}
}

func (f *fakeTopupLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeTopupLedger) List(_ context.Context) ([]domain.Topup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Topup, 0, len(f.records))
	for _, t := range f.records {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTopupLedger) GetByID(_ context.Context, id int) (*domain.Topup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.records[id]
	if !ok {
		return nil, domain.NotFoundf("Topup with id %d not found", id)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTopupLedger) GetByUserID(_ context.Context, userID int) (*domain.Topup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *domain.Topup
	for _, t := range f.records {
		if t.UserID == userID && (latest == nil || t.TopupID > latest.TopupID) {
			latest = t
		}
	}
	if latest == nil {
		return nil, domain.NotFoundf("Topup with user_id %d not found", userID)
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeTopupLedger) ListByUserID(_ context.Context, userID int) ([]domain.Topup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Topup{}
	for _, t := range f.records {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTopupLedger) Create(_ context.Context, userID int, topupNo string, amount int64, method string, topupTime time.Time) (*domain.Topup, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := &domain.Topup{TopupID: f.nextID, UserID: userID, TopupNo: topupNo, TopupAmount: amount, TopupMethod: method, TopupTime: topupTime}
	f.records[t.TopupID] = t
	cp := *t
	return &cp, nil
}

func (f *fakeTopupLedger) Update(_ context.Context, id int, amount int64, method string) (*domain.Topup, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.records[id]
	if !ok {
		return nil, domain.NotFoundf("Topup with id %d not found", id)
	}
	t.TopupAmount = amount
	t.TopupMethod = method
	cp := *t
	return &cp, nil
}

func (f *fakeTopupLedger) UpdateAmount(_ context.Context, id int, amount int64) (*domain.Topup, error) {
	if f.updateAmountErr != nil {
		return nil, f.updateAmountErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.records[id]
	if !ok {
		return nil, domain.NotFoundf("Topup with id %d not found", id)
	}
	t.TopupAmount = amount
	cp := *t
	return &cp, nil
}

func (f *fakeTopupLedger) Delete(_ context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return domain.NotFoundf("Topup with id %d not found", id)
	}
	delete(f.records, id)
	return nil
}

type fakeTransferLedger struct {
	mu      sync.Mutex
	nextID  int
	records map[int]*domain.Transfer

	createErr error
	updateErr error
	deleteErr error
}

func newFakeTransferLedger() *fakeTransferLedger {
	return &fakeTransferLedger{records: make(map[int]*domain.Transfer)}
}

func (f *fakeTransferLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeTransferLedger) List(_ context.Context) ([]domain.Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Transfer, 0, len(f.records))
	for _, t := range f.records {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTransferLedger) GetByID(_ context.Context, id int) (*domain.Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.records[id]
	if !ok {
		return nil, domain.NotFoundf("Transfer with id %d not found", id)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransferLedger) GetByUserID(_ context.Context, userID int) (*domain.Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *domain.Transfer
	for _, t := range f.records {
		if t.TransferFrom == userID && (latest == nil || t.TransferID > latest.TransferID) {
			latest = t
		}
	}
	if latest == nil {
		return nil, domain.NotFoundf("Transfer with user_id %d not found", userID)
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeTransferLedger) ListByUserID(_ context.Context, userID int) ([]domain.Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Transfer{}
	for _, t := range f.records {
		if t.TransferFrom == userID || t.TransferTo == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTransferLedger) Create(_ context.Context, from, to int, amount int64) (*domain.Transfer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := &domain.Transfer{TransferID: f.nextID, TransferFrom: from, TransferTo: to, TransferAmount: amount, TransferTime: time.Now()}
	f.records[t.TransferID] = t
	cp := *t
	return &cp, nil
}

func (f *fakeTransferLedger) Update(_ context.Context, id, from, to int, amount int64) (*domain.Transfer, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.records[id]
	if !ok {
		return nil, domain.NotFoundf("Transfer with id %d not found", id)
	}
	t.TransferFrom = from
	t.TransferTo = to
	t.TransferAmount = amount
	cp := *t
	return &cp, nil
}

func (f *fakeTransferLedger) Delete(_ context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return domain.NotFoundf("Transfer with id %d not found", id)
	}
	delete(f.records, id)
	return nil
}

type fakeWithdrawLedger struct {
	mu      sync.Mutex
	nextID  int
	records map[int]*domain.Withdraw

	createErr error
	updateErr error
	deleteErr error
}

func newFakeWithdrawLedger() *fakeWithdrawLedger {
	return &fakeWithdrawLedger{records: make(map[int]*domain.Withdraw)}
}

func (f *fakeWithdrawLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeWithdrawLedger) List(_ context.Context) ([]domain.Withdraw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Withdraw, 0, len(f.records))
	for _, w := range f.records {
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeWithdrawLedger) GetByID(_ context.Context, id int) (*domain.Withdraw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.records[id]
	if !ok {
		return nil, domain.NotFoundf("Withdraw with id %d not found", id)
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWithdrawLedger) GetByUserID(_ context.Context, userID int) (*domain.Withdraw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *domain.Withdraw
	for _, w := range f.records {
		if w.UserID == userID && (latest == nil || w.WithdrawID > latest.WithdrawID) {
			latest = w
		}
	}
	if latest == nil {
		return nil, domain.NotFoundf("Withdraw with user_id %d not found", userID)
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeWithdrawLedger) ListByUserID(_ context.Context, userID int) ([]domain.Withdraw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Withdraw{}
	for _, w := range f.records {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWithdrawLedger) Create(_ context.Context, userID int, amount int64, withdrawTime time.Time) (*domain.Withdraw, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	w := &domain.Withdraw{WithdrawID: f.nextID, UserID: userID, WithdrawAmount: amount, WithdrawTime: withdrawTime}
	f.records[w.WithdrawID] = w
	cp := *w
	return &cp, nil
}

func (f *fakeWithdrawLedger) Update(_ context.Context, id int, amount int64, withdrawTime time.Time) (*domain.Withdraw, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.records[id]
	if !ok {
		return nil, domain.NotFoundf("Withdraw with id %d not found", id)
	}
	w.WithdrawAmount = amount
	w.WithdrawTime = withdrawTime
	cp := *w
	return &cp, nil
}

func (f *fakeWithdrawLedger) Delete(_ context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return domain.NotFoundf("Withdraw with id %d not found", id)
	}
	delete(f.records, id)
	return nil
}
