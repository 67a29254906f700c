package test

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/topdonators/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, username, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, username, email, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, username, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, username, password)
	}
	return "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// ProfileFacadeStub provides controllable profile behaviour.
type ProfileFacadeStub struct {
	ProfileFn func(context.Context, int64) (*model.User, error)
	UpdateFn  func(context.Context, int64, model.ProfileChange) (*model.User, error)
}

// Profile returns the configured user or a default donor.
func (s ProfileFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Username: "donor", Email: "donor@example.com", Standing: model.Standing{Level: "F0"}}, nil
}

// UpdateProfile delegates to override or echoes the change.
func (s ProfileFacadeStub) UpdateProfile(ctx context.Context, userID int64, change model.ProfileChange) (*model.User, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, change)
	}
	usr := &model.User{ID: userID, Username: "donor", Email: "donor@example.com", Standing: model.Standing{Level: "F0"}}
	if change.Username != nil {
		usr.Username = *change.Username
	}
	if change.Email != nil {
		usr.Email = *change.Email
	}
	return usr, nil
}

// DonationFacadeStub simulates checkout, leaderboard and webhook calls.
type DonationFacadeStub struct {
	CheckoutFn    func(context.Context, int64, int64) (string, error)
	LeaderboardFn func(context.Context) ([]model.LeaderboardEntry, error)
	WebhookFn     func(context.Context, []byte, string) (model.WebhookOutcome, error)
}

// Checkout returns a fixed session URL by default.
func (s DonationFacadeStub) Checkout(ctx context.Context, userID, amount int64) (string, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, amount)
	}
	return "https://checkout.example.com/session", nil
}

// Leaderboard returns a one row table by default.
func (s DonationFacadeStub) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.LeaderboardFn != nil {
		return s.LeaderboardFn(ctx)
	}
	return []model.LeaderboardEntry{{Rank: 1, UserID: 1, Username: "donor", Amount: 60, Level: "F1"}}, nil
}

// HandleWebhook reports a credit by default.
func (s DonationFacadeStub) HandleWebhook(ctx context.Context, payload []byte, signature string) (model.WebhookOutcome, error) {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, payload, signature)
	}
	return model.OutcomeCredited, nil
}

// PasswordFacadeStub simulates reset requests.
type PasswordFacadeStub struct {
	RequestFn func(context.Context, string) error
	ResetFn   func(context.Context, string, string) error
}

// RequestPasswordReset delegates to override.
func (s PasswordFacadeStub) RequestPasswordReset(ctx context.Context, email string) error {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, email)
	}
	return nil
}

// ResetPassword delegates to override.
func (s PasswordFacadeStub) ResetPassword(ctx context.Context, token, password string) error {
	if s.ResetFn != nil {
		return s.ResetFn(ctx, token, password)
	}
	return nil
}

// HealthFacadeStub reports readiness.
type HealthFacadeStub struct {
	ReadyErr error
}

// Ready returns ReadyErr.
func (s HealthFacadeStub) Ready(ctx context.Context) error {
	return s.ReadyErr
}

// FacadeStub aggregates facade dependencies for HTTP layer tests.
type FacadeStub struct {
	AuthFacadeStub
	ProfileFacadeStub
	DonationFacadeStub
	PasswordFacadeStub
	HealthFacadeStub
}

// WorkerFacadeStub mimics worker interactions with the facade.
type WorkerFacadeStub struct {
	Batches   [][]model.Checkout
	PendingFn func(context.Context, int) ([]model.Checkout, error)
	FetchFn   func(context.Context, string) (*model.Checkout, error)
	SettleFn  func(context.Context, model.Payment) (model.WebhookOutcome, error)
	ExpireFn  func(context.Context, string) error

	mu           sync.Mutex
	Settled      []model.Payment
	Expired      []string
	pendingCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingCheckouts returns batches from the configured queue.
func (s *WorkerFacadeStub) PendingCheckouts(ctx context.Context, limit int) ([]model.Checkout, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.pendingCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// PendingCalls reports how many times PendingCheckouts ran.
func (s *WorkerFacadeStub) PendingCalls() int {
	return int(atomic.LoadInt32(&s.pendingCalls))
}

// FetchCheckout returns a completed paid session by default.
func (s *WorkerFacadeStub) FetchCheckout(ctx context.Context, sessionID string) (*model.Checkout, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, sessionID)
	}
	return &model.Checkout{SessionID: sessionID, UserID: 1, Amount: 10, Status: model.CheckoutStatusCompleted, Paid: true}, nil
}

// SettleCheckout records settle requests.
func (s *WorkerFacadeStub) SettleCheckout(ctx context.Context, payment model.Payment) (model.WebhookOutcome, error) {
	s.mu.Lock()
	s.Settled = append(s.Settled, payment)
	s.mu.Unlock()
	if s.SettleFn != nil {
		return s.SettleFn(ctx, payment)
	}
	return model.OutcomeCredited, nil
}

// ExpireCheckout records expire requests.
func (s *WorkerFacadeStub) ExpireCheckout(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	s.Expired = append(s.Expired, sessionID)
	s.mu.Unlock()
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, sessionID)
	}
	return nil
}

// CheckoutProviderStub fakes the payment provider checkout API.
type CheckoutProviderStub struct {
	CreateFn func(context.Context, model.CheckoutRequest) (*model.Checkout, error)
	FetchFn  func(context.Context, string) (*model.Checkout, error)

	mu       sync.Mutex
	Requests []model.CheckoutRequest
}

// Create records the request and returns an open session.
func (s *CheckoutProviderStub) Create(ctx context.Context, req model.CheckoutRequest) (*model.Checkout, error) {
	s.mu.Lock()
	s.Requests = append(s.Requests, req)
	n := len(s.Requests)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	id := "cs_test_" + strconv.Itoa(n)
	return &model.Checkout{
		SessionID:   id,
		AmountTotal: req.Amount * 100,
		URL:         "https://checkout.example.com/" + id,
		Status:      model.CheckoutStatusOpen,
	}, nil
}

// Fetch delegates to override.
func (s *CheckoutProviderStub) Fetch(ctx context.Context, sessionID string) (*model.Checkout, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, sessionID)
	}
	return &model.Checkout{SessionID: sessionID, Status: model.CheckoutStatusOpen}, nil
}

// VerifierStub returns a canned payment event.
type VerifierStub struct {
	Event *model.PaymentEvent
	Err   error
}

// Verify returns Event or Err.
func (s VerifierStub) Verify(payload []byte, signature string) (*model.PaymentEvent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Event, nil
}
