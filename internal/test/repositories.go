package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
	"github.com/polkiloo/topdonators/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu      sync.Mutex
	ByName  map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
	TopFn   func(context.Context, int) ([]model.LeaderboardEntry, error)
	TopHits int
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByName: make(map[string]*model.User),
		ByID:   make(map[int64]*model.User),
		Next:   1,
	}
}

func (s *UserRepositoryStub) init() {
	if s.ByName == nil {
		s.ByName = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if s.Next == 0 {
		s.Next = 1
	}
}

func (s *UserRepositoryStub) emailTaken(email string, except int64) bool {
	for id, u := range s.ByID {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

// Create registers user unless username or email already exists.
func (s *UserRepositoryStub) Create(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.init()
	if _, exists := s.ByName[username]; exists || s.emailTaken(email, 0) {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{
		ID:           s.Next,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Standing:     model.Standing{Level: "F0"},
		CreatedAt:    time.Now().UTC(),
	}
	s.Next++
	s.ByName[username] = user
	s.ByID[user.ID] = user
	return user.Clone(), nil
}

// GetByUsername fetches user by username or returns not found.
func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByName[username]; ok {
		return user.Clone(), nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, user := range s.ByID {
		if user.Email == email {
			return user.Clone(), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user.Clone(), nil
	}
	return nil, domainErrors.ErrNotFound
}

// Update applies non-nil fields of update.
func (s *UserRepositoryStub) Update(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if update.Username != nil && *update.Username != user.Username {
		if _, taken := s.ByName[*update.Username]; taken {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if update.Email != nil && s.emailTaken(*update.Email, id) {
		return nil, domainErrors.ErrAlreadyExists
	}
	if update.Username != nil {
		delete(s.ByName, user.Username)
		user.Username = *update.Username
		s.ByName[user.Username] = user
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	return user.Clone(), nil
}

// Top returns the configured table or ranks stored users by amount.
func (s *UserRepositoryStub) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.Lock()
	s.TopHits++
	topFn := s.TopFn
	s.mu.Unlock()
	if topFn != nil {
		return topFn(ctx, limit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	entries := make([]model.LeaderboardEntry, 0, len(s.ByID))
	for id := int64(1); id < s.Next; id++ {
		user, ok := s.ByID[id]
		if !ok {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			UserID:         user.ID,
			Username:       user.Username,
			Amount:         user.Amount,
			Level:          user.Level,
			LastDonationAt: user.LastDonationAt,
		})
	}
	// insertion sort keeps ties in id order
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Amount > entries[j-1].Amount; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// DonationRepositoryStub applies payments against a UserRepositoryStub under
// one lock, mirroring the row lock and idempotency table of the real store.
type DonationRepositoryStub struct {
	Users     *UserRepositoryStub
	Processed map[string]model.ProcessedPayment
	Err       error
	// Completed lists checkout sessions the stub marked as completed.
	Completed []string
}

// NewDonationRepositoryStub constructs a stub crediting users.
func NewDonationRepositoryStub(users *UserRepositoryStub) *DonationRepositoryStub {
	return &DonationRepositoryStub{Users: users, Processed: make(map[string]model.ProcessedPayment)}
}

// Apply implements repository.DonationRepository.
func (s *DonationRepositoryStub) Apply(ctx context.Context, payment model.Payment, credit repository.CreditFunc) (*model.Standing, error) {
	s.Users.mu.Lock()
	defer s.Users.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.Users.ByID[payment.UserID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if s.Processed == nil {
		s.Processed = make(map[string]model.ProcessedPayment)
	}
	if _, seen := s.Processed[payment.SessionID]; seen {
		return nil, domainErrors.ErrAlreadyProcessed
	}

	next, err := credit(user.Standing)
	if err != nil {
		return nil, err
	}
	s.Processed[payment.SessionID] = model.ProcessedPayment{
		SessionID:   payment.SessionID,
		UserID:      payment.UserID,
		Amount:      payment.Amount,
		ProcessedAt: time.Now().UTC(),
	}
	user.Standing = next
	s.Completed = append(s.Completed, payment.SessionID)
	return &next, nil
}

// Standing returns the stored standing of a user.
func (s *DonationRepositoryStub) Standing(userID int64) model.Standing {
	s.Users.mu.Lock()
	defer s.Users.mu.Unlock()
	if user, ok := s.Users.ByID[userID]; ok {
		return user.Standing
	}
	return model.Standing{}
}

// CheckoutRepositoryStub records checkout sessions in memory.
type CheckoutRepositoryStub struct {
	mu        sync.Mutex
	Sessions  map[string]model.Checkout
	CreateErr error
	BatchFn   func(context.Context, time.Duration, int) ([]model.Checkout, error)
	Updates   map[string]model.CheckoutStatus
}

// NewCheckoutRepositoryStub constructs an empty stub.
func NewCheckoutRepositoryStub() *CheckoutRepositoryStub {
	return &CheckoutRepositoryStub{
		Sessions: make(map[string]model.Checkout),
		Updates:  make(map[string]model.CheckoutStatus),
	}
}

// Create stores the session unless CreateErr is set.
func (s *CheckoutRepositoryStub) Create(ctx context.Context, checkout model.Checkout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if s.Sessions == nil {
		s.Sessions = make(map[string]model.Checkout)
	}
	if _, exists := s.Sessions[checkout.SessionID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.Sessions[checkout.SessionID] = checkout
	return nil
}

// SelectBatchForReconcile delegates to BatchFn or returns open sessions.
func (s *CheckoutRepositoryStub) SelectBatchForReconcile(ctx context.Context, olderThan time.Duration, limit int) ([]model.Checkout, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, olderThan, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Checkout
	for _, c := range s.Sessions {
		if c.Status == model.CheckoutStatusOpen && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

// UpdateStatus records the new status of a known session.
func (s *CheckoutRepositoryStub) UpdateStatus(ctx context.Context, sessionID string, status model.CheckoutStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkout, ok := s.Sessions[sessionID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	checkout.Status = status
	s.Sessions[sessionID] = checkout
	if s.Updates == nil {
		s.Updates = make(map[string]model.CheckoutStatus)
	}
	s.Updates[sessionID] = status
	return nil
}

// CacheStub is an in-memory LeaderboardCache.
type CacheStub struct {
	mu          sync.Mutex
	Entries     []model.LeaderboardEntry
	Cached      bool
	GetErr      error
	SetErr      error
	InvalidErr  error
	HealthErr   error
	Invalidated int
}

// Get returns the cached table when present.
func (c *CacheStub) Get(ctx context.Context) ([]model.LeaderboardEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return nil, false, c.GetErr
	}
	return c.Entries, c.Cached, nil
}

// Set stores entries.
func (c *CacheStub) Set(ctx context.Context, entries []model.LeaderboardEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SetErr != nil {
		return c.SetErr
	}
	c.Entries = entries
	c.Cached = true
	return nil
}

// Invalidate drops the cached table and counts the call.
func (c *CacheStub) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidated++
	if c.InvalidErr != nil {
		return c.InvalidErr
	}
	c.Entries = nil
	c.Cached = false
	return nil
}

// HealthCheck returns HealthErr.
func (c *CacheStub) HealthCheck(ctx context.Context) error {
	return c.HealthErr
}

var (
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
	_ repository.DonationRepository = (*DonationRepositoryStub)(nil)
	_ repository.CheckoutRepository = (*CheckoutRepositoryStub)(nil)
	_ repository.LeaderboardCache   = (*CacheStub)(nil)
)
