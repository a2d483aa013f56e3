package stores

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kanaverse/animeplay/backend/internal/models"
	"github.com/kanaverse/animeplay/backend/internal/storage"
)

// AccountStore manages the account collection and the single active session.
// All mutations are plain read-modify-write cycles against the storage port;
// concurrent writers race last-writer-wins.
type AccountStore struct {
	store     storage.Store
	authDelay time.Duration
}

// NewAccountStore creates an AccountStore. authDelay is slept before Register
// and Login complete, matching the latency the original client simulated;
// pass 0 to disable.
func NewAccountStore(store storage.Store, authDelay time.Duration) *AccountStore {
	return &AccountStore{store: store, authDelay: authDelay}
}

// Register creates a new account and logs it in. Conflict checks run in a
// fixed order: duplicate email, duplicate username, then password length. The
// account collection and the session are written separately; a crash between
// the two writes leaves a registered account with no active session, which
// the next Login recovers.
func (s *AccountStore) Register(ctx context.Context, req *models.RegisterRequest) (*models.Session, error) {
	s.simulateLatency()

	accounts, err := s.accounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.Email == req.Email {
			return nil, validationError("email already registered")
		}
	}
	for _, account := range accounts {
		if account.Username == req.Username {
			return nil, validationError("username already taken")
		}
	}
	if len(req.Password) < 6 {
		return nil, validationError("password must be at least 6 characters")
	}

	account := models.Account{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		JoinedAt: time.Now().UTC(),
	}

	if err := s.saveAccounts(ctx, append(accounts, account)); err != nil {
		return nil, err
	}
	session := account.Session()
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Login authenticates by exact email and password match and persists the
// derived session.
func (s *AccountStore) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error) {
	s.simulateLatency()

	accounts, err := s.accounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.Email == req.Email && account.Password == req.Password {
			session := account.Session()
			if err := s.saveSession(ctx, session); err != nil {
				return nil, err
			}
			return session, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the persisted session. Logging out while anonymous is a no-op.
func (s *AccountStore) Logout(ctx context.Context) error {
	return s.store.Delete(ctx, sessionKey)
}

// CurrentSession returns the persisted session, or nil when anonymous. A
// missing or corrupt persisted value reads as anonymous; a backend read
// fault is returned as-is.
func (s *AccountStore) CurrentSession(ctx context.Context) (*models.Session, error) {
	raw, err := s.store.Get(ctx, sessionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, nil
	}
	return &session, nil
}

// UpdateProfile merges the update into the session and, when the account is
// still present in the collection, into the matching account record. A
// session whose account record has gone missing keeps working with the
// session copy alone; the collection is left untouched.
func (s *AccountStore) UpdateProfile(ctx context.Context, update *models.ProfileUpdate) (*models.Session, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotAuthenticated
	}

	if update.Username != nil {
		session.Username = *update.Username
	}
	if update.Avatar != nil {
		session.Avatar = update.Avatar
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	accounts, err := s.accounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID != session.ID {
			continue
		}
		if update.Username != nil {
			accounts[i].Username = *update.Username
		}
		if update.Avatar != nil {
			accounts[i].Avatar = update.Avatar
		}
		if err := s.saveAccounts(ctx, accounts); err != nil {
			return nil, err
		}
		break
	}
	return session, nil
}

// accounts loads the account collection. A missing or unparsable value reads
// as an empty collection; any other backend fault is returned so callers do
// not run their conflict checks against state that only failed to load.
func (s *AccountStore) accounts(ctx context.Context) ([]models.Account, error) {
	raw, err := s.store.Get(ctx, accountsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var accounts []models.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, nil
	}
	return accounts, nil
}

func (s *AccountStore) saveAccounts(ctx context.Context, accounts []models.Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, accountsKey, raw)
}

func (s *AccountStore) saveSession(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionKey, raw)
}

// simulateLatency is a plain sleep: not cancellable, no timeout.
func (s *AccountStore) simulateLatency() {
	if s.authDelay > 0 {
		time.Sleep(s.authDelay)
	}
}
