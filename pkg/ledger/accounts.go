package ledger

import (
	"context"

	"github.com/pkg/errors"
)

// accountService implements the AccountService interface
type accountService struct {
	ledger *Ledger
}

// List returns all accounts
func (s *accountService) List(ctx context.Context) []*Account {
	s.ledger.mu.RLock()
	defer s.ledger.mu.RUnlock()
	out := make([]*Account, len(s.ledger.accounts))
	copy(out, s.ledger.accounts)
	return out
}

// Get retrieves a single account by ID
func (s *accountService) Get(ctx context.Context, accountID string) (*Account, error) {
	s.ledger.mu.RLock()
	defer s.ledger.mu.RUnlock()
	for _, account := range s.ledger.accounts {
		if account.ID == accountID {
			return account, nil
		}
	}
	return nil, ErrNotFound
}

// Create creates an account and its opening-balance transaction in a single
// atomic replacement.
func (s *accountService) Create(ctx context.Context, params *CreateAccountParams) (*Account, error) {
	account, opening, err := NewAccount(params)
	if err != nil {
		s.ledger.captureError(ctx, "accounts.create", err)
		return nil, errors.Wrap(err, "failed to create account")
	}

	s.ledger.mu.Lock()
	s.ledger.accounts = append(append([]*Account{}, s.ledger.accounts...), account)
	s.ledger.transactions = append(append([]*Transaction{}, s.ledger.transactions...), opening)
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("accounts.create")
	return account, nil
}

// Update applies a partial update to an account
func (s *accountService) Update(ctx context.Context, accountID string, params *UpdateAccountParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		s.ledger.captureError(ctx, "accounts.update", err)
		return nil, errors.Wrap(err, "failed to update account")
	}

	s.ledger.mu.Lock()

	idx := -1
	for i, account := range s.ledger.accounts {
		if account.ID == accountID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.ledger.mu.Unlock()
		return nil, ErrNotFound
	}

	// Archiving through a patch update obeys the same zero-balance gate as
	// Archive.
	if params.Archived != nil && *params.Archived && !CanArchiveAccount(s.ledger.transactions, accountID) {
		s.ledger.mu.Unlock()
		err := ErrAccountBalanceNonZero
		s.ledger.captureError(ctx, "accounts.update", err)
		return nil, err
	}

	updated := *s.ledger.accounts[idx]
	if params.Name != nil {
		updated.Name = *params.Name
	}
	if params.Type != nil {
		updated.Type = *params.Type
	}
	if params.Institution != nil {
		updated.Institution = *params.Institution
	}
	if params.ReportedBalance != nil {
		updated.ReportedBalance = params.ReportedBalance
	}
	if params.ReconciledAt != nil {
		updated.ReconciledAt = *params.ReconciledAt
	}
	if params.Archived != nil {
		updated.Archived = *params.Archived
	}

	accounts := make([]*Account, len(s.ledger.accounts))
	copy(accounts, s.ledger.accounts)
	accounts[idx] = &updated
	s.ledger.accounts = accounts
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("accounts.update")
	return &updated, nil
}

// Delete removes an account. Rejected while any transaction references it.
func (s *accountService) Delete(ctx context.Context, accountID string) error {
	s.ledger.mu.Lock()

	found := false
	for _, account := range s.ledger.accounts {
		if account.ID == accountID {
			found = true
			break
		}
	}
	if !found {
		s.ledger.mu.Unlock()
		return ErrNotFound
	}

	if !CanDeleteAccount(s.ledger.transactions, accountID) {
		s.ledger.mu.Unlock()
		err := ErrAccountHasTransactions
		s.ledger.captureError(ctx, "accounts.delete", err)
		return err
	}

	accounts := make([]*Account, 0, len(s.ledger.accounts)-1)
	for _, account := range s.ledger.accounts {
		if account.ID != accountID {
			accounts = append(accounts, account)
		}
	}
	s.ledger.accounts = accounts
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("accounts.delete")
	return nil
}

// Archive marks an account as archived. Rejected unless the computed
// balance is exactly zero.
func (s *accountService) Archive(ctx context.Context, accountID string) (*Account, error) {
	s.ledger.mu.Lock()

	idx := -1
	for i, account := range s.ledger.accounts {
		if account.ID == accountID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.ledger.mu.Unlock()
		return nil, ErrNotFound
	}

	if !CanArchiveAccount(s.ledger.transactions, accountID) {
		s.ledger.mu.Unlock()
		err := ErrAccountBalanceNonZero
		s.ledger.captureError(ctx, "accounts.archive", err)
		return nil, err
	}

	archived := *s.ledger.accounts[idx]
	archived.Archived = true

	accounts := make([]*Account, len(s.ledger.accounts))
	copy(accounts, s.ledger.accounts)
	accounts[idx] = &archived
	s.ledger.accounts = accounts
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("accounts.archive")
	return &archived, nil
}
