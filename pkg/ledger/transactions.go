package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// transactionService implements the TransactionService interface
type transactionService struct {
	ledger *Ledger
}

// List returns all transactions
func (s *transactionService) List(ctx context.Context) []*Transaction {
	s.ledger.mu.RLock()
	defer s.ledger.mu.RUnlock()
	out := make([]*Transaction, len(s.ledger.transactions))
	copy(out, s.ledger.transactions)
	return out
}

// Get retrieves a single transaction by ID
func (s *transactionService) Get(ctx context.Context, transactionID string) (*Transaction, error) {
	s.ledger.mu.RLock()
	defer s.ledger.mu.RUnlock()
	for _, tx := range s.ledger.transactions {
		if tx.ID == transactionID {
			return tx, nil
		}
	}
	return nil, ErrNotFound
}

// Create creates an expense or income transaction. Transfers go through
// CreateTransfer so the pairing invariant can be kept.
func (s *transactionService) Create(ctx context.Context, params *CreateTransactionParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		s.ledger.captureError(ctx, "transactions.create", err)
		return nil, errors.Wrap(err, "failed to create transaction")
	}
	if params.Type == TypeTransfer {
		err := NewError("TRANSFER_VIA_CREATE", "transfers must be created as a pair")
		s.ledger.captureError(ctx, "transactions.create", err)
		return nil, err
	}

	source := params.Source
	if source == "" {
		source = SourceManual
	}
	tx := &Transaction{
		ID:          uuid.NewString(),
		Type:        params.Type,
		AccountID:   params.AccountID,
		Date:        params.Date,
		CategoryID:  params.CategoryID,
		Description: params.Description,
		Payee:       params.Payee,
		Notes:       params.Notes,
		Amount:      params.Amount,
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}

	s.ledger.mu.Lock()
	s.ledger.transactions = append(append([]*Transaction{}, s.ledger.transactions...), tx)
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("transactions.create")
	return tx, nil
}

// CreateTransfer creates the two linked legs of a transfer
func (s *transactionService) CreateTransfer(ctx context.Context, fromAccountID, toAccountID string, amount int64, date string, opts TransferOpts) (*Transaction, *Transaction, error) {
	outflow, inflow, err := CreateTransferPair(fromAccountID, toAccountID, amount, date, opts)
	if err != nil {
		s.ledger.captureError(ctx, "transactions.createTransfer", err)
		return nil, nil, errors.Wrap(err, "failed to create transfer")
	}

	s.ledger.mu.Lock()
	s.ledger.transactions = append(append([]*Transaction{}, s.ledger.transactions...), outflow, inflow)
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("transactions.createTransfer")
	return outflow, inflow, nil
}

// Update applies a partial update. Updates to a transfer leg propagate the
// amount negation and date to the sibling; changing a transaction's type to
// or from transfer fails before any mutation.
func (s *transactionService) Update(ctx context.Context, transactionID string, params *UpdateTransactionParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		s.ledger.captureError(ctx, "transactions.update", err)
		return nil, errors.Wrap(err, "failed to update transaction")
	}

	s.ledger.mu.Lock()

	var current *Transaction
	for _, tx := range s.ledger.transactions {
		if tx.ID == transactionID {
			current = tx
			break
		}
	}
	if current == nil {
		s.ledger.mu.Unlock()
		return nil, ErrNotFound
	}

	if params.Type != nil {
		if err := CheckTypeChange(current.Type, *params.Type); err != nil {
			s.ledger.mu.Unlock()
			s.ledger.captureError(ctx, "transactions.update", err)
			return nil, err
		}
	}

	// Transfer legs never carry a category; a patch cannot add one.
	if current.Type == TypeTransfer && params.CategoryID != nil && *params.CategoryID != "" {
		ve := &ValidationErrors{}
		ve.add("categoryId", "must be empty for transfers", *params.CategoryID)
		s.ledger.mu.Unlock()
		s.ledger.captureError(ctx, "transactions.update", ve)
		return nil, ve
	}

	updated := *current
	if params.Type != nil {
		updated.Type = *params.Type
	}
	if params.AccountID != nil {
		updated.AccountID = *params.AccountID
	}
	if params.Date != nil {
		updated.Date = *params.Date
	}
	if params.CategoryID != nil {
		updated.CategoryID = *params.CategoryID
	}
	if params.Description != nil {
		updated.Description = *params.Description
	}
	if params.Payee != nil {
		updated.Payee = *params.Payee
	}
	if params.Notes != nil {
		updated.Notes = *params.Notes
	}
	if params.Amount != nil {
		updated.Amount = *params.Amount
	}

	if updated.Type == TypeTransfer {
		transactions, err := PropagateTransferUpdate(s.ledger.transactions, &updated)
		if err != nil {
			s.ledger.mu.Unlock()
			s.ledger.captureError(ctx, "transactions.update", err)
			return nil, err
		}
		s.ledger.transactions = transactions
	} else {
		transactions := make([]*Transaction, len(s.ledger.transactions))
		for i, tx := range s.ledger.transactions {
			if tx.ID == transactionID {
				transactions[i] = &updated
			} else {
				transactions[i] = tx
			}
		}
		s.ledger.transactions = transactions
	}
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("transactions.update")
	return &updated, nil
}

// Delete removes a transaction; deleting a transfer leg removes both legs.
func (s *transactionService) Delete(ctx context.Context, transactionID string) error {
	s.ledger.mu.Lock()

	found := false
	for _, tx := range s.ledger.transactions {
		if tx.ID == transactionID {
			found = true
			break
		}
	}
	if !found {
		s.ledger.mu.Unlock()
		return ErrNotFound
	}

	s.ledger.transactions = CascadeTransferDelete(s.ledger.transactions, transactionID)
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("transactions.delete")
	return nil
}
