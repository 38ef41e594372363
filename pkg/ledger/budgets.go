package ledger

import (
	"context"

	"github.com/pkg/errors"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	ledger *Ledger
}

// Month computes the full aggregate for a YYYY-MM month over the current
// collections.
func (s *budgetService) Month(ctx context.Context, month string) (*MonthSummary, error) {
	accounts, categories, transactions := s.ledger.Snapshot()
	summary, err := SummarizeMonth(accounts, categories, transactions, month)
	if err != nil {
		s.ledger.captureError(ctx, "budget.month", err)
		return nil, errors.Wrap(err, "failed to summarize month")
	}
	return summary, nil
}

// Metadata returns the budget metadata record
func (s *budgetService) Metadata(ctx context.Context) BudgetMetadata {
	s.ledger.mu.RLock()
	defer s.ledger.mu.RUnlock()
	return s.ledger.meta
}

// SetMetadata replaces the budget metadata record
func (s *budgetService) SetMetadata(ctx context.Context, meta BudgetMetadata) error {
	if err := meta.Validate(); err != nil {
		s.ledger.captureError(ctx, "budget.setMetadata", err)
		return errors.Wrap(err, "failed to update budget metadata")
	}

	s.ledger.mu.Lock()
	s.ledger.meta = meta
	s.ledger.mu.Unlock()

	s.ledger.afterMutation("budget.setMetadata")
	return nil
}
