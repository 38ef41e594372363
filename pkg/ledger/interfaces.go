package ledger

import (
	"context"
)

// AccountService handles all account-related operations
type AccountService interface {
	// List returns all accounts
	List(ctx context.Context) []*Account

	// Get retrieves a single account by ID
	Get(ctx context.Context, accountID string) (*Account, error)

	// Create creates an account and its opening-balance transaction
	Create(ctx context.Context, params *CreateAccountParams) (*Account, error)

	// Update applies a partial update to an account
	Update(ctx context.Context, accountID string, params *UpdateAccountParams) (*Account, error)

	// Delete removes an account with no referencing transactions
	Delete(ctx context.Context, accountID string) error

	// Archive marks a zero-balance account as archived
	Archive(ctx context.Context, accountID string) (*Account, error)
}

// TransactionService handles all transaction-related operations
type TransactionService interface {
	// List returns all transactions
	List(ctx context.Context) []*Transaction

	// Get retrieves a single transaction by ID
	Get(ctx context.Context, transactionID string) (*Transaction, error)

	// Create creates an expense or income transaction
	Create(ctx context.Context, params *CreateTransactionParams) (*Transaction, error)

	// CreateTransfer creates the two linked legs of a transfer
	CreateTransfer(ctx context.Context, fromAccountID, toAccountID string, amount int64, date string, opts TransferOpts) (*Transaction, *Transaction, error)

	// Update applies a partial update; transfer updates propagate to the
	// sibling leg and type flips to or from transfer are rejected
	Update(ctx context.Context, transactionID string, params *UpdateTransactionParams) (*Transaction, error)

	// Delete removes a transaction, cascading over transfer pairs
	Delete(ctx context.Context, transactionID string) error
}

// CategoryService handles all category-related operations
type CategoryService interface {
	// List returns all categories
	List(ctx context.Context) []*Category

	// Get retrieves a single category by ID
	Get(ctx context.Context, categoryID string) (*Category, error)

	// Create creates a new category
	Create(ctx context.Context, params *CreateCategoryParams) (*Category, error)

	// Update applies a partial update to a category
	Update(ctx context.Context, categoryID string, params *UpdateCategoryParams) (*Category, error)

	// Delete removes a category and clears it from referencing transactions
	Delete(ctx context.Context, categoryID string) error

	// Reorder applies a drag move and returns the patches it realized
	Reorder(ctx context.Context, activeID, sourceGroup string, sourceOrder int, targetGroup string, targetOrder int) ([]CategoryPatch, error)
}

// BudgetService handles budget metadata and monthly aggregation
type BudgetService interface {
	// Month computes the full aggregate for a YYYY-MM month
	Month(ctx context.Context, month string) (*MonthSummary, error)

	// Metadata returns the budget metadata record
	Metadata(ctx context.Context) BudgetMetadata

	// SetMetadata replaces the budget metadata record
	SetMetadata(ctx context.Context, meta BudgetMetadata) error
}
