package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"

	internalTypes "github.com/vladimir-e/budgetbook-go/internal/types"
)

// DefaultCurrency is used when no metadata is supplied at construction.
var DefaultCurrency = Currency{Code: "USD", Precision: 2}

// Ledger is the canonical state container. It owns the three collections,
// applies every mutation as a single atomic replacement under its lock and
// exposes the per-entity services. The core functions in this package stay
// pure; the Ledger is the one place state lives.
type Ledger struct {
	// Service interfaces
	Accounts     AccountService
	Transactions TransactionService
	Categories   CategoryService
	Budget       BudgetService

	// Internal fields
	mu           sync.RWMutex
	meta         BudgetMetadata
	accounts     []*Account
	categories   []*Category
	transactions []*Transaction
	options      *Options
}

// Options configures the ledger
type Options struct {
	// Metadata seeds the budget metadata record
	Metadata *BudgetMetadata

	// Logger for debug logging
	Logger internalTypes.Logger

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// New creates a new ledger
func New(opts *Options) (*Ledger, error) {
	if opts == nil {
		opts = &Options{}
	}

	// Initialize Sentry if configured
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}
		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}
		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}
		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}
		if err := sentry.Init(sentryOpts); err != nil {
			// Log but don't fail construction
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	meta := BudgetMetadata{Name: "Budget", Currency: DefaultCurrency, Version: 1}
	if opts.Metadata != nil {
		if err := opts.Metadata.Validate(); err != nil {
			return nil, err
		}
		meta = *opts.Metadata
	}

	l := &Ledger{
		meta:    meta,
		options: opts,
	}
	l.initServices()
	return l, nil
}

// initServices initializes all service implementations
func (l *Ledger) initServices() {
	l.Accounts = &accountService{ledger: l}
	l.Transactions = &transactionService{ledger: l}
	l.Categories = &categoryService{ledger: l}
	l.Budget = &budgetService{ledger: l}
}

// Load replaces the three collections after an integrity check. Used to
// seed a ledger from externally stored data.
func (l *Ledger) Load(accounts []*Account, categories []*Category, transactions []*Transaction) error {
	if err := CheckIntegrity(accounts, categories, transactions); err != nil {
		return err
	}
	l.mu.Lock()
	l.accounts = accounts
	l.categories = categories
	l.transactions = transactions
	l.mu.Unlock()
	return nil
}

// Snapshot returns copies of the three collections. The record pointers are
// shared; records themselves are never mutated in place.
func (l *Ledger) Snapshot() ([]*Account, []*Category, []*Transaction) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	accounts := make([]*Account, len(l.accounts))
	copy(accounts, l.accounts)
	categories := make([]*Category, len(l.categories))
	copy(categories, l.categories)
	transactions := make([]*Transaction, len(l.transactions))
	copy(transactions, l.transactions)
	return accounts, categories, transactions
}

// Close flushes any pending Sentry events
func (l *Ledger) Close() {
	sentry.Flush(2 * time.Second)
}

// captureError reports a rejected operation without mutating state.
func (l *Ledger) captureError(ctx context.Context, operation string, err error) {
	if l.options.SentryDSN != "" || l.options.SentryOptions != nil {
		scoped := func(scope *sentry.Scope) {
			scope.SetTag("ledger.operation", operation)
		}
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scoped(scope)
				hub.CaptureException(err)
			})
		} else {
			sentry.WithScope(func(scope *sentry.Scope) {
				scoped(scope)
				sentry.CaptureException(err)
			})
		}
	}
	if l.options.Logger != nil {
		l.options.Logger.Warn("operation rejected", "operation", operation, "error", err)
	}
	if l.options.Hooks != nil && l.options.Hooks.OnError != nil {
		l.options.Hooks.OnError(operation, err)
	}
}

// afterMutation notifies observers once a mutation has committed.
func (l *Ledger) afterMutation(operation string) {
	if l.options.Logger != nil {
		l.options.Logger.Debug("mutation committed", "operation", operation)
	}
	if l.options.Hooks != nil && l.options.Hooks.OnMutation != nil {
		l.options.Hooks.OnMutation(operation)
	}
}
