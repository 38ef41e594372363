package ledger

import (
	"time"
)

// AccountType enumerates the supported kinds of accounts.
type AccountType string

const (
	AccountCash       AccountType = "cash"
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	AccountLoan       AccountType = "loan"
	AccountAsset      AccountType = "asset"
	AccountCrypto     AccountType = "crypto"
)

// Valid reports whether t is one of the seven supported account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountCash, AccountChecking, AccountSavings, AccountCreditCard,
		AccountLoan, AccountAsset, AccountCrypto:
		return true
	}
	return false
}

// TransactionType discriminates the three transaction variants.
type TransactionType string

const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeTransfer:
		return true
	}
	return false
}

// TransactionSource records where a transaction came from.
type TransactionSource string

const (
	SourceManual  TransactionSource = "manual"
	SourceAIAgent TransactionSource = "ai_agent"
	SourceImport  TransactionSource = "import"
)

// Valid reports whether s is a known transaction source.
func (s TransactionSource) Valid() bool {
	switch s {
	case SourceManual, SourceAIAgent, SourceImport:
		return true
	}
	return false
}

// Currency is an immutable value type describing how amounts are scaled and
// labelled. Precision is the number of minor-unit decimal digits: 0 for
// JPY-like currencies, up to 8 for crypto-like ones.
type Currency struct {
	Code      string `json:"code"`
	Precision int    `json:"precision"`
}

// Account represents a financial account. ReportedBalance is an external,
// manually reported balance and is independent of the computed balance.
type Account struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Type            AccountType `json:"type"`
	Institution     string      `json:"institution"`
	ReportedBalance *int64      `json:"reportedBalance"`
	ReconciledAt    string      `json:"reconciledAt"`
	Archived        bool        `json:"archived"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Transaction represents a single ledger entry in minor units. A transfer
// between two accounts is represented by two linked legs; TransferPairID is
// the id of the sibling leg and is empty for non-transfers. CategoryID is
// empty for uncategorized transactions and always empty for transfer legs.
type Transaction struct {
	ID             string            `json:"id"`
	Type           TransactionType   `json:"type"`
	AccountID      string            `json:"accountId"`
	Date           string            `json:"date"`
	CategoryID     string            `json:"categoryId"`
	Description    string            `json:"description"`
	Payee          string            `json:"payee"`
	Notes          string            `json:"notes"`
	TransferPairID string            `json:"transferPairId"`
	Amount         int64             `json:"amount"`
	Source         TransactionSource `json:"source"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Category is a named budget envelope. Assigned is the planned monthly
// allocation in minor units. SortOrder defines the position within the
// category's group, or within the archived bucket once archived; it is a
// strict ordering key per bucket, not a globally unique value.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	Assigned  int64  `json:"assigned"`
	SortOrder int    `json:"sortOrder"`
	Archived  bool   `json:"archived"`
}

// BudgetMetadata describes one budget instance as a whole.
type BudgetMetadata struct {
	Name     string   `json:"name"`
	Currency Currency `json:"currency"`
	Version  int      `json:"version"`
}

// AdapterConfig is a discriminated configuration record for the
// import/export subsystem. Only Type is interpreted here; every other key
// is preserved verbatim in Options so adapter-specific settings survive
// validation untouched.
type AdapterConfig struct {
	Type    string                 `json:"type"`
	Options map[string]interface{} `json:"-"`
}

// AdapterFile and AdapterCouchDB are the supported adapter discriminators.
// AdapterMemory is a placeholder used in tests of the surrounding
// application and is deliberately not accepted here.
const (
	AdapterFile    = "file"
	AdapterCouchDB = "couchdb"
	AdapterMemory  = "memory"
)

// Parameter structures

// CreateAccountParams for creating accounts. Creating an account also emits
// an opening-balance transaction for StartingBalance.
type CreateAccountParams struct {
	Name            string      `json:"name"`
	Type            AccountType `json:"type"`
	Institution     string      `json:"institution"`
	StartingBalance int64       `json:"startingBalance"`
}

// UpdateAccountParams for partial account updates.
type UpdateAccountParams struct {
	Name            *string      `json:"name,omitempty"`
	Type            *AccountType `json:"type,omitempty"`
	Institution     *string      `json:"institution,omitempty"`
	ReportedBalance *int64       `json:"reportedBalance,omitempty"`
	ReconciledAt    *string      `json:"reconciledAt,omitempty"`
	Archived        *bool        `json:"archived,omitempty"`
}

// CreateTransactionParams for creating expense or income transactions.
type CreateTransactionParams struct {
	Type        TransactionType   `json:"type"`
	AccountID   string            `json:"accountId"`
	Date        string            `json:"date"`
	CategoryID  string            `json:"categoryId"`
	Description string            `json:"description"`
	Payee       string            `json:"payee"`
	Notes       string            `json:"notes"`
	Amount      int64             `json:"amount"`
	Source      TransactionSource `json:"source"`
}

// UpdateTransactionParams for partial transaction updates. A type change to
// or from transfer is rejected outright. When only Amount is supplied the
// sign rule is not re-checked against the stored type; that cross-field
// consistency stays with the caller.
type UpdateTransactionParams struct {
	Type        *TransactionType `json:"type,omitempty"`
	AccountID   *string          `json:"accountId,omitempty"`
	Date        *string          `json:"date,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
	Description *string          `json:"description,omitempty"`
	Payee       *string          `json:"payee,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	Amount      *int64           `json:"amount,omitempty"`
}

// TransferOpts carries the shared descriptive fields of a transfer pair.
type TransferOpts struct {
	Description string `json:"description"`
	Payee       string `json:"payee"`
	Notes       string `json:"notes"`
}

// CreateCategoryParams for creating categories.
type CreateCategoryParams struct {
	Name      string `json:"name"`
	Group     string `json:"group"`
	Assigned  int64  `json:"assigned"`
	SortOrder int    `json:"sortOrder"`
}

// UpdateCategoryParams for partial category updates.
type UpdateCategoryParams struct {
	Name      *string `json:"name,omitempty"`
	Group     *string `json:"group,omitempty"`
	Assigned  *int64  `json:"assigned,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
	Archived  *bool   `json:"archived,omitempty"`
}

// CategoryChanges is the field set a reorder patch may touch.
type CategoryChanges struct {
	Group     *string `json:"group,omitempty"`
	Archived  *bool   `json:"archived,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// CategoryPatch pairs a category id with the changes needed to realize a
// reorder move.
type CategoryPatch struct {
	ID      string          `json:"id"`
	Changes CategoryChanges `json:"changes"`
}
