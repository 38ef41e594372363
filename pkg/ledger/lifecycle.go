package ledger

import (
	"time"

	"github.com/google/uuid"
)

// NewAccount builds an account from creation input together with its
// opening-balance transaction. The opening balance is an income leg when the
// starting balance is zero or positive and an expense leg when negative,
// dated today and uncategorized.
func NewAccount(params *CreateAccountParams) (*Account, *Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	account := &Account{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Type:        params.Type,
		Institution: params.Institution,
		CreatedAt:   time.Now().UTC(),
	}

	openingType := TypeIncome
	if params.StartingBalance < 0 {
		openingType = TypeExpense
	}
	opening := &Transaction{
		ID:          uuid.NewString(),
		Type:        openingType,
		AccountID:   account.ID,
		Date:        Today(),
		Description: "Opening balance",
		Amount:      params.StartingBalance,
		Source:      SourceManual,
		CreatedAt:   account.CreatedAt,
	}
	return account, opening, nil
}

// ComputeBalance sums the amounts of every transaction referencing the
// account, regardless of type or date.
func ComputeBalance(transactions []*Transaction, accountID string) int64 {
	var balance int64
	for _, tx := range transactions {
		if tx.AccountID == accountID {
			balance += tx.Amount
		}
	}
	return balance
}

// CanDeleteAccount reports whether the account can be hard-deleted: only
// when no transaction references it.
func CanDeleteAccount(transactions []*Transaction, accountID string) bool {
	for _, tx := range transactions {
		if tx.AccountID == accountID {
			return false
		}
	}
	return true
}

// CanArchiveAccount reports whether the account can be archived: only when
// its computed balance is exactly zero.
func CanArchiveAccount(transactions []*Transaction, accountID string) bool {
	return ComputeBalance(transactions, accountID) == 0
}

// OnDeleteCategory clears the category reference on every transaction that
// points at the deleted category. The transactions themselves are preserved;
// only CategoryID is rewritten to empty.
func OnDeleteCategory(transactions []*Transaction, categoryID string) []*Transaction {
	out := make([]*Transaction, len(transactions))
	for i, tx := range transactions {
		if tx.CategoryID == categoryID {
			cleared := *tx
			cleared.CategoryID = ""
			out[i] = &cleared
		} else {
			out[i] = tx
		}
	}
	return out
}
