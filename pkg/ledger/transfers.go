package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Transfer pair bookkeeping. A transfer between two accounts is two linked
// legs: an outflow on the source account and an inflow on the destination,
// equal in magnitude and opposite in sign, each naming the other through
// TransferPairID. These functions keep that invariant; they never mutate
// their inputs and always return replacement collections.

// CreateTransferPair builds the two legs of a new transfer. The outflow leg
// carries -abs(amount) on fromAccountID, the inflow +abs(amount) on
// toAccountID; both share the date and descriptive fields and have an empty
// category.
func CreateTransferPair(fromAccountID, toAccountID string, amount int64, date string, opts TransferOpts) (*Transaction, *Transaction, error) {
	ve := &ValidationErrors{}
	if fromAccountID == "" {
		ve.add("fromAccountId", "must not be empty", nil)
	}
	if toAccountID == "" {
		ve.add("toAccountId", "must not be empty", nil)
	}
	if !ValidDate(date) {
		ve.add("date", "must be a calendar date in YYYY-MM-DD form", date)
	}
	if err := ve.orNil(); err != nil {
		return nil, nil, err
	}
	if fromAccountID == toAccountID {
		return nil, nil, ErrSameAccountTransfer
	}

	if amount < 0 {
		amount = -amount
	}
	now := time.Now().UTC()
	outflow := &Transaction{
		ID:          uuid.NewString(),
		Type:        TypeTransfer,
		AccountID:   fromAccountID,
		Date:        date,
		Description: opts.Description,
		Payee:       opts.Payee,
		Notes:       opts.Notes,
		Amount:      -amount,
		Source:      SourceManual,
		CreatedAt:   now,
	}
	inflow := &Transaction{
		ID:          uuid.NewString(),
		Type:        TypeTransfer,
		AccountID:   toAccountID,
		Date:        date,
		Description: opts.Description,
		Payee:       opts.Payee,
		Notes:       opts.Notes,
		Amount:      amount,
		Source:      SourceManual,
		CreatedAt:   now,
	}
	outflow.TransferPairID = inflow.ID
	inflow.TransferPairID = outflow.ID
	return outflow, inflow, nil
}

// CheckTypeChange rejects updates that would turn a transfer into a
// non-transfer in place, or vice versa.
func CheckTypeChange(current, next TransactionType) error {
	if current != next && (current == TypeTransfer || next == TypeTransfer) {
		return ErrTransferTypeChange
	}
	return nil
}

// PropagateTransferUpdate takes a transfer leg that has already been
// patched with new field values, locates its sibling and rewrites the
// sibling's amount to the exact negation and its date to match. Both legs
// are replaced in the returned collection.
func PropagateTransferUpdate(transactions []*Transaction, updated *Transaction) ([]*Transaction, error) {
	if updated.Type != TypeTransfer {
		return nil, ErrTransferPairMissing
	}

	siblingIdx := -1
	for i, tx := range transactions {
		if tx.ID == updated.TransferPairID && tx.TransferPairID == updated.ID {
			siblingIdx = i
			break
		}
	}
	if siblingIdx < 0 {
		return nil, ErrTransferPairMissing
	}

	sibling := *transactions[siblingIdx]
	sibling.Amount = -updated.Amount
	sibling.Date = updated.Date

	out := make([]*Transaction, len(transactions))
	for i, tx := range transactions {
		switch {
		case i == siblingIdx:
			out[i] = &sibling
		case tx.ID == updated.ID:
			out[i] = updated
		default:
			out[i] = tx
		}
	}
	return out, nil
}

// CascadeTransferDelete removes the named transaction and, if it is a
// transfer leg, its paired sibling. Deleting a non-transfer removes only
// itself.
func CascadeTransferDelete(transactions []*Transaction, id string) []*Transaction {
	pairID := ""
	for _, tx := range transactions {
		if tx.ID == id {
			if tx.Type == TypeTransfer {
				pairID = tx.TransferPairID
			}
			break
		}
	}

	out := make([]*Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.ID == id || (pairID != "" && tx.ID == pairID) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
