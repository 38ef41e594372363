package ledger

import (
	"fmt"
)

// CheckIntegrity validates the cross-record invariants the per-record
// schemas cannot see: account references, category references and transfer
// pairing. Field paths are indexed into the offending collection. A nil
// return means the three collections form a consistent ledger.
func CheckIntegrity(accounts []*Account, categories []*Category, transactions []*Transaction) error {
	ve := &ValidationErrors{}

	accountIDs := make(map[string]bool, len(accounts))
	for i, a := range accounts {
		if err := a.Validate(); err != nil {
			appendPrefixed(ve, fmt.Sprintf("accounts[%d].", i), err)
		}
		if a.ID != "" && accountIDs[a.ID] {
			ve.add(fmt.Sprintf("accounts[%d].id", i), "duplicate account id", a.ID)
		}
		accountIDs[a.ID] = true
	}

	categoryIDs := make(map[string]bool, len(categories))
	for i, c := range categories {
		if err := c.Validate(); err != nil {
			appendPrefixed(ve, fmt.Sprintf("categories[%d].", i), err)
		}
		if c.ID != "" && categoryIDs[c.ID] {
			ve.add(fmt.Sprintf("categories[%d].id", i), "duplicate category id", c.ID)
		}
		categoryIDs[c.ID] = true
	}

	byID := make(map[string]*Transaction, len(transactions))
	for _, t := range transactions {
		byID[t.ID] = t
	}
	for i, t := range transactions {
		path := fmt.Sprintf("transactions[%d].", i)
		if err := t.Validate(); err != nil {
			appendPrefixed(ve, path, err)
		}
		if t.AccountID != "" && !accountIDs[t.AccountID] {
			ve.add(path+"accountId", "references a missing account", t.AccountID)
		}
		if t.CategoryID != "" && !categoryIDs[t.CategoryID] {
			ve.add(path+"categoryId", "references a missing category", t.CategoryID)
		}
		if t.Type == TypeTransfer && t.TransferPairID != "" {
			sibling, ok := byID[t.TransferPairID]
			switch {
			case !ok:
				ve.add(path+"transferPairId", "references a missing transaction", t.TransferPairID)
			case sibling.TransferPairID != t.ID:
				ve.add(path+"transferPairId", "sibling leg does not point back", t.TransferPairID)
			case sibling.Amount != -t.Amount:
				ve.add(path+"amount", "sibling leg amount is not the exact negation", t.Amount)
			}
		}
	}

	return ve.orNil()
}

// appendPrefixed re-files validation failures under a collection-indexed
// field path.
func appendPrefixed(ve *ValidationErrors, prefix string, err error) {
	nested, ok := err.(*ValidationErrors)
	if !ok {
		ve.add(prefix[:len(prefix)-1], err.Error(), nil)
		return
	}
	for _, e := range nested.Errors {
		ve.add(prefix+e.Field, e.Message, e.Value)
	}
}
