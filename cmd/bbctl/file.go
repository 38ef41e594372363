package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/vladimir-e/budgetbook-go/pkg/ledger"
)

// budgetFile is the on-disk shape of a budget: the metadata record, the
// three collections and the persistence adapter declarations.
type budgetFile struct {
	Metadata     ledger.BudgetMetadata    `json:"metadata"`
	Accounts     []*ledger.Account        `json:"accounts"`
	Categories   []*ledger.Category       `json:"categories"`
	Transactions []*ledger.Transaction    `json:"transactions"`
	Adapters     []map[string]interface{} `json:"adapters,omitempty"`
}

// loadBudgetFile reads and decodes a budget file. Decoding is strict about
// unknown fields so typos surface instead of silently dropping data.
func loadBudgetFile(path string) (*budgetFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open budget file %s", path)
	}
	defer f.Close()

	var file budgetFile
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrapf(err, "failed to decode budget file %s", path)
	}
	return &file, nil
}

// openLedger validates a budget file and loads it into a fresh ledger.
func openLedger(file *budgetFile) (*ledger.Ledger, error) {
	for i, raw := range file.Adapters {
		if _, err := ledger.ValidateAdapterConfig(raw); err != nil {
			return nil, errors.Wrapf(err, "adapters[%d]", i)
		}
	}

	meta := file.Metadata
	l, err := ledger.New(&ledger.Options{Metadata: &meta})
	if err != nil {
		return nil, err
	}
	if err := l.Load(file.Accounts, file.Categories, file.Transactions); err != nil {
		return nil, err
	}
	return l, nil
}

// printValidationFailures renders each recorded failure on its own line.
func printValidationFailures(err error) {
	var ve *ledger.ValidationErrors
	if !errors.As(err, &ve) {
		fmt.Println(err)
		return
	}
	for _, e := range ve.Errors {
		if e.Value != nil {
			fmt.Printf("  %s: %s (got %v)\n", e.Field, e.Message, e.Value)
		} else {
			fmt.Printf("  %s: %s\n", e.Field, e.Message)
		}
	}
}
