package ledger

import (
	"fmt"
)

// Schema validation for every record and input type. All validators collect
// failures into a ValidationErrors list of (field path, message) pairs and
// never mutate state. Integer-ness of raw numeric input is enforced at the
// JSON decoding boundary (int64-typed fields reject fractional numbers);
// everything range- or shape-related is checked here.

const accountTypeList = "cash, checking, savings, credit_card, loan, asset, crypto"

func validateCurrency(prefix string, c Currency, ve *ValidationErrors) {
	if c.Code == "" {
		ve.add(prefix+"code", "must not be empty", nil)
	}
	if c.Precision < 0 {
		ve.add(prefix+"precision", "must be a non-negative integer", c.Precision)
	}
}

// Validate checks the currency value type.
func (c Currency) Validate() error {
	ve := &ValidationErrors{}
	validateCurrency("", c, ve)
	return ve.orNil()
}

// Validate checks a full account record.
func (a *Account) Validate() error {
	ve := &ValidationErrors{}
	if a.ID == "" {
		ve.add("id", "must not be empty", nil)
	}
	if a.Name == "" {
		ve.add("name", "must not be empty", nil)
	}
	if !a.Type.Valid() {
		ve.add("type", "must be one of "+accountTypeList, string(a.Type))
	}
	if a.ReconciledAt != "" && !ValidDate(a.ReconciledAt) {
		ve.add("reconciledAt", "must be an ISO date (YYYY-MM-DD) or empty", a.ReconciledAt)
	}
	return ve.orNil()
}

// Validate checks account creation input.
func (p *CreateAccountParams) Validate() error {
	ve := &ValidationErrors{}
	if p.Name == "" {
		ve.add("name", "must not be empty", nil)
	}
	if !p.Type.Valid() {
		ve.add("type", "must be one of "+accountTypeList, string(p.Type))
	}
	return ve.orNil()
}

// Validate checks partial account update input.
func (p *UpdateAccountParams) Validate() error {
	ve := &ValidationErrors{}
	if p.Name != nil && *p.Name == "" {
		ve.add("name", "must not be empty", nil)
	}
	if p.Type != nil && !p.Type.Valid() {
		ve.add("type", "must be one of "+accountTypeList, string(*p.Type))
	}
	if p.ReconciledAt != nil && *p.ReconciledAt != "" && !ValidDate(*p.ReconciledAt) {
		ve.add("reconciledAt", "must be an ISO date (YYYY-MM-DD) or empty", *p.ReconciledAt)
	}
	return ve.orNil()
}

func validateSign(field string, t TransactionType, amount int64, ve *ValidationErrors) {
	switch t {
	case TypeExpense:
		if amount > 0 {
			ve.add(field, "expense amount must be zero or negative", amount)
		}
	case TypeIncome:
		if amount < 0 {
			ve.add(field, "income amount must be zero or positive", amount)
		}
	}
	// Transfer legs carry either sign; the pairing invariant constrains them.
}

// Validate checks a full transaction record.
func (t *Transaction) Validate() error {
	ve := &ValidationErrors{}
	if t.ID == "" {
		ve.add("id", "must not be empty", nil)
	}
	if !t.Type.Valid() {
		ve.add("type", "must be one of expense, income, transfer", string(t.Type))
	}
	if t.AccountID == "" {
		ve.add("accountId", "must not be empty", nil)
	}
	if !ValidDate(t.Date) {
		ve.add("date", "must be a calendar date in YYYY-MM-DD form", t.Date)
	}
	validateSign("amount", t.Type, t.Amount, ve)
	if t.Type == TypeTransfer {
		if t.CategoryID != "" {
			ve.add("categoryId", "must be empty for transfers", t.CategoryID)
		}
		if t.TransferPairID == "" {
			ve.add("transferPairId", "must reference the sibling leg for transfers", nil)
		}
	} else if t.TransferPairID != "" {
		ve.add("transferPairId", "must be empty for non-transfers", t.TransferPairID)
	}
	if t.Source != "" && !t.Source.Valid() {
		ve.add("source", "must be one of manual, ai_agent, import", string(t.Source))
	}
	return ve.orNil()
}

// Validate checks transaction creation input.
func (p *CreateTransactionParams) Validate() error {
	ve := &ValidationErrors{}
	if !p.Type.Valid() {
		ve.add("type", "must be one of expense, income, transfer", string(p.Type))
	}
	if p.AccountID == "" {
		ve.add("accountId", "must not be empty", nil)
	}
	if !ValidDate(p.Date) {
		ve.add("date", "must be a calendar date in YYYY-MM-DD form", p.Date)
	}
	validateSign("amount", p.Type, p.Amount, ve)
	if p.Type == TypeTransfer && p.CategoryID != "" {
		ve.add("categoryId", "must be empty for transfers", p.CategoryID)
	}
	if p.Source != "" && !p.Source.Valid() {
		ve.add("source", "must be one of manual, ai_agent, import", string(p.Source))
	}
	return ve.orNil()
}

// Validate checks partial transaction update input. The expense/income sign
// rule is only enforced when both type and amount appear in the same call;
// an amount-only update is not checked against the stored type.
func (p *UpdateTransactionParams) Validate() error {
	ve := &ValidationErrors{}
	if p.Type != nil && !p.Type.Valid() {
		ve.add("type", "must be one of expense, income, transfer", string(*p.Type))
	}
	if p.Date != nil && !ValidDate(*p.Date) {
		ve.add("date", "must be a calendar date in YYYY-MM-DD form", *p.Date)
	}
	if p.Type != nil && p.Amount != nil {
		validateSign("amount", *p.Type, *p.Amount, ve)
	}
	if p.Type != nil && *p.Type == TypeTransfer && p.CategoryID != nil && *p.CategoryID != "" {
		ve.add("categoryId", "must be empty for transfers", *p.CategoryID)
	}
	return ve.orNil()
}

// Validate checks a full category record.
func (c *Category) Validate() error {
	ve := &ValidationErrors{}
	if c.ID == "" {
		ve.add("id", "must not be empty", nil)
	}
	if c.Name == "" {
		ve.add("name", "must not be empty", nil)
	}
	if c.Group == "" {
		ve.add("group", "must not be empty", nil)
	}
	if c.Assigned < 0 {
		ve.add("assigned", "must be a non-negative integer", c.Assigned)
	}
	return ve.orNil()
}

// Validate checks category creation input.
func (p *CreateCategoryParams) Validate() error {
	ve := &ValidationErrors{}
	if p.Name == "" {
		ve.add("name", "must not be empty", nil)
	}
	if p.Group == "" {
		ve.add("group", "must not be empty", nil)
	}
	if p.Assigned < 0 {
		ve.add("assigned", "must be a non-negative integer", p.Assigned)
	}
	return ve.orNil()
}

// Validate checks partial category update input.
func (p *UpdateCategoryParams) Validate() error {
	ve := &ValidationErrors{}
	if p.Name != nil && *p.Name == "" {
		ve.add("name", "must not be empty", nil)
	}
	if p.Group != nil && *p.Group == "" {
		ve.add("group", "must not be empty", nil)
	}
	if p.Assigned != nil && *p.Assigned < 0 {
		ve.add("assigned", "must be a non-negative integer", *p.Assigned)
	}
	return ve.orNil()
}

// Validate checks a budget metadata record, including the nested currency.
func (m *BudgetMetadata) Validate() error {
	ve := &ValidationErrors{}
	if m.Name == "" {
		ve.add("name", "must not be empty", nil)
	}
	if m.Version < 1 {
		ve.add("version", "must be a positive integer", m.Version)
	}
	validateCurrency("currency.", m.Currency, ve)
	return ve.orNil()
}

// ValidateAdapterConfig checks a raw adapter configuration record. The type
// discriminator must name a supported adapter; every other key passes
// through unchecked into Options so adapter-specific settings are preserved
// verbatim.
func ValidateAdapterConfig(raw map[string]interface{}) (*AdapterConfig, error) {
	ve := &ValidationErrors{}

	kind, ok := raw["type"].(string)
	if !ok || kind == "" {
		ve.add("type", "must be a non-empty string", raw["type"])
		return nil, ve
	}

	switch kind {
	case AdapterFile, AdapterCouchDB:
	default:
		ve.add("type", fmt.Sprintf("unsupported adapter type %q", kind), kind)
		return nil, ve
	}

	opts := make(map[string]interface{}, len(raw)-1)
	for k, v := range raw {
		if k == "type" {
			continue
		}
		opts[k] = v
	}

	return &AdapterConfig{Type: kind, Options: opts}, nil
}
