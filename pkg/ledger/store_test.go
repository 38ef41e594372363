package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalTypes "github.com/vladimir-e/budgetbook-go/internal/types"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(nil)
	require.NoError(t, err)
	return l
}

func TestNew_Defaults(t *testing.T) {
	l := newTestLedger(t)
	meta := l.Budget.Metadata(context.Background())
	assert.Equal(t, "Budget", meta.Name)
	assert.Equal(t, DefaultCurrency, meta.Currency)
	assert.Equal(t, 1, meta.Version)
}

func TestNew_RejectsInvalidMetadata(t *testing.T) {
	_, err := New(&Options{Metadata: &BudgetMetadata{Name: "", Version: 0}})
	assert.True(t, IsValidationError(err))
}

func TestAccountService_CreateEmitsOpeningBalance(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	account, err := l.Accounts.Create(ctx, &CreateAccountParams{
		Name:            "Checking",
		Type:            AccountChecking,
		StartingBalance: 310000,
	})
	require.NoError(t, err)

	transactions := l.Transactions.List(ctx)
	require.Len(t, transactions, 1)
	assert.Equal(t, account.ID, transactions[0].AccountID)
	assert.Equal(t, int64(310000), transactions[0].Amount)
	assert.Equal(t, int64(310000), ComputeBalance(transactions, account.ID))
}

func TestAccountService_DeleteGatedByTransactions(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	account, err := l.Accounts.Create(ctx, &CreateAccountParams{Name: "Cash", Type: AccountCash})
	require.NoError(t, err)

	// The opening-balance transaction references the account.
	err = l.Accounts.Delete(ctx, account.ID)
	assert.ErrorIs(t, err, ErrAccountHasTransactions)
	assert.Len(t, l.Accounts.List(ctx), 1)

	transactions := l.Transactions.List(ctx)
	require.NoError(t, l.Transactions.Delete(ctx, transactions[0].ID))
	require.NoError(t, l.Accounts.Delete(ctx, account.ID))
	assert.Empty(t, l.Accounts.List(ctx))
}

func TestAccountService_ArchiveGatedByBalance(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	account, err := l.Accounts.Create(ctx, &CreateAccountParams{Name: "Cash", Type: AccountCash, StartingBalance: 100})
	require.NoError(t, err)

	_, err = l.Accounts.Archive(ctx, account.ID)
	assert.ErrorIs(t, err, ErrAccountBalanceNonZero)

	_, err = l.Transactions.Create(ctx, &CreateTransactionParams{
		Type: TypeExpense, AccountID: account.ID, Date: "2024-03-15", Amount: -100,
	})
	require.NoError(t, err)

	archived, err := l.Accounts.Archive(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)
}

func TestAccountService_UpdateArchiveGatedByBalance(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	account, err := l.Accounts.Create(ctx, &CreateAccountParams{Name: "Checking", Type: AccountChecking, StartingBalance: 310000})
	require.NoError(t, err)

	// A patch update cannot archive around the zero-balance rule.
	yes := true
	_, err = l.Accounts.Update(ctx, account.ID, &UpdateAccountParams{Archived: &yes})
	assert.ErrorIs(t, err, ErrAccountBalanceNonZero)

	stored, err := l.Accounts.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, stored.Archived)

	// The account's funds still count toward the headline figure.
	summary, err := l.Budget.Month(ctx, MonthOf(Today()))
	require.NoError(t, err)
	assert.Equal(t, int64(310000), summary.AvailableToBudget)

	_, err = l.Transactions.Create(ctx, &CreateTransactionParams{
		Type: TypeExpense, AccountID: account.ID, Date: Today(), Amount: -310000,
	})
	require.NoError(t, err)

	archived, err := l.Accounts.Update(ctx, account.ID, &UpdateAccountParams{Archived: &yes})
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	// Unarchiving is never gated.
	no := false
	restored, err := l.Accounts.Update(ctx, account.ID, &UpdateAccountParams{Archived: &no})
	require.NoError(t, err)
	assert.False(t, restored.Archived)
}

func TestAccountService_Update(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	account, err := l.Accounts.Create(ctx, &CreateAccountParams{Name: "Cash", Type: AccountCash})
	require.NoError(t, err)

	name := "Wallet"
	reported := int64(4200)
	updated, err := l.Accounts.Update(ctx, account.ID, &UpdateAccountParams{Name: &name, ReportedBalance: &reported})
	require.NoError(t, err)
	assert.Equal(t, "Wallet", updated.Name)
	require.NotNil(t, updated.ReportedBalance)
	assert.Equal(t, int64(4200), *updated.ReportedBalance)

	empty := ""
	_, err = l.Accounts.Update(ctx, account.ID, &UpdateAccountParams{Name: &empty})
	assert.True(t, IsValidationError(err))

	_, err = l.Accounts.Update(ctx, "missing", &UpdateAccountParams{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionService_TransferLifecycle(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	checking, err := l.Accounts.Create(ctx, &CreateAccountParams{Name: "Checking", Type: AccountChecking, StartingBalance: 100000})
	require.NoError(t, err)
	savings, err := l.Accounts.Create(ctx, &CreateAccountParams{Name: "Savings", Type: AccountSavings})
	require.NoError(t, err)

	outflow, inflow, err := l.Transactions.CreateTransfer(ctx, checking.ID, savings.ID, 25000, "2024-03-15", TransferOpts{Description: "Stash"})
	require.NoError(t, err)

	transactions := l.Transactions.List(ctx)
	assert.Equal(t, int64(75000), ComputeBalance(transactions, checking.ID))
	assert.Equal(t, int64(25000), ComputeBalance(transactions, savings.ID))

	// Updating one leg propagates negation and date to the sibling.
	amount := int64(-30000)
	date := "2024-03-20"
	_, err = l.Transactions.Update(ctx, outflow.ID, &UpdateTransactionParams{Amount: &amount, Date: &date})
	require.NoError(t, err)

	sibling, err := l.Transactions.Get(ctx, inflow.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), sibling.Amount)
	assert.Equal(t, "2024-03-20", sibling.Date)

	// Type flips to or from transfer are rejected before mutation.
	expense := TypeExpense
	_, err = l.Transactions.Update(ctx, outflow.ID, &UpdateTransactionParams{Type: &expense})
	assert.ErrorIs(t, err, ErrTransferTypeChange)

	// Deleting one leg cascades to both.
	require.NoError(t, l.Transactions.Delete(ctx, inflow.ID))
	_, err = l.Transactions.Get(ctx, outflow.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionService_UpdateRejectsCategoryOnTransferLeg(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	checking, err := l.Accounts.Create(ctx, &CreateAccountParams{Name: "Checking", Type: AccountChecking, StartingBalance: 100000})
	require.NoError(t, err)
	savings, err := l.Accounts.Create(ctx, &CreateAccountParams{Name: "Savings", Type: AccountSavings})
	require.NoError(t, err)

	outflow, _, err := l.Transactions.CreateTransfer(ctx, checking.ID, savings.ID, 25000, "2024-03-15", TransferOpts{})
	require.NoError(t, err)

	cat := "cat-rent"
	_, err = l.Transactions.Update(ctx, outflow.ID, &UpdateTransactionParams{CategoryID: &cat})
	assert.True(t, IsValidationError(err))

	stored, err := l.Transactions.Get(ctx, outflow.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.CategoryID)

	// The ledger still passes its own consistency check.
	accounts, categories, transactions := l.Snapshot()
	assert.NoError(t, CheckIntegrity(accounts, categories, transactions))

	// Clearing the category on a leg stays allowed.
	empty := ""
	_, err = l.Transactions.Update(ctx, outflow.ID, &UpdateTransactionParams{CategoryID: &empty})
	require.NoError(t, err)
}

func TestTransactionService_CreateRejectsTransferType(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Transactions.Create(ctx, &CreateTransactionParams{
		Type: TypeTransfer, AccountID: "acc", Date: "2024-03-15", Amount: 100,
	})
	require.Error(t, err)
	assert.Empty(t, l.Transactions.List(ctx))
}

func TestTransactionService_SourceDefaultsToManual(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	tx, err := l.Transactions.Create(ctx, &CreateTransactionParams{
		Type: TypeIncome, AccountID: "acc", Date: "2024-03-15", Amount: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, SourceManual, tx.Source)

	agent, err := l.Transactions.Create(ctx, &CreateTransactionParams{
		Type: TypeIncome, AccountID: "acc", Date: "2024-03-15", Amount: 100, Source: SourceAIAgent,
	})
	require.NoError(t, err)
	assert.Equal(t, SourceAIAgent, agent.Source)
}

func TestCategoryService_DeleteClearsReferences(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	cat, err := l.Categories.Create(ctx, &CreateCategoryParams{Name: "Rent", Group: "Fixed", SortOrder: 1})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = l.Transactions.Create(ctx, &CreateTransactionParams{
			Type: TypeExpense, AccountID: "acc", Date: "2024-03-15", CategoryID: cat.ID, Amount: -100,
		})
		require.NoError(t, err)
	}

	require.NoError(t, l.Categories.Delete(ctx, cat.ID))
	assert.Empty(t, l.Categories.List(ctx))

	transactions := l.Transactions.List(ctx)
	require.Len(t, transactions, 3)
	for _, tx := range transactions {
		assert.Empty(t, tx.CategoryID)
	}
}

func TestCategoryService_ReorderApplies(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Load(nil, reorderFixture(), nil))

	patches, err := l.Categories.Reorder(ctx, "a", "Fixed", 1, "Fixed", 3)
	require.NoError(t, err)
	require.Len(t, patches, 3)

	a, err := l.Categories.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, a.SortOrder)
	b, _ := l.Categories.Get(ctx, "b")
	assert.Equal(t, 1, b.SortOrder)

	// Stale drags are a quiet no-op.
	patches, err = l.Categories.Reorder(ctx, "ghost", "Fixed", 1, "Fixed", 2)
	require.NoError(t, err)
	assert.Empty(t, patches)
}

func TestLedger_LoadRejectsInconsistentData(t *testing.T) {
	l := newTestLedger(t)

	err := l.Load(nil, nil, []*Transaction{
		{ID: "t1", Type: TypeExpense, AccountID: "ghost", Date: "2024-03-15", Amount: -1, Source: SourceManual},
	})
	assert.True(t, IsValidationError(err))
	assert.Empty(t, l.Transactions.List(context.Background()))
}

func TestLedger_Hooks(t *testing.T) {
	var mutations []string
	var failures []string
	l, err := New(&Options{
		Hooks: &internalTypes.Hooks{
			OnMutation: func(op string) { mutations = append(mutations, op) },
			OnError:    func(op string, err error) { failures = append(failures, op) },
		},
	})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = l.Accounts.Create(ctx, &CreateAccountParams{Name: "Cash", Type: AccountCash})
	require.NoError(t, err)
	assert.Equal(t, []string{"accounts.create"}, mutations)

	_, err = l.Accounts.Create(ctx, &CreateAccountParams{Name: "", Type: AccountCash})
	require.Error(t, err)
	assert.Equal(t, []string{"accounts.create"}, failures)
	// The failed create mutated nothing.
	assert.Len(t, l.Accounts.List(ctx), 1)
}

func TestBudgetService_Month(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	accounts, categories, transactions := budgetFixture()
	require.NoError(t, l.Load(accounts, categories, transactions))

	summary, err := l.Budget.Month(ctx, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, int64(40000), summary.AvailableToBudget)

	_, err = l.Budget.Month(ctx, "bogus")
	assert.Error(t, err)
}

func TestBudgetService_SetMetadata(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	meta := BudgetMetadata{Name: "Household", Currency: Currency{Code: "EUR", Precision: 2}, Version: 2}
	require.NoError(t, l.Budget.SetMetadata(ctx, meta))
	assert.Equal(t, meta, l.Budget.Metadata(ctx))

	err := l.Budget.SetMetadata(ctx, BudgetMetadata{Name: "", Version: 0})
	assert.True(t, IsValidationError(err))
	assert.Equal(t, meta, l.Budget.Metadata(ctx))
}
