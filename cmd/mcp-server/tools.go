package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vladimir-e/budgetbook-go/pkg/ledger"
)

// ledgerTools holds the loaded ledger and implements all tool handlers
type ledgerTools struct {
	ledger   *ledger.Ledger
	currency ledger.Currency
}

// ListAccounts tool - lists all accounts with computed balances
type ListAccountsInput struct {
	// No input parameters needed
}

type AccountEntry struct {
	ID          string `json:"id" jsonschema:"Account ID"`
	Name        string `json:"name" jsonschema:"Account name"`
	Type        string `json:"type" jsonschema:"Account type (cash, checking, savings, credit_card, loan, asset, crypto)"`
	Institution string `json:"institution,omitempty" jsonschema:"Financial institution name"`
	Balance     int64  `json:"balance" jsonschema:"Computed balance in integer minor units"`
	Display     string `json:"display" jsonschema:"Balance formatted in the budget currency"`
	Archived    bool   `json:"archived" jsonschema:"Whether the account is archived"`
}

type ListAccountsOutput struct {
	Accounts []AccountEntry `json:"accounts" jsonschema:"List of all accounts"`
	Count    int            `json:"count" jsonschema:"Number of accounts"`
}

func (t *ledgerTools) ListAccounts(ctx context.Context, req *mcp.CallToolRequest, input ListAccountsInput) (*mcp.CallToolResult, ListAccountsOutput, error) {
	accounts := t.ledger.Accounts.List(ctx)
	transactions := t.ledger.Transactions.List(ctx)

	var entries []AccountEntry
	for _, acc := range accounts {
		balance := ledger.ComputeBalance(transactions, acc.ID)
		entries = append(entries, AccountEntry{
			ID:          acc.ID,
			Name:        acc.Name,
			Type:        string(acc.Type),
			Institution: acc.Institution,
			Balance:     balance,
			Display:     ledger.FormatMoney(balance, t.currency),
			Archived:    acc.Archived,
		})
	}

	return nil, ListAccountsOutput{
		Accounts: entries,
		Count:    len(entries),
	}, nil
}

// CreateTransaction tool - records an expense or income transaction
type CreateTransactionInput struct {
	Type        string `json:"type" jsonschema:"Transaction type: expense or income"`
	AccountID   string `json:"accountId" jsonschema:"Account the money moves through"`
	Date        string `json:"date" jsonschema:"Transaction date in YYYY-MM-DD format"`
	Amount      int64  `json:"amount" jsonschema:"Amount in integer minor units; negative for expense, positive for income"`
	CategoryID  string `json:"categoryId,omitempty" jsonschema:"Budget category ID (optional)"`
	Description string `json:"description,omitempty" jsonschema:"Transaction description (optional)"`
	Payee       string `json:"payee,omitempty" jsonschema:"Payee name (optional)"`
	Notes       string `json:"notes,omitempty" jsonschema:"Free-form notes (optional)"`
}

type CreateTransactionOutput struct {
	ID      string `json:"id" jsonschema:"ID of the created transaction"`
	Display string `json:"display" jsonschema:"Amount formatted in the budget currency"`
}

func (t *ledgerTools) CreateTransaction(ctx context.Context, req *mcp.CallToolRequest, input CreateTransactionInput) (*mcp.CallToolResult, CreateTransactionOutput, error) {
	tx, err := t.ledger.Transactions.Create(ctx, &ledger.CreateTransactionParams{
		Type:        ledger.TransactionType(input.Type),
		AccountID:   input.AccountID,
		Date:        input.Date,
		Amount:      input.Amount,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Payee:       input.Payee,
		Notes:       input.Notes,
		Source:      ledger.SourceAIAgent,
	})
	if err != nil {
		return nil, CreateTransactionOutput{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil, CreateTransactionOutput{
		ID:      tx.ID,
		Display: ledger.FormatMoney(tx.Amount, t.currency),
	}, nil
}

// CreateTransfer tool - moves money between two accounts
type CreateTransferInput struct {
	FromAccountID string `json:"fromAccountId" jsonschema:"Account the money leaves"`
	ToAccountID   string `json:"toAccountId" jsonschema:"Account the money enters"`
	Amount        int64  `json:"amount" jsonschema:"Amount to move in integer minor units (sign is ignored)"`
	Date          string `json:"date" jsonschema:"Transfer date in YYYY-MM-DD format"`
	Description   string `json:"description,omitempty" jsonschema:"Transfer description (optional)"`
}

type CreateTransferOutput struct {
	OutflowID string `json:"outflowId" jsonschema:"ID of the leg that leaves the source account"`
	InflowID  string `json:"inflowId" jsonschema:"ID of the leg that enters the destination account"`
	Display   string `json:"display" jsonschema:"Moved amount formatted in the budget currency"`
}

func (t *ledgerTools) CreateTransfer(ctx context.Context, req *mcp.CallToolRequest, input CreateTransferInput) (*mcp.CallToolResult, CreateTransferOutput, error) {
	outflow, inflow, err := t.ledger.Transactions.CreateTransfer(ctx,
		input.FromAccountID, input.ToAccountID, input.Amount, input.Date,
		ledger.TransferOpts{Description: input.Description})
	if err != nil {
		return nil, CreateTransferOutput{}, fmt.Errorf("failed to create transfer: %w", err)
	}

	return nil, CreateTransferOutput{
		OutflowID: outflow.ID,
		InflowID:  inflow.ID,
		Display:   ledger.FormatMoney(inflow.Amount, t.currency),
	}, nil
}

// MonthSummary tool - computes the budget aggregate for one month
type MonthSummaryInput struct {
	Month string `json:"month" jsonschema:"Month in YYYY-MM format (e.g. 2025-10)"`
}

type CategorySummaryEntry struct {
	CategoryID string `json:"categoryId" jsonschema:"Category ID"`
	Name       string `json:"name" jsonschema:"Category name"`
	Group      string `json:"group" jsonschema:"Category group name"`
	Assigned   int64  `json:"assigned" jsonschema:"Assigned amount in minor units"`
	Spent      int64  `json:"spent" jsonschema:"Spent amount in minor units (negative for outflow)"`
	Available  int64  `json:"available" jsonschema:"Remaining amount in minor units"`
}

type MonthSummaryOutput struct {
	Month             string                 `json:"month" jsonschema:"Month of the summary"`
	Categories        []CategorySummaryEntry `json:"categories" jsonschema:"Per-category figures, grouped and ordered for display"`
	Uncategorized     int64                  `json:"uncategorized" jsonschema:"Spend with no category, in minor units"`
	TotalIncome       int64                  `json:"totalIncome" jsonschema:"Income received this month, in minor units"`
	TotalAssigned     int64                  `json:"totalAssigned" jsonschema:"Total assigned across active categories, in minor units"`
	AvailableToBudget int64                  `json:"availableToBudget" jsonschema:"Unassigned money across all accounts, in minor units"`
}

func (t *ledgerTools) MonthSummary(ctx context.Context, req *mcp.CallToolRequest, input MonthSummaryInput) (*mcp.CallToolResult, MonthSummaryOutput, error) {
	summary, err := t.ledger.Budget.Month(ctx, input.Month)
	if err != nil {
		return nil, MonthSummaryOutput{}, fmt.Errorf("failed to compute summary: %w", err)
	}

	var entries []CategorySummaryEntry
	for _, group := range summary.Groups {
		for _, cat := range group.Categories {
			entries = append(entries, CategorySummaryEntry{
				CategoryID: cat.CategoryID,
				Name:       cat.Name,
				Group:      group.Group,
				Assigned:   cat.Assigned,
				Spent:      cat.Spent,
				Available:  cat.Available,
			})
		}
	}

	return nil, MonthSummaryOutput{
		Month:             summary.Month,
		Categories:        entries,
		Uncategorized:     summary.Uncategorized,
		TotalIncome:       summary.TotalIncome,
		TotalAssigned:     summary.TotalAssigned,
		AvailableToBudget: summary.AvailableToBudget,
	}, nil
}

// ReorderCategory tool - moves a category within or across groups
type ReorderCategoryInput struct {
	CategoryID  string `json:"categoryId" jsonschema:"Category to move"`
	SourceGroup string `json:"sourceGroup" jsonschema:"Group the category currently belongs to, or the archived list"`
	SourceOrder int    `json:"sourceOrder" jsonschema:"Current 1-based position in the source group"`
	TargetGroup string `json:"targetGroup" jsonschema:"Destination group, or the archived list"`
	TargetOrder int    `json:"targetOrder" jsonschema:"Desired 1-based position in the destination group"`
}

type ReorderCategoryOutput struct {
	PatchedIDs []string `json:"patchedIds" jsonschema:"IDs of every category the move changed"`
	Count      int      `json:"count" jsonschema:"Number of categories changed"`
}

func (t *ledgerTools) ReorderCategory(ctx context.Context, req *mcp.CallToolRequest, input ReorderCategoryInput) (*mcp.CallToolResult, ReorderCategoryOutput, error) {
	patches, err := t.ledger.Categories.Reorder(ctx,
		input.CategoryID, input.SourceGroup, input.SourceOrder,
		input.TargetGroup, input.TargetOrder)
	if err != nil {
		return nil, ReorderCategoryOutput{}, fmt.Errorf("failed to reorder category: %w", err)
	}

	ids := make([]string, 0, len(patches))
	for _, p := range patches {
		ids = append(ids, p.ID)
	}

	return nil, ReorderCategoryOutput{
		PatchedIDs: ids,
		Count:      len(ids),
	}, nil
}
