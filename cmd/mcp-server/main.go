package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vladimir-e/budgetbook-go/pkg/ledger"
)

// budgetFile is the on-disk shape of a budget.
type budgetFile struct {
	Metadata     ledger.BudgetMetadata `json:"metadata"`
	Accounts     []*ledger.Account     `json:"accounts"`
	Categories   []*ledger.Category    `json:"categories"`
	Transactions []*ledger.Transaction `json:"transactions"`
}

func main() {
	// Get budget file path from environment
	path := os.Getenv("BUDGET_FILE")
	if path == "" {
		log.Fatal("BUDGET_FILE environment variable is required")
	}

	l, meta, err := loadLedger(path)
	if err != nil {
		log.Fatalf("failed to load budget: %v", err)
	}

	// Create MCP server with v1.0.0 API
	impl := &mcp.Implementation{
		Name:    "budgetbook",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	// Register all tools
	registerTools(server, l, meta.Currency)

	// Run server over stdio transport (for Claude Desktop)
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func loadLedger(path string) (*ledger.Ledger, ledger.BudgetMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ledger.BudgetMetadata{}, err
	}

	var file budgetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, ledger.BudgetMetadata{}, err
	}

	meta := file.Metadata
	l, err := ledger.New(&ledger.Options{Metadata: &meta})
	if err != nil {
		return nil, ledger.BudgetMetadata{}, err
	}
	if err := l.Load(file.Accounts, file.Categories, file.Transactions); err != nil {
		return nil, ledger.BudgetMetadata{}, err
	}
	return l, meta, nil
}

func registerTools(server *mcp.Server, l *ledger.Ledger, cur ledger.Currency) {
	// Create tools instance with the loaded ledger
	tools := &ledgerTools{ledger: l, currency: cur}

	// Register all tools using v1.0.0 API
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_accounts",
		Description: "List all accounts with their computed balances, types, and institutions.",
	}, tools.ListAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_transaction",
		Description: "Record an expense or income transaction. Amounts are integer minor units (cents); expenses must be negative and income positive.",
	}, tools.CreateTransaction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_transfer",
		Description: "Move money between two accounts. Creates both linked transfer legs.",
	}, tools.CreateTransfer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "month_summary",
		Description: "Compute the budget summary for a month: per-group assigned, spent and available figures plus total income, total assigned and available to budget.",
	}, tools.MonthSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reorder_category",
		Description: "Move a category to a new position, group, or the archived list. Sort positions are 1-based.",
	}, tools.ReorderCategory)
}
