package ledger

import (
	"sort"
)

// IncomeGroup is the canonical name of the income group. Its categories
// track money received; they have no assigned/available concept.
const IncomeGroup = "Income"

// canonicalGroupOrder fixes the display order of the built-in groups:
// Income first, then the expense-style groups. Custom group names sort
// alphabetically after these.
var canonicalGroupOrder = []string{
	IncomeGroup,
	"Fixed",
	"Daily Living",
	"Savings",
	"Giving",
	"Lifestyle",
}

// CategorySummary carries the per-category figures for one month. Assigned
// is the category's recurring plan, not a per-month ledger entry; Spent is
// the month-filtered transaction sum; Available = Assigned + Spent for
// non-income categories (spent is <= 0, so available shrinks as money goes
// out). Income categories report only Spent.
type CategorySummary struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Assigned   int64  `json:"assigned"`
	Spent      int64  `json:"spent"`
	Available  int64  `json:"available"`
}

// GroupSummary totals the member categories of one group.
type GroupSummary struct {
	Group      string             `json:"group"`
	Income     bool               `json:"income"`
	Assigned   int64              `json:"assigned"`
	Spent      int64              `json:"spent"`
	Available  int64              `json:"available"`
	Categories []*CategorySummary `json:"categories"`
}

// MonthSummary is the full aggregator output for one calendar month:
// per-group summaries, the uncategorized-spend bucket and the three
// headline figures.
type MonthSummary struct {
	Month             string          `json:"month"`
	Groups            []*GroupSummary `json:"groups"`
	Uncategorized     int64           `json:"uncategorized"`
	TotalIncome       int64           `json:"totalIncome"`
	TotalAssigned     int64           `json:"totalAssigned"`
	AvailableToBudget int64           `json:"availableToBudget"`
}

// groupRank orders group names: canonical sequence first, then custom names
// alphabetically.
func groupRank(name string) (int, string) {
	for i, g := range canonicalGroupOrder {
		if g == name {
			return i, ""
		}
	}
	return len(canonicalGroupOrder), name
}

// SummarizeMonth computes every derived budget figure for the target month.
// Transactions are month-filtered for spend figures only; balances and
// assigned amounts are all-time. AvailableToBudget is defined as the
// all-time balance of all non-archived accounts minus the total assigned
// across non-archived, non-income categories; assigned amounts persist
// until reassigned, so it is deliberately not month-scoped.
func SummarizeMonth(accounts []*Account, categories []*Category, transactions []*Transaction, month string) (*MonthSummary, error) {
	if !ValidMonth(month) {
		ve := &ValidationErrors{}
		ve.add("month", "must be a calendar month in YYYY-MM form", month)
		return nil, ve
	}

	spentByCategory := make(map[string]int64)
	summary := &MonthSummary{Month: month}
	for _, tx := range transactions {
		if !InMonth(tx.Date, month) {
			continue
		}
		if tx.CategoryID != "" {
			spentByCategory[tx.CategoryID] += tx.Amount
		} else if tx.Type != TypeTransfer {
			// Transfer legs always carry an empty category and are not
			// spending, so they stay out of the uncategorized bucket.
			summary.Uncategorized += tx.Amount
		}
		if tx.Type == TypeIncome {
			summary.TotalIncome += tx.Amount
		}
	}

	byGroup := make(map[string][]*Category)
	for _, cat := range categories {
		if cat.Archived {
			continue
		}
		byGroup[cat.Group] = append(byGroup[cat.Group], cat)
		if cat.Group != IncomeGroup {
			summary.TotalAssigned += cat.Assigned
		}
	}

	groupNames := make([]string, 0, len(byGroup))
	for name := range byGroup {
		groupNames = append(groupNames, name)
	}
	sort.Slice(groupNames, func(i, j int) bool {
		ri, ci := groupRank(groupNames[i])
		rj, cj := groupRank(groupNames[j])
		if ri != rj {
			return ri < rj
		}
		return ci < cj
	})

	for _, name := range groupNames {
		members := byGroup[name]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].SortOrder < members[j].SortOrder
		})

		group := &GroupSummary{Group: name, Income: name == IncomeGroup}
		for _, cat := range members {
			cs := &CategorySummary{
				CategoryID: cat.ID,
				Name:       cat.Name,
				Spent:      spentByCategory[cat.ID],
			}
			if !group.Income {
				cs.Assigned = cat.Assigned
				cs.Available = cat.Assigned + cs.Spent
				group.Assigned += cs.Assigned
				group.Available += cs.Available
			}
			group.Spent += cs.Spent
			group.Categories = append(group.Categories, cs)
		}
		summary.Groups = append(summary.Groups, group)
	}

	for _, account := range accounts {
		if account.Archived {
			continue
		}
		summary.AvailableToBudget += ComputeBalance(transactions, account.ID)
	}
	summary.AvailableToBudget -= summary.TotalAssigned

	return summary, nil
}
