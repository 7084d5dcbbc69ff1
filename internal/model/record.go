package model

import "time"

// AccountBalance is one account's balance captured in a MonthlyRecord.
type AccountBalance struct {
	AccountID   string  `json:"accountId"`
	AccountName string  `json:"accountName"`
	Balance     float64 `json:"balance"`
}

// CategoryBreakdown is the per-category expense total for a month.
type CategoryBreakdown struct {
	Food          float64 `json:"food"`
	Transport     float64 `json:"transport"`
	Shopping      float64 `json:"shopping"`
	Entertainment float64 `json:"entertainment"`
	Bills         float64 `json:"bills"`
	Healthcare    float64 `json:"healthcare"`
	Others        float64 `json:"others"`
}

// Add accumulates amount into cat. Unknown categories are ignored.
func (b *CategoryBreakdown) Add(cat Category, amount float64) {
	switch cat {
	case CategoryFood:
		b.Food += amount
	case CategoryTransport:
		b.Transport += amount
	case CategoryShopping:
		b.Shopping += amount
	case CategoryEntertainment:
		b.Entertainment += amount
	case CategoryBills:
		b.Bills += amount
	case CategoryHealthcare:
		b.Healthcare += amount
	case CategoryOthers:
		b.Others += amount
	}
}

// Get returns the total for cat.
func (b CategoryBreakdown) Get(cat Category) float64 {
	switch cat {
	case CategoryFood:
		return b.Food
	case CategoryTransport:
		return b.Transport
	case CategoryShopping:
		return b.Shopping
	case CategoryEntertainment:
		return b.Entertainment
	case CategoryBills:
		return b.Bills
	case CategoryHealthcare:
		return b.Healthcare
	case CategoryOthers:
		return b.Others
	}
	return 0
}

// Sum totals every category.
func (b CategoryBreakdown) Sum() float64 {
	var total float64
	for _, cat := range ExpenseCategories {
		total += b.Get(cat)
	}
	return total
}

// MonthlyRecord is a generated summary of one month.
type MonthlyRecord struct {
	ID                string            `json:"id"`
	Month             string            `json:"month"`
	TotalIncome       float64           `json:"totalIncome"`
	TotalExpenses     float64           `json:"totalExpenses"`
	TotalSavings      float64           `json:"totalSavings"`
	BudgetUtilization float64           `json:"budgetUtilization"` // percent
	AccountBalances   []AccountBalance  `json:"accountBalances"`
	CategoryBreakdown CategoryBreakdown `json:"categoryBreakdown"`
	CreatedAt         time.Time         `json:"createdAt"`
	Notes             string            `json:"notes,omitempty"`
}
