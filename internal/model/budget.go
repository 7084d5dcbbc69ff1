package model

import "fmt"

// Category is one of the fixed spending buckets of a budget.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryHealthcare    Category = "healthcare"
	CategoryOthers        Category = "others"
)

// ExpenseCategories lists every budget category in display order.
var ExpenseCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealthcare,
	CategoryOthers,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

// BudgetCategory holds the cap and running total for one category.
type BudgetCategory struct {
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
}

// Categories is the closed set of budget categories.
type Categories struct {
	Food          BudgetCategory `json:"food"`
	Transport     BudgetCategory `json:"transport"`
	Shopping      BudgetCategory `json:"shopping"`
	Entertainment BudgetCategory `json:"entertainment"`
	Bills         BudgetCategory `json:"bills"`
	Healthcare    BudgetCategory `json:"healthcare"`
	Others        BudgetCategory `json:"others"`
}

func (c *Categories) field(cat Category) *BudgetCategory {
	switch cat {
	case CategoryFood:
		return &c.Food
	case CategoryTransport:
		return &c.Transport
	case CategoryShopping:
		return &c.Shopping
	case CategoryEntertainment:
		return &c.Entertainment
	case CategoryBills:
		return &c.Bills
	case CategoryHealthcare:
		return &c.Healthcare
	case CategoryOthers:
		return &c.Others
	}
	return nil
}

// Get returns the bucket for cat. Unknown categories yield a zero bucket.
func (c Categories) Get(cat Category) BudgetCategory {
	if f := c.field(cat); f != nil {
		return *f
	}
	return BudgetCategory{}
}

// Set replaces the bucket for cat.
func (c *Categories) Set(cat Category, v BudgetCategory) error {
	f := c.field(cat)
	if f == nil {
		return fmt.Errorf("unknown category %q", cat)
	}
	*f = v
	return nil
}

// AddSpent adjusts the spent total of cat by delta.
func (c *Categories) AddSpent(cat Category, delta float64) error {
	f := c.field(cat)
	if f == nil {
		return fmt.Errorf("unknown category %q", cat)
	}
	f.Spent += delta
	return nil
}

// Budget is the spending plan for one month.
type Budget struct {
	ID            string     `json:"id"`
	Month         string     `json:"month"` // YYYY-MM
	TotalBudget   float64    `json:"totalBudget"`
	Categories    Categories `json:"categories"`
	WeeklyAlerts  bool       `json:"weeklyAlerts"`
	LastAlertDate string     `json:"lastAlertDate"`
}

// TotalSpent sums spent across all categories.
func (b Budget) TotalSpent() float64 {
	var total float64
	for _, cat := range ExpenseCategories {
		total += b.Categories.Get(cat).Spent
	}
	return total
}

// TotalAllocated sums allocated across all categories.
func (b Budget) TotalAllocated() float64 {
	var total float64
	for _, cat := range ExpenseCategories {
		total += b.Categories.Get(cat).Allocated
	}
	return total
}

// Remaining is the total budget minus everything spent. Negative when over.
func (b Budget) Remaining() float64 {
	return b.TotalBudget - b.TotalSpent()
}
