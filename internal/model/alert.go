package model

// WeeklyAlert is a completed weekly balance check-in.
type WeeklyAlert struct {
	ID              string   `json:"id"`
	WeekOf          string   `json:"weekOf"`    // Monday, YYYY-MM-DD
	AlertDate       string   `json:"alertDate"` // ISO timestamp
	BudgetRemaining float64  `json:"budgetRemaining"`
	WeeklySpent     float64  `json:"weeklySpent"`
	AccountsUpdated []string `json:"accountsUpdated"`
	Completed       bool     `json:"completed"`
}
