package model

// IncomeCategory classifies incoming money.
type IncomeCategory string

const (
	IncomeSalary     IncomeCategory = "salary"
	IncomeFreelance  IncomeCategory = "freelance"
	IncomeInvestment IncomeCategory = "investment"
	IncomeBonus      IncomeCategory = "bonus"
	IncomeOther      IncomeCategory = "other"
)

// IncomeCategories lists every income category.
var IncomeCategories = []IncomeCategory{IncomeSalary, IncomeFreelance, IncomeInvestment, IncomeBonus, IncomeOther}

// Valid reports whether c is a known income category.
func (c IncomeCategory) Valid() bool {
	for _, v := range IncomeCategories {
		if c == v {
			return true
		}
	}
	return false
}

// RecurringPeriod is how often a recurring income repeats.
type RecurringPeriod string

const (
	PeriodWeekly  RecurringPeriod = "weekly"
	PeriodMonthly RecurringPeriod = "monthly"
	PeriodYearly  RecurringPeriod = "yearly"
)

// RecurringPeriods lists every recurring period.
var RecurringPeriods = []RecurringPeriod{PeriodWeekly, PeriodMonthly, PeriodYearly}

// Income is money received into an account, possibly in a foreign currency.
type Income struct {
	ID              string          `json:"id"`
	Amount          float64         `json:"amount"`
	Currency        Currency        `json:"currency"`
	Category        IncomeCategory  `json:"category"`
	Description     string          `json:"description"`
	Date            string          `json:"date"`
	AccountID       string          `json:"accountId"`
	Source          string          `json:"source"`
	IsRecurring     bool            `json:"isRecurring"`
	RecurringPeriod RecurringPeriod `json:"recurringPeriod,omitempty"`
}
