package model

import "strings"

// PaymentMethod records how an expense was paid.
type PaymentMethod string

const (
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentCash       PaymentMethod = "cash"
	PaymentTransfer   PaymentMethod = "transfer"
)

// PaymentMethods lists every payment method.
var PaymentMethods = []PaymentMethod{PaymentDebitCard, PaymentCreditCard, PaymentCash, PaymentTransfer}

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// Expense is money spent from an account against a budget category.
type Expense struct {
	ID            string        `json:"id"`
	Amount        float64       `json:"amount"`
	Category      Category      `json:"category"`
	Description   string        `json:"description"`
	Date          string        `json:"date"` // YYYY-MM-DD or ISO timestamp
	AccountID     string        `json:"accountId"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Location      string        `json:"location,omitempty"`
	IsRecurring   bool          `json:"isRecurring"`
}

// InMonth reports whether the expense date falls in month (YYYY-MM).
func (e Expense) InMonth(month string) bool {
	return month != "" && strings.HasPrefix(e.Date, month)
}
