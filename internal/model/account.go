package model

import "time"

// AccountType classifies a bank account.
type AccountType string

const (
	AccountTypeSavings    AccountType = "savings"
	AccountTypeChecking   AccountType = "checking"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeCrypto     AccountType = "crypto"
	AccountTypeInvestment AccountType = "investment"
)

// AccountTypes lists every account type in display order.
var AccountTypes = []AccountType{
	AccountTypeSavings,
	AccountTypeChecking,
	AccountTypeCredit,
	AccountTypeCrypto,
	AccountTypeInvestment,
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	for _, v := range AccountTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Country tags the jurisdiction of an institution.
type Country string

const (
	CountryThailand Country = "TH"
	CountryMyanmar  Country = "MM"
	CountryGlobal   Country = "Global"
)

// Account is a bank, crypto or investment account with a running balance.
type Account struct {
	ID          string      `json:"id"`
	BankName    string      `json:"bankName"`
	Nickname    string      `json:"accountNickname"`
	Type        AccountType `json:"accountType"`
	Balance     float64     `json:"balance"`
	Currency    Currency    `json:"currency,omitempty"` // empty = THB
	Color       string      `json:"color"`
	Logo        string      `json:"logo"`
	LastUpdated time.Time   `json:"lastUpdated"`
	IsActive    bool        `json:"isActive"`
	IsDefault   bool        `json:"isDefault"`
	Country     Country     `json:"country"`
}

// AccountCurrency returns the account's currency, THB when unset.
func (a Account) AccountCurrency() Currency {
	if a.Currency == "" {
		return CurrencyTHB
	}
	return a.Currency
}

// DisplayName returns the nickname, falling back to the bank name.
func (a Account) DisplayName() string {
	if a.Nickname != "" {
		return a.Nickname
	}
	return a.BankName
}

// AccountPatch is a partial update for an Account. Nil fields are left alone.
type AccountPatch struct {
	BankName    *string      `json:"bankName,omitempty"`
	Nickname    *string      `json:"accountNickname,omitempty"`
	Type        *AccountType `json:"accountType,omitempty"`
	Balance     *float64     `json:"balance,omitempty"`
	Currency    *Currency    `json:"currency,omitempty"`
	Color       *string      `json:"color,omitempty"`
	Logo        *string      `json:"logo,omitempty"`
	LastUpdated *time.Time   `json:"lastUpdated,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
	IsDefault   *bool        `json:"isDefault,omitempty"`
	Country     *Country     `json:"country,omitempty"`
}

// Apply merges the non-nil fields of p into a.
func (p AccountPatch) Apply(a Account) Account {
	if p.BankName != nil {
		a.BankName = *p.BankName
	}
	if p.Nickname != nil {
		a.Nickname = *p.Nickname
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Balance != nil {
		a.Balance = *p.Balance
	}
	if p.Currency != nil {
		a.Currency = *p.Currency
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.Logo != nil {
		a.Logo = *p.Logo
	}
	if p.LastUpdated != nil {
		a.LastUpdated = *p.LastUpdated
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
	if p.IsDefault != nil {
		a.IsDefault = *p.IsDefault
	}
	if p.Country != nil {
		a.Country = *p.Country
	}
	return a
}

// SetsDefault reports whether the patch marks the account as default.
func (p AccountPatch) SetsDefault() bool {
	return p.IsDefault != nil && *p.IsDefault
}
