package model

import "strings"

// BankKind groups institutions in the catalogue.
type BankKind string

const (
	BankTraditional BankKind = "traditional"
	BankCrypto      BankKind = "crypto"
	BankInvestment  BankKind = "investment"
)

// Bank is a known institution with its brand colour.
type Bank struct {
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Logo    string   `json:"logo"`
	Country Country  `json:"country"`
	Kind    BankKind `json:"kind"`
}

// Banks is the built-in institution catalogue.
var Banks = []Bank{
	{Name: "Kasikorn Bank (K+)", Color: "#138F2D", Logo: "kasikorn", Country: CountryThailand, Kind: BankTraditional},
	{Name: "Bangkok Bank", Color: "#1E4D8B", Logo: "bangkok", Country: CountryThailand, Kind: BankTraditional},
	{Name: "Siam Commercial Bank", Color: "#4E148C", Logo: "scb", Country: CountryThailand, Kind: BankTraditional},
	{Name: "Krung Thai Bank", Color: "#00A0DF", Logo: "krungthai", Country: CountryThailand, Kind: BankTraditional},
	{Name: "Government Savings Bank", Color: "#E91E63", Logo: "gsb", Country: CountryThailand, Kind: BankTraditional},

	{Name: "KBZ Bank", Color: "#FF6B35", Logo: "kbz", Country: CountryMyanmar, Kind: BankTraditional},
	{Name: "CB Bank", Color: "#2E8B57", Logo: "cb", Country: CountryMyanmar, Kind: BankTraditional},
	{Name: "AYA Bank", Color: "#4169E1", Logo: "aya", Country: CountryMyanmar, Kind: BankTraditional},
	{Name: "UAB Bank", Color: "#DC143C", Logo: "uab", Country: CountryMyanmar, Kind: BankTraditional},
	{Name: "AGD Bank", Color: "#32CD32", Logo: "agd", Country: CountryMyanmar, Kind: BankTraditional},
	{Name: "Yoma Bank", Color: "#FF4500", Logo: "yoma", Country: CountryMyanmar, Kind: BankTraditional},
	{Name: "MAB Bank", Color: "#8A2BE2", Logo: "mab", Country: CountryMyanmar, Kind: BankTraditional},

	{Name: "Binance", Color: "#F3BA2F", Logo: "binance", Country: CountryGlobal, Kind: BankCrypto},
	{Name: "Coinbase", Color: "#0052FF", Logo: "coinbase", Country: CountryGlobal, Kind: BankCrypto},
	{Name: "Kraken", Color: "#5741D9", Logo: "kraken", Country: CountryGlobal, Kind: BankCrypto},
}

// LookupBank finds a catalogue entry by name or logo slug, case-insensitively.
func LookupBank(name string) (Bank, bool) {
	for _, b := range Banks {
		if strings.EqualFold(b.Name, name) || strings.EqualFold(b.Logo, name) {
			return b, true
		}
	}
	return Bank{}, false
}

// BanksIn returns the catalogue entries for a country.
func BanksIn(c Country) []Bank {
	var result []Bank
	for _, b := range Banks {
		if b.Country == c {
			result = append(result, b)
		}
	}
	return result
}

// WithBankDefaults fills the colour, logo and country of a from the
// catalogue entry for its bank, leaving fields that are already set.
func (a Account) WithBankDefaults() Account {
	bank, ok := LookupBank(a.BankName)
	if !ok {
		return a
	}
	if a.Color == "" {
		a.Color = bank.Color
	}
	if a.Logo == "" {
		a.Logo = bank.Logo
	}
	if a.Country == "" {
		a.Country = bank.Country
	}
	return a
}
