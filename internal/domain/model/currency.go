//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Currency is a platform currency with its exchange rate relative to the
// default currency. Exactly one currency is the default at any time.
type Currency struct {
	ID           string    `json:"id"           db:"id"`
	Code         string    `json:"code"         db:"code"`
	Name         string    `json:"name"         db:"name"`
	Symbol       string    `json:"symbol"       db:"symbol"`
	ExchangeRate float64   `json:"exchangeRate" db:"exchange_rate"`
	IsEnabled    bool      `json:"isEnabled"    db:"is_enabled"`
	IsDefault    bool      `json:"isDefault"    db:"is_default"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    db:"updated_at"`
}

// CurrencyListOptions controls paging and filtering for listing currencies.
type CurrencyListOptions struct {
	Limit   int
	Offset  int
	Q       *string // substring match on code and name (ILIKE)
	Enabled *bool
	Sort    string // allowed: "code", "name", "exchange_rate", "created_at"
	Dir     string
}

// CreateCurrencyRequest carries a new currency.
type CreateCurrencyRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	ExchangeRate float64 `json:"exchangeRate"`
	IsEnabled    *bool   `json:"isEnabled,omitempty"`
}

// UpdateCurrencyRequest carries a partial currency update.
type UpdateCurrencyRequest struct {
	Name         *string  `json:"name,omitempty"`
	Symbol       *string  `json:"symbol,omitempty"`
	ExchangeRate *float64 `json:"exchangeRate,omitempty"`
	IsEnabled    *bool    `json:"isEnabled,omitempty"`
}

// Validate validates CreateCurrencyRequest.
func (r *CreateCurrencyRequest) Validate() error {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	if utf8.RuneCountInString(r.Code) != 3 {
		return errors.New("code must be a three letter ISO 4217 code")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if strings.TrimSpace(r.Symbol) == "" {
		return errors.New("symbol is required and cannot be empty")
	}
	if r.ExchangeRate <= 0 {
		return errors.New("exchangeRate must be greater than zero")
	}
	return nil
}

// Validate validates UpdateCurrencyRequest.
func (r *UpdateCurrencyRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.Symbol != nil && strings.TrimSpace(*r.Symbol) == "" {
		return errors.New("symbol cannot be empty")
	}
	if r.ExchangeRate != nil && *r.ExchangeRate <= 0 {
		return errors.New("exchangeRate must be greater than zero")
	}
	return nil
}
