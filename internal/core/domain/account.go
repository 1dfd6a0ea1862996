package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account by what it holds.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	CreditCard AccountType = "CREDIT_CARD"
	Cash       AccountType = "CASH"
	Investment AccountType = "INVESTMENT"
	Loan       AccountType = "LOAN"
	OtherAcct  AccountType = "OTHER"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
	AccountClosed   AccountStatus = "CLOSED"
)

// Account represents a financial account owned by a single user.
// CurrentBalance is mutated only through the balance effects computed in
// transaction.go, never directly.
type Account struct {
	AccountID       string          `json:"accountID"` // Primary Key (UUID)
	UserID          string          `json:"userID"`    // Owner
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	InitialBalance  decimal.Decimal `json:"initialBalance"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	AccountNumber   string          `json:"accountNumber"`
	InstitutionName string          `json:"institutionName"`
	Color           string          `json:"color"`
	Icon            string          `json:"icon"`
	Status          AccountStatus   `json:"status"`
	IsDefault       bool            `json:"isDefault"` // At most one per user
	AuditFields
}

// HasSufficientFunds reports whether the account can cover an outgoing amount.
func (a Account) HasSufficientFunds(amount decimal.Decimal) bool {
	return a.CurrentBalance.GreaterThanOrEqual(amount)
}
