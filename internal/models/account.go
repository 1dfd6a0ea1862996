package models

import (
	"github.com/shopspring/decimal"
)

// Account represents an account row.
// Note: account_number and institution_name are nullable in the schema and
// map to empty strings here.
type Account struct {
	AccountID       string          `db:"account_id"`
	UserID          string          `db:"user_id"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	InitialBalance  decimal.Decimal `db:"initial_balance"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	AccountNumber   string          `db:"account_number"`
	InstitutionName string          `db:"institution_name"`
	Color           string          `db:"color"`
	Icon            string          `db:"icon"`
	Status          string          `db:"status"`
	IsDefault       bool            `db:"is_default"`
	AuditFields
}
