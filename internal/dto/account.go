package dto

import (
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name            string              `json:"name" binding:"required"`
	AccountType     domain.AccountType  `json:"accountType" binding:"required,oneof=CHECKING SAVINGS CREDIT_CARD CASH INVESTMENT LOAN OTHER"`
	InitialBalance  decimal.Decimal     `json:"initialBalance"`
	AccountNumber   string              `json:"accountNumber"`
	InstitutionName string              `json:"institutionName"`
	Color           string              `json:"color"`
	Icon            string              `json:"icon"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// The account type is fixed at creation and cannot be changed.
type UpdateAccountRequest struct {
	Name            *string               `json:"name"`
	AccountNumber   *string               `json:"accountNumber"`
	InstitutionName *string               `json:"institutionName"`
	Color           *string               `json:"color"`
	Icon            *string               `json:"icon"`
	Status          *domain.AccountStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE CLOSED"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	InitialBalance  decimal.Decimal      `json:"initialBalance"`
	CurrentBalance  decimal.Decimal      `json:"currentBalance"`
	AccountNumber   string               `json:"accountNumber"`
	InstitutionName string               `json:"institutionName"`
	Color           string               `json:"color"`
	Icon            string               `json:"icon"`
	Status          domain.AccountStatus `json:"status"`
	IsDefault       bool                 `json:"isDefault"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		InitialBalance:  acc.InitialBalance,
		CurrentBalance:  acc.CurrentBalance,
		AccountNumber:   acc.AccountNumber,
		InstitutionName: acc.InstitutionName,
		Color:           acc.Color,
		Icon:            acc.Icon,
		Status:          acc.Status,
		IsDefault:       acc.IsDefault,
		CreatedAt:       acc.CreatedAt,
		UpdatedAt:       acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
