package dto

import (
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount is a magnitude; the transaction type decides the balance direction.
type CreateTransactionRequest struct {
	AccountID          string                    `json:"accountID" binding:"required"`
	ToAccountID        string                    `json:"toAccountID"`
	CategoryID         string                    `json:"categoryID"`
	Amount             decimal.Decimal           `json:"amount" binding:"required"`
	Description        string                    `json:"description" binding:"required"`
	TransactionType    domain.TransactionType    `json:"transactionType" binding:"required,oneof=INCOME EXPENSE TRANSFER ADJUSTMENT"`
	TransactionDate    time.Time                 `json:"transactionDate" binding:"required"`
	ReferenceNumber    string                    `json:"referenceNumber"`
	Notes              string                    `json:"notes"`
	IsRecurring        bool                      `json:"isRecurring"`
	RecurringFrequency domain.RecurringFrequency `json:"recurringFrequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	NextRecurringDate  *time.Time                `json:"nextRecurringDate"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Account, destination and type are fixed at creation.
type UpdateTransactionRequest struct {
	CategoryID         *string                    `json:"categoryID"`
	Amount             *decimal.Decimal           `json:"amount"`
	Description        *string                    `json:"description"`
	TransactionDate    *time.Time                 `json:"transactionDate"`
	ReferenceNumber    *string                    `json:"referenceNumber"`
	Notes              *string                    `json:"notes"`
	Status             *domain.TransactionStatus  `json:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED FAILED"`
	IsRecurring        *bool                      `json:"isRecurring"`
	RecurringFrequency *domain.RecurringFrequency `json:"recurringFrequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	NextRecurringDate  *time.Time                 `json:"nextRecurringDate"`
}

// ListTransactionsRequest defines query parameters for listing transactions.
type ListTransactionsRequest struct {
	AccountID  *string                 `form:"accountID"`
	CategoryID *string                 `form:"categoryID"`
	Type       *domain.TransactionType `form:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER ADJUSTMENT"`
	From       *time.Time              `form:"from" time_format:"2006-01-02"`
	To         *time.Time              `form:"to" time_format:"2006-01-02"`
	Limit      int                     `form:"limit,default=50"`
	Offset     int                     `form:"offset,default=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string                    `json:"transactionID"`
	AccountID          string                    `json:"accountID"`
	ToAccountID        string                    `json:"toAccountID,omitempty"`
	CategoryID         string                    `json:"categoryID,omitempty"`
	Amount             decimal.Decimal           `json:"amount"`
	Description        string                    `json:"description"`
	TransactionType    domain.TransactionType    `json:"transactionType"`
	TransactionDate    time.Time                 `json:"transactionDate"`
	ReferenceNumber    string                    `json:"referenceNumber,omitempty"`
	Notes              string                    `json:"notes,omitempty"`
	Status             domain.TransactionStatus  `json:"status"`
	IsRecurring        bool                      `json:"isRecurring"`
	RecurringFrequency domain.RecurringFrequency `json:"recurringFrequency,omitempty"`
	NextRecurringDate  *time.Time                `json:"nextRecurringDate,omitempty"`
	CreatedAt          time.Time                 `json:"createdAt"`
	UpdatedAt          time.Time                 `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		AccountID:          txn.AccountID,
		ToAccountID:        txn.ToAccountID,
		CategoryID:         txn.CategoryID,
		Amount:             txn.Amount,
		Description:        txn.Description,
		TransactionType:    txn.TransactionType,
		TransactionDate:    txn.TransactionDate,
		ReferenceNumber:    txn.ReferenceNumber,
		Notes:              txn.Notes,
		Status:             txn.Status,
		IsRecurring:        txn.IsRecurring,
		RecurringFrequency: txn.RecurringFrequency,
		NextRecurringDate:  txn.NextRecurringDate,
		CreatedAt:          txn.CreatedAt,
		UpdatedAt:          txn.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
