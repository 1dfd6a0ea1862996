package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a transaction row. Amount is stored as a positive
// magnitude; the type column decides the balance direction.
type Transaction struct {
	TransactionID      string          `db:"transaction_id"`
	AccountID          string          `db:"account_id"`
	ToAccountID        sql.NullString  `db:"to_account_id"` // Transfers only
	CategoryID         sql.NullString  `db:"category_id"`
	Amount             decimal.Decimal `db:"amount"`
	Description        string          `db:"description"`
	TransactionType    string          `db:"transaction_type"`
	TransactionDate    time.Time       `db:"transaction_date"`
	ReferenceNumber    string          `db:"reference_number"`
	Notes              string          `db:"notes"`
	Status             string          `db:"status"`
	IsRecurring        bool            `db:"is_recurring"`
	RecurringFrequency sql.NullString  `db:"recurring_frequency"`
	NextRecurringDate  sql.NullTime    `db:"next_recurring_date"`
	AuditFields
}
