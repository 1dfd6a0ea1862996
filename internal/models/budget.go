package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a budget row.
type Budget struct {
	BudgetID       string          `db:"budget_id"`
	UserID         string          `db:"user_id"`
	CategoryID     sql.NullString  `db:"category_id"` // Optional scope
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	Amount         decimal.Decimal `db:"amount"`
	SpentAmount    decimal.Decimal `db:"spent_amount"`
	Period         string          `db:"period"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        sql.NullTime    `db:"end_date"`
	Color          string          `db:"color"`
	AlertThreshold int             `db:"alert_threshold"`
	IsActive       bool            `db:"is_active"`
	Status         string          `db:"status"`
	AuditFields
}
