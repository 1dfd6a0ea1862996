package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Goal represents a goal row.
type Goal struct {
	GoalID        string          `db:"goal_id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	GoalType      string          `db:"goal_type"`
	TargetDate    sql.NullTime    `db:"target_date"`
	Color         string          `db:"color"`
	Icon          string          `db:"icon"`
	Status        string          `db:"status"`
	AuditFields
}
