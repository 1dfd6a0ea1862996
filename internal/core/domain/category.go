package domain

// CategoryType indicates which kinds of transactions a category classifies.
type CategoryType string

const (
	CategoryIncome   CategoryType = "INCOME"
	CategoryExpense  CategoryType = "EXPENSE"
	CategoryTransfer CategoryType = "TRANSFER"
)

// CategoryStatus is the lifecycle state of a category.
type CategoryStatus string

const (
	CategoryActive   CategoryStatus = "ACTIVE"
	CategoryInactive CategoryStatus = "INACTIVE"
)

// Category labels transactions for budgeting and reporting.
// Names are unique per owner. Default categories cannot be deleted, and no
// category can be deleted while transactions still reference it.
type Category struct {
	CategoryID   string         `json:"categoryID"` // Primary Key (UUID)
	UserID       string         `json:"userID"`     // Owner
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	CategoryType CategoryType   `json:"categoryType"`
	Color        string         `json:"color"`
	Icon         string         `json:"icon"`
	IsDefault    bool           `json:"isDefault"`
	Status       CategoryStatus `json:"status"`
	AuditFields
}
