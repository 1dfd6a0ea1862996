package models

// Category represents a category row.
type Category struct {
	CategoryID   string `db:"category_id"`
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	CategoryType string `db:"category_type"`
	Color        string `db:"color"`
	Icon         string `db:"icon"`
	IsDefault    bool   `db:"is_default"`
	Status       string `db:"status"`
	AuditFields
}
