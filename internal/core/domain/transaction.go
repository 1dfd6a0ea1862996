package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a transaction with its direction of money movement.
type TransactionType string

const (
	Income     TransactionType = "INCOME"
	Expense    TransactionType = "EXPENSE"
	Transfer   TransactionType = "TRANSFER"
	Adjustment TransactionType = "ADJUSTMENT"
)

// TransactionStatus is caller-set metadata; it does not gate balance effects.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnCompleted TransactionStatus = "COMPLETED"
	TxnCancelled TransactionStatus = "CANCELLED"
	TxnFailed    TransactionStatus = "FAILED"
)

// RecurringFrequency describes how often a recurring transaction repeats.
type RecurringFrequency string

const (
	Daily   RecurringFrequency = "DAILY"
	Weekly  RecurringFrequency = "WEEKLY"
	Monthly RecurringFrequency = "MONTHLY"
	Yearly  RecurringFrequency = "YEARLY"
)

// Transaction represents a single money movement against one account, or two
// for transfers. Amount is an unsigned magnitude; the sign applied to account
// balances is derived from Type and never persisted.
type Transaction struct {
	TransactionID      string             `json:"transactionID"` // Primary Key (UUID)
	AccountID          string             `json:"accountID"`     // Source account (required)
	ToAccountID        string             `json:"toAccountID"`   // Destination, transfers only
	CategoryID         string             `json:"categoryID"`    // Optional
	Amount             decimal.Decimal    `json:"amount"`        // Non-negative magnitude
	Description        string             `json:"description"`
	TransactionType    TransactionType    `json:"transactionType"`
	TransactionDate    time.Time          `json:"transactionDate"`
	ReferenceNumber    string             `json:"referenceNumber"`
	Notes              string             `json:"notes"`
	Status             TransactionStatus  `json:"status"`
	IsRecurring        bool               `json:"isRecurring"`
	RecurringFrequency RecurringFrequency `json:"recurringFrequency,omitempty"`
	NextRecurringDate  *time.Time         `json:"nextRecurringDate,omitempty"`
	AuditFields
}

func (t Transaction) IsIncome() bool   { return t.TransactionType == Income }
func (t Transaction) IsExpense() bool  { return t.TransactionType == Expense }
func (t Transaction) IsTransfer() bool { return t.TransactionType == Transfer }

// SignedEffect computes the delta to apply to the source account balance when
// a transaction of the given type and magnitude is applied.
//
// INCOME adds the magnitude, EXPENSE subtracts it, TRANSFER subtracts it from
// the source (the destination side is DestinationEffect), and ADJUSTMENT
// passes the amount through with its sign as given.
func SignedEffect(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch txType {
	case Income:
		return amount.Abs()
	case Expense:
		return amount.Abs().Neg()
	case Transfer:
		return amount.Abs().Neg()
	default:
		return amount
	}
}

// DestinationEffect computes the delta for the destination account. Only
// transfers touch a second account; every other type yields zero.
func DestinationEffect(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType == Transfer {
		return amount.Abs()
	}
	return decimal.Zero
}

// ReversalEffect computes the delta that undoes a previously applied effect on
// the source account. It is a pure function of the type and the old magnitude:
// the update path reconciles amount changes by full reversal of the old amount
// followed by full application of the new one, never by diffing.
func ReversalEffect(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch txType {
	case Expense:
		return amount.Abs()
	case Income:
		return amount.Abs().Neg()
	case Transfer:
		return amount.Abs()
	default:
		return amount.Neg()
	}
}

// DestinationReversalEffect undoes the destination-side effect of a transfer.
func DestinationReversalEffect(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType == Transfer {
		return amount.Abs().Neg()
	}
	return decimal.Zero
}

// BalanceChanges returns the per-account deltas that applying t produces,
// keyed by account ID. For transfers the map has two entries.
func (t Transaction) BalanceChanges() map[string]decimal.Decimal {
	changes := map[string]decimal.Decimal{
		t.AccountID: SignedEffect(t.TransactionType, t.Amount),
	}
	if t.IsTransfer() && t.ToAccountID != "" {
		changes[t.ToAccountID] = changes[t.ToAccountID].Add(DestinationEffect(t.TransactionType, t.Amount))
	}
	return changes
}

// ReversalChanges returns the per-account deltas that undo t, using the given
// magnitude (the amount the transaction carried when it was applied).
func (t Transaction) ReversalChanges(amount decimal.Decimal) map[string]decimal.Decimal {
	changes := map[string]decimal.Decimal{
		t.AccountID: ReversalEffect(t.TransactionType, amount),
	}
	if t.IsTransfer() && t.ToAccountID != "" {
		changes[t.ToAccountID] = changes[t.ToAccountID].Add(DestinationReversalEffect(t.TransactionType, amount))
	}
	return changes
}
