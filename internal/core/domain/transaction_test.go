package domain_test

import (
	"testing"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedEffect(t *testing.T) {
	tests := []struct {
		name   string
		txType domain.TransactionType
		amount decimal.Decimal
		want   decimal.Decimal
	}{
		{
			name:   "income adds the magnitude",
			txType: domain.Income,
			amount: decimal.NewFromFloat(100.50),
			want:   decimal.NewFromFloat(100.50),
		},
		{
			name:   "expense subtracts the magnitude",
			txType: domain.Expense,
			amount: decimal.NewFromFloat(30.00),
			want:   decimal.NewFromFloat(-30.00),
		},
		{
			name:   "transfer subtracts from the source",
			txType: domain.Transfer,
			amount: decimal.NewFromFloat(20.00),
			want:   decimal.NewFromFloat(-20.00),
		},
		{
			name:   "adjustment passes the amount through",
			txType: domain.Adjustment,
			amount: decimal.NewFromFloat(-12.34),
			want:   decimal.NewFromFloat(-12.34),
		},
		{
			name:   "income normalizes a negative magnitude",
			txType: domain.Income,
			amount: decimal.NewFromFloat(-75.00),
			want:   decimal.NewFromFloat(75.00),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.SignedEffect(tt.txType, tt.amount)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestReversalEffect_UndoesSignedEffect(t *testing.T) {
	amount := decimal.NewFromFloat(42.42)
	for _, txType := range []domain.TransactionType{domain.Income, domain.Expense, domain.Transfer} {
		applied := domain.SignedEffect(txType, amount)
		reversed := domain.ReversalEffect(txType, amount)
		assert.True(t, applied.Add(reversed).IsZero(), "type %s: %s + %s != 0", txType, applied, reversed)
	}

	// Adjustment reversal negates the amount as given.
	adj := decimal.NewFromFloat(-10.00)
	assert.True(t, domain.SignedEffect(domain.Adjustment, adj).Add(domain.ReversalEffect(domain.Adjustment, adj)).IsZero())
}

func TestTransferEffects_BothSides(t *testing.T) {
	amount := decimal.NewFromFloat(20.00)

	assert.True(t, domain.DestinationEffect(domain.Transfer, amount).Equal(decimal.NewFromFloat(20.00)))
	assert.True(t, domain.DestinationReversalEffect(domain.Transfer, amount).Equal(decimal.NewFromFloat(-20.00)))

	// Non-transfers never touch a destination account.
	assert.True(t, domain.DestinationEffect(domain.Expense, amount).IsZero())
	assert.True(t, domain.DestinationReversalEffect(domain.Income, amount).IsZero())
}

func TestTransaction_BalanceChanges(t *testing.T) {
	txn := domain.Transaction{
		TransactionID:   "txn-1",
		AccountID:       "acc-a",
		ToAccountID:     "acc-b",
		Amount:          decimal.NewFromFloat(20.00),
		TransactionType: domain.Transfer,
	}

	changes := txn.BalanceChanges()
	assert.Len(t, changes, 2)
	assert.True(t, changes["acc-a"].Equal(decimal.NewFromFloat(-20.00)))
	assert.True(t, changes["acc-b"].Equal(decimal.NewFromFloat(20.00)))

	reversal := txn.ReversalChanges(txn.Amount)
	assert.Len(t, reversal, 2)
	assert.True(t, reversal["acc-a"].Equal(decimal.NewFromFloat(20.00)))
	assert.True(t, reversal["acc-b"].Equal(decimal.NewFromFloat(-20.00)))

	// Applying then reversing nets to zero on every account.
	for id, delta := range changes {
		assert.True(t, delta.Add(reversal[id]).IsZero(), "account %s", id)
	}
}

func TestTransaction_BalanceChanges_ExpenseTouchesOneAccount(t *testing.T) {
	txn := domain.Transaction{
		AccountID:       "acc-a",
		Amount:          decimal.NewFromFloat(30.00),
		TransactionType: domain.Expense,
	}

	changes := txn.BalanceChanges()
	assert.Len(t, changes, 1)
	assert.True(t, changes["acc-a"].Equal(decimal.NewFromFloat(-30.00)))
}
