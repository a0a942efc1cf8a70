// Package accounting holds the balance arithmetic shared by the ledger and restore paths.
package accounting

import (
	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges accumulates per-account deltas for one unit of work.
type BalanceChanges map[string]decimal.Decimal

// Add folds delta into the change for accountID. Entries that net to zero are dropped.
func (b BalanceChanges) Add(accountID string, delta decimal.Decimal) {
	sum := b[accountID].Add(delta)
	if sum.IsZero() {
		delete(b, accountID)
		return
	}
	b[accountID] = sum
}

// ApplyTransaction adds the effect of txn on its account.
func (b BalanceChanges) ApplyTransaction(txn domain.Transaction) {
	b.Add(txn.AccountID, txn.SignedAmount())
}

// RevertTransaction removes the effect of txn from its account.
func (b BalanceChanges) RevertTransaction(txn domain.Transaction) {
	b.Add(txn.AccountID, txn.SignedAmount().Neg())
}

// ApplyTransfer debits the source and credits the destination.
func (b BalanceChanges) ApplyTransfer(transfer domain.FundTransfer) {
	b.Add(transfer.FromAccountID, transfer.Amount.Neg())
	b.Add(transfer.ToAccountID, transfer.Amount)
}

// ReplayBalances derives current balances from opening balances and history.
// Records pointing at accounts outside the map are ignored.
func ReplayBalances(accounts []domain.Account, txns []domain.Transaction, transfers []domain.FundTransfer) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		balances[a.AccountID] = a.OpeningBalance
	}
	for _, t := range txns {
		if bal, ok := balances[t.AccountID]; ok {
			balances[t.AccountID] = bal.Add(t.SignedAmount())
		}
	}
	for _, f := range transfers {
		if bal, ok := balances[f.FromAccountID]; ok {
			balances[f.FromAccountID] = bal.Sub(f.Amount)
		}
		if bal, ok := balances[f.ToAccountID]; ok {
			balances[f.ToAccountID] = bal.Add(f.Amount)
		}
	}
	return balances
}

// NetIncome returns total income, total expense and their difference.
func NetIncome(txns []domain.Transaction) (income, expense, net decimal.Decimal) {
	for _, t := range txns {
		switch t.Type {
		case domain.Income:
			income = income.Add(t.Amount)
		case domain.Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense, income.Sub(expense)
}
