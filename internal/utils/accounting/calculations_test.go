package accounting

import (
	"testing"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBalanceChanges_UpdateOnSameAccountNetsOut(t *testing.T) {
	old := domain.Transaction{AccountID: "a", Amount: d("100"), Type: domain.Income}
	changes := BalanceChanges{}
	changes.RevertTransaction(old)
	changes.ApplyTransaction(old)
	assert.Empty(t, changes)
}

func TestBalanceChanges_MoveBetweenAccounts(t *testing.T) {
	old := domain.Transaction{AccountID: "a", Amount: d("100"), Type: domain.Income}
	updated := domain.Transaction{AccountID: "b", Amount: d("40"), Type: domain.Expense}

	changes := BalanceChanges{}
	changes.RevertTransaction(old)
	changes.ApplyTransaction(updated)

	assert.True(t, d("-100").Equal(changes["a"]))
	assert.True(t, d("-40").Equal(changes["b"]))
}

func TestBalanceChanges_Transfer(t *testing.T) {
	changes := BalanceChanges{}
	changes.ApplyTransfer(domain.FundTransfer{FromAccountID: "a", ToAccountID: "b", Amount: d("0.1")})
	changes.ApplyTransfer(domain.FundTransfer{FromAccountID: "b", ToAccountID: "a", Amount: d("0.1")})
	assert.Empty(t, changes, "a round trip leaves no drift")
}

func TestReplayBalances(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "a", OpeningBalance: d("1000.00")},
		{AccountID: "b", OpeningBalance: d("0")},
	}
	txns := []domain.Transaction{
		{AccountID: "a", Amount: d("500.00"), Type: domain.Income},
		{AccountID: "a", Amount: d("20.25"), Type: domain.Expense},
		{AccountID: "ghost", Amount: d("1"), Type: domain.Income},
	}
	transfers := []domain.FundTransfer{{FromAccountID: "a", ToAccountID: "b", Amount: d("79.75")}}

	got := ReplayBalances(accounts, txns, transfers)
	assert.True(t, d("1400").Equal(got["a"]), got["a"].String())
	assert.True(t, d("79.75").Equal(got["b"]))
	assert.Len(t, got, 2)
}

func TestNetIncome(t *testing.T) {
	income, expense, net := NetIncome([]domain.Transaction{
		{Amount: d("10.10"), Type: domain.Income},
		{Amount: d("0.20"), Type: domain.Income},
		{Amount: d("3.30"), Type: domain.Expense},
	})
	assert.True(t, d("10.30").Equal(income))
	assert.True(t, d("3.30").Equal(expense))
	assert.True(t, d("7.00").Equal(net))
}
