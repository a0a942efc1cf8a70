package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/core/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    portsrepo.Store
	accounts portssvc.AccountSvcFacade
	txns     portssvc.TransactionSvcFacade
	sess     domain.Session
	sales    string
	rent     string
	now      time.Time
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemoryStore()
	suite.sess = newBusiness(suite.T(), suite.store, "Corner Shop")
	suite.now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	access := services.NewAccessService(suite.store, services.AccessConfig{EditWindow: 10 * time.Minute})
	ledger := services.NewLedgerService(suite.store,
		services.WithTransactionAuthorizer(access),
		services.WithLedgerClock(func() time.Time { return suite.now }))
	suite.accounts = ledger
	suite.txns = ledger
	suite.sales = categoryID(suite.T(), suite.store, suite.sess, "Sales")
	suite.rent = categoryID(suite.T(), suite.store, suite.sess, "Rent")
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) createAccount(name, opening string) *domain.Account {
	acc, err := suite.accounts.CreateAccount(suite.ctx, suite.sess, dto.CreateAccountRequest{
		Name:           name,
		OpeningBalance: dec(opening),
	})
	suite.Require().NoError(err)
	return acc
}

func (suite *LedgerServiceTestSuite) balance(accountID string) decimal.Decimal {
	acc, err := suite.accounts.GetAccountByID(suite.ctx, suite.sess, accountID)
	suite.Require().NoError(err)
	return acc.CurrentBalance
}

func (suite *LedgerServiceTestSuite) requireBalance(accountID, want string) {
	got := suite.balance(accountID)
	suite.Truef(dec(want).Equal(got), "balance: want %s, got %s", want, got.String())
}

func (suite *LedgerServiceTestSuite) record(accountID string, typ domain.TransactionType, amount string) *domain.Transaction {
	txn, err := suite.txns.CreateTransaction(suite.ctx, suite.sess, dto.CreateTransactionRequest{
		Amount:     dec(amount),
		Type:       typ,
		AccountID:  accountID,
		CategoryID: suite.sales,
	})
	suite.Require().NoError(err)
	return txn
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_DefaultsToBusinessCurrency() {
	acc := suite.createAccount("Cash", "250.75")

	suite.Equal("USD", acc.CurrencyCode)
	suite.True(acc.CurrentBalance.Equal(acc.OpeningBalance))
	suite.Equal("admin", acc.CreatedBy)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	_, err := suite.accounts.CreateAccount(suite.ctx, suite.sess, dto.CreateAccountRequest{Name: "Odd", CurrencyCode: "XYZ"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestIncomeThenDelete_ReturnsToOpeningBalance() {
	acc := suite.createAccount("Cash", "1000.00")

	txn := suite.record(acc.AccountID, domain.Income, "500.00")
	suite.requireBalance(acc.AccountID, "1500.00")

	suite.Require().NoError(suite.txns.DeleteTransaction(suite.ctx, suite.sess, txn.TransactionID))
	suite.requireBalance(acc.AccountID, "1000.00")

	_, err := suite.txns.GetTransactionByID(suite.ctx, suite.sess, txn.TransactionID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestBalanceMatchesSumOfTransactions() {
	acc := suite.createAccount("Till", "10.10")
	suite.record(acc.AccountID, domain.Income, "0.10")
	suite.record(acc.AccountID, domain.Expense, "0.20")
	third := suite.record(acc.AccountID, domain.Income, "99.99")
	suite.record(acc.AccountID, domain.Expense, "5.01")

	_, err := suite.txns.UpdateTransaction(suite.ctx, suite.sess, third.TransactionID, dto.UpdateTransactionRequest{
		Amount:     dec("100.01"),
		Type:       domain.Expense,
		AccountID:  acc.AccountID,
		CategoryID: suite.rent,
	})
	suite.Require().NoError(err)

	// 10.10 + 0.10 - 0.20 - 100.01 - 5.01
	suite.requireBalance(acc.AccountID, "-95.02")
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	acc := suite.createAccount("Cash", "0")

	for _, amount := range []string{"0", "-5"} {
		_, err := suite.txns.CreateTransaction(suite.ctx, suite.sess, dto.CreateTransactionRequest{
			Amount: dec(amount), Type: domain.Income, AccountID: acc.AccountID, CategoryID: suite.sales,
		})
		suite.ErrorIs(err, apperrors.ErrValidation, amount)
	}
	suite.requireBalance(acc.AccountID, "0")
}

// Amounts past four decimal places would be rounded by the NUMERIC(20, 4) columns.
func (suite *LedgerServiceTestSuite) TestAmountsBeyondFourDecimalsAreRejected() {
	a := suite.createAccount("A", "100")
	b := suite.createAccount("B", "0")

	_, err := suite.txns.CreateTransaction(suite.ctx, suite.sess, dto.CreateTransactionRequest{
		Amount: dec("1.00005"), Type: domain.Income, AccountID: a.AccountID, CategoryID: suite.sales,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.txns.CreateTransaction(suite.ctx, suite.sess, dto.CreateTransactionRequest{
		Amount: dec("1.23450000"), Type: domain.Income, AccountID: a.AccountID, CategoryID: suite.sales,
	})
	suite.Require().NoError(err, "trailing zeros fit the scale")

	_, err = suite.accounts.TransferFunds(suite.ctx, suite.sess, dto.TransferFundsRequest{
		FromAccountID: a.AccountID, ToAccountID: b.AccountID, Amount: dec("0.00001"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.accounts.CreateAccount(suite.ctx, suite.sess, dto.CreateAccountRequest{Name: "C", OpeningBalance: dec("0.12345")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	opening := dec("99.99999")
	_, err = suite.accounts.UpdateAccount(suite.ctx, suite.sess, a.AccountID, dto.UpdateAccountRequest{OpeningBalance: &opening})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.requireBalance(a.AccountID, "101.2345")
	suite.requireBalance(b.AccountID, "0")
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_WithoutBusiness() {
	_, err := suite.txns.CreateTransaction(suite.ctx, adminSession, dto.CreateTransactionRequest{
		Amount: dec("1"), Type: domain.Income, AccountID: "a", CategoryID: "c",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_UnknownCategory() {
	acc := suite.createAccount("Cash", "0")
	_, err := suite.txns.CreateTransaction(suite.ctx, suite.sess, dto.CreateTransactionRequest{
		Amount: dec("1"), Type: domain.Income, AccountID: acc.AccountID, CategoryID: "missing",
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.requireBalance(acc.AccountID, "0")
}

func (suite *LedgerServiceTestSuite) TestUpdateTransaction_MovesBetweenAccounts() {
	a := suite.createAccount("A", "100")
	b := suite.createAccount("B", "0")
	txn := suite.record(a.AccountID, domain.Expense, "30")
	suite.requireBalance(a.AccountID, "70")

	updated, err := suite.txns.UpdateTransaction(suite.ctx, suite.sess, txn.TransactionID, dto.UpdateTransactionRequest{
		Amount:     dec("50"),
		Type:       domain.Income,
		AccountID:  b.AccountID,
		CategoryID: suite.sales,
	})
	suite.Require().NoError(err)
	suite.Equal(b.AccountID, updated.AccountID)
	suite.True(updated.Date.Equal(txn.Date), "zero date keeps the original")

	suite.requireBalance(a.AccountID, "100")
	suite.requireBalance(b.AccountID, "50")
}

func (suite *LedgerServiceTestSuite) TestUpdateAccount_RebasesOpeningBalance() {
	acc := suite.createAccount("Cash", "100")
	suite.record(acc.AccountID, domain.Income, "20")

	opening := dec("150")
	updated, err := suite.accounts.UpdateAccount(suite.ctx, suite.sess, acc.AccountID, dto.UpdateAccountRequest{OpeningBalance: &opening})
	suite.Require().NoError(err)
	suite.True(dec("170").Equal(updated.CurrentBalance))
	suite.requireBalance(acc.AccountID, "170")
}

func (suite *LedgerServiceTestSuite) TestTransferRoundTrip_IsExact() {
	a := suite.createAccount("A", "100.10")
	b := suite.createAccount("B", "0.05")

	_, err := suite.accounts.TransferFunds(suite.ctx, suite.sess, dto.TransferFundsRequest{
		FromAccountID: a.AccountID, ToAccountID: b.AccountID, Amount: dec("33.33"),
	})
	suite.Require().NoError(err)
	suite.requireBalance(a.AccountID, "66.77")
	suite.requireBalance(b.AccountID, "33.38")

	_, err = suite.accounts.TransferFunds(suite.ctx, suite.sess, dto.TransferFundsRequest{
		FromAccountID: b.AccountID, ToAccountID: a.AccountID, Amount: dec("33.33"),
	})
	suite.Require().NoError(err)
	suite.requireBalance(a.AccountID, "100.10")
	suite.requireBalance(b.AccountID, "0.05")

	transfers, err := suite.accounts.ListFundTransfers(suite.ctx, suite.sess, a.AccountID)
	suite.Require().NoError(err)
	suite.Len(transfers, 2)
}

func (suite *LedgerServiceTestSuite) TestTransferToSelf_AlwaysValidationError() {
	a := suite.createAccount("A", "1000000")

	_, err := suite.accounts.TransferFunds(suite.ctx, suite.sess, dto.TransferFundsRequest{
		FromAccountID: a.AccountID, ToAccountID: a.AccountID, Amount: dec("1"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.requireBalance(a.AccountID, "1000000")
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFundsLeavesBalances() {
	a := suite.createAccount("A", "10")
	b := suite.createAccount("B", "5")

	_, err := suite.accounts.TransferFunds(suite.ctx, suite.sess, dto.TransferFundsRequest{
		FromAccountID: a.AccountID, ToAccountID: b.AccountID, Amount: dec("10.01"),
	})
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.requireBalance(a.AccountID, "10")
	suite.requireBalance(b.AccountID, "5")

	transfers, err := suite.accounts.ListFundTransfers(suite.ctx, suite.sess, "")
	suite.Require().NoError(err)
	suite.Empty(transfers)
}

func (suite *LedgerServiceTestSuite) TestDeleteAccount_WithTransactionsIsBlocked() {
	acc := suite.createAccount("Cash", "0")
	suite.record(acc.AccountID, domain.Income, "1")

	err := suite.accounts.DeleteAccount(suite.ctx, suite.sess, acc.AccountID)
	suite.ErrorIs(err, apperrors.ErrConstraintViolation)
}

// Transfers are not counted by the delete guard; the transfer record keeps the removed account's ID.
func (suite *LedgerServiceTestSuite) TestDeleteAccount_WithOnlyTransfersSucceeds() {
	a := suite.createAccount("A", "100")
	b := suite.createAccount("B", "0")
	_, err := suite.accounts.TransferFunds(suite.ctx, suite.sess, dto.TransferFundsRequest{
		FromAccountID: a.AccountID, ToAccountID: b.AccountID, Amount: dec("40"),
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.accounts.DeleteAccount(suite.ctx, suite.sess, b.AccountID))

	transfers, err := suite.accounts.ListFundTransfers(suite.ctx, suite.sess, "")
	suite.Require().NoError(err)
	suite.Require().Len(transfers, 1)
	suite.Equal(b.AccountID, transfers[0].ToAccountID)
	suite.requireBalance(a.AccountID, "60")
}

func (suite *LedgerServiceTestSuite) TestCommitFailure_LeavesNoTrace() {
	acc := suite.createAccount("Cash", "1000")
	broken := services.NewLedgerService(failingCommitStore{Store: suite.store})

	_, err := broken.CreateTransaction(suite.ctx, suite.sess, dto.CreateTransactionRequest{
		Amount: dec("500"), Type: domain.Income, AccountID: acc.AccountID, CategoryID: suite.sales,
	})
	suite.ErrorIs(err, apperrors.ErrStore)

	suite.requireBalance(acc.AccountID, "1000")
	txns, err := suite.txns.ListTransactions(suite.ctx, suite.sess, domain.TransactionFilter{})
	suite.Require().NoError(err)
	suite.Empty(txns)
}

func (suite *LedgerServiceTestSuite) TestEditWindow_ForPlainUsers() {
	acc := suite.createAccount("Cash", "0")
	clerk := domain.Session{BusinessID: suite.sess.BusinessID, UserID: "u-clerk", Username: "clerk", Role: domain.RoleUser}

	txn, err := suite.txns.CreateTransaction(suite.ctx, clerk, dto.CreateTransactionRequest{
		Amount: dec("10"), Type: domain.Income, AccountID: acc.AccountID, CategoryID: suite.sales,
	})
	suite.Require().NoError(err)

	update := dto.UpdateTransactionRequest{Amount: dec("12"), Type: domain.Income, AccountID: acc.AccountID, CategoryID: suite.sales}

	suite.now = suite.now.Add(5 * time.Minute)
	_, err = suite.txns.UpdateTransaction(suite.ctx, clerk, txn.TransactionID, update)
	suite.Require().NoError(err)

	other := clerk
	other.Username = "someone-else"
	_, err = suite.txns.UpdateTransaction(suite.ctx, other, txn.TransactionID, update)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.now = suite.now.Add(6 * time.Minute)
	err = suite.txns.DeleteTransaction(suite.ctx, clerk, txn.TransactionID)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.requireBalance(acc.AccountID, "12")

	suite.Require().NoError(suite.txns.DeleteTransaction(suite.ctx, suite.sess, txn.TransactionID))
	suite.requireBalance(acc.AccountID, "0")
}

func (suite *LedgerServiceTestSuite) TestSummaryAndNetIncome() {
	cash := suite.createAccount("Cash", "100")
	bank := suite.createAccount("Bank", "50")

	may := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	for _, r := range []struct {
		account string
		typ     domain.TransactionType
		amount  string
		date    time.Time
	}{
		{cash.AccountID, domain.Income, "500", may},
		{bank.AccountID, domain.Expense, "200", may},
		{cash.AccountID, domain.Income, "70", june},
	} {
		_, err := suite.txns.CreateTransaction(suite.ctx, suite.sess, dto.CreateTransactionRequest{
			Amount: dec(r.amount), Type: r.typ, AccountID: r.account, CategoryID: suite.sales, Date: r.date,
		})
		suite.Require().NoError(err)
	}

	all, err := suite.txns.GetNetIncome(suite.ctx, suite.sess, nil)
	suite.Require().NoError(err)
	suite.True(dec("370").Equal(all))

	rng := &domain.DateRange{From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	summary, err := suite.txns.GetSummary(suite.ctx, suite.sess, rng)
	suite.Require().NoError(err)
	suite.True(dec("500").Equal(summary.TotalIncome))
	suite.True(dec("200").Equal(summary.TotalExpense))
	suite.True(dec("300").Equal(summary.NetIncome))
	// 100 + 50 + 500 - 200 + 70
	suite.True(dec("520").Equal(summary.TotalBalance))

	total, err := suite.accounts.GetTotalBalance(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	suite.True(dec("520").Equal(total))

	listed, err := suite.txns.ListTransactions(suite.ctx, suite.sess, domain.TransactionFilter{AccountID: cash.AccountID})
	suite.Require().NoError(err)
	suite.Require().Len(listed, 2)
	suite.True(listed[0].Date.Equal(june), "newest first")
}

func (suite *LedgerServiceTestSuite) TestMutationsAreLoggedAsActivity() {
	acc := suite.createAccount("Cash", "10")
	suite.record(acc.AccountID, domain.Income, "5")

	page, err := services.NewActivityService(suite.store).ListActivity(suite.ctx, suite.sess, dto.ListActivityParams{})
	suite.Require().NoError(err)

	actions := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		actions = append(actions, item.Action)
	}
	suite.Contains(actions, domain.ActionBusinessCreated)
	suite.Contains(actions, domain.ActionAccountCreated)
	suite.Contains(actions, domain.ActionTransactionCreated)
}
