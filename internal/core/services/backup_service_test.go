package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/core/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/stretchr/testify/suite"
)

type BackupServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      portsrepo.Store
	backup     portssvc.BackupSvcFacade
	businesses portssvc.BusinessSvcFacade
	sess       domain.Session
	cashID     string
	bankID     string
}

func (suite *BackupServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemoryStore()
	suite.backup = services.NewBackupService(suite.store)
	suite.businesses = services.NewBusinessService(suite.store)
	suite.sess = newBusiness(suite.T(), suite.store, "Garage")

	ledger := services.NewLedgerService(suite.store)
	cash, err := ledger.CreateAccount(suite.ctx, suite.sess, dto.CreateAccountRequest{Name: "Cash", OpeningBalance: dec("1000")})
	suite.Require().NoError(err)
	bank, err := ledger.CreateAccount(suite.ctx, suite.sess, dto.CreateAccountRequest{Name: "Bank"})
	suite.Require().NoError(err)
	suite.cashID, suite.bankID = cash.AccountID, bank.AccountID

	_, err = ledger.CreateTransaction(suite.ctx, suite.sess, dto.CreateTransactionRequest{
		Amount:     dec("500"),
		Type:       domain.Income,
		AccountID:  suite.cashID,
		CategoryID: categoryID(suite.T(), suite.store, suite.sess, "Sales"),
		Reference:  "INV-7",
		Notes:      "brake job",
		Date:       time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	_, err = ledger.TransferFunds(suite.ctx, suite.sess, dto.TransferFundsRequest{
		FromAccountID: suite.cashID, ToAccountID: suite.bankID, Amount: dec("200"),
	})
	suite.Require().NoError(err)
}

func TestBackupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BackupServiceTestSuite))
}

func (suite *BackupServiceTestSuite) balances(sess domain.Session) map[string]string {
	accounts, err := services.NewLedgerService(suite.store).ListAccounts(suite.ctx, sess)
	suite.Require().NoError(err)
	out := make(map[string]string, len(accounts))
	for _, a := range accounts {
		out[a.Name] = a.CurrentBalance.String()
	}
	return out
}

func (suite *BackupServiceTestSuite) exportBackup() dto.BusinessBackup {
	data, err := suite.backup.ExportBackup(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	var backup dto.BusinessBackup
	suite.Require().NoError(json.Unmarshal(data, &backup))
	return backup
}

func (suite *BackupServiceTestSuite) TestExportRestoreRoundTrip() {
	data, err := suite.backup.ExportBackup(suite.ctx, suite.sess)
	suite.Require().NoError(err)

	result, err := suite.backup.RestoreBackup(suite.ctx, suite.sess, data)
	suite.Require().NoError(err)
	suite.Equal("Garage", result.Business.Name)
	suite.NotEqual(suite.sess.BusinessID, result.Business.BusinessID)
	suite.Equal(2, result.Accounts)
	suite.Equal(len(domain.DefaultCategoryNames), result.Categories)
	suite.Equal(len(domain.DefaultPaymentModeNames), result.PaymentModes)
	suite.Equal(1, result.Transactions)
	suite.Equal(1, result.FundTransfers)
	suite.Zero(result.SkippedTransfers)

	restored := suite.sess.WithBusiness(result.Business.BusinessID)
	suite.Equal(map[string]string{"Cash": "1300", "Bank": "200"}, suite.balances(restored))
	suite.Equal(suite.balances(suite.sess), suite.balances(restored))

	active, err := suite.businesses.GetActiveBusiness(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(result.Business.BusinessID, active.BusinessID)

	all, err := suite.businesses.ListBusinesses(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
	var activeCount int
	for _, b := range all {
		if b.IsActive {
			activeCount++
		}
	}
	suite.Equal(1, activeCount)

	txns, err := services.NewLedgerService(suite.store).ListTransactions(suite.ctx, restored, domain.TransactionFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(txns, 1)
	suite.Equal("INV-7", txns[0].Reference)
	suite.True(txns[0].Date.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)))

	page, err := services.NewActivityService(suite.store).ListActivity(suite.ctx, restored, dto.ListActivityParams{Limit: 100})
	suite.Require().NoError(err)
	var actions []string
	for _, entry := range page.Items {
		actions = append(actions, entry.Action)
	}
	suite.Contains(actions, domain.ActionDataRestored)
	suite.Contains(actions, domain.ActionFundTransfer, "history is carried over")
}

func (suite *BackupServiceTestSuite) TestRestore_SkipsOrphanTransfers() {
	backup := suite.exportBackup()
	suite.Require().Len(backup.FundTransfers, 1)
	backup.FundTransfers[0].ToAccountID = "ghost"
	data, err := json.Marshal(backup)
	suite.Require().NoError(err)

	result, err := suite.backup.RestoreBackup(suite.ctx, suite.sess, data)
	suite.Require().NoError(err)
	suite.Equal(1, result.SkippedTransfers)
	suite.Zero(result.FundTransfers)

	restored := suite.sess.WithBusiness(result.Business.BusinessID)
	suite.Equal(map[string]string{"Cash": "1300", "Bank": "0"}, suite.balances(restored))
}

func (suite *BackupServiceTestSuite) TestRestore_DeletedTransferSourceKeepsTotals() {
	ledger := services.NewLedgerService(suite.store)
	float, err := ledger.CreateAccount(suite.ctx, suite.sess, dto.CreateAccountRequest{Name: "Float", OpeningBalance: dec("100")})
	suite.Require().NoError(err)
	_, err = ledger.TransferFunds(suite.ctx, suite.sess, dto.TransferFundsRequest{
		FromAccountID: float.AccountID, ToAccountID: suite.bankID, Amount: dec("60"),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(ledger.DeleteAccount(suite.ctx, suite.sess, float.AccountID))

	before, err := ledger.GetTotalBalance(suite.ctx, suite.sess)
	suite.Require().NoError(err)

	data, err := suite.backup.ExportBackup(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	result, err := suite.backup.RestoreBackup(suite.ctx, suite.sess, data)
	suite.Require().NoError(err)
	suite.Equal(1, result.SkippedTransfers)
	suite.Equal(1, result.FundTransfers)

	restored := suite.sess.WithBusiness(result.Business.BusinessID)
	after, err := ledger.GetTotalBalance(suite.ctx, restored)
	suite.Require().NoError(err)
	suite.Truef(before.Equal(after), "total balance: before %s, after %s", before.String(), after.String())
	suite.Equal(suite.balances(suite.sess), suite.balances(restored))
	suite.Equal(map[string]string{"Cash": "1300", "Bank": "260"}, suite.balances(restored))
}

func (suite *BackupServiceTestSuite) TestRestore_MalformedInputChangesNothing() {
	cases := map[string][]byte{
		"not json":     []byte("{not json"),
		"no business":  []byte(`{"accounts":[]}`),
		"bad type":     []byte(`{"business":{"name":"X"},"transactions":[{"id":"t","type":"refund","amount":"5"}]}`),
		"zero amount":  []byte(`{"business":{"name":"X"},"transactions":[{"id":"t","type":"income","amount":"0"}]}`),
		"unknown refs": []byte(`{"business":{"name":"X"},"transactions":[{"id":"t","type":"income","amount":"5","accountId":"a","categoryId":"c"}]}`),
		"bad transfer": []byte(`{"business":{"name":"X"},"fundTransfers":[{"id":"f","amount":"-1"}]}`),
		"bad currency": []byte(`{"business":{"name":"X"},"accounts":[{"id":"a","name":"Cash","currency":"ZZZ"}]}`),
		"dup category": []byte(`{"business":{"name":"X"},"categories":[{"id":"c1","name":"Sales"},{"id":"c2","name":"Sales"}]}`),
		"dup mode":     []byte(`{"business":{"name":"X"},"paymentModes":[{"id":"m1","name":"Cash"},{"id":"m2","name":"Cash"}]}`),
		"precise":      []byte(`{"business":{"name":"X"},"fundTransfers":[{"id":"f","amount":"0.00001"}]}`),
	}
	for name, data := range cases {
		suite.Run(name, func() {
			_, err := suite.backup.RestoreBackup(suite.ctx, suite.sess, data)
			suite.ErrorIs(err, apperrors.ErrFormat)

			all, err := suite.businesses.ListBusinesses(suite.ctx)
			suite.Require().NoError(err)
			suite.Len(all, 1)
		})
	}
}

func (suite *BackupServiceTestSuite) TestExport_WithoutBusiness() {
	_, err := suite.backup.ExportBackup(suite.ctx, adminSession)
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)

	_, err = suite.backup.ExportBackup(suite.ctx, adminSession.WithBusiness("gone"))
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)

	_, err = suite.backup.ExportShopSnapshot(suite.ctx, adminSession)
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)
}

func (suite *BackupServiceTestSuite) TestExport_UsesCamelCaseKeys() {
	data, err := suite.backup.ExportBackup(suite.ctx, suite.sess)
	suite.Require().NoError(err)

	var raw map[string]any
	suite.Require().NoError(json.Unmarshal(data, &raw))
	for _, key := range []string{"business", "accounts", "categories", "paymentModes", "transactions", "fundTransfers", "activityLogs", "exportDate"} {
		suite.Contains(raw, key)
	}
	transfer := raw["fundTransfers"].([]any)[0].(map[string]any)
	suite.Equal(suite.cashID, transfer["fromAccountId"])
	suite.Equal(suite.bankID, transfer["toAccountId"])
	suite.Equal("200", transfer["amount"])
}

func (suite *BackupServiceTestSuite) TestShopSnapshot() {
	suite.Require().NoError(services.NewAccessService(suite.store, services.AccessConfig{JWTSecret: "test"}).
		EnsureDefaultAdmin(suite.ctx, "secret"))

	data, err := suite.backup.ExportShopSnapshot(suite.ctx, suite.sess)
	suite.Require().NoError(err)

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw map[string]any
	suite.Require().NoError(decoder.Decode(&raw))

	suite.Equal("1.0", raw["appVersion"])
	suite.Equal("Garage", raw["companyName"])
	suite.IsType(json.Number(""), raw["exportDate"])

	txns := raw["transactions"].([]any)
	suite.Require().Len(txns, 1)
	txn := txns[0].(map[string]any)
	suite.Equal(json.Number("500"), txn["amount"])
	suite.Equal(json.Number("1714554000"), txn["date"])
	suite.Equal("INV-7", txn["transactionId"])
	suite.Equal("brake job", txn["description"])
	suite.Equal("Cash", txn["account"])
	suite.Equal("Sales", txn["category"])

	users := raw["users"].([]any)
	suite.Require().Len(users, 1)
	user := users[0].(map[string]any)
	suite.Equal("admin", user["username"])
	suite.Equal(true, user["hasPassword"])
	suite.NotContains(user, "password")
	suite.NotContains(user, "passwordHash")
}
