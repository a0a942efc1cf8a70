package services_test

import (
	"context"
	"sort"
	"strings"
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

const csvHeader = "Date,Category,Account,Amount,Type,Payment Mode,Notes"

type CSVServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  portsrepo.Store
	csv    portssvc.CSVSvcFacade
	ledger portssvc.TransactionSvcFacade
	sess   domain.Session
}

func (suite *CSVServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemoryStore()
	suite.sess = newBusiness(suite.T(), suite.store, "Source")
	suite.csv = services.NewCSVService(suite.store)
	suite.ledger = services.NewLedgerService(suite.store)
}

func TestCSVServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CSVServiceTestSuite))
}

func (suite *CSVServiceTestSuite) transactions(sess domain.Session) []domain.Transaction {
	txns, err := suite.ledger.ListTransactions(suite.ctx, sess, domain.TransactionFilter{})
	suite.Require().NoError(err)
	return txns
}

func (suite *CSVServiceTestSuite) TestExportImportRoundTrip() {
	ledger := services.NewLedgerService(suite.store)
	acc, err := ledger.CreateAccount(suite.ctx, suite.sess, dto.CreateAccountRequest{Name: "Main, Cash"})
	suite.Require().NoError(err)
	cash := categoryID(suite.T(), suite.store, suite.sess, "Sales")
	rent := categoryID(suite.T(), suite.store, suite.sess, "Rent")

	inputs := []dto.CreateTransactionRequest{
		{Amount: dec("1250.50"), Type: domain.Income, CategoryID: cash, Notes: `said "thanks", paid`, Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Amount: dec("300"), Type: domain.Expense, CategoryID: rent, Notes: "line one\nline two", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Amount: dec("0.01"), Type: domain.Income, CategoryID: cash, Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, in := range inputs {
		in.AccountID = acc.AccountID
		_, err := ledger.CreateTransaction(suite.ctx, suite.sess, in)
		suite.Require().NoError(err)
	}

	exported, err := suite.csv.ExportTransactionsCSV(suite.ctx, suite.sess, nil)
	suite.Require().NoError(err)
	lines := strings.Split(strings.TrimSuffix(string(exported), "\n"), "\n")
	suite.Require().Len(lines, 4, "header plus one line per transaction")
	suite.Equal(csvHeader, lines[0])
	suite.True(strings.HasPrefix(lines[1], "15-01-2024,Sales,"), lines[1])

	target := newBusiness(suite.T(), suite.store, "Target")
	result, err := suite.csv.ImportTransactionsCSV(suite.ctx, target, string(exported))
	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(3, result.ImportedCount)
	suite.Equal(0, result.SkippedCount)
	suite.Empty(result.Errors)

	type key struct {
		amount string
		typ    domain.TransactionType
		date   string
	}
	collect := func(txns []domain.Transaction) []key {
		out := make([]key, 0, len(txns))
		for _, t := range txns {
			out = append(out, key{t.Amount.String(), t.Type, t.Date.UTC().Format(time.RFC3339)})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].date < out[j].date })
		return out
	}
	suite.Equal(collect(suite.transactions(suite.sess)), collect(suite.transactions(target)))

	accounts, err := ledger.ListAccounts(suite.ctx, target)
	suite.Require().NoError(err)
	suite.Require().Len(accounts, 1)
	suite.Equal("Main, Cash", accounts[0].Name)
	suite.Equal("USD", accounts[0].CurrencyCode)
	suite.True(dec("950.51").Equal(accounts[0].CurrentBalance))

	var notes []string
	for _, t := range suite.transactions(target) {
		notes = append(notes, t.Notes)
	}
	suite.Contains(notes, `said "thanks", paid`)
	suite.Contains(notes, "line one line two")
}

func (suite *CSVServiceTestSuite) TestImport_HeaderMismatch() {
	content := "Date,Category,Amount,Type\n01-01-2024,Sales,10,income\n"

	result, err := suite.csv.ImportTransactionsCSV(suite.ctx, suite.sess, content)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrHeaderMismatch)
	suite.ErrorIs(err, apperrors.ErrFormat)
	suite.Empty(suite.transactions(suite.sess))
}

func (suite *CSVServiceTestSuite) TestImport_EmptyContent() {
	_, err := suite.csv.ImportTransactionsCSV(suite.ctx, suite.sess, "")
	suite.ErrorIs(err, apperrors.ErrFormat)
	suite.Contains(err.Error(), "No data found in CSV")
}

func (suite *CSVServiceTestSuite) TestImport_BadAmountOnThirdRow() {
	content := strings.Join([]string{
		csvHeader,
		"01-03-2024,Sales,Cash,100,income,Cash,",
		"02-03-2024,Sales,Cash,25.50,expense,,",
		"03-03-2024,Sales,Cash,abc,income,,",
		"04-03-2024,Fuel,Cash,10,EXPENSE,,diesel",
	}, "\r\n")

	result, err := suite.csv.ImportTransactionsCSV(suite.ctx, suite.sess, content)
	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(3, result.ImportedCount)
	suite.Equal(1, result.SkippedCount)
	suite.Equal([]string{"Row 4: Invalid amount"}, result.Errors)
	suite.Require().Len(result.RowErrors, 1)
	suite.ErrorIs(result.RowErrors[0], apperrors.ErrInvalidAmount)
	suite.Len(suite.transactions(suite.sess), 3)
}

func (suite *CSVServiceTestSuite) TestImport_RowErrorsKeepFileLineNumbers() {
	content := strings.Join([]string{
		csvHeader,
		"",
		"31-02-2024,Sales,Cash,5,income",
		"01-01-2024,Sales",
		"01-01-2024,Sales,Cash,5,refund",
		"01-01-2024,Sales,Cash,-5,income",
	}, "\n")

	result, err := suite.csv.ImportTransactionsCSV(suite.ctx, suite.sess, content)
	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(0, result.ImportedCount)
	suite.Equal(4, result.SkippedCount)
	suite.Equal([]string{
		"Row 3: Invalid date format",
		"Row 4: Insufficient data",
		"Row 5: Invalid transaction type",
		"Row 6: Invalid amount",
	}, result.Errors)

	accounts, err := suite.ledger.(portssvc.AccountSvcFacade).ListAccounts(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	suite.Empty(accounts, "rejected rows create nothing")
}

func (suite *CSVServiceTestSuite) TestImport_ReusesExistingNamesAndSkipsEmptyPaymentMode() {
	content := csvHeader + "\n05-05-2024,Sales,Cash,40,income,,\n06-05-2024,Sales,Cash,2,expense,Cheque,\n"

	result, err := suite.csv.ImportTransactionsCSV(suite.ctx, suite.sess, content)
	suite.Require().NoError(err)
	suite.Equal(2, result.ImportedCount)

	cats, err := services.NewCatalogService(suite.store).ListCategories(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	suite.Len(cats, len(domain.DefaultCategoryNames), "Sales is an existing category")

	modes, err := services.NewCatalogService(suite.store).ListPaymentModes(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	suite.Len(modes, len(domain.DefaultPaymentModeNames))

	txns := suite.transactions(suite.sess)
	suite.Require().Len(txns, 2)
	var withMode, withoutMode int
	for _, t := range txns {
		if t.PaymentModeID == "" {
			withoutMode++
		} else {
			withMode++
		}
	}
	suite.Equal(1, withMode)
	suite.Equal(1, withoutMode)

	page, err := services.NewActivityService(suite.store).ListActivity(suite.ctx, suite.sess, dto.ListActivityParams{Limit: 100})
	suite.Require().NoError(err)
	var imports int
	for _, entry := range page.Items {
		if entry.Action == domain.ActionTransactionsImported {
			imports++
			suite.Equal("Imported 2 transaction(s), skipped 0", entry.Details)
		}
	}
	suite.Equal(1, imports)
}

func (suite *CSVServiceTestSuite) TestImport_WithoutBusiness() {
	_, err := suite.csv.ImportTransactionsCSV(suite.ctx, adminSession, csvHeader+"\n")
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)
}

func (suite *CSVServiceTestSuite) TestExportEmployeesAndParts() {
	visa := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err := services.NewEmployeeService(suite.store).CreateEmployee(suite.ctx, suite.sess, dto.EmployeeRequest{
		Name: "Sam, Jr", Phone: "555-0100", Salary: dec("3200"), JoinDate: time.Date(2023, 9, 4, 0, 0, 0, 0, time.UTC), VisaExpiry: &visa,
	})
	suite.Require().NoError(err)
	_, err = services.NewPartService(suite.store).CreatePart(suite.ctx, suite.sess, dto.PartRequest{
		Name: "Brake pad", PartNumber: "BP-1", Price: dec("45.90"), Quantity: 4,
	})
	suite.Require().NoError(err)

	employees, err := suite.csv.ExportEmployeesCSV(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	suite.Equal("Name,Designation,Phone,Email,Emirates ID,Join Date,Salary,Visa Expiry\n"+
		"\"Sam, Jr\",,555-0100,,,04-09-2023,3200,01-07-2025\n", string(employees))

	parts, err := suite.csv.ExportPartsCSV(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	suite.Equal("Part Name,Part Number,Customer,Vehicle,Supplier,Quantity,Price\n"+
		"Brake pad,BP-1,,,,4,45.9\n", string(parts))
}
