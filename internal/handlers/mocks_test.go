package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BusinessService ---
type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}
func (m *MockBusinessService) GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) GetActiveBusiness(ctx context.Context) (*domain.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) CreateBusiness(ctx context.Context, sess domain.Session, req dto.CreateBusinessRequest) (*domain.Business, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) SetActiveBusiness(ctx context.Context, sess domain.Session, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, sess, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) UpdateBusiness(ctx context.Context, sess domain.Session, businessID string, req dto.UpdateBusinessRequest) (*domain.Business, error) {
	args := m.Called(ctx, sess, businessID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) DeleteBusiness(ctx context.Context, sess domain.Session, businessID string) error {
	args := m.Called(ctx, sess, businessID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.BusinessSvcFacade = (*MockBusinessService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, sess domain.Session, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, sess, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, sess domain.Session) ([]domain.Account, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetTotalBalance(ctx context.Context, sess domain.Session) (decimal.Decimal, error) {
	args := m.Called(ctx, sess)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, sess domain.Session, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, sess domain.Session, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, sess, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, sess domain.Session, accountID string) error {
	args := m.Called(ctx, sess, accountID)
	return args.Error(0)
}
func (m *MockAccountService) TransferFunds(ctx context.Context, sess domain.Session, req dto.TransferFundsRequest) (*domain.FundTransfer, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundTransfer), args.Error(1)
}
func (m *MockAccountService) ListFundTransfers(ctx context.Context, sess domain.Session, accountID string) ([]domain.FundTransfer, error) {
	args := m.Called(ctx, sess, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundTransfer), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, sess domain.Session, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, sess, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, sess domain.Session, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, sess, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetNetIncome(ctx context.Context, sess domain.Session, rng *domain.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, sess, rng)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockTransactionService) GetSummary(ctx context.Context, sess domain.Session, rng *domain.DateRange) (*domain.Summary, error) {
	args := m.Called(ctx, sess, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, sess domain.Session, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, sess domain.Session, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, sess, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, sess domain.Session, transactionID string) error {
	args := m.Called(ctx, sess, transactionID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock AccessService ---
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) Authorize(sess domain.Session, perm domain.Permission) error {
	args := m.Called(sess, perm)
	return args.Error(0)
}
func (m *MockAccessService) CanEditTransaction(sess domain.Session, txn domain.Transaction, now time.Time) bool {
	args := m.Called(sess, txn, now)
	return args.Bool(0)
}
func (m *MockAccessService) CanDeleteTransaction(sess domain.Session, txn domain.Transaction, now time.Time) bool {
	args := m.Called(sess, txn, now)
	return args.Bool(0)
}
func (m *MockAccessService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
func (m *MockAccessService) CreateUser(ctx context.Context, sess domain.Session, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAccessService) ListUsers(ctx context.Context, sess domain.Session) ([]domain.User, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockAccessService) DeleteUser(ctx context.Context, sess domain.Session, userID string) error {
	args := m.Called(ctx, sess, userID)
	return args.Error(0)
}
func (m *MockAccessService) ChangePassword(ctx context.Context, sess domain.Session, req dto.ChangePasswordRequest) error {
	args := m.Called(ctx, sess, req)
	return args.Error(0)
}
func (m *MockAccessService) EnsureDefaultAdmin(ctx context.Context, password string) error {
	args := m.Called(ctx, password)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccessSvcFacade = (*MockAccessService)(nil)

// --- Mock CSVService ---
type MockCSVService struct {
	mock.Mock
}

func (m *MockCSVService) ExportTransactionsCSV(ctx context.Context, sess domain.Session, rng *domain.DateRange) ([]byte, error) {
	args := m.Called(ctx, sess, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockCSVService) ImportTransactionsCSV(ctx context.Context, sess domain.Session, content string) (*domain.ImportResult, error) {
	args := m.Called(ctx, sess, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}
func (m *MockCSVService) ExportEmployeesCSV(ctx context.Context, sess domain.Session) ([]byte, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockCSVService) ExportPartsCSV(ctx context.Context, sess domain.Session) ([]byte, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.CSVSvcFacade = (*MockCSVService)(nil)
