package services

import (
	"context"
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/SscSPs/business_tracker/internal/dto"
)

// PermissionAuthorizerSvc answers role-based permission checks.
type PermissionAuthorizerSvc interface {
	// Authorize returns apperrors.ErrForbidden when the session lacks perm.
	Authorize(sess domain.Session, perm domain.Permission) error
}

// TransactionAuthorizerSvc decides who may change an existing transaction.
type TransactionAuthorizerSvc interface {
	CanEditTransaction(sess domain.Session, txn domain.Transaction, now time.Time) bool
	CanDeleteTransaction(sess domain.Session, txn domain.Transaction, now time.Time) bool
}

// AccessSvcFacade manages local users and permission checks.
type AccessSvcFacade interface {
	PermissionAuthorizerSvc
	TransactionAuthorizerSvc

	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CreateUser(ctx context.Context, sess domain.Session, req dto.CreateUserRequest) (*domain.User, error)
	ListUsers(ctx context.Context, sess domain.Session) ([]domain.User, error)
	DeleteUser(ctx context.Context, sess domain.Session, userID string) error
	ChangePassword(ctx context.Context, sess domain.Session, req dto.ChangePasswordRequest) error
	// EnsureDefaultAdmin creates the admin user when the store has no users.
	EnsureDefaultAdmin(ctx context.Context, password string) error
}

// ActivitySvcFacade reads the activity feed.
type ActivitySvcFacade interface {
	ListActivity(ctx context.Context, sess domain.Session, params dto.ListActivityParams) (*dto.ListActivityResponse, error)
}

// CurrencySvcFacade exposes the static currency catalog.
type CurrencySvcFacade interface {
	ListCurrencies(ctx context.Context) []domain.Currency
	GetCurrency(ctx context.Context, code string) (*domain.Currency, error)
}
