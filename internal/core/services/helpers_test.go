package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/business_tracker/internal/adapters/database/memory"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/business_tracker/internal/core/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var adminSession = domain.Session{UserID: "user-admin", Username: "admin", Role: domain.RoleAdmin}

// newBusiness creates a business in store and returns a session scoped to it.
func newBusiness(t *testing.T, store portsrepo.Store, name string) domain.Session {
	t.Helper()
	b, err := services.NewBusinessService(store).CreateBusiness(context.Background(), adminSession, dto.CreateBusinessRequest{
		Name:         name,
		CurrencyCode: "USD",
	})
	require.NoError(t, err)
	return adminSession.WithBusiness(b.BusinessID)
}

func categoryID(t *testing.T, store portsrepo.Store, sess domain.Session, name string) string {
	t.Helper()
	cats, err := services.NewCatalogService(store).ListCategories(context.Background(), sess)
	require.NoError(t, err)
	for _, c := range cats {
		if c.Name == name {
			return c.CategoryID
		}
	}
	t.Fatalf("category %q not found", name)
	return ""
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newMemoryStore() *memory.Store {
	return memory.NewStore()
}

// failingCommitStore hands out units of work whose commit always fails.
type failingCommitStore struct {
	portsrepo.Store
}

func (s failingCommitStore) Begin(ctx context.Context) (portsrepo.UnitOfWork, error) {
	uow, err := s.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return failingCommitUnit{UnitOfWork: uow}, nil
}

type failingCommitUnit struct {
	portsrepo.UnitOfWork
}

func (u failingCommitUnit) Commit(ctx context.Context) error {
	_ = u.UnitOfWork.Rollback(ctx)
	return errors.New("disk full")
}
