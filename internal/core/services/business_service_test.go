package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/core/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/stretchr/testify/suite"
)

type BusinessServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      portsrepo.Store
	businesses portssvc.BusinessSvcFacade
}

func (suite *BusinessServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemoryStore()
	suite.businesses = services.NewBusinessService(suite.store)
}

func TestBusinessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BusinessServiceTestSuite))
}

func (suite *BusinessServiceTestSuite) create(name string) *domain.Business {
	b, err := suite.businesses.CreateBusiness(suite.ctx, adminSession, dto.CreateBusinessRequest{Name: name, CurrencyCode: "aed"})
	suite.Require().NoError(err)
	return b
}

func (suite *BusinessServiceTestSuite) activeIDs() []string {
	all, err := suite.businesses.ListBusinesses(suite.ctx)
	suite.Require().NoError(err)
	var ids []string
	for _, b := range all {
		if b.IsActive {
			ids = append(ids, b.BusinessID)
		}
	}
	return ids
}

func (suite *BusinessServiceTestSuite) TestNoBusinessYet() {
	_, err := suite.businesses.GetActiveBusiness(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)
}

func (suite *BusinessServiceTestSuite) TestCreateBusiness() {
	first := suite.create("Workshop")
	suite.True(first.IsActive)
	suite.Equal("AED", first.CurrencyCode)
	suite.Equal("admin", first.CreatedBy)

	second := suite.create("Parts Store")
	suite.False(second.IsActive, "only the first business starts active")
	suite.Equal([]string{first.BusinessID}, suite.activeIDs())

	sess := adminSession.WithBusiness(second.BusinessID)
	catalog := services.NewCatalogService(suite.store)
	cats, err := catalog.ListCategories(suite.ctx, sess)
	suite.Require().NoError(err)
	suite.Len(cats, 7)
	modes, err := catalog.ListPaymentModes(suite.ctx, sess)
	suite.Require().NoError(err)
	suite.Len(modes, 5)

	page, err := services.NewActivityService(suite.store).ListActivity(suite.ctx, sess, dto.ListActivityParams{})
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Equal(domain.ActionBusinessCreated, page.Items[0].Action)
	suite.Equal("Business 'Parts Store' created", page.Items[0].Details)
}

func (suite *BusinessServiceTestSuite) TestCreateBusiness_Validation() {
	_, err := suite.businesses.CreateBusiness(suite.ctx, adminSession, dto.CreateBusinessRequest{Name: "  ", CurrencyCode: "USD"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.businesses.CreateBusiness(suite.ctx, adminSession, dto.CreateBusinessRequest{Name: "Shop", CurrencyCode: "XYZ"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BusinessServiceTestSuite) TestSetActiveBusiness() {
	first := suite.create("Workshop")
	second := suite.create("Parts Store")

	got, err := suite.businesses.SetActiveBusiness(suite.ctx, adminSession, second.BusinessID)
	suite.Require().NoError(err)
	suite.True(got.IsActive)
	suite.Equal([]string{second.BusinessID}, suite.activeIDs())

	active, err := suite.businesses.GetActiveBusiness(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(second.BusinessID, active.BusinessID)

	_, err = suite.businesses.SetActiveBusiness(suite.ctx, adminSession, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal([]string{second.BusinessID}, suite.activeIDs())

	_, err = suite.businesses.SetActiveBusiness(suite.ctx, adminSession, first.BusinessID)
	suite.Require().NoError(err)
	suite.Equal([]string{first.BusinessID}, suite.activeIDs())
}

func (suite *BusinessServiceTestSuite) TestUpdateBusiness() {
	b := suite.create("Workshop")
	name, currency := "Workshop LLC", "usd"

	updated, err := suite.businesses.UpdateBusiness(suite.ctx, adminSession, b.BusinessID, dto.UpdateBusinessRequest{Name: &name, CurrencyCode: &currency})
	suite.Require().NoError(err)
	suite.Equal("Workshop LLC", updated.Name)
	suite.Equal("USD", updated.CurrencyCode)

	bad := "ZZZ"
	_, err = suite.businesses.UpdateBusiness(suite.ctx, adminSession, b.BusinessID, dto.UpdateBusinessRequest{CurrencyCode: &bad})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BusinessServiceTestSuite) TestDeleteActiveBusinessPromotesRemaining() {
	first := suite.create("Workshop")
	second := suite.create("Parts Store")
	sess := adminSession.WithBusiness(first.BusinessID)

	ledger := services.NewLedgerService(suite.store)
	acc, err := ledger.CreateAccount(suite.ctx, sess, dto.CreateAccountRequest{Name: "Cash", OpeningBalance: dec("10")})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.businesses.DeleteBusiness(suite.ctx, adminSession, first.BusinessID))
	suite.Equal([]string{second.BusinessID}, suite.activeIDs())

	_, err = ledger.GetAccountByID(suite.ctx, sess, acc.AccountID)
	suite.ErrorIs(err, apperrors.ErrNotFound, "owned records go with the business")

	suite.Require().NoError(suite.businesses.DeleteBusiness(suite.ctx, adminSession, second.BusinessID))
	_, err = suite.businesses.GetActiveBusiness(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)

	err = suite.businesses.DeleteBusiness(suite.ctx, adminSession, second.BusinessID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BusinessServiceTestSuite) TestActivityPagination() {
	b := suite.create("Workshop")
	sess := adminSession.WithBusiness(b.BusinessID)
	ledger := services.NewLedgerService(suite.store)
	for _, name := range []string{"Cash", "Bank", "Card", "Petty"} {
		_, err := ledger.CreateAccount(suite.ctx, sess, dto.CreateAccountRequest{Name: name})
		suite.Require().NoError(err)
	}

	activity := services.NewActivityService(suite.store)
	seen := map[string]bool{}
	params := dto.ListActivityParams{Limit: 2}
	var pages int
	for {
		page, err := activity.ListActivity(suite.ctx, sess, params)
		suite.Require().NoError(err)
		pages++
		for _, entry := range page.Items {
			suite.False(seen[entry.ActivityLogID], "entry repeated across pages")
			seen[entry.ActivityLogID] = true
		}
		if page.NextToken == nil {
			suite.Len(page.Items, 1)
			break
		}
		suite.Len(page.Items, 2)
		params.NextToken = *page.NextToken
		suite.Require().Less(pages, 10)
	}
	suite.Equal(3, pages)
	suite.Len(seen, 5)

	_, err := activity.ListActivity(suite.ctx, sess, dto.ListActivityParams{NextToken: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = activity.ListActivity(suite.ctx, adminSession, dto.ListActivityParams{})
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)
}
