package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/core/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/stretchr/testify/suite"
)

type ShopServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	employees portssvc.EmployeeSvcFacade
	parts     portssvc.PartSvcFacade
	sess      domain.Session
}

func (suite *ShopServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	store := newMemoryStore()
	suite.employees = services.NewEmployeeService(store)
	suite.parts = services.NewPartService(store)
	suite.sess = newBusiness(suite.T(), store, "Garage")
}

func TestShopServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShopServiceTestSuite))
}

func (suite *ShopServiceTestSuite) TestEmployeeValidation() {
	cases := map[string]dto.EmployeeRequest{
		"missing phone":   {Name: "Ravi"},
		"missing name":    {Phone: "555"},
		"negative salary": {Name: "Ravi", Phone: "555", Salary: dec("-1")},
		"bad email":       {Name: "Ravi", Phone: "555", Email: "not-an-email"},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			_, err := suite.employees.CreateEmployee(suite.ctx, suite.sess, req)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}

	list, err := suite.employees.ListEmployees(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	suite.Empty(list)
}

func (suite *ShopServiceTestSuite) TestEmployeeLifecycle() {
	created, err := suite.employees.CreateEmployee(suite.ctx, suite.sess, dto.EmployeeRequest{
		Name: " Ravi ", Phone: "555-0101", Salary: dec("2500"), Email: "ravi@example.com",
	})
	suite.Require().NoError(err)
	suite.Equal("Ravi", created.Name)
	suite.False(created.JoinDate.IsZero(), "join date defaults to now")
	suite.Nil(created.VisaExpiry)

	visa := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	updated, err := suite.employees.UpdateEmployee(suite.ctx, suite.sess, created.EmployeeID, dto.EmployeeRequest{
		Name: "Ravi K", Phone: "555-0101", Salary: dec("2750"), VisaExpiry: &visa, JoinDate: created.JoinDate,
	})
	suite.Require().NoError(err)
	suite.Equal("Ravi K", updated.Name)
	suite.True(dec("2750").Equal(updated.Salary))
	suite.Require().NotNil(updated.VisaExpiry)
	suite.True(visa.Equal(*updated.VisaExpiry))

	got, err := suite.employees.GetEmployee(suite.ctx, suite.sess, created.EmployeeID)
	suite.Require().NoError(err)
	suite.Equal("Ravi K", got.Name)

	other := adminSession.WithBusiness("another-business")
	_, err = suite.employees.GetEmployee(suite.ctx, other, created.EmployeeID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.Require().NoError(suite.employees.DeleteEmployee(suite.ctx, suite.sess, created.EmployeeID))
	_, err = suite.employees.GetEmployee(suite.ctx, suite.sess, created.EmployeeID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ShopServiceTestSuite) TestPartValidationAndLifecycle() {
	_, err := suite.parts.CreatePart(suite.ctx, suite.sess, dto.PartRequest{Name: "Filter", Price: dec("-0.01")})
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.parts.CreatePart(suite.ctx, suite.sess, dto.PartRequest{Name: "Filter", Quantity: -2})
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.parts.CreatePart(suite.ctx, suite.sess, dto.PartRequest{Price: dec("3")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	part, err := suite.parts.CreatePart(suite.ctx, suite.sess, dto.PartRequest{Name: "Filter", PartNumber: "OF-9", Price: dec("12.5"), Quantity: 3})
	suite.Require().NoError(err)

	updated, err := suite.parts.UpdatePart(suite.ctx, suite.sess, part.PartID, dto.PartRequest{Name: "Oil filter", PartNumber: "OF-9", Price: dec("13"), Quantity: 2})
	suite.Require().NoError(err)
	suite.Equal("Oil filter", updated.Name)
	suite.Equal(2, updated.Quantity)

	list, err := suite.parts.ListParts(suite.ctx, suite.sess)
	suite.Require().NoError(err)
	suite.Len(list, 1)

	suite.Require().NoError(suite.parts.DeletePart(suite.ctx, suite.sess, part.PartID))
	suite.ErrorIs(suite.parts.DeletePart(suite.ctx, suite.sess, part.PartID), apperrors.ErrNotFound)
}

func (suite *ShopServiceTestSuite) TestRequiresBusiness() {
	_, err := suite.employees.ListEmployees(suite.ctx, adminSession)
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)
	_, err = suite.parts.CreatePart(suite.ctx, adminSession, dto.PartRequest{Name: "Filter"})
	suite.ErrorIs(err, apperrors.ErrNoActiveBusiness)
}
