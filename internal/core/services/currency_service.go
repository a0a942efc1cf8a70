package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
)

type currencyService struct{}

// NewCurrencyService exposes the built-in currency catalog.
func NewCurrencyService() portssvc.CurrencySvcFacade {
	return currencyService{}
}

func (currencyService) ListCurrencies(ctx context.Context) []domain.Currency {
	return domain.SupportedCurrencies()
}

func (currencyService) GetCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	c, ok := domain.FindCurrency(code)
	if !ok {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, code)
	}
	return &c, nil
}
