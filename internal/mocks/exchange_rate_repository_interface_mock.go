// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockExchangeRateRepositoryInterface struct {
	mock.Mock
}

func (m *MockExchangeRateRepositoryInterface) Latest(ctx context.Context, pair model.CurrencyPair) (*model.ExchangeRate, error) {
	args := m.Called(ctx, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepositoryInterface) Record(ctx context.Context, rate model.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepositoryInterface) History(ctx context.Context, pair model.CurrencyPair, limit int) ([]model.ExchangeRate, error) {
	args := m.Called(ctx, pair, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExchangeRate), args.Error(1)
}
