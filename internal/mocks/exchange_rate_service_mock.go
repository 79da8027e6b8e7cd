// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockExchangeRateService struct {
	mock.Mock
}

// NewMockExchangeRateService creates a mock that asserts its expectations on cleanup.
func NewMockExchangeRateService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExchangeRateService {
	m := &MockExchangeRateService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockExchangeRateService) Pair() model.CurrencyPair {
	args := m.Called()
	return args.Get(0).(model.CurrencyPair)
}

func (m *MockExchangeRateService) Current(ctx context.Context) (*model.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) Record(ctx context.Context, rate decimal.Decimal, source, notes string) (*model.ExchangeRate, error) {
	args := m.Called(ctx, rate, source, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) History(ctx context.Context, limit int) ([]model.ExchangeRate, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExchangeRate), args.Error(1)
}
