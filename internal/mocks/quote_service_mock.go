// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/engine"
	"github.com/stretchr/testify/mock"
)

type MockQuoteService struct {
	mock.Mock
}

// NewMockQuoteService creates a mock that asserts its expectations on cleanup.
func NewMockQuoteService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuoteService {
	m := &MockQuoteService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockQuoteService) Quote(ctx context.Context, raw engine.RawShipment) (*model.QuoteRecord, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuoteRecord), args.Error(1)
}

func (m *MockQuoteService) History(ctx context.Context, limit int) ([]model.QuoteRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuoteRecord), args.Error(1)
}
