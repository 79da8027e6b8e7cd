// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockQuoteRepositoryInterface struct {
	mock.Mock
}

func (m *MockQuoteRepositoryInterface) Create(ctx context.Context, record *model.QuoteRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockQuoteRepositoryInterface) List(ctx context.Context, limit int) ([]model.QuoteRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuoteRecord), args.Error(1)
}
