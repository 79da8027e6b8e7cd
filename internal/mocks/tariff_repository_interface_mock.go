// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockTariffRepositoryInterface struct {
	mock.Mock
}

func (m *MockTariffRepositoryInterface) GetActive(ctx context.Context) (*model.TariffSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TariffSnapshot), args.Error(1)
}

func (m *MockTariffRepositoryInterface) Create(ctx context.Context, weights []model.WeightTariffRow, densities []model.DensityTariffRow, createdBy string) (*model.TariffSnapshot, error) {
	args := m.Called(ctx, weights, densities, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TariffSnapshot), args.Error(1)
}

func (m *MockTariffRepositoryInterface) List(ctx context.Context, limit int) ([]model.TariffSetSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TariffSetSummary), args.Error(1)
}
