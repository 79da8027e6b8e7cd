// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockTariffService struct {
	mock.Mock
}

// NewMockTariffService creates a mock that asserts its expectations on cleanup.
func NewMockTariffService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTariffService {
	m := &MockTariffService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTariffService) Snapshot(ctx context.Context) (*model.TariffSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TariffSnapshot), args.Error(1)
}

func (m *MockTariffService) Import(ctx context.Context, weights []model.WeightTariffRow, densities []model.DensityTariffRow, importedBy string) (*model.TariffSnapshot, error) {
	args := m.Called(ctx, weights, densities, importedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TariffSnapshot), args.Error(1)
}

func (m *MockTariffService) History(ctx context.Context, limit int) ([]model.TariffSetSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TariffSetSummary), args.Error(1)
}

func (m *MockTariffService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
