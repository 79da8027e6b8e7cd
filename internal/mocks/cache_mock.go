// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

// NewMockCache creates a mock that asserts its expectations on cleanup.
func NewMockCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCache) Get(ctx context.Context, key string) (model.QuoteResult, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(model.QuoteResult), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value model.QuoteResult) {
	m.Called(ctx, key, value)
}

func (m *MockCache) Invalidate(ctx context.Context, key string) {
	m.Called(ctx, key)
}

func (m *MockCache) Clear(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockCache) Stop() {
	m.Called()
}
