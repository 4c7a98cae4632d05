// Package mocks provides testify mocks for adapter interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	m "efixctl.dev/pkg/efixctl/internal/model"
)

type constructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockEfixInspector is a mock implementation of adapter.EfixInspector.
type MockEfixInspector struct {
	mock.Mock
}

// NewMockEfixInspector creates a MockEfixInspector bound to the test lifecycle.
func NewMockEfixInspector(t constructorTestingT) *MockEfixInspector {
	mockInspector := &MockEfixInspector{}
	mockInspector.Mock.Test(t)

	t.Cleanup(func() { mockInspector.AssertExpectations(t) })

	return mockInspector
}

// Inspect provides a mock function.
func (_m *MockEfixInspector) Inspect(ctx context.Context, path m.Path) (string, error) {
	ret := _m.Called(ctx, path)

	return ret.String(0), ret.Error(1)
}

// MockSystemState is a mock implementation of adapter.SystemState.
type MockSystemState struct {
	mock.Mock
}

// NewMockSystemState creates a MockSystemState bound to the test lifecycle.
func NewMockSystemState(t constructorTestingT) *MockSystemState {
	mockState := &MockSystemState{}
	mockState.Mock.Test(t)

	t.Cleanup(func() { mockState.AssertExpectations(t) })

	return mockState
}

// ListFilesets provides a mock function.
func (_m *MockSystemState) ListFilesets(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)

	return ret.String(0), ret.Error(1)
}

// ListFixes provides a mock function.
func (_m *MockSystemState) ListFixes(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)

	return ret.String(0), ret.Error(1)
}

// MockResolutionStore is a mock implementation of adapter.ResolutionStore.
type MockResolutionStore struct {
	mock.Mock
}

// NewMockResolutionStore creates a MockResolutionStore bound to the test lifecycle.
func NewMockResolutionStore(t constructorTestingT) *MockResolutionStore {
	mockStore := &MockResolutionStore{}
	mockStore.Mock.Test(t)

	t.Cleanup(func() { mockStore.AssertExpectations(t) })

	return mockStore
}

// Save provides a mock function.
func (_m *MockResolutionStore) Save(path m.Path, resolution m.Resolution) error {
	ret := _m.Called(path, resolution)

	return ret.Error(0)
}

// Load provides a mock function.
func (_m *MockResolutionStore) Load(path m.Path) (m.Resolution, error) {
	ret := _m.Called(path)

	return ret.Get(0).(m.Resolution), ret.Error(1)
}
