// Package mocks provides testify mocks for controller interfaces.
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

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a MockUI bound to the test lifecycle.
func NewMockUI(t constructorTestingT) *MockUI {
	mockUI := &MockUI{}
	mockUI.Mock.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

// DisplayResolution provides a mock function.
func (_m *MockUI) DisplayResolution(ctx context.Context, resolution m.Resolution) error {
	ret := _m.Called(ctx, resolution)

	return ret.Error(0)
}

// DisplayState provides a mock function.
func (_m *MockUI) DisplayState(ctx context.Context, filesets map[string]m.InstalledFileset, fixes []m.InstalledFix) error {
	ret := _m.Called(ctx, filesets, fixes)

	return ret.Error(0)
}
