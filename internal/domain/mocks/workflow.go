// Package mocks provides testify mocks for domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"efixctl.dev/pkg/efixctl/internal/domain"
	m "efixctl.dev/pkg/efixctl/internal/model"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

type constructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewMockWorkflow creates a MockWorkflow that asserts its expectations when
// the test finishes.
func NewMockWorkflow(t constructorTestingT) *MockWorkflow {
	mockWorkflow := &MockWorkflow{}
	mockWorkflow.Mock.Test(t)

	t.Cleanup(func() { mockWorkflow.AssertExpectations(t) })

	return mockWorkflow
}

// Resolve provides a mock function.
func (_m *MockWorkflow) Resolve(ctx context.Context, args domain.ResolveArgs) (m.Resolution, error) {
	ret := _m.Called(ctx, args)

	return ret.Get(0).(m.Resolution), ret.Error(1)
}

// State provides a mock function.
func (_m *MockWorkflow) State(ctx context.Context) (map[string]m.InstalledFileset, []m.InstalledFix, error) {
	ret := _m.Called(ctx)

	var filesets map[string]m.InstalledFileset
	if ret.Get(0) != nil {
		filesets = ret.Get(0).(map[string]m.InstalledFileset)
	}

	var fixes []m.InstalledFix
	if ret.Get(1) != nil {
		fixes = ret.Get(1).([]m.InstalledFix)
	}

	return filesets, fixes, ret.Error(2)
}
