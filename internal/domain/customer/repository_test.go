package customer

import (
	"context"

	"risk-dashboard/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) FindAll(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if rf, ok := ret.Get(0).(func(context.Context) []*Customer); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID string) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, string) *Customer); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Update runs fn against a copy of the customer given to Return, mirroring a
// store that only commits when fn succeeds.
func (_m *MockCustomerRepository) Update(ctx context.Context, customerID string, fn MutateFunc) (*Customer, error) {
	ret := _m.Called(ctx, customerID, fn)

	if err := ret.Error(1); err != nil {
		return nil, err
	}
	stored, _ := ret.Get(0).(*Customer)
	if stored == nil {
		return nil, nil
	}
	working := stored.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	return working, nil
}

var _ CustomerRepository = (*MockCustomerRepository)(nil)

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerStatusUpdated(ctx context.Context, evt event.CustomerStatusUpdatedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishHighRiskAlert(ctx context.Context, evt event.HighRiskAlertEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}

var _ event.EventPublisher = (*MockEventPublisher)(nil)
