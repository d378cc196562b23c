package http_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockChangeItemStatus struct{ mock.Mock }

func (m *MockChangeItemStatus) Handle(ctx context.Context, cmd commands.ChangeItemStatusCommand) (commands.TransitionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.TransitionResult), args.Error(1)
}

type MockChangeItemStatuses struct{ mock.Mock }

func (m *MockChangeItemStatuses) Handle(ctx context.Context, cmd commands.ChangeItemStatusesCommand) ([]commands.ItemStatusChangeResult, error) {
	args := m.Called(ctx, cmd)
	results, _ := args.Get(0).([]commands.ItemStatusChangeResult)
	return results, args.Error(1)
}

type MockSelectRejectionReason struct{ mock.Mock }

func (m *MockSelectRejectionReason) Handle(ctx context.Context, cmd commands.SelectRejectionReasonCommand) (order.PendingRejection, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(order.PendingRejection), args.Error(1)
}

type MockConfirmRejection struct{ mock.Mock }

func (m *MockConfirmRejection) Handle(ctx context.Context, cmd commands.ConfirmRejectionCommand) (commands.TransitionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.TransitionResult), args.Error(1)
}

type MockCancelRejection struct{ mock.Mock }

func (m *MockCancelRejection) Handle(ctx context.Context, cmd commands.CancelRejectionCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockPlaceOrder struct{ mock.Mock }

func (m *MockPlaceOrder) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockSubmitCustomerRequest struct{ mock.Mock }

func (m *MockSubmitCustomerRequest) Handle(ctx context.Context, cmd commands.SubmitCustomerRequestCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockRejectCustomerRequest struct{ mock.Mock }

func (m *MockRejectCustomerRequest) Handle(ctx context.Context, cmd commands.RejectCustomerRequestCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetOrderFulfillment struct{ mock.Mock }

func (m *MockGetOrderFulfillment) Handle(ctx context.Context, query queries.GetOrderFulfillmentQuery) (queries.GetOrderFulfillmentQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderFulfillmentQueryResponse), args.Error(1)
}

type MockGetItemHistory struct{ mock.Mock }

func (m *MockGetItemHistory) Handle(ctx context.Context, query queries.GetItemHistoryQuery) ([]queries.GetItemHistoryQueryResponse, error) {
	args := m.Called(ctx, query)
	history, _ := args.Get(0).([]queries.GetItemHistoryQueryResponse)
	return history, args.Error(1)
}

type MockGetOpenOrders struct{ mock.Mock }

func (m *MockGetOpenOrders) Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]queries.GetOpenOrdersQueryResponse)
	return orders, args.Error(1)
}
