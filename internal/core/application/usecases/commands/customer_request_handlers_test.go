package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expectOrderTx(t *testing.T, repo *MockOrderRepository, commitErr error) (*MockOrderUoWFactory, *MockOrderUoW) {
	t.Helper()
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", mock.Anything).Return(commitErr).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}

func TestSubmitCustomerRequestCommandHandler_Handle(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("should freeze the order on a cancellation request", func(t *testing.T) {
		ctx := t.Context()
		item := testItem(t, order.ItemAccepted)
		o := testOrder(t, order.StatusAccepted, order.Requests{}, item)
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		repo.On("Update", ctx, o).Return(nil).Once()
		factory, uow := expectOrderTx(t, repo, nil)

		cmd, err := commands.NewSubmitCustomerRequestCommand(o.ID(), commands.RequestCancellation, kernel.UUID{}, now)
		require.NoError(t, err)
		err = commands.NewSubmitCustomerRequestCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.ConflictCancellationPending, o.Conflict(item))
		require.Len(t, o.Events(), 1)
		repo.AssertExpectations(t)
		uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("should record an item return", func(t *testing.T) {
		ctx := t.Context()
		item := testItem(t, order.ItemShipped)
		o := testOrder(t, order.StatusDelivered, order.Requests{}, item)
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		repo.On("Update", ctx, o).Return(nil).Once()
		factory, _ := expectOrderTx(t, repo, nil)

		cmd, err := commands.NewSubmitCustomerRequestCommand(o.ID(), commands.RequestItemReturn, item.ID(), now)
		require.NoError(t, err)

		require.NoError(t, commands.NewSubmitCustomerRequestCommandHandler(factory).Handle(ctx, cmd))
		assert.True(t, item.HasReturnRequest())
	})

	t.Run("should not persist a refused request", func(t *testing.T) {
		ctx := t.Context()
		o := testOrder(t, order.StatusProcessing, order.Requests{}, testItem(t, order.ItemProcessing))
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		factory, uow := expectOrderTx(t, repo, nil)

		cmd, _ := commands.NewSubmitCustomerRequestCommand(o.ID(), commands.RequestOrderReturn, kernel.UUID{}, now)
		err := commands.NewSubmitCustomerRequestCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should pass repository errors through", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderId", id)).Once()
		factory, _ := expectOrderTx(t, repo, nil)

		cmd, _ := commands.NewSubmitCustomerRequestCommand(id, commands.RequestCancellation, kernel.UUID{}, now)
		err := commands.NewSubmitCustomerRequestCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestNewSubmitCustomerRequestCommand(t *testing.T) {
	t.Run("should require an item for item returns", func(t *testing.T) {
		_, err := commands.NewSubmitCustomerRequestCommand(kernel.NewUUID(), commands.RequestItemReturn, kernel.UUID{}, time.Now())

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should refuse unknown kinds and missing times", func(t *testing.T) {
		_, err := commands.NewSubmitCustomerRequestCommand(kernel.NewUUID(), commands.RequestKind("exchange"), kernel.UUID{}, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should parse wire names", func(t *testing.T) {
		kind, err := commands.ParseRequestKind(" Item_Return ")
		require.NoError(t, err)
		assert.Equal(t, commands.RequestItemReturn, kind)

		_, err = commands.ParseRequestKind("exchange")
		require.Error(t, err)
	})
}

func TestRejectCustomerRequestCommandHandler_Handle(t *testing.T) {
	t.Run("should record the review outcome and keep the freeze", func(t *testing.T) {
		ctx := t.Context()
		item := testItem(t, order.ItemShipped)
		o := testOrder(t, order.StatusDelivered, order.Requests{ReturnRequestedAt: pastTime()}, item)
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		repo.On("Update", ctx, o).Return(nil).Once()
		factory, _ := expectOrderTx(t, repo, nil)

		cmd, err := commands.NewRejectCustomerRequestCommand(o.ID(), commands.RequestOrderReturn, "outside return window")
		require.NoError(t, err)
		err = commands.NewRejectCustomerRequestCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "outside return window", o.Requests().ReturnRejectionReason)
		assert.Equal(t, order.ConflictOrderReturnPending, o.Conflict(item))
	})

	t.Run("should fail when there is nothing to review", func(t *testing.T) {
		ctx := t.Context()
		o := testOrder(t, order.StatusAccepted, order.Requests{}, testItem(t, order.ItemAccepted))
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		factory, _ := expectOrderTx(t, repo, nil)

		cmd, _ := commands.NewRejectCustomerRequestCommand(o.ID(), commands.RequestCancellation, "too late")
		err := commands.NewRejectCustomerRequestCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should surface commit errors", func(t *testing.T) {
		ctx := t.Context()
		o := testOrder(t, order.StatusAccepted, order.Requests{CancellationRequestedAt: pastTime()}, testItem(t, order.ItemAccepted))
		repo := new(MockOrderRepository)
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		repo.On("Update", ctx, o).Return(nil).Once()
		factory, _ := expectOrderTx(t, repo, errors.New("commit error"))

		cmd, _ := commands.NewRejectCustomerRequestCommand(o.ID(), commands.RequestCancellation, "already packed")
		err := commands.NewRejectCustomerRequestCommandHandler(factory).Handle(ctx, cmd)

		require.EqualError(t, err, "commit error")
	})

	t.Run("should refuse item returns and blank reasons", func(t *testing.T) {
		_, err := commands.NewRejectCustomerRequestCommand(kernel.NewUUID(), commands.RequestItemReturn, " ")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
