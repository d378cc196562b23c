package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, itemID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) FetchOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockCommandSink struct{ mock.Mock }

func (m *MockCommandSink) ApplyItemStatus(
	ctx context.Context,
	itemID kernel.UUID,
	status order.ItemStatus,
	reason string,
) (*order.Order, error) {
	args := m.Called(ctx, itemID, status, reason)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) ObserveValidation(verdict string, conflict order.ConflictKind) {
	m.Called(verdict, conflict)
}

func (m *MockObserver) ObserveSinkCall(seconds float64, err error) {
	m.Called(seconds, err)
}

// fakeWorkflow is an in-memory RejectionWorkflowStore.
type fakeWorkflow struct {
	mu      sync.Mutex
	entries map[kernel.UUID]order.PendingRejection
}

func newFakeWorkflow() *fakeWorkflow {
	return &fakeWorkflow{entries: make(map[kernel.UUID]order.PendingRejection)}
}

func (f *fakeWorkflow) Get(_ context.Context, itemID kernel.UUID) (order.PendingRejection, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.entries[itemID]
	return p, ok, nil
}

func (f *fakeWorkflow) Put(_ context.Context, p order.PendingRejection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[p.ItemID] = p
	return nil
}

func (f *fakeWorkflow) Delete(_ context.Context, itemID kernel.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, itemID)
	return nil
}

// fakeInFlight is an in-memory InFlightRegistry that remembers what happened.
type fakeInFlight struct {
	mu       sync.Mutex
	held     map[kernel.UUID]string
	acquired int
	released int
}

func newFakeInFlight() *fakeInFlight {
	return &fakeInFlight{held: make(map[kernel.UUID]string)}
}

func (f *fakeInFlight) Acquire(_ context.Context, itemID kernel.UUID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.held[itemID]; busy {
		return "", ports.ErrItemBusy
	}
	token := kernel.NewUUID().String()
	f.held[itemID] = token
	f.acquired++
	return token, nil
}

func (f *fakeInFlight) Release(_ context.Context, itemID kernel.UUID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held[itemID] == token {
		delete(f.held, itemID)
		f.released++
	}
	return nil
}

func (f *fakeInFlight) isHeld(itemID kernel.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.held[itemID]
	return ok
}

type engineFixture struct {
	store    *MockOrderStore
	sink     *MockCommandSink
	workflow *fakeWorkflow
	inFlight *fakeInFlight
}

func newEngineFixture() *engineFixture {
	return &engineFixture{
		store:    new(MockOrderStore),
		sink:     new(MockCommandSink),
		workflow: newFakeWorkflow(),
		inFlight: newFakeInFlight(),
	}
}

func (f *engineFixture) deps() commands.TransitionDeps {
	return commands.TransitionDeps{
		Store:     f.store,
		Sink:      f.sink,
		Workflow:  f.workflow,
		InFlight:  f.inFlight,
		Validator: services.NewTransitionValidator(zerolog.Nop()),
		Logger:    zerolog.Nop(),
	}
}

func testItem(t *testing.T, status order.ItemStatus, mutate ...func(*order.ItemState)) *order.Item {
	t.Helper()
	unitPrice, err := kernel.MoneyFromString("12.50", "ZAR")
	require.NoError(t, err)

	state := order.ItemState{
		ID:         kernel.NewUUID(),
		Status:     status,
		Quantity:   1,
		UnitPrice:  unitPrice,
		ProductRef: "prod-1",
	}
	if status == order.ItemRejected {
		state.RejectionReason = "out_of_stock"
	}
	for _, m := range mutate {
		m(&state)
	}

	item, err := order.RestoreItem(state)
	require.NoError(t, err)
	return item
}

func testOrder(t *testing.T, status order.Status, requests order.Requests, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), status, items, requests)
	require.NoError(t, err)
	return o
}

func pastTime() *time.Time {
	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	return &at
}
