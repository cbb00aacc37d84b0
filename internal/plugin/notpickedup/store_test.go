package notpickedup_test

import (
	"context"
	"sync"

	"notpickedup/internal/core/application/usecases/commands"
	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/order"
	"notpickedup/internal/core/ports"
	"notpickedup/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

// memoryStore is an order store whose transactions always succeed.
type memoryStore struct {
	mu     sync.Mutex
	orders map[kernel.OrderID]*order.Order
}

func newMemoryStore(orders ...*order.Order) *memoryStore {
	s := &memoryStore{orders: make(map[kernel.OrderID]*order.Order, len(orders))}
	for _, o := range orders {
		s.orders[o.ID()] = o
	}
	return s
}

func (s *memoryStore) Create() commands.OrderUoW {
	return memoryUoW{store: s}
}

func (s *memoryStore) get(id kernel.OrderID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

type memoryUoW struct {
	store *memoryStore
}

func (memoryUoW) Begin(context.Context) error    { return nil }
func (memoryUoW) Commit(context.Context) error   { return nil }
func (memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) OrderRepository() ports.OrderRepository {
	return memoryRepository(u)
}

type memoryRepository struct {
	store *memoryStore
}

func (r memoryRepository) Add(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[o.ID()] = o
	return nil
}

func (r memoryRepository) Update(ctx context.Context, o *order.Order) error {
	return r.Add(ctx, o)
}

func (r memoryRepository) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

type MockOrderMarker struct{ mock.Mock }

func (m *MockOrderMarker) Handle(ctx context.Context, cmd commands.MarkOrdersCommand) (commands.MarkOrdersResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.MarkOrdersResult), args.Error(1)
}
