package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/internal/infrastructure/session"
)

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uint]entity.Customer
	nextID    uint
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uint]entity.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	customer.ID = r.nextID
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uint) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	copied := c
	return &copied, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) SearchByPhone(_ context.Context, phone string) ([]entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Customer
	for _, c := range r.customers {
		if c.Phone == phone {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCourierRepo struct {
	couriers map[uint]entity.Courier
}

func (r *fakeCourierRepo) GetByID(_ context.Context, id uint) (*entity.Courier, error) {
	c, ok := r.couriers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCourierRepo) ListActive(_ context.Context) ([]entity.Courier, error) {
	var out []entity.Courier
	for _, c := range r.couriers {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

type cartFixture struct {
	carts     *CartService
	orders    *OrderService
	customers *fakeCustomerRepo
	db        *fakeDB
}

func newCartFixture(dispatcher *fakeDispatcher) *cartFixture {
	db := newFakeDB()
	seedCatalog(db)
	orders := newOrderService(db, dispatcher)
	customers := newFakeCustomerRepo()
	couriers := &fakeCourierRepo{couriers: map[uint]entity.Courier{
		1: {ID: 1, Name: "Pedro", Active: true},
	}}
	store := session.NewMemoryStore(time.Hour)
	return &cartFixture{
		carts:     NewCartService(store, db.productRepo(), customers, couriers, orders),
		orders:    orders,
		customers: customers,
		db:        db,
	}
}

func TestStartCounterCart(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	ctx := context.Background()

	cart, err := f.carts.Start(ctx, "s1", StartCartInput{Channel: enum.ChannelCounter, CustomerLabel: "  Maria  "})
	require.NoError(t, err)
	assert.Equal(t, enum.ChannelCounter, cart.Channel)
	assert.Equal(t, "Maria", cart.CustomerLabel)
	assert.True(t, cart.Empty())

	got, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cart.Channel, got.Channel)
}

func TestStartCartUnknownChannel(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	_, err := f.carts.Start(context.Background(), "s1", StartCartInput{Channel: 9})
	assert.Error(t, err)
}

func TestStartDeliveryCartCreatesCustomer(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	ctx := context.Background()

	courierID := uint(1)
	cart, err := f.carts.Start(ctx, "s1", StartCartInput{
		Channel:         enum.ChannelDelivery,
		CustomerName:    "Ana Rojas",
		CustomerPhone:   "+56911112222",
		CustomerAddress: "Av. Italia 800",
		CourierID:       &courierID,
		ShippingCost:    2500,
		EstimatedTime:   "45 min",
	})
	require.NoError(t, err)
	require.NotNil(t, cart.CustomerID)
	assert.Equal(t, int64(2500), cart.ShippingCost)

	created, err := f.customers.GetByID(ctx, *cart.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Rojas", created.Name)
}

func TestStartDeliveryCartRequiresCustomer(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	_, err := f.carts.Start(context.Background(), "s1", StartCartInput{Channel: enum.ChannelDelivery})
	assert.Error(t, err)
}

func TestStartDeliveryCartUnknownCourier(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	courierID := uint(44)
	_, err := f.carts.Start(context.Background(), "s1", StartCartInput{
		Channel:      enum.ChannelDelivery,
		CustomerName: "Ana",
		CourierID:    &courierID,
	})
	assert.Error(t, err)
}

func TestCartAddAdjustRemove(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	ctx := context.Background()

	_, err := f.carts.Start(ctx, "s1", StartCartInput{Channel: enum.ChannelCounter})
	require.NoError(t, err)

	cart, err := f.carts.AddItem(ctx, "s1", 1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(11000), cart.Subtotal())

	// Modifier surcharges fold into the staged unit price.
	mods := entity.ModifierList{{AttributeID: 3, Label: "extra manjar", ExtraPrice: 800}}
	cart, err = f.carts.AddItem(ctx, "s1", 1, 1, mods)
	require.NoError(t, err)
	require.Len(t, cart.Entries, 2)
	assert.Equal(t, int64(17300), cart.Subtotal())

	var modKey string
	for key, e := range cart.Entries {
		if len(e.Modifiers) > 0 {
			modKey = key
			assert.Equal(t, int64(6300), e.UnitPrice)
		}
	}
	require.NotEmpty(t, modKey)

	cart, err = f.carts.AdjustItem(ctx, "s1", "1", -1)
	require.NoError(t, err)
	assert.Equal(t, int64(11800), cart.Subtotal())

	cart, err = f.carts.RemoveItem(ctx, "s1", modKey)
	require.NoError(t, err)
	assert.Len(t, cart.Entries, 1)

	_, err = f.carts.AdjustItem(ctx, "s1", "no-such-entry", 1)
	assert.Error(t, err)
}

func TestCartAddInactiveProduct(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	ctx := context.Background()
	f.db.addProduct(entity.Product{ID: 8, Name: "Fuera de carta", Price: 1000, Active: false})

	_, err := f.carts.Start(ctx, "s1", StartCartInput{Channel: enum.ChannelCounter})
	require.NoError(t, err)

	_, err = f.carts.AddItem(ctx, "s1", 8, 1, nil)
	assert.Error(t, err)
	_, err = f.carts.AddItem(ctx, "s1", 999, 1, nil)
	assert.Error(t, err)
}

func TestCommit(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	ctx := context.Background()

	_, err := f.carts.Start(ctx, "s1", StartCartInput{Channel: enum.ChannelCounter})
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, "s1", 1, 2, nil)
	require.NoError(t, err)

	order, err := f.carts.Commit(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(11000), order.Total)

	// The cart is gone after commit.
	_, err = f.carts.Get(ctx, "s1")
	assert.Error(t, err)
}

func TestCommitEmptyCartKeepsCart(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	ctx := context.Background()

	_, err := f.carts.Start(ctx, "s1", StartCartInput{Channel: enum.ChannelCounter})
	require.NoError(t, err)

	_, err = f.carts.Commit(ctx, "s1")
	require.Error(t, err)

	// A failed commit must not consume the cart.
	_, err = f.carts.Get(ctx, "s1")
	assert.NoError(t, err)
}

func commitOrder(t *testing.T, f *cartFixture) *entity.Order {
	t.Helper()
	ctx := context.Background()
	_, err := f.carts.Start(ctx, "s-setup", StartCartInput{Channel: enum.ChannelCounter})
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, "s-setup", 1, 2, nil)
	require.NoError(t, err)
	order, err := f.carts.Commit(ctx, "s-setup")
	require.NoError(t, err)
	return order
}

func TestStagedAdditionsLifecycle(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	f := newCartFixture(dispatcher)
	ctx := context.Background()
	order := commitOrder(t, f)

	// Nothing staged yet.
	staged, err := f.carts.StagedAdditions(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, staged)
	_, err = f.carts.ConfirmAdditions(ctx, order.ID)
	assert.Error(t, err)

	staged, err = f.carts.StageAddition(ctx, order.ID, 2, 1, nil)
	require.NoError(t, err)
	assert.Len(t, staged.Entries, 1)

	updated, err := f.carts.ConfirmAdditions(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(14000), updated.Total)
	assert.Contains(t, dispatcher.kinds(), enum.DocumentAgregados)

	// Confirm cleared the stash.
	staged, err = f.carts.StagedAdditions(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, staged)
}

func TestUnstageAddition(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	ctx := context.Background()
	order := commitOrder(t, f)

	_, err := f.carts.StageAddition(ctx, order.ID, 2, 1, nil)
	require.NoError(t, err)

	cart, err := f.carts.UnstageAddition(ctx, order.ID, "2")
	require.NoError(t, err)
	assert.True(t, cart.Empty())

	// Last entry removed drops the whole stash.
	staged, err := f.carts.StagedAdditions(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, staged)
}

func TestStagedRemovalsLifecycle(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	f := newCartFixture(dispatcher)
	ctx := context.Background()
	order := commitOrder(t, f)

	// Staging more units than the order holds is rejected outright.
	_, err := f.carts.StageRemoval(ctx, order.ID, 1, 3)
	require.Error(t, err)

	entries, err := f.carts.StageRemoval(ctx, order.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Quantity)

	// Staging again accumulates onto the same entry.
	entries, err = f.carts.StageRemoval(ctx, order.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity)

	// The cap applies to the accumulated quantity too.
	_, err = f.carts.StageRemoval(ctx, order.ID, 1, 1)
	require.Error(t, err)

	updated, err := f.carts.ConfirmRemovals(ctx, order.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.Total)
	assert.Contains(t, dispatcher.kinds(), enum.DocumentEliminados)

	remaining, err := f.carts.StagedRemovals(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestStageRemovalUnknownProduct(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	ctx := context.Background()
	order := commitOrder(t, f)

	_, err := f.carts.StageRemoval(ctx, order.ID, 2, 1)
	assert.Error(t, err)
}

func TestUnstageRemoval(t *testing.T) {
	f := newCartFixture(&fakeDispatcher{})
	ctx := context.Background()
	order := commitOrder(t, f)

	_, err := f.carts.StageRemoval(ctx, order.ID, 1, 1)
	require.NoError(t, err)

	entries, err := f.carts.UnstageRemoval(ctx, order.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = f.carts.ConfirmRemovals(ctx, order.ID)
	assert.Error(t, err)
}
