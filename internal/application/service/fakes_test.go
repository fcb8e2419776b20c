package service

import (
	"context"
	"sort"
	"sync"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/enum"
	domainRepo "github.com/comandero/pos-api/internal/domain/repository"
	"github.com/comandero/pos-api/pkg/receipt"
)

// fakeDB is an in-memory stand-in for the order, line item, product and
// payment method repositories.
type fakeDB struct {
	mu        sync.Mutex
	orders    map[uint]*entity.Order
	items     map[uint]*entity.LineItem
	products  map[uint]*entity.Product
	methods   map[uint]*entity.PaymentMethod
	nextOrder uint
	nextItem  uint
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		orders:   make(map[uint]*entity.Order),
		items:    make(map[uint]*entity.LineItem),
		products: make(map[uint]*entity.Product),
		methods:  make(map[uint]*entity.PaymentMethod),
	}
}

func (f *fakeDB) addProduct(p entity.Product) *entity.Product {
	f.products[p.ID] = &p
	return &p
}

func (f *fakeDB) addMethod(m entity.PaymentMethod) *entity.PaymentMethod {
	f.methods[m.ID] = &m
	return &m
}

// OrderRepository

func (f *fakeDB) Create(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextOrder++
	order.ID = f.nextOrder
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeDB) GetByID(_ context.Context, id uint) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeDB) GetWithItems(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := f.GetByID(ctx, id)
	if err != nil || order == nil {
		return order, err
	}
	items, _ := f.itemRepo().GetByOrderID(ctx, id)
	order.Items = items
	if order.PaymentMethodID != nil {
		order.PaymentMethod = f.methods[*order.PaymentMethodID]
	}
	return order, nil
}

func (f *fakeDB) Update(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	cp.Items = nil
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeDB) List(_ context.Context, _ *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDB) ListByStatus(_ context.Context, channel enum.Channel, status enum.FulfillmentStatus) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Order
	for _, o := range f.orders {
		if o.Channel == channel && o.FulfillmentStatus == status && o.Total > 0 {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeDB) ListPaid(_ context.Context, channel enum.Channel) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Order
	for _, o := range f.orders {
		if o.Channel == channel && o.PaymentMethodID != nil {
			out = append(out, *o)
		}
	}
	return out, nil
}

// LineItemRepository is served by a view over the same store so the item id
// sequence stays with the db.
type fakeItemRepo struct{ db *fakeDB }

func (f *fakeDB) itemRepo() *fakeItemRepo { return &fakeItemRepo{db: f} }

func (r *fakeItemRepo) Create(_ context.Context, item *entity.LineItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextItem++
	item.ID = r.db.nextItem
	cp := *item
	r.db.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) CreateBatch(ctx context.Context, items []entity.LineItem) error {
	for i := range items {
		if err := r.Create(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uint) (*entity.LineItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	it, ok := r.db.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByOrderID(_ context.Context, orderID uint) ([]entity.LineItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []entity.LineItem
	for _, it := range r.db.items {
		if it.OrderID == orderID {
			cp := *it
			if p, ok := r.db.products[it.ProductID]; ok {
				cp.Product = *p
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeItemRepo) FindPlain(_ context.Context, orderID, productID uint) (*entity.LineItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var found *entity.LineItem
	for _, it := range r.db.items {
		if it.OrderID == orderID && it.ProductID == productID && len(it.Modifiers) == 0 {
			if found == nil || it.ID < found.ID {
				found = it
			}
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.LineItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *item
	r.db.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.items, id)
	return nil
}

func (r *fakeItemRepo) DeleteByOrderID(_ context.Context, orderID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, it := range r.db.items {
		if it.OrderID == orderID {
			delete(r.db.items, id)
		}
	}
	return nil
}

// ProductRepository

type fakeProductRepo struct{ db *fakeDB }

func (f *fakeDB) productRepo() *fakeProductRepo { return &fakeProductRepo{db: f} }

func (r *fakeProductRepo) GetByID(_ context.Context, id uint) (*entity.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uint) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.db.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.db.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

// PaymentMethodRepository

type fakeMethodRepo struct{ db *fakeDB }

func (f *fakeDB) methodRepo() *fakeMethodRepo { return &fakeMethodRepo{db: f} }

func (r *fakeMethodRepo) GetByID(_ context.Context, id uint) (*entity.PaymentMethod, error) {
	m, ok := r.db.methods[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMethodRepo) List(_ context.Context) ([]entity.PaymentMethod, error) {
	var out []entity.PaymentMethod
	for _, m := range r.db.methods {
		out = append(out, *m)
	}
	return out, nil
}

// fakeTx runs the function directly; the fakes have no transactions.
type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeDispatcher records every dispatched document.
type dispatched struct {
	Profile enum.PrintProfile
	Kind    enum.DocumentKind
	Payload receipt.JobPayload
}

type fakeDispatcher struct {
	mu       sync.Mutex
	calls    []dispatched
	printErr error
}

func (d *fakeDispatcher) Dispatch(_ context.Context, profile enum.PrintProfile, kind enum.DocumentKind, payload receipt.JobPayload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatched{Profile: profile, Kind: kind, Payload: payload})
}

func (d *fakeDispatcher) Print(ctx context.Context, profile enum.PrintProfile, kind enum.DocumentKind, payload receipt.JobPayload) error {
	if d.printErr != nil {
		return d.printErr
	}
	d.Dispatch(ctx, profile, kind, payload)
	return nil
}

func (d *fakeDispatcher) kinds() []enum.DocumentKind {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]enum.DocumentKind, 0, len(d.calls))
	for _, c := range d.calls {
		out = append(out, c.Kind)
	}
	return out
}
