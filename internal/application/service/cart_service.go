package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/internal/domain/repository"
	"github.com/comandero/pos-api/pkg/apperror"
)

// StartCartInput carries the metadata captured when a cart is opened. The
// delivery fields are ignored on the counter channel and vice versa.
type StartCartInput struct {
	Channel       enum.Channel
	CustomerLabel string

	CustomerID      *uint
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string

	CourierID     *uint
	ShippingCost  int64
	EstimatedTime string
	Comment       string
}

// CartService manages the transient staging areas: the per-session cart
// before commit, and the per-order addition and removal stashes afterwards.
// Committing and confirming delegate to the order service; everything else
// never touches the database beyond catalog lookups.
type CartService struct {
	store        repository.CartStore
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	courierRepo  repository.CourierRepository
	orders       *OrderService
}

// NewCartService creates a new cart service.
func NewCartService(
	store repository.CartStore,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	courierRepo repository.CourierRepository,
	orders *OrderService,
) *CartService {
	return &CartService{
		store:        store,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		courierRepo:  courierRepo,
		orders:       orders,
	}
}

func additionKey(orderID uint) string {
	return "add:" + strconv.FormatUint(uint64(orderID), 10)
}

func removalKey(orderID uint) string {
	return strconv.FormatUint(uint64(orderID), 10)
}

// Start opens a fresh cart for the session, replacing any previous one. On
// the delivery channel the customer is resolved by id, or created on the fly
// from name and phone when no id is given.
func (s *CartService) Start(ctx context.Context, sessionKey string, in StartCartInput) (*entity.Cart, error) {
	if !in.Channel.Valid() {
		return nil, apperror.NewBadRequestError("unknown channel")
	}

	cart := entity.NewCart(in.Channel)
	switch in.Channel {
	case enum.ChannelCounter:
		cart.CustomerLabel = strings.TrimSpace(in.CustomerLabel)
	case enum.ChannelDelivery:
		customerID, err := s.resolveCustomer(ctx, in)
		if err != nil {
			return nil, err
		}
		cart.CustomerID = customerID
		if in.CourierID != nil {
			courier, err := s.courierRepo.GetByID(ctx, *in.CourierID)
			if err != nil {
				return nil, err
			}
			if courier == nil {
				return nil, apperror.NewNotFoundError("Courier")
			}
			cart.CourierID = in.CourierID
		}
		cart.ShippingCost = in.ShippingCost
		cart.EstimatedTime = in.EstimatedTime
		cart.Comment = in.Comment
	}

	if err := s.store.Put(ctx, sessionKey, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) resolveCustomer(ctx context.Context, in StartCartInput) (*uint, error) {
	if in.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		return in.CustomerID, nil
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, apperror.NewBadRequestError("delivery orders require a customer")
	}
	customer := &entity.Customer{
		Name:    name,
		Phone:   strings.TrimSpace(in.CustomerPhone),
		Address: strings.TrimSpace(in.CustomerAddress),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return &customer.ID, nil
}

// Get returns the session's cart.
func (s *CartService) Get(ctx context.Context, sessionKey string) (*entity.Cart, error) {
	cart, err := s.store.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperror.NewNotFoundError("Cart")
	}
	return cart, nil
}

// AddItem stages a product in the session's cart. Modifier surcharges are
// folded into the staged unit price here, once, at add time.
func (s *CartService) AddItem(ctx context.Context, sessionKey string, productID uint, qty int, modifiers entity.ModifierList) (*entity.Cart, error) {
	cart, err := s.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if err := s.stage(ctx, cart, productID, qty, modifiers); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, sessionKey, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) stage(ctx context.Context, cart *entity.Cart, productID uint, qty int, modifiers entity.ModifierList) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if !product.Active {
		return apperror.NewBadRequestError("product is not available")
	}

	unitPrice := product.Price
	for _, m := range modifiers {
		unitPrice += m.ExtraPrice
	}
	cart.Add(product.ID, product.Name, unitPrice, qty, modifiers)
	return nil
}

// AdjustItem changes a staged entry's quantity by delta.
func (s *CartService) AdjustItem(ctx context.Context, sessionKey, entryKey string, delta int) (*entity.Cart, error) {
	cart, err := s.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if !cart.Adjust(entryKey, delta) {
		return nil, apperror.NewNotFoundError("Cart entry")
	}
	if err := s.store.Put(ctx, sessionKey, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a staged entry.
func (s *CartService) RemoveItem(ctx context.Context, sessionKey, entryKey string) (*entity.Cart, error) {
	cart, err := s.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	cart.Remove(entryKey)
	if err := s.store.Put(ctx, sessionKey, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear discards the session's cart without committing.
func (s *CartService) Clear(ctx context.Context, sessionKey string) error {
	return s.store.Delete(ctx, sessionKey)
}

// Commit turns the session's cart into a persisted order and discards the
// cart. The cart survives when the commit fails.
func (s *CartService) Commit(ctx context.Context, sessionKey string) (*entity.Order, error) {
	cart, err := s.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.CreateFromCart(ctx, cart)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, sessionKey); err != nil {
		return order, err
	}
	return order, nil
}

// StageAddition stages a product to be appended to a committed order. Staged
// additions only reach the order via ConfirmAdditions.
func (s *CartService) StageAddition(ctx context.Context, orderID, productID uint, qty int, modifiers entity.ModifierList) (*entity.Cart, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	key := additionKey(orderID)
	cart, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = entity.NewCart(order.Channel)
	}
	if err := s.stage(ctx, cart, productID, qty, modifiers); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, key, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// StagedAdditions returns the pending additions for an order, nil when none.
func (s *CartService) StagedAdditions(ctx context.Context, orderID uint) (*entity.Cart, error) {
	return s.store.Get(ctx, additionKey(orderID))
}

// UnstageAddition drops one pending addition entry.
func (s *CartService) UnstageAddition(ctx context.Context, orderID uint, entryKey string) (*entity.Cart, error) {
	key := additionKey(orderID)
	cart, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperror.NewNotFoundError("Staged additions")
	}
	cart.Remove(entryKey)
	if cart.Empty() {
		return cart, s.store.Delete(ctx, key)
	}
	return cart, s.store.Put(ctx, key, cart)
}

// ConfirmAdditions applies the pending additions to the order and clears the
// stash. The additions slip prints only what was staged.
func (s *CartService) ConfirmAdditions(ctx context.Context, orderID uint) (*entity.Order, error) {
	key := additionKey(orderID)
	cart, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.Empty() {
		return nil, apperror.NewBadRequestError("no staged additions")
	}

	entries := make([]entity.CartEntry, 0, len(cart.Entries))
	for _, e := range cart.Entries {
		entries = append(entries, e)
	}
	order, err := s.orders.ConfirmAdditions(ctx, orderID, entries)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return order, err
	}
	return order, nil
}

// StageRemoval stages qty units of a product for removal from a committed
// order. Staging the same product again accumulates.
func (s *CartService) StageRemoval(ctx context.Context, orderID, productID uint, qty int) ([]entity.CartEntry, error) {
	if qty < 1 {
		qty = 1
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var onOrder int
	var name string
	var unitPrice int64
	for _, item := range order.Items {
		if item.ProductID != productID {
			continue
		}
		onOrder += item.Quantity
		if name == "" {
			name = item.Product.Name
			unitPrice = item.UnitPrice
		}
	}
	if onOrder == 0 {
		return nil, apperror.NewBadRequestError("product is not on the order")
	}

	key := removalKey(orderID)
	entries, err := s.store.GetRemovals(ctx, key)
	if err != nil {
		return nil, err
	}

	idx := -1
	staged := qty
	for i := range entries {
		if entries[i].ProductID == productID {
			idx = i
			staged += entries[i].Quantity
			break
		}
	}
	if staged > onOrder {
		return nil, apperror.NewBadRequestError("cannot remove more units than the order holds")
	}
	if idx >= 0 {
		entries[idx].Quantity = staged
	} else {
		entries = append(entries, entity.CartEntry{
			ProductID: productID,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  qty,
		})
	}

	if err := s.store.PutRemovals(ctx, key, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// StagedRemovals returns the pending removals for an order.
func (s *CartService) StagedRemovals(ctx context.Context, orderID uint) ([]entity.CartEntry, error) {
	return s.store.GetRemovals(ctx, removalKey(orderID))
}

// UnstageRemoval drops the pending removal entry for a product.
func (s *CartService) UnstageRemoval(ctx context.Context, orderID, productID uint) ([]entity.CartEntry, error) {
	key := removalKey(orderID)
	entries, err := s.store.GetRemovals(ctx, key)
	if err != nil {
		return nil, err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return nil, s.store.DeleteRemovals(ctx, key)
	}
	return kept, s.store.PutRemovals(ctx, key, kept)
}

// ConfirmRemovals applies the pending removals to the order and clears the
// stash. The removals slip prints only what was staged.
func (s *CartService) ConfirmRemovals(ctx context.Context, orderID uint) (*entity.Order, error) {
	key := removalKey(orderID)
	entries, err := s.store.GetRemovals(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperror.NewBadRequestError("no staged removals")
	}

	order, err := s.orders.ConfirmRemovals(ctx, orderID, entries)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteRemovals(ctx, key); err != nil {
		return order, err
	}
	return order, nil
}
