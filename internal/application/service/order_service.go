package service

import (
	"context"
	"fmt"
	"time"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/internal/domain/repository"
	"github.com/comandero/pos-api/pkg/apperror"
	"github.com/comandero/pos-api/pkg/receipt"
)

// OrderService owns the order lifecycle: commit from a cart, item edits,
// payment, fulfillment transitions and cancellation. All multi-row mutations
// run inside a transaction; printing happens after commit and never fails
// the mutation.
type OrderService struct {
	orderRepo   repository.OrderRepository
	itemRepo    repository.LineItemRepository
	productRepo repository.ProductRepository
	paymentRepo repository.PaymentMethodRepository
	tx          repository.TxManager
	dispatcher  Dispatcher
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.LineItemRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentMethodRepository,
	tx repository.TxManager,
	dispatcher Dispatcher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		tx:          tx,
		dispatcher:  dispatcher,
	}
}

// channelProfile maps an order's channel to the print profile its customer
// facing documents are routed through.
func channelProfile(channel enum.Channel) enum.PrintProfile {
	if channel == enum.ChannelDelivery {
		return enum.ProfileDelivery
	}
	return enum.ProfileCounter
}

// CreateFromCart commits a staged cart into a persisted order, atomically
// with its line items, then sends the kitchen ticket.
func (s *OrderService) CreateFromCart(ctx context.Context, cart *entity.Cart) (*entity.Order, error) {
	if cart == nil || cart.Empty() {
		return nil, apperror.NewBadRequestError("cart is empty")
	}

	order := &entity.Order{
		Channel:           cart.Channel,
		OccurredAt:        time.Now(),
		FulfillmentStatus: enum.FulfillmentPreparing,
		CustomerLabel:     cart.CustomerLabel,
		CustomerID:        cart.CustomerID,
		CourierID:         cart.CourierID,
		ShippingCost:      cart.ShippingCost,
		EstimatedTime:     cart.EstimatedTime,
		Comment:           cart.Comment,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		items := cart.Items()
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
			return err
		}
		order.RecomputeTotal(items)
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	full, err := s.orderRepo.GetWithItems(ctx, order.ID)
	if err != nil || full == nil {
		return order, err
	}

	s.dispatcher.Dispatch(ctx, enum.ProfileKitchen, enum.DocumentComanda, buildPayload(full))
	return full, nil
}

// Get returns an order with its items and relations.
func (s *OrderService) Get(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// List returns orders matching the filters, with a total count for paging.
func (s *OrderService) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// Board returns the non-cancelled orders sitting in one fulfillment state,
// oldest first, for the preparation and dispatch screens.
func (s *OrderService) Board(ctx context.Context, channel enum.Channel, status enum.FulfillmentStatus) ([]entity.Order, error) {
	if !status.ValidFor(channel) {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("status %d is not valid for %s orders", status, channel))
	}
	return s.orderRepo.ListByStatus(ctx, channel, status)
}

// AddItem appends a product to a committed order. A modifier-free add merges
// into the existing plain line for that product; an add with modifiers always
// creates its own line.
func (s *OrderService) AddItem(ctx context.Context, orderID, productID uint, qty int, modifiers entity.ModifierList) (*entity.Order, error) {
	if qty < 1 {
		qty = 1
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	unitPrice := product.Price
	for _, m := range modifiers {
		unitPrice += m.ExtraPrice
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.mutableOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if err := s.upsertLine(ctx, order.ID, entity.LineItem{
			ProductID: productID,
			Quantity:  qty,
			UnitPrice: unitPrice,
			Modifiers: modifiers,
		}); err != nil {
			return err
		}
		return s.resum(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// AdjustItem changes a line's quantity by delta. A line reaching zero is
// deleted rather than kept empty.
func (s *OrderService) AdjustItem(ctx context.Context, orderID, itemID uint, delta int) (*entity.Order, error) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.mutableOrder(ctx, orderID)
		if err != nil {
			return err
		}
		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return apperror.NewNotFoundError("Line item")
		}
		item.Quantity += delta
		if item.Quantity <= 0 {
			if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
				return err
			}
		} else if err := s.itemRepo.Update(ctx, item); err != nil {
			return err
		}
		return s.resum(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// RemoveItem deletes a line from a committed order.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uint) (*entity.Order, error) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.mutableOrder(ctx, orderID)
		if err != nil {
			return err
		}
		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return apperror.NewNotFoundError("Line item")
		}
		if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
			return err
		}
		return s.resum(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// ConfirmAdditions merges staged additions into the order in one transaction
// and sends the kitchen an additions slip listing only what changed.
func (s *OrderService) ConfirmAdditions(ctx context.Context, orderID uint, entries []entity.CartEntry) (*entity.Order, error) {
	if len(entries) == 0 {
		return nil, apperror.NewBadRequestError("no staged additions")
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.mutableOrder(ctx, orderID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := s.upsertLine(ctx, order.ID, entity.LineItem{
				ProductID: e.ProductID,
				Quantity:  e.Quantity,
				UnitPrice: e.UnitPrice,
				Modifiers: e.Modifiers,
			}); err != nil {
				return err
			}
		}
		return s.resum(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, enum.ProfileKitchen, enum.DocumentAgregados, receipt.JobPayload{
		Order: orderSnapshot(order),
		Items: entrySnapshots(entries),
	})
	return order, nil
}

// ConfirmRemovals applies staged removals in one transaction and sends the
// kitchen a removals slip. Each staged entry decrements the matching line,
// preferring the plain line for that product.
func (s *OrderService) ConfirmRemovals(ctx context.Context, orderID uint, entries []entity.CartEntry) (*entity.Order, error) {
	if len(entries) == 0 {
		return nil, apperror.NewBadRequestError("no staged removals")
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.mutableOrder(ctx, orderID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := s.decrementLine(ctx, order.ID, e.ProductID, e.Quantity); err != nil {
				return err
			}
		}
		return s.resum(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, enum.ProfileKitchen, enum.DocumentEliminados, receipt.JobPayload{
		Order: orderSnapshot(order),
		Items: entrySnapshots(entries),
	})
	return order, nil
}

// RecordPayment attaches a payment method and assigns the receipt number,
// then prints the cash receipt. Recording again with the same method simply
// regenerates the same number; the number depends only on prefix and order id.
func (s *OrderService) RecordPayment(ctx context.Context, orderID, paymentMethodID uint) (*entity.Order, error) {
	method, err := s.paymentRepo.GetByID(ctx, paymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}

	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Cancelled() {
		return nil, apperror.NewBadRequestError("order is cancelled")
	}

	order.PaymentMethodID = &method.ID
	order.ReceiptNumber = fmt.Sprintf("%s-%06d", method.ReceiptPrefix, order.ID)
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	order.PaymentMethod = method

	s.dispatcher.Dispatch(ctx, channelProfile(order.Channel), enum.DocumentPedido, buildPayload(order))
	return order, nil
}

// Transition moves the order to a new fulfillment status, enforcing the
// payment gates. Dispatching a delivery order also prints the courier voucher.
func (s *OrderService) Transition(ctx context.Context, orderID uint, to enum.FulfillmentStatus) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Cancelled() {
		return nil, apperror.NewBadRequestError("order is cancelled")
	}

	if err := enum.CanTransition(order.Channel, order.Paid(), order.FulfillmentStatus, to); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	order.FulfillmentStatus = to
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if order.Channel == enum.ChannelDelivery && to == enum.FulfillmentDispatched {
		s.dispatcher.Dispatch(ctx, enum.ProfileDelivery, enum.DocumentDelivery, buildPayload(order))
	}
	return order, nil
}

// Cancel voids an order by deleting its lines and zeroing the total. The row
// itself stays for reporting.
func (s *OrderService) Cancel(ctx context.Context, orderID uint) (*entity.Order, error) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if err := s.itemRepo.DeleteByOrderID(ctx, orderID); err != nil {
			return err
		}
		order.Total = 0
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// PrintPayload builds the wire payload for one of the order's documents, for
// manual reprints or for clients that render locally.
func (s *OrderService) PrintPayload(ctx context.Context, orderID uint) (*receipt.JobPayload, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	payload := buildPayload(order)
	return &payload, nil
}

// Reprint re-dispatches one of the order's documents and surfaces the print
// error, unlike the swallowed prints that ride along order mutations.
func (s *OrderService) Reprint(ctx context.Context, orderID uint, kind enum.DocumentKind) error {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	profile := channelProfile(order.Channel)
	switch kind {
	case enum.DocumentComanda, enum.DocumentAgregados, enum.DocumentEliminados:
		profile = enum.ProfileKitchen
	case enum.DocumentDelivery:
		profile = enum.ProfileDelivery
	}
	return s.dispatcher.Print(ctx, profile, kind, buildPayload(order))
}

// mutableOrder loads an order that may still accept item edits.
func (s *OrderService) mutableOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Cancelled() {
		return nil, apperror.NewBadRequestError("order is cancelled")
	}
	return order, nil
}

// upsertLine inserts a line, merging into the plain line when the insert
// itself carries no modifiers.
func (s *OrderService) upsertLine(ctx context.Context, orderID uint, line entity.LineItem) error {
	line.OrderID = orderID
	if len(line.Modifiers) == 0 {
		plain, err := s.itemRepo.FindPlain(ctx, orderID, line.ProductID)
		if err != nil {
			return err
		}
		if plain != nil {
			plain.Quantity += line.Quantity
			return s.itemRepo.Update(ctx, plain)
		}
	}
	return s.itemRepo.Create(ctx, &line)
}

// decrementLine removes qty units of a product from the order, consuming the
// plain line first and then any remaining lines for the product.
func (s *OrderService) decrementLine(ctx context.Context, orderID, productID uint, qty int) error {
	take := func(item *entity.LineItem) error {
		if qty <= 0 || item == nil {
			return nil
		}
		n := item.Quantity
		if n > qty {
			n = qty
		}
		item.Quantity -= n
		qty -= n
		if item.Quantity <= 0 {
			return s.itemRepo.Delete(ctx, item.ID)
		}
		return s.itemRepo.Update(ctx, item)
	}

	plain, err := s.itemRepo.FindPlain(ctx, orderID, productID)
	if err != nil {
		return err
	}
	if err := take(plain); err != nil {
		return err
	}
	if qty <= 0 {
		return nil
	}

	items, err := s.itemRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	for i := range items {
		if qty <= 0 {
			break
		}
		if items[i].ProductID != productID {
			continue
		}
		if plain != nil && items[i].ID == plain.ID {
			continue
		}
		if err := take(&items[i]); err != nil {
			return err
		}
	}
	return nil
}

// resum reloads the order's lines and stores the re-summed total.
func (s *OrderService) resum(ctx context.Context, order *entity.Order) error {
	items, err := s.itemRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	order.RecomputeTotal(items)
	return s.orderRepo.Update(ctx, order)
}
