package cart

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/angelmondragon/storefront/internal/page"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/money"
	"github.com/angelmondragon/storefront/pkg/storage"
	"github.com/angelmondragon/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

const DefaultStorageKey = "cart"

const (
	msgAdded        = "Product added to cart!"
	msgAddFailed    = "Failed to add product to cart"
	msgRemoved      = "Product removed from cart!"
	msgRemoveFailed = "Failed to remove product from cart"
	msgUpdated      = "Quantity updated!"
	msgUpdateFailed = "Failed to update quantity"
)

// Notifier shows transient banners.
type Notifier interface {
	Notify(ctx context.Context, message string, kind enums.NotificationKind) int
}

// Store owns the visitor's persisted cart. Every operation is a
// read-modify-write against storage with no version check, so concurrent
// writers for the same session overwrite each other (last writer wins).
type Store struct {
	kv       storage.KV
	doc      *page.Document
	notifier Notifier
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
	key      string
	shipping decimal.Decimal
}

// Option customizes a Store.
type Option func(*Store)

// WithMetrics records cart mutations.
func WithMetrics(m *metrics.CartMetrics) Option {
	return func(s *Store) { s.metrics = m }
}

// NewStore wires the cart dependencies for one request.
func NewStore(kv storage.KV, doc *page.Document, notifier Notifier, logg *logger.Logger, cfg config.CartConfig, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart storage required")
	}
	if doc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart document required")
	}
	if notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart notifier required")
	}
	key := strings.TrimSpace(cfg.StorageKey)
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Store{
		kv:       kv,
		doc:      doc,
		notifier: notifier,
		logg:     logg,
		key:      key,
		shipping: cfg.Shipping(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Add increments the line for p or appends a new line with quantity 1.
func (s *Store) Add(ctx context.Context, p ProductRef) error {
	ctx = s.withProduct(ctx, p.ID)

	items, err := s.read(ctx)
	if err != nil {
		return s.fail(ctx, "add", err, msgAddFailed)
	}

	if idx := indexOf(items, p.ID); idx >= 0 {
		items[idx].Quantity++
	} else {
		items = append(items, Item{
			ID:       p.ID,
			Title:    p.Title,
			Price:    p.Price,
			Image:    p.Image,
			Quantity: 1,
		})
	}

	if err := s.write(ctx, items); err != nil {
		return s.fail(ctx, "add", err, msgAddFailed)
	}

	s.afterMutation(ctx, items)
	s.notifier.Notify(ctx, msgAdded, enums.NotificationKindSuccess)
	s.metrics.ObserveOp("add", nil)
	s.info(ctx, "cart item added")
	return nil
}

// Remove drops the line for id. Removing an id that is not in the cart still
// writes back and re-renders.
func (s *Store) Remove(ctx context.Context, id types.ProductID) error {
	ctx = s.withProduct(ctx, id)

	items, err := s.read(ctx)
	if err != nil {
		return s.fail(ctx, "remove", err, msgRemoveFailed)
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}

	if err := s.write(ctx, kept); err != nil {
		return s.fail(ctx, "remove", err, msgRemoveFailed)
	}

	s.afterMutation(ctx, kept)
	s.notifier.Notify(ctx, msgRemoved, enums.NotificationKindSuccess)
	s.metrics.ObserveOp("remove", nil)
	s.info(ctx, "cart item removed")
	return nil
}

// SetQuantity sets the line quantity, removing the line when quantity <= 0.
// An id that is not in the cart is ignored.
func (s *Store) SetQuantity(ctx context.Context, id types.ProductID, quantity int) error {
	ctx = s.withProduct(ctx, id)

	items, err := s.read(ctx)
	if err != nil {
		return s.fail(ctx, "set_quantity", err, msgUpdateFailed)
	}

	idx := indexOf(items, id)
	if idx < 0 {
		s.debug(ctx, "set quantity ignored for item not in cart")
		return nil
	}
	if quantity > 0 {
		items[idx].Quantity = quantity
	} else {
		items = append(items[:idx], items[idx+1:]...)
	}

	if err := s.write(ctx, items); err != nil {
		return s.fail(ctx, "set_quantity", err, msgUpdateFailed)
	}

	s.afterMutation(ctx, items)
	s.notifier.Notify(ctx, msgUpdated, enums.NotificationKindSuccess)
	s.metrics.ObserveOp("set_quantity", nil)
	s.info(ctx, "cart quantity updated")
	return nil
}

// RefreshCountBadge writes the total quantity into every count badge.
func (s *Store) RefreshCountBadge(ctx context.Context) error {
	items, err := s.read(ctx)
	if err != nil {
		s.logError(ctx, "refresh cart badge", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart")
	}
	s.setBadges(items)
	return nil
}

// Items returns the persisted lines.
func (s *Store) Items(ctx context.Context) ([]Item, error) {
	items, err := s.read(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart")
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Count returns the sum of quantities.
func (s *Store) Count(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return countOf(items), nil
}

// Totals computes subtotal and total. An empty cart carries no shipping fee.
func (s *Store) Totals(items []Item) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	if len(items) == 0 {
		return Totals{Subtotal: decimal.Zero, Shipping: decimal.Zero, Total: decimal.Zero}
	}
	return Totals{
		Count:    countOf(items),
		Subtotal: subtotal,
		Shipping: s.shipping,
		Total:    subtotal.Add(s.shipping),
	}
}

func (s *Store) afterMutation(ctx context.Context, items []Item) {
	if s.doc.Has(page.RegionCartItems) {
		s.render(ctx, items)
	}
	s.setBadges(items)
}

func (s *Store) setBadges(items []Item) {
	s.doc.SetBadges(strconv.Itoa(countOf(items)))
}

func (s *Store) read(ctx context.Context) ([]Item, error) {
	raw, ok, err := s.kv.GetItem(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) write(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.SetItem(ctx, s.key, string(payload))
}

func (s *Store) fail(ctx context.Context, op string, err error, message string) error {
	s.logError(ctx, "cart "+op+" failed", err)
	s.notifier.Notify(ctx, message, enums.NotificationKindError)
	s.metrics.ObserveOp(op, err)
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message).WithOp("cart." + op)
}

func (s *Store) withProduct(ctx context.Context, id types.ProductID) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithField(ctx, "product_id", id.String())
}

func (s *Store) info(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Info(ctx, msg)
	}
}

func (s *Store) debug(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Debug(ctx, msg)
	}
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, msg, err)
	}
}

func formatTotals(t Totals) (string, string) {
	return money.Format(t.Subtotal), money.Format(t.Total)
}
