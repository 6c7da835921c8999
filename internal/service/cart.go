package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/logger"
	"github.com/guttosm/cart-service/internal/metrics"
	"github.com/guttosm/cart-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// DefaultCartTTL is how long a cart survives without being updated.
const DefaultCartTTL = 48 * time.Hour

var (
	// ErrInsufficientStock is matched by every InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrCatalogUnavailable wraps catalog failures that block a mutation.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// InsufficientStockError reports a rejected add or quantity increase.
type InsufficientStockError struct {
	ProductID int64
	SizeID    int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d size %d: requested %d, available %d",
		e.ProductID, e.SizeID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Notifier receives an event after every cart mutation.
type Notifier interface {
	Notify(ctx context.Context, event model.CartEvent) error
}

type productInvalidator interface {
	Invalidate(ids ...int64)
}

// CartService owns the carts of every shopper identity.
type CartService interface {
	// Get loads and prices the shopper's cart. A guest cart is merged in
	// first when the shopper has just logged in.
	Get(ctx context.Context, id model.Identity) (model.PricedCart, error)
	AddItem(ctx context.Context, id model.Identity, productID, sizeID int64, quantity int) (model.PricedCart, error)
	UpdateQuantity(ctx context.Context, id model.Identity, index, quantity int) (model.PricedCart, error)
	RemoveItem(ctx context.Context, id model.Identity, index int) (model.PricedCart, error)
	Clear(ctx context.Context, id model.Identity) (model.PricedCart, error)
	// Refresh re-reads every product in the cart from the catalog in one call.
	Refresh(ctx context.Context, id model.Identity) (model.PricedCart, error)
	MergeGuest(ctx context.Context, id model.Identity) (model.PricedCart, error)
}

// CartOption configures a CartServiceImpl.
type CartOption func(*CartServiceImpl)

// WithCartTTL overrides DefaultCartTTL.
func WithCartTTL(ttl time.Duration) CartOption {
	return func(s *CartServiceImpl) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithCartClock sets the clock used for timestamps and expiry.
func WithCartClock(clock func() time.Time) CartOption {
	return func(s *CartServiceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRefreshOnLoad makes Get refresh products from the catalog.
func WithRefreshOnLoad(enabled bool) CartOption {
	return func(s *CartServiceImpl) {
		s.refreshOnLoad = enabled
	}
}

// WithNotifier sets the mutation event sink.
func WithNotifier(n Notifier) CartOption {
	return func(s *CartServiceImpl) {
		if n != nil {
			s.notifier = n
		}
	}
}

// CartServiceImpl stores carts as encoded records keyed by identity.
type CartServiceImpl struct {
	store         repository.CartsRepositoryInterface
	catalog       ProductCatalog
	engine        PricingEngine
	notifier      Notifier
	ttl           time.Duration
	clock         func() time.Time
	refreshOnLoad bool
	locks         *keyLocks
}

// NewCartService creates a cart service.
func NewCartService(store repository.CartsRepositoryInterface, catalog ProductCatalog, engine PricingEngine, opts ...CartOption) *CartServiceImpl {
	s := &CartServiceImpl{
		store:    store,
		catalog:  catalog,
		engine:   engine,
		notifier: discardNotifier{},
		ttl:      DefaultCartTTL,
		clock:    time.Now,
		locks:    newKeyLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CartServiceImpl) Get(ctx context.Context, id model.Identity) (model.PricedCart, error) {
	key := id.StorageKey()
	unlock := s.locks.lock(key)
	defer unlock()

	cart, err := s.load(ctx, key)
	if err != nil {
		return model.PricedCart{}, err
	}

	if id.CanMergeGuest() {
		merged, ok, err := s.mergeGuestLocked(ctx, id, cart)
		if err != nil {
			return model.PricedCart{}, err
		}
		if ok {
			cart = merged
		}
	}

	var warnings []string
	if s.refreshOnLoad && !cart.IsEmpty() {
		warnings = s.refreshProducts(ctx, &cart)
		if err := s.save(ctx, key, &cart); err != nil {
			return model.PricedCart{}, err
		}
	}

	priced := s.priced(key, cart)
	priced.Warnings = warnings
	return priced, nil
}

func (s *CartServiceImpl) AddItem(ctx context.Context, id model.Identity, productID, sizeID int64, quantity int) (model.PricedCart, error) {
	const op = "add_item"
	if quantity <= 0 {
		metrics.RecordCartOperation(op, "rejected")
		return model.PricedCart{}, model.ErrInvalidQuantity
	}

	product, err := s.fetchProduct(ctx, productID)
	if err != nil {
		metrics.RecordCartOperation(op, "error")
		return model.PricedCart{}, err
	}

	key := id.StorageKey()
	unlock := s.locks.lock(key)
	defer unlock()

	cart, err := s.load(ctx, key)
	if err != nil {
		metrics.RecordCartOperation(op, "error")
		return model.PricedCart{}, err
	}

	if err := checkStock(product, sizeID, cart.QuantityOf(productID, sizeID)+quantity); err != nil {
		metrics.RecordCartOperation(op, "rejected")
		return model.PricedCart{}, err
	}

	if err := cart.Add(product, product.SizeByID(sizeID), quantity); err != nil {
		metrics.RecordCartOperation(op, "rejected")
		return model.PricedCart{}, err
	}
	return s.commit(ctx, key, &cart, op, model.CartEventUpdated)
}

func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, id model.Identity, index, quantity int) (model.PricedCart, error) {
	const op = "update_quantity"
	if quantity <= 0 {
		metrics.RecordCartOperation(op, "rejected")
		return model.PricedCart{}, model.ErrInvalidQuantity
	}

	key := id.StorageKey()
	unlock := s.locks.lock(key)
	defer unlock()

	cart, err := s.load(ctx, key)
	if err != nil {
		metrics.RecordCartOperation(op, "error")
		return model.PricedCart{}, err
	}
	if index < 0 || index >= len(cart.Items) {
		metrics.RecordCartOperation(op, "rejected")
		return model.PricedCart{}, model.ErrLineNotFound
	}

	current := cart.Items[index]
	if quantity > current.Quantity {
		product, err := s.fetchProduct(ctx, current.Product.ID)
		if err != nil {
			metrics.RecordCartOperation(op, "error")
			return model.PricedCart{}, err
		}
		if err := checkStock(product, current.Size.ID, quantity); err != nil {
			metrics.RecordCartOperation(op, "rejected")
			return model.PricedCart{}, err
		}
		cart.Items[index].Product = product
		cart.Items[index].UnitPrice = product.BasePrice
	}

	if err := cart.SetQuantity(index, quantity); err != nil {
		metrics.RecordCartOperation(op, "rejected")
		return model.PricedCart{}, err
	}
	return s.commit(ctx, key, &cart, op, model.CartEventUpdated)
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, id model.Identity, index int) (model.PricedCart, error) {
	const op = "remove_item"
	key := id.StorageKey()
	unlock := s.locks.lock(key)
	defer unlock()

	cart, err := s.load(ctx, key)
	if err != nil {
		metrics.RecordCartOperation(op, "error")
		return model.PricedCart{}, err
	}
	if err := cart.RemoveAt(index); err != nil {
		metrics.RecordCartOperation(op, "rejected")
		return model.PricedCart{}, err
	}
	return s.commit(ctx, key, &cart, op, model.CartEventUpdated)
}

func (s *CartServiceImpl) Clear(ctx context.Context, id model.Identity) (model.PricedCart, error) {
	const op = "clear"
	key := id.StorageKey()
	unlock := s.locks.lock(key)
	defer unlock()

	cart := model.Cart{}
	return s.commit(ctx, key, &cart, op, model.CartEventCleared)
}

func (s *CartServiceImpl) Refresh(ctx context.Context, id model.Identity) (model.PricedCart, error) {
	const op = "refresh"
	key := id.StorageKey()
	unlock := s.locks.lock(key)
	defer unlock()

	cart, err := s.load(ctx, key)
	if err != nil {
		metrics.RecordCartOperation(op, "error")
		return model.PricedCart{}, err
	}
	if cart.IsEmpty() {
		return s.priced(key, cart), nil
	}

	warnings := s.refreshProducts(ctx, &cart)
	// lastUpdated is left alone so a refresh does not extend the cart's life.
	priced, err := s.persist(ctx, key, &cart, op, model.CartEventUpdated)
	if err != nil {
		return model.PricedCart{}, err
	}
	priced.Warnings = warnings
	return priced, nil
}

func (s *CartServiceImpl) MergeGuest(ctx context.Context, id model.Identity) (model.PricedCart, error) {
	const op = "merge"
	key := id.StorageKey()
	unlock := s.locks.lock(key)
	defer unlock()

	cart, err := s.load(ctx, key)
	if err != nil {
		metrics.RecordCartOperation(op, "error")
		return model.PricedCart{}, err
	}
	if !id.CanMergeGuest() {
		return s.priced(key, cart), nil
	}

	merged, _, err := s.mergeGuestLocked(ctx, id, cart)
	if err != nil {
		return model.PricedCart{}, err
	}
	return s.priced(key, merged), nil
}

// mergeGuestLocked folds the guest cart into cart and deletes the guest slot.
// The caller holds the customer key lock.
func (s *CartServiceImpl) mergeGuestLocked(ctx context.Context, id model.Identity, cart model.Cart) (model.Cart, bool, error) {
	const op = "merge"
	guestKey := id.GuestKey()
	unlock := s.locks.lock(guestKey)
	defer unlock()

	guest, err := s.load(ctx, guestKey)
	if err != nil {
		metrics.RecordCartOperation(op, "error")
		return cart, false, err
	}
	if guest.IsEmpty() {
		return cart, false, nil
	}

	cart.Merge(guest.Items)
	key := id.StorageKey()
	if _, err := s.commit(ctx, key, &cart, op, model.CartEventMerged); err != nil {
		return cart, false, err
	}
	if err := s.store.Delete(ctx, guestKey); err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		l := logger.ForCart(ctx, guestKey)
		l.Warn().Err(err).Msg("failed to delete merged guest cart")
	}
	l := logger.ForCart(ctx, key)
	l.Info().Str("guest_key", guestKey).Int("lines", len(guest.Items)).Msg("guest cart merged")
	return cart, true, nil
}

// commit stamps the cart and persists it.
func (s *CartServiceImpl) commit(ctx context.Context, key string, cart *model.Cart, op string, eventType model.CartEventType) (model.PricedCart, error) {
	cart.LastUpdated = s.clock()
	return s.persist(ctx, key, cart, op, eventType)
}

// persist prices the cart, saves it and emits the mutation event.
func (s *CartServiceImpl) persist(ctx context.Context, key string, cart *model.Cart, op string, eventType model.CartEventType) (model.PricedCart, error) {
	if err := s.save(ctx, key, cart); err != nil {
		metrics.RecordCartOperation(op, "error")
		return model.PricedCart{}, err
	}
	priced := s.priced(key, *cart)
	s.notify(ctx, eventType, op, priced)
	metrics.RecordCartOperation(op, "success")
	return priced, nil
}

// save writes the priced lines, or deletes the slot when the cart is empty.
func (s *CartServiceImpl) save(ctx context.Context, key string, cart *model.Cart) error {
	if cart.IsEmpty() {
		if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, repository.ErrCartNotFound) {
			return fmt.Errorf("delete cart %s: %w", key, err)
		}
		return nil
	}

	cart.Items = s.engine.Price(cart.Items).Items
	payload, err := model.EncodeCart(*cart)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", key, err)
	}
	if err := s.store.Put(ctx, key, payload, cart.LastUpdated.Add(s.ttl)); err != nil {
		return fmt.Errorf("save cart %s: %w", key, err)
	}
	return nil
}

// load returns the stored cart. Missing, corrupt and expired slots all read as
// an empty cart; the latter two are removed from the store.
func (s *CartServiceImpl) load(ctx context.Context, key string) (model.Cart, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, repository.ErrCartNotFound) {
		return model.Cart{}, nil
	}
	if err != nil {
		return model.Cart{}, fmt.Errorf("load cart %s: %w", key, err)
	}

	now := s.clock()
	cart, err := model.DecodeCart(data, now)
	if err != nil {
		l := logger.ForCart(ctx, key)
		l.Warn().Err(err).Msg("discarding corrupt cart")
		s.discard(ctx, key)
		return model.Cart{}, nil
	}
	if cart.IsExpired(now, s.ttl) {
		l := logger.ForCart(ctx, key)
		l.Debug().Time("last_updated", cart.LastUpdated).Msg("cart expired")
		s.discard(ctx, key)
		return model.Cart{}, nil
	}
	return cart, nil
}

func (s *CartServiceImpl) discard(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		l := logger.ForCart(ctx, key)
		l.Warn().Err(err).Msg("failed to delete cart")
	}
}

// refreshProducts replaces every line's product with the catalog's current
// version. Lines keep their last-known product when the fetch fails or the
// product is gone; those cases come back as warnings.
func (s *CartServiceImpl) refreshProducts(ctx context.Context, cart *model.Cart) []string {
	ids := cart.ProductIDs()
	if inv, ok := s.catalog.(productInvalidator); ok {
		inv.Invalidate(ids...)
	}

	products, err := s.catalog.GetProducts(ctx, ids)
	if err != nil {
		metrics.RecordCatalogRefresh("failed")
		log.Warn().Err(err).Int("products", len(ids)).Msg("product refresh failed, keeping last known data")
		return []string{"product refresh failed"}
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var warnings []string
	for i := range cart.Items {
		fresh, ok := byID[cart.Items[i].Product.ID]
		if !ok {
			continue
		}
		cart.Items[i].Product = fresh
		cart.Items[i].UnitPrice = fresh.BasePrice
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			log.Warn().Int64("product_id", id).Msg("product missing from catalog, keeping last known data")
			warnings = append(warnings, fmt.Sprintf("product %d is no longer in the catalog", id))
		}
	}

	if len(warnings) > 0 {
		metrics.RecordCatalogRefresh("partial")
	} else {
		metrics.RecordCatalogRefresh("success")
	}
	return warnings
}

func (s *CartServiceImpl) fetchProduct(ctx context.Context, productID int64) (model.Product, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if errors.Is(err, model.ErrProductNotFound) {
		return model.Product{}, err
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return product, nil
}

func (s *CartServiceImpl) priced(key string, cart model.Cart) model.PricedCart {
	return model.PricedCart{
		Key:         key,
		Pricing:     s.engine.Price(cart.Items),
		LastUpdated: cart.LastUpdated,
	}
}

func (s *CartServiceImpl) notify(ctx context.Context, eventType model.CartEventType, op string, priced model.PricedCart) {
	event := model.CartEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		CartKey:       priced.Key,
		Operation:     op,
		Lines:         len(priced.Pricing.Items),
		TotalQuantity: priced.Pricing.TotalQuantity,
		Total:         priced.Pricing.Total,
		OccurredAt:    s.clock(),
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		l := logger.ForCart(ctx, priced.Key)
		l.Warn().Err(err).Str("event_type", string(eventType)).Msg("cart event not delivered")
	}
}

// checkStock rejects a requested total for a size above what the product has.
func checkStock(product model.Product, sizeID int64, requested int) error {
	available := product.Available(sizeID)
	if requested > available {
		metrics.RecordStockRejection()
		return &InsufficientStockError{
			ProductID: product.ID,
			SizeID:    sizeID,
			Available: available,
			Requested: requested,
		}
	}
	return nil
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, model.CartEvent) error { return nil }

// keyLocks serializes mutations per storage key.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
