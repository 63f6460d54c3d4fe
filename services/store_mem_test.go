package services

import (
	"context"
	"sort"
	"sync"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memStore is an in-memory repository.Store. InTransaction serializes
// callers and restores a snapshot on error, mirroring rollback, so the
// all-or-nothing and concurrency properties of checkout are observable
// without a database.
type memStore struct {
	mu sync.Mutex

	variants map[uuid.UUID]*models.Variant
	carts    map[uuid.UUID]*models.Cart
	orders   map[uuid.UUID]*models.Order
	invLogs  []models.InventoryLog
	rules    []*models.ShippingRule
	methods  map[string]*models.PaymentTransferMethod

	// onCreateOrder lets tests inject storage conflicts; afterRollback runs
	// once after a rolled-back transaction, standing in for a concurrent
	// transaction that committed in the meantime.
	onCreateOrder func(o *models.Order) error
	afterRollback func()
}

func newMemStore() *memStore {
	return &memStore{
		variants: make(map[uuid.UUID]*models.Variant),
		carts:    make(map[uuid.UUID]*models.Cart),
		orders:   make(map[uuid.UUID]*models.Order),
		methods:  make(map[string]*models.PaymentTransferMethod),
	}
}

func (s *memStore) Carts() repository.CartRepository             { return &memCartRepo{s} }
func (s *memStore) Orders() repository.OrderRepository           { return &memOrderRepo{s} }
func (s *memStore) Inventory() repository.InventoryRepository    { return &memInventoryRepo{s} }
func (s *memStore) ShippingRules() repository.ShippingRuleRepository {
	return &memShippingRuleRepo{s}
}
func (s *memStore) TransferMethods() repository.TransferMethodRepository {
	return &memTransferMethodRepo{s}
}

func (s *memStore) InTransaction(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		if s.afterRollback != nil {
			cb := s.afterRollback
			s.afterRollback = nil
			cb()
		}
		return err
	}
	return nil
}

type memSnapshot struct {
	variants map[uuid.UUID]*models.Variant
	carts    map[uuid.UUID]*models.Cart
	orders   map[uuid.UUID]*models.Order
	invLogs  []models.InventoryLog
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		variants: make(map[uuid.UUID]*models.Variant, len(s.variants)),
		carts:    make(map[uuid.UUID]*models.Cart, len(s.carts)),
		orders:   make(map[uuid.UUID]*models.Order, len(s.orders)),
		invLogs:  append([]models.InventoryLog(nil), s.invLogs...),
	}
	for id, v := range s.variants {
		snap.variants[id] = cloneVariant(v)
	}
	for id, c := range s.carts {
		snap.carts[id] = cloneCart(c)
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.variants = snap.variants
	s.carts = snap.carts
	s.orders = snap.orders
	s.invLogs = snap.invLogs
}

func cloneVariant(v *models.Variant) *models.Variant {
	c := *v
	return &c
}

func cloneCart(c *models.Cart) *models.Cart {
	cc := *c
	cc.Items = append([]models.CartItem(nil), c.Items...)
	return &cc
}

func cloneOrder(o *models.Order) *models.Order {
	co := *o
	co.Items = append([]models.OrderItem(nil), o.Items...)
	co.StatusHistory = append([]models.OrderStatusHistory(nil), o.StatusHistory...)
	if o.Address != nil {
		addr := *o.Address
		co.Address = &addr
	}
	if o.IdempotencyKey != nil {
		key := *o.IdempotencyKey
		co.IdempotencyKey = &key
	}
	return &co
}

// ---- cart repo ----

type memCartRepo struct{ s *memStore }

func (r *memCartRepo) FindActiveByToken(_ context.Context, token string) (*models.Cart, error) {
	for _, cart := range r.s.carts {
		if cart.Token == token && cart.Status == models.CartStatusActive {
			for i := range cart.Items {
				cart.Items[i].Variant = r.s.variants[cart.Items[i].VariantID]
			}
			return cart, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCartRepo) Create(_ context.Context, cart *models.Cart) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	r.s.carts[cart.ID] = cart
	return nil
}

func (r *memCartRepo) FindItem(_ context.Context, cartID, variantID uuid.UUID) (*models.CartItem, error) {
	cart, ok := r.s.carts[cartID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, item := range cart.Items {
		if item.VariantID == variantID {
			found := item
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCartRepo) SaveItem(_ context.Context, item *models.CartItem) error {
	cart, ok := r.s.carts[item.CartID]
	if !ok {
		return repository.ErrNotFound
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	for i := range cart.Items {
		if cart.Items[i].VariantID == item.VariantID {
			cart.Items[i] = *item
			return nil
		}
	}
	cart.Items = append(cart.Items, *item)
	return nil
}

func (r *memCartRepo) DeleteItem(_ context.Context, cartID, variantID uuid.UUID) error {
	cart, ok := r.s.carts[cartID]
	if !ok {
		return nil
	}
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.VariantID != variantID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	return nil
}

func (r *memCartRepo) MarkConverted(_ context.Context, cartID uuid.UUID) error {
	cart, ok := r.s.carts[cartID]
	if !ok {
		return repository.ErrNotFound
	}
	cart.Status = models.CartStatusConverted
	cart.Items = nil
	return nil
}

// ---- order repo ----

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(_ context.Context, order *models.Order) error {
	if r.s.onCreateOrder != nil {
		if err := r.s.onCreateOrder(order); err != nil {
			return err
		}
	}
	for _, existing := range r.s.orders {
		if existing.Code == order.Code {
			return gorm.ErrDuplicatedKey
		}
		if existing.IdempotencyKey != nil && order.IdempotencyKey != nil &&
			*existing.IdempotencyKey == *order.IdempotencyKey {
			return gorm.ErrDuplicatedKey
		}
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	for i := range order.StatusHistory {
		order.StatusHistory[i].OrderID = order.ID
	}
	if order.Address != nil {
		order.Address.OrderID = order.ID
	}
	r.s.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return order, nil
}

func (r *memOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *memOrderRepo) FindByCode(_ context.Context, code string) (*models.Order, error) {
	for _, order := range r.s.orders {
		if order.Code == code {
			return order, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memOrderRepo) FindByIdempotencyKey(_ context.Context, key string) (*models.Order, error) {
	for _, order := range r.s.orders {
		if order.IdempotencyKey != nil && *order.IdempotencyKey == key {
			return order, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memOrderRepo) FindAll(_ context.Context, page, limit int) ([]models.Order, int64, error) {
	all := make([]models.Order, 0, len(r.s.orders))
	for _, order := range r.s.orders {
		all = append(all, *order)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memOrderRepo) Save(_ context.Context, order *models.Order) error {
	r.s.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) AppendStatusHistory(_ context.Context, entry *models.OrderStatusHistory) error {
	order, ok := r.s.orders[entry.OrderID]
	if !ok {
		return repository.ErrNotFound
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	order.StatusHistory = append(order.StatusHistory, *entry)
	return nil
}

// ---- inventory repo ----

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) FindVariant(_ context.Context, id uuid.UUID) (*models.Variant, error) {
	variant, ok := r.s.variants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return variant, nil
}

func (r *memInventoryRepo) DecrementStock(_ context.Context, variantID uuid.UUID, quantity int) error {
	variant, ok := r.s.variants[variantID]
	if !ok || variant.Inventory < quantity {
		return repository.ErrInsufficientStock
	}
	variant.Inventory -= quantity
	return nil
}

func (r *memInventoryRepo) IncrementStock(_ context.Context, variantID uuid.UUID, quantity int) error {
	variant, ok := r.s.variants[variantID]
	if !ok {
		return repository.ErrNotFound
	}
	variant.Inventory += quantity
	return nil
}

func (r *memInventoryRepo) AppendLog(_ context.Context, entry *models.InventoryLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.s.invLogs = append(r.s.invLogs, *entry)
	return nil
}

func (r *memInventoryRepo) FindLogsByOrder(_ context.Context, orderID uuid.UUID) ([]models.InventoryLog, error) {
	var logs []models.InventoryLog
	for _, entry := range r.s.invLogs {
		if entry.OrderID != nil && *entry.OrderID == orderID {
			logs = append(logs, entry)
		}
	}
	return logs, nil
}

// ---- shipping rule repo ----

type memShippingRuleRepo struct{ s *memStore }

func (r *memShippingRuleRepo) firstMatch(match func(*models.ShippingRule) bool) (*models.ShippingRule, error) {
	sorted := append([]*models.ShippingRule(nil), r.s.rules...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SortOrder < sorted[j].SortOrder })
	for _, rule := range sorted {
		if rule.IsActive && match(rule) {
			return rule, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memShippingRuleRepo) FindActiveByTownship(_ context.Context, township string) (*models.ShippingRule, error) {
	return r.firstMatch(func(rule *models.ShippingRule) bool {
		return rule.TownshipCity != nil && *rule.TownshipCity == township
	})
}

func (r *memShippingRuleRepo) FindActiveByZoneKey(_ context.Context, zoneKey string) (*models.ShippingRule, error) {
	return r.firstMatch(func(rule *models.ShippingRule) bool {
		return rule.ZoneKey == zoneKey
	})
}

func (r *memShippingRuleRepo) FindActiveByStateRegion(_ context.Context, stateRegion string) (*models.ShippingRule, error) {
	return r.firstMatch(func(rule *models.ShippingRule) bool {
		return rule.StateRegion != nil && *rule.StateRegion == stateRegion && rule.TownshipCity == nil
	})
}

func (r *memShippingRuleRepo) FindActiveFallback(_ context.Context) (*models.ShippingRule, error) {
	return r.firstMatch(func(rule *models.ShippingRule) bool {
		return rule.IsFallback
	})
}

// ---- transfer method repo ----

type memTransferMethodRepo struct{ s *memStore }

func (r *memTransferMethodRepo) FindActiveByCode(_ context.Context, code string) (*models.PaymentTransferMethod, error) {
	method, ok := r.s.methods[code]
	if !ok || !method.IsActive {
		return nil, repository.ErrNotFound
	}
	return method, nil
}

// ---- fixtures ----

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func (s *memStore) addVariant(productName, sku, price string, inventory int, active bool) *models.Variant {
	product := &models.Product{
		ID:     uuid.New(),
		Name:   productName,
		Active: true,
		Price:  mustDecimal(price),
	}
	variant := &models.Variant{
		ID:        uuid.New(),
		ProductID: product.ID,
		Product:   product,
		SKU:       sku,
		Active:    active,
		Inventory: inventory,
	}
	s.variants[variant.ID] = variant
	return variant
}

func (s *memStore) addCartWith(token string, lines ...models.CartItem) *models.Cart {
	cart := &models.Cart{
		ID:       uuid.New(),
		Token:    token,
		Status:   models.CartStatusActive,
		Currency: "MMK",
	}
	for i := range lines {
		lines[i].ID = uuid.New()
		lines[i].CartID = cart.ID
	}
	cart.Items = lines
	s.carts[cart.ID] = cart
	return cart
}

func (s *memStore) addRule(rule models.ShippingRule) *models.ShippingRule {
	rule.ID = uuid.New()
	s.rules = append(s.rules, &rule)
	return s.rules[len(s.rules)-1]
}

func (s *memStore) addTransferMethod(code string, channel models.TransferChannel, active bool) {
	s.methods[code] = &models.PaymentTransferMethod{
		ID:       uuid.New(),
		Code:     code,
		Channel:  channel,
		Name:     code,
		IsActive: active,
	}
}

// seedYangonRules installs the standard rule set used by checkout tests:
// an exact Sanchaung rule, a zone-wide outer rule, a Shan state rule and a
// catch-all fallback mandating prepaid transfer. The fallback deliberately
// sorts first to prove specificity beats sort order.
func (s *memStore) seedYangonRules() {
	s.addRule(models.ShippingRule{
		ZoneKey:      "yangon-inner",
		ZoneLabel:    "Yangon (Inner)",
		TownshipCity: strPtr("Sanchaung"),
		Fee:          mustDecimal("1000"),
		ETALabel:     "1-2 days",
		IsActive:     true,
		SortOrder:    10,
	})
	s.addRule(models.ShippingRule{
		ZoneKey:   "yangon-outer",
		ZoneLabel: "Yangon (Outer)",
		Fee:       mustDecimal("2000"),
		ETALabel:  "2-3 days",
		IsActive:  true,
		SortOrder: 20,
	})
	s.addRule(models.ShippingRule{
		ZoneKey:     "shan",
		ZoneLabel:   "Shan State",
		StateRegion: strPtr("Shan"),
		Fee:         mustDecimal("3500"),
		ETALabel:    "4-7 days",
		IsActive:    true,
		SortOrder:   30,
	})
	s.addRule(models.ShippingRule{
		ZoneKey:    "remote",
		ZoneLabel:  "Remote Areas",
		Fee:        mustDecimal("5000"),
		ETALabel:   "5-10 days",
		IsFallback: true,
		IsActive:   true,
		SortOrder:  1,
	})
}
