package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned when a conditional stock decrement
	// affects zero rows.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store aggregates the repositories so services can run several of them
// inside one relational transaction.
type Store interface {
	Carts() CartRepository
	Orders() OrderRepository
	Inventory() InventoryRepository
	ShippingRules() ShippingRuleRepository
	TransferMethods() TransferMethodRepository

	// InTransaction runs fn against a Store bound to a single transaction.
	// Returning an error rolls everything back.
	InTransaction(ctx context.Context, fn func(Store) error) error
}

// GormStore implements Store on a *gorm.DB (either the root connection or a
// transaction handle).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Carts() CartRepository                     { return &GormCartRepository{db: s.db} }
func (s *GormStore) Orders() OrderRepository                   { return &GormOrderRepository{db: s.db} }
func (s *GormStore) Inventory() InventoryRepository            { return &GormInventoryRepository{db: s.db} }
func (s *GormStore) ShippingRules() ShippingRuleRepository     { return &GormShippingRuleRepository{db: s.db} }
func (s *GormStore) TransferMethods() TransferMethodRepository { return &GormTransferMethodRepository{db: s.db} }

func (s *GormStore) InTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}

// IsDuplicateKey reports whether err is a uniqueness-constraint conflict.
// Relies on gorm's TranslateError so the check is not tied to one driver.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
