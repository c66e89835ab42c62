package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nestora/storefront/internal/ports"
)

type Repositories struct {
	Leads       ports.LeadRepository
	Products    ports.ProductRepository
	Carts       ports.CartRepository
	Wishlist    ports.WishlistRepository
	Orders      ports.OrderRepository
	Warehouse   ports.WarehouseRepository
	Outbox      ports.OutboxRepository
	Idempotency ports.IdempotencyRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Leads:       &leadRepository{db: db},
		Products:    &productRepository{db: db},
		Carts:       &cartRepository{db: db},
		Wishlist:    &wishlistRepository{db: db},
		Orders:      &orderRepository{db: db},
		Warehouse:   &warehouseRepository{db: db},
		Outbox:      &outboxRepository{db: db},
		Idempotency: &idempotencyRepository{db: db},
	}
}

// isUniqueViolation relies on gorm's TranslateError config so driver-specific
// duplicate-key errors arrive as one sentinel.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
