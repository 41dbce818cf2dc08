package cart

import (
	"context"
	"fmt"

	"chatshop/internal/domain"
	"chatshop/internal/keylock"
	"chatshop/internal/logging"
	"github.com/sirupsen/logrus"
)

// Service owns the live, user-keyed carts.
type Service struct {
	repo    shopperRepo
	catalog productCatalog
	locks   *keylock.Locker
	logger  logrus.FieldLogger
}

type shopperRepo interface {
	GetShopper(ctx context.Context, userID int64) (*domain.Shopper, error)
	SaveShopper(ctx context.Context, s *domain.Shopper) error
}

type productCatalog interface {
	Get(id string) (domain.Product, error)
}

func New(repo shopperRepo, catalog productCatalog, locks *keylock.Locker, logger logrus.FieldLogger) *Service {
	if locks == nil {
		locks = keylock.New()
	}
	return &Service{repo: repo, catalog: catalog, locks: locks, logger: logging.OrDiscard(logger)}
}

// Add puts quantity more of productID into the user's cart and returns the
// cart's total item count.
func (s *Service) Add(ctx context.Context, userID int64, productID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	if _, err := s.catalog.Get(productID); err != nil {
		return 0, err
	}

	var count int
	err := s.update(ctx, userID, func(sh *domain.Shopper) error {
		sh.Cart.Add(productID, quantity)
		count = sh.Cart.ItemCount()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Remove deletes the line for productID. It returns ErrNotInCart and leaves
// the cart untouched when there is no such line.
func (s *Service) Remove(ctx context.Context, userID int64, productID string) (domain.Product, error) {
	err := s.update(ctx, userID, func(sh *domain.Shopper) error {
		if !sh.Cart.Remove(productID) {
			return domain.ErrNotInCart
		}
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	p, err := s.catalog.Get(productID)
	if err != nil {
		return domain.Product{ID: productID, Name: productID}, nil
	}
	return p, nil
}

// Snapshot resolves the cart against the catalog, in insertion order.
func (s *Service) Snapshot(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	sh, err := s.repo.GetShopper(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	items := make([]domain.CartItem, 0, len(sh.Cart.Lines))
	for _, line := range sh.Cart.Lines {
		p, err := s.catalog.Get(line.ProductID)
		if err != nil {
			s.logger.WithFields(logrus.Fields{"user_id": userID, "product_id": line.ProductID}).
				Warn("cart service: skipping line for product no longer in catalog")
			continue
		}
		items = append(items, domain.CartItem{Product: p, Quantity: line.Quantity})
	}
	return items, nil
}

// Total returns the cart value in cents.
func (s *Service) Total(ctx context.Context, userID int64) (int64, error) {
	items, err := s.Snapshot(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.ItemsTotal(items), nil
}

// Clear empties the cart. The browse cursor is kept.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.update(ctx, userID, func(sh *domain.Shopper) error {
		sh.Cart = domain.Cart{}
		return nil
	})
}

func (s *Service) update(ctx context.Context, userID int64, fn func(*domain.Shopper) error) error {
	unlock := s.locks.Lock(fmt.Sprintf("user:%d", userID))
	defer unlock()

	sh, err := s.repo.GetShopper(ctx, userID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if err := fn(sh); err != nil {
		return err
	}
	if err := s.repo.SaveShopper(ctx, sh); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
