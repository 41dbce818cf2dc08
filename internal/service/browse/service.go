package browse

import (
	"context"
	"fmt"

	"chatshop/internal/domain"
	"chatshop/internal/keylock"
)

// Page is one product of the catalog together with its position.
type Page struct {
	Index   int
	Total   int
	Product domain.Product
}

// Service moves the per-user browse cursor over the catalog. The cursor is
// clamped to [0, Count()-1], never wrapped.
type Service struct {
	repo    shopperRepo
	catalog productCatalog
	locks   *keylock.Locker
}

type shopperRepo interface {
	GetShopper(ctx context.Context, userID int64) (*domain.Shopper, error)
	SaveShopper(ctx context.Context, s *domain.Shopper) error
}

type productCatalog interface {
	At(index int) (domain.Product, error)
	Count() int
}

func New(repo shopperRepo, catalog productCatalog, locks *keylock.Locker) *Service {
	if locks == nil {
		locks = keylock.New()
	}
	return &Service{repo: repo, catalog: catalog, locks: locks}
}

// Start resets the cursor to the first product.
func (s *Service) Start(ctx context.Context, userID int64) (Page, error) {
	return s.move(ctx, userID, func(int) int { return 0 })
}

func (s *Service) Next(ctx context.Context, userID int64) (Page, error) {
	return s.move(ctx, userID, func(i int) int { return i + 1 })
}

func (s *Service) Prev(ctx context.Context, userID int64) (Page, error) {
	return s.move(ctx, userID, func(i int) int { return i - 1 })
}

// Current returns the page under the cursor without moving it.
func (s *Service) Current(ctx context.Context, userID int64) (Page, error) {
	return s.move(ctx, userID, func(i int) int { return i })
}

func (s *Service) move(ctx context.Context, userID int64, step func(int) int) (Page, error) {
	count := s.catalog.Count()
	if count == 0 {
		return Page{}, domain.ErrEmptyCatalog
	}

	unlock := s.locks.Lock(fmt.Sprintf("user:%d", userID))
	defer unlock()

	sh, err := s.repo.GetShopper(ctx, userID)
	if err != nil {
		return Page{}, fmt.Errorf("load cursor: %w", err)
	}
	index := clamp(step(clamp(sh.Cursor, count)), count)
	p, err := s.catalog.At(index)
	if err != nil {
		return Page{}, err
	}
	if index != sh.Cursor {
		sh.Cursor = index
		if err := s.repo.SaveShopper(ctx, sh); err != nil {
			return Page{}, fmt.Errorf("save cursor: %w", err)
		}
	}
	return Page{Index: index, Total: count, Product: p}, nil
}

func clamp(i, count int) int {
	if i < 0 {
		return 0
	}
	if i > count-1 {
		return count - 1
	}
	return i
}
