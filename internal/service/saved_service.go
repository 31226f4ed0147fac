package service

import (
	"context"
	"errors"
	"fmt"

	"parakeet/internal/domain"
	"parakeet/internal/repository"
)

// SavedProductService manages the per-user wishlist. Saving is idempotent:
// at most one record exists per (user, product) pair.
type SavedProductService interface {
	List(ctx context.Context, userID int64) ([]domain.SavedProductWithProduct, error)
	Save(ctx context.Context, userID, productID int64) ([]domain.SavedProductWithProduct, error)
	Remove(ctx context.Context, userID, productID int64) ([]domain.SavedProductWithProduct, bool, error)
}

type savedProductService struct {
	saved   repository.SavedProductStore
	catalog repository.CatalogStore
	tx      repository.TxManager
}

// NewSavedProductService creates a new instance of SavedProductService
func NewSavedProductService(saved repository.SavedProductStore, catalog repository.CatalogStore, tx repository.TxManager) SavedProductService {
	return &savedProductService{saved: saved, catalog: catalog, tx: tx}
}

func (s *savedProductService) List(ctx context.Context, userID int64) ([]domain.SavedProductWithProduct, error) {
	return s.saved.ListSavedProducts(ctx, userID)
}

// Save records the product in the user's wishlist. Re-saving an already
// saved product is a no-op; the existing record stands.
func (s *savedProductService) Save(ctx context.Context, userID, productID int64) ([]domain.SavedProductWithProduct, error) {
	var list []domain.SavedProductWithProduct
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: product %d does not exist", repository.ErrIntegrity, productID)
			}
			return err
		}

		_, err := s.saved.FindSavedProduct(ctx, userID, productID)
		if errors.Is(err, repository.ErrNotFound) {
			if _, err := s.saved.CreateSavedProduct(ctx, domain.SavedProduct{
				UserID:    userID,
				ProductID: productID,
			}); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		list, err = s.saved.ListSavedProducts(ctx, userID)
		return err
	})
	return list, err
}

func (s *savedProductService) Remove(ctx context.Context, userID, productID int64) ([]domain.SavedProductWithProduct, bool, error) {
	var (
		list    []domain.SavedProductWithProduct
		removed bool
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.saved.DeleteSavedProduct(ctx, userID, productID)
		if err != nil {
			return err
		}
		list, err = s.saved.ListSavedProducts(ctx, userID)
		return err
	})
	return list, removed, err
}
