package memory

import (
	"fmt"

	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/domain/repositories"
)

// SupplierRepository stores supplier offers indexed by item
type SupplierRepository struct {
	offers      []entities.SupplierOffer
	itemIndexes map[entities.ItemID][]int
}

// NewSupplierRepository creates an in-memory supplier repository
func NewSupplierRepository(expectedOffers int) *SupplierRepository {
	return &SupplierRepository{
		offers:      make([]entities.SupplierOffer, 0, expectedOffers),
		itemIndexes: make(map[entities.ItemID][]int),
	}
}

var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

// LoadOffers loads supplier offers, preserving listed order per item
func (r *SupplierRepository) LoadOffers(offers []*entities.SupplierOffer) error {
	for _, offer := range offers {
		if offer == nil {
			return fmt.Errorf("%w: nil supplier offer", entities.ErrInvalidInput)
		}
		index := len(r.offers)
		r.offers = append(r.offers, *offer)
		r.itemIndexes[offer.ItemID] = append(r.itemIndexes[offer.ItemID], index)
	}
	return nil
}

// GetOffers returns all offers for an item in listed order
func (r *SupplierRepository) GetOffers(itemID entities.ItemID) ([]*entities.SupplierOffer, error) {
	indexes := r.itemIndexes[itemID]
	offers := make([]*entities.SupplierOffer, 0, len(indexes))
	for _, index := range indexes {
		offers = append(offers, &r.offers[index])
	}
	return offers, nil
}

// GetAllOffers returns all offers in load order
func (r *SupplierRepository) GetAllOffers() ([]*entities.SupplierOffer, error) {
	offers := make([]*entities.SupplierOffer, 0, len(r.offers))
	for i := range r.offers {
		offers = append(offers, &r.offers[i])
	}
	return offers, nil
}
