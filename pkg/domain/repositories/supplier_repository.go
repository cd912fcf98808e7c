package repositories

import "github.com/planbeam/solver/pkg/domain/entities"

// SupplierRepository provides access to supplier offers
type SupplierRepository interface {
	// GetOffers returns all offers for an item in listed order
	GetOffers(itemID entities.ItemID) ([]*entities.SupplierOffer, error)
	GetAllOffers() ([]*entities.SupplierOffer, error)
	LoadOffers(offers []*entities.SupplierOffer) error
}
