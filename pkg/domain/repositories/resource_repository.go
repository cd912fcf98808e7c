package repositories

import "github.com/planbeam/solver/pkg/domain/entities"

// ResourceRepository provides access to production resources
type ResourceRepository interface {
	GetResource(id entities.ResourceID) (*entities.Resource, error)
	GetAllResources() ([]*entities.Resource, error)
	LoadResources(resources []*entities.Resource) error
}
