package memory

import (
	"fmt"

	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/domain/repositories"
)

// ResourceRepository stores production resources
type ResourceRepository struct {
	resources    []entities.Resource
	resourcesMap map[entities.ResourceID]int
}

// NewResourceRepository creates an in-memory resource repository
func NewResourceRepository(expectedResources int) *ResourceRepository {
	return &ResourceRepository{
		resources:    make([]entities.Resource, 0, expectedResources),
		resourcesMap: make(map[entities.ResourceID]int, expectedResources),
	}
}

var _ repositories.ResourceRepository = (*ResourceRepository)(nil)

// LoadResources loads resources into the repository. The first row for
// a resource wins; later duplicates are ignored, matching how routing
// masters repeat the resource per operation.
func (r *ResourceRepository) LoadResources(resources []*entities.Resource) error {
	for _, resource := range resources {
		if resource == nil {
			return fmt.Errorf("%w: nil resource", entities.ErrInvalidInput)
		}
		if _, exists := r.resourcesMap[resource.ID]; exists {
			continue
		}
		r.resourcesMap[resource.ID] = len(r.resources)
		r.resources = append(r.resources, *resource)
	}
	return nil
}

// GetResource returns a resource by ID
func (r *ResourceRepository) GetResource(id entities.ResourceID) (*entities.Resource, error) {
	index, exists := r.resourcesMap[id]
	if !exists {
		return nil, fmt.Errorf("resource not found: %s", id)
	}
	return &r.resources[index], nil
}

// GetAllResources returns all resources in load order
func (r *ResourceRepository) GetAllResources() ([]*entities.Resource, error) {
	resources := make([]*entities.Resource, 0, len(r.resources))
	for i := range r.resources {
		resources = append(resources, &r.resources[i])
	}
	return resources, nil
}
