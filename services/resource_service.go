package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MarcAntoine-Arnaud/catalog-api/models"
	apierrors "github.com/MarcAntoine-Arnaud/catalog-api/pkg/errors"
)

// DataResourceService handles data resource operations and acts as the
// reference validator for service offerings.
type DataResourceService struct {
	db *gorm.DB
}

// NewDataResourceService creates a new data resource service
func NewDataResourceService(db *gorm.DB) *DataResourceService {
	return &DataResourceService{db: db}
}

// Create registers a new data resource owned by the acting participant
func (s *DataResourceService) Create(actor *models.Participant, req *models.CreateDataResourceRequest) (*models.DataResource, error) {
	if actor == nil {
		return nil, apierrors.UnauthorizedError("Authentication required")
	}
	if req.Name == "" {
		return nil, apierrors.ValidationError("MISSING_NAME", "Data resource name is required")
	}

	resource := models.DataResource{
		ResourceID:  "res_" + uuid.New().String(),
		OwnerID:     actor.ParticipantID,
		Name:        req.Name,
		Description: req.Description,
		License:     req.License,
	}

	if err := s.db.Create(&resource).Error; err != nil {
		return nil, apierrors.DatabaseError("create data resource", err)
	}

	return &resource, nil
}

// Get retrieves a data resource by id
func (s *DataResourceService) Get(resourceID string) (*models.DataResource, error) {
	var resource models.DataResource

	err := s.db.First(&resource, "resource_id = ?", resourceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFoundError("Data resource")
	}
	if err != nil {
		return nil, apierrors.DatabaseError("fetch data resource", err)
	}

	return &resource, nil
}

// GetAll retrieves all data resources in stable creation order
func (s *DataResourceService) GetAll() ([]models.DataResource, error) {
	var resources []models.DataResource

	err := s.db.Order("created_at, resource_id").Find(&resources).Error
	if err != nil {
		return nil, apierrors.DatabaseError("fetch data resources", err)
	}

	return resources, nil
}

// GetByOwner retrieves all data resources owned by the given participant
func (s *DataResourceService) GetByOwner(ownerID string) ([]models.DataResource, error) {
	var resources []models.DataResource

	err := s.db.Where("owner_id = ?", ownerID).Order("created_at, resource_id").Find(&resources).Error
	if err != nil {
		return nil, apierrors.DatabaseError("fetch data resources", err)
	}

	return resources, nil
}

// Update modifies a data resource. Only the owning participant may update;
// nil request fields are left unchanged.
func (s *DataResourceService) Update(resourceID string, actor *models.Participant, req *models.UpdateDataResourceRequest) (*models.DataResource, error) {
	if actor == nil {
		return nil, apierrors.UnauthorizedError("Authentication required")
	}

	var resource models.DataResource

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&resource, "resource_id = ?", resourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierrors.NotFoundError("Data resource")
			}
			return apierrors.DatabaseError("fetch data resource", err)
		}

		if resource.OwnerID != actor.ParticipantID {
			return apierrors.ForbiddenError("Only the owner may update this data resource")
		}

		if req.Name != nil {
			resource.Name = *req.Name
		}
		if req.Description != nil {
			resource.Description = *req.Description
		}
		if req.License != nil {
			resource.License = *req.License
		}

		if err := tx.Save(&resource).Error; err != nil {
			return apierrors.DatabaseError("update data resource", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// Resolve verifies that every referenced data resource id exists and is owned
// by the acting participant. It performs no writes and is called synchronously
// before any offering create or update that touches dataResources.
func (s *DataResourceService) Resolve(resourceIDs []string, actorID string) error {
	return s.resolve(s.db, resourceIDs, actorID)
}

// resolve runs the reference check against the given handle. Mutations that
// re-validate inside a transaction must pass their transaction here so the
// check reads the same snapshot the write commits against.
func (s *DataResourceService) resolve(db *gorm.DB, resourceIDs []string, actorID string) error {
	if len(resourceIDs) == 0 {
		return nil
	}

	var resources []models.DataResource
	if err := db.Where("resource_id IN ?", resourceIDs).Find(&resources).Error; err != nil {
		return apierrors.DatabaseError("resolve data resources", err)
	}

	byID := make(map[string]models.DataResource, len(resources))
	for _, r := range resources {
		byID[r.ResourceID] = r
	}

	for _, id := range resourceIDs {
		resource, ok := byID[id]
		if !ok {
			return apierrors.ReferenceError(fmt.Sprintf("Data resource %s does not exist", id))
		}
		if resource.OwnerID != actorID {
			return apierrors.ReferenceError(fmt.Sprintf("Data resource %s is not accessible to the acting participant", id))
		}
	}

	return nil
}
