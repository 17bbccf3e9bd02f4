package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MarcAntoine-Arnaud/catalog-api/models"
	apierrors "github.com/MarcAntoine-Arnaud/catalog-api/pkg/errors"
)

// ServiceOfferingService handles the service offering lifecycle. Ownership
// and existence invariants are enforced here, not in the HTTP layer.
type ServiceOfferingService struct {
	db        *gorm.DB
	resources *DataResourceService
}

// NewServiceOfferingService creates a new service offering service
func NewServiceOfferingService(db *gorm.DB, resources *DataResourceService) *ServiceOfferingService {
	return &ServiceOfferingService{db: db, resources: resources}
}

// lockForUpdate adds a row lock so concurrent mutations of the same record
// are serialized. SQLite serializes writers itself and rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Create persists a new service offering. The owner is always the acting
// participant; a providedBy value in the payload is overridden at
// construction time so ownership cannot be spoofed. Every referenced data
// resource must resolve as accessible before anything is written.
func (s *ServiceOfferingService) Create(actor *models.Participant, req *models.CreateServiceOfferingRequest) (*models.ServiceOffering, error) {
	if actor == nil {
		return nil, apierrors.UnauthorizedError("Authentication required")
	}
	if req.Name == "" {
		return nil, apierrors.ValidationError("MISSING_NAME", "Service offering name is required")
	}
	if req.Description == "" {
		return nil, apierrors.ValidationError("MISSING_DESCRIPTION", "Service offering description is required")
	}

	if err := s.resources.Resolve(req.DataResources, actor.ParticipantID); err != nil {
		return nil, err
	}

	offering := models.ServiceOffering{
		OfferingID:         "sof_" + uuid.New().String(),
		ProvidedBy:         actor.ParticipantID,
		Name:               req.Name,
		Description:        req.Description,
		Keywords:           models.StringList(req.Keywords),
		TermsAndConditions: req.TermsAndConditions,
		Price:              req.Price,
		Currency:           req.Currency,
		DataResources:      models.StringList(req.DataResources),
	}

	if err := s.db.Create(&offering).Error; err != nil {
		return nil, apierrors.DatabaseError("create service offering", err)
	}

	return &offering, nil
}

// Get retrieves a service offering by id. Existence is identity-independent:
// anonymous and authenticated callers both find the same record.
func (s *ServiceOfferingService) Get(offeringID string) (*models.ServiceOffering, error) {
	var offering models.ServiceOffering

	err := s.db.First(&offering, "offering_id = ?", offeringID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFoundError("Service offering")
	}
	if err != nil {
		return nil, apierrors.DatabaseError("fetch service offering", err)
	}

	return &offering, nil
}

// GetAll retrieves all service offerings in stable creation order
func (s *ServiceOfferingService) GetAll() ([]models.ServiceOffering, error) {
	var offerings []models.ServiceOffering

	err := s.db.Order("created_at, offering_id").Find(&offerings).Error
	if err != nil {
		return nil, apierrors.DatabaseError("fetch service offerings", err)
	}

	return offerings, nil
}

// GetByParticipant retrieves all offerings provided by the given participant.
// This is a public aggregation view and does not depend on the requester.
func (s *ServiceOfferingService) GetByParticipant(participantID string) ([]models.ServiceOffering, error) {
	var offerings []models.ServiceOffering

	err := s.db.Where("provided_by = ?", participantID).Order("created_at, offering_id").Find(&offerings).Error
	if err != nil {
		return nil, apierrors.DatabaseError("fetch service offerings", err)
	}

	return offerings, nil
}

// GetMine retrieves the acting participant's own offerings
func (s *ServiceOfferingService) GetMine(actor *models.Participant) ([]models.ServiceOffering, error) {
	if actor == nil {
		return nil, apierrors.UnauthorizedError("Authentication required")
	}
	return s.GetByParticipant(actor.ParticipantID)
}

// Update modifies a service offering. The record must exist and the acting
// participant must be its owner. A changed dataResources list is re-validated
// under the create-time rule before the merge. offeringId and providedBy are
// immutable; values in the payload are silently ignored.
func (s *ServiceOfferingService) Update(offeringID string, actor *models.Participant, req *models.UpdateServiceOfferingRequest) (*models.ServiceOffering, error) {
	if actor == nil {
		return nil, apierrors.UnauthorizedError("Authentication required")
	}

	var offering models.ServiceOffering

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&offering, "offering_id = ?", offeringID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierrors.NotFoundError("Service offering")
			}
			return apierrors.DatabaseError("fetch service offering", err)
		}

		if err := RequireOwner(actor, &offering); err != nil {
			return err
		}

		if req.DataResources != nil {
			if err := s.resources.resolve(tx, *req.DataResources, actor.ParticipantID); err != nil {
				return err
			}
			offering.DataResources = models.StringList(*req.DataResources)
		}

		if req.Name != nil {
			offering.Name = *req.Name
		}
		if req.Description != nil {
			offering.Description = *req.Description
		}
		if req.Keywords != nil {
			offering.Keywords = models.StringList(*req.Keywords)
		}
		if req.TermsAndConditions != nil {
			offering.TermsAndConditions = *req.TermsAndConditions
		}
		if req.Price != nil {
			offering.Price = *req.Price
		}
		if req.Currency != nil {
			offering.Currency = *req.Currency
		}

		if err := tx.Save(&offering).Error; err != nil {
			return apierrors.DatabaseError("update service offering", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &offering, nil
}

// Delete permanently removes a service offering. Same existence and
// ownership checks as Update; the id is never reused.
func (s *ServiceOfferingService) Delete(offeringID string, actor *models.Participant) error {
	if actor == nil {
		return apierrors.UnauthorizedError("Authentication required")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var offering models.ServiceOffering

		if err := lockForUpdate(tx).First(&offering, "offering_id = ?", offeringID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierrors.NotFoundError("Service offering")
			}
			return apierrors.DatabaseError("fetch service offering", err)
		}

		if err := RequireOwner(actor, &offering); err != nil {
			return err
		}

		if err := tx.Delete(&offering).Error; err != nil {
			return apierrors.DatabaseError("delete service offering", err)
		}

		return nil
	})
}
