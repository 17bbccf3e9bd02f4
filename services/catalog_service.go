package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/MarcAntoine-Arnaud/catalog-api/models"
	apierrors "github.com/MarcAntoine-Arnaud/catalog-api/pkg/errors"
)

// CatalogService exports service offerings as a DCAT catalog document. The
// transformation is pure and ordered by creation time then id, so repeated
// exports of an unchanged catalog are byte-identical.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ExportCatalog transforms every current service offering into a DCAT catalog
func (s *CatalogService) ExportCatalog() (*models.DCATCatalog, error) {
	var offerings []models.ServiceOffering

	err := s.db.Order("created_at, offering_id").Find(&offerings).Error
	if err != nil {
		return nil, apierrors.DatabaseError("fetch service offerings", err)
	}

	services := make([]models.DCATDataService, 0, len(offerings))
	for i := range offerings {
		service, err := s.buildDataService(&offerings[i])
		if err != nil {
			return nil, err
		}
		services = append(services, *service)
	}

	return &models.DCATCatalog{
		Context:  models.DefaultDCATContext(),
		Type:     "dcat:Catalog",
		Services: services,
	}, nil
}

// ExportOffering transforms a single service offering into a catalog record
// embeddable as a fragment of the full catalog
func (s *CatalogService) ExportOffering(offeringID string) (*models.DCATDataService, error) {
	var offering models.ServiceOffering

	err := s.db.First(&offering, "offering_id = ?", offeringID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFoundError("Service offering")
	}
	if err != nil {
		return nil, apierrors.DatabaseError("fetch service offering", err)
	}

	return s.buildDataService(&offering)
}

// buildDataService maps one offering to a dcat:DataService node with one
// dcat:Dataset node per referenced data resource
func (s *CatalogService) buildDataService(offering *models.ServiceOffering) (*models.DCATDataService, error) {
	datasets := make([]models.DCATDataset, 0, len(offering.DataResources))

	if len(offering.DataResources) > 0 {
		var resources []models.DataResource
		err := s.db.Where("resource_id IN ?", []string(offering.DataResources)).Find(&resources).Error
		if err != nil {
			return nil, apierrors.DatabaseError("fetch referenced data resources", err)
		}

		byID := make(map[string]models.DataResource, len(resources))
		for _, r := range resources {
			byID[r.ResourceID] = r
		}

		// Dataset order follows the offering's reference order
		for _, id := range offering.DataResources {
			node := models.DCATDataset{
				ID:   id,
				Type: "dcat:Dataset",
			}
			if resource, ok := byID[id]; ok {
				node.Title = resource.Name
				node.Description = resource.Description
				node.License = resource.License
			}
			datasets = append(datasets, node)
		}
	}

	return &models.DCATDataService{
		ID:            offering.OfferingID,
		Type:          "dcat:DataService",
		Title:         offering.Name,
		Description:   offering.Description,
		Publisher:     offering.ProvidedBy,
		Issued:        offering.CreatedAt.UTC().Format(time.RFC3339),
		Modified:      offering.UpdatedAt.UTC().Format(time.RFC3339),
		Keywords:      offering.Keywords,
		ServesDataset: datasets,
	}, nil
}
