package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/MarcAntoine-Arnaud/catalog-api/middleware"
	"github.com/MarcAntoine-Arnaud/catalog-api/services"
	"github.com/MarcAntoine-Arnaud/catalog-api/utils"
)

// APIServer manages all catalog API routes and handlers
type APIServer struct {
	offeringService *services.ServiceOfferingService
	resourceService *services.DataResourceService
	catalogService  *services.CatalogService
	auth            *middleware.JWTAuthMiddleware
}

// NewAPIServer creates a new API server instance
func NewAPIServer(db *gorm.DB, auth *middleware.JWTAuthMiddleware) *APIServer {
	resourceService := services.NewDataResourceService(db)

	return &APIServer{
		resourceService: resourceService,
		offeringService: services.NewServiceOfferingService(db, resourceService),
		catalogService:  services.NewCatalogService(db),
		auth:            auth,
	}
}

// SetupRoutes configures all API routes. Identity resolution is one
// middleware for every catalog route; each operation decides whether an
// identity is required.
func (s *APIServer) SetupRoutes(mux *http.ServeMux) {
	offerings := s.auth.ResolveIdentity(utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleServiceOfferings)))
	mux.Handle("/v1/serviceofferings", offerings)
	mux.Handle("/v1/serviceofferings/", offerings)

	resources := s.auth.ResolveIdentity(utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleDataResources)))
	mux.Handle("/v1/dataResources", resources)
	mux.Handle("/v1/dataResources/", resources)
}
