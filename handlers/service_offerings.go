package handlers

import (
	"net/http"
	"strings"

	"github.com/MarcAntoine-Arnaud/catalog-api/models"
	"github.com/MarcAntoine-Arnaud/catalog-api/services"
	"github.com/MarcAntoine-Arnaud/catalog-api/utils"
)

// handleServiceOfferings dispatches service offering routes
func (s *APIServer) handleServiceOfferings(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/serviceofferings")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Collection endpoint: GET /v1/serviceofferings and POST /v1/serviceofferings
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			s.getAllServiceOfferings(w, r)
		case http.MethodPost:
			s.createServiceOffering(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	switch parts[0] {
	case "me":
		// GET /v1/serviceofferings/me
		if len(parts) == 1 {
			if r.Method == http.MethodGet {
				s.getMyServiceOfferings(w, r)
			} else {
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
	case "participant":
		// GET /v1/serviceofferings/participant/:participantId
		if len(parts) == 2 && parts[1] != "" {
			if r.Method == http.MethodGet {
				s.getServiceOfferingsByParticipant(w, r, parts[1])
			} else {
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
	case "dcat":
		// GET /v1/serviceofferings/dcat and GET /v1/serviceofferings/dcat/:offeringId
		if r.Method != http.MethodGet {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		if len(parts) == 1 {
			s.exportCatalog(w, r)
			return
		}
		if len(parts) == 2 && parts[1] != "" {
			s.exportServiceOffering(w, r, parts[1])
			return
		}
	default:
		// GET/PUT/DELETE /v1/serviceofferings/:offeringId
		if len(parts) == 1 {
			offeringID := parts[0]
			switch r.Method {
			case http.MethodGet:
				s.getServiceOffering(w, r, offeringID)
			case http.MethodPut:
				s.updateServiceOffering(w, r, offeringID)
			case http.MethodDelete:
				s.deleteServiceOffering(w, r, offeringID)
			default:
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (s *APIServer) createServiceOffering(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceOfferingRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := utils.GetParticipant(r.Context())
	offering, err := s.offeringService.Create(actor, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusCreated, offering)
}

func (s *APIServer) getServiceOffering(w http.ResponseWriter, r *http.Request, offeringID string) {
	offering, err := s.offeringService.Get(offeringID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	actor := utils.GetParticipant(r.Context())
	utils.RespondWithSuccess(w, http.StatusOK, services.ProjectOffering(offering, actor))
}

func (s *APIServer) getAllServiceOfferings(w http.ResponseWriter, r *http.Request) {
	offerings, err := s.offeringService.GetAll()
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	actor := utils.GetParticipant(r.Context())
	projected := services.ProjectOfferings(offerings, actor)
	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{
		Items: projected,
		Count: len(projected),
	})
}

func (s *APIServer) getServiceOfferingsByParticipant(w http.ResponseWriter, r *http.Request, participantID string) {
	offerings, err := s.offeringService.GetByParticipant(participantID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	actor := utils.GetParticipant(r.Context())
	projected := services.ProjectOfferings(offerings, actor)
	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{
		Items: projected,
		Count: len(projected),
	})
}

func (s *APIServer) getMyServiceOfferings(w http.ResponseWriter, r *http.Request) {
	actor, err := utils.RequireParticipant(r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	offerings, err := s.offeringService.GetMine(actor)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{
		Items: offerings,
		Count: len(offerings),
	})
}

func (s *APIServer) updateServiceOffering(w http.ResponseWriter, r *http.Request, offeringID string) {
	var req models.UpdateServiceOfferingRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := utils.GetParticipant(r.Context())
	offering, err := s.offeringService.Update(offeringID, actor, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, offering)
}

func (s *APIServer) deleteServiceOffering(w http.ResponseWriter, r *http.Request, offeringID string) {
	actor := utils.GetParticipant(r.Context())
	if err := s.offeringService.Delete(offeringID, actor); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusNoContent, nil)
}

func (s *APIServer) exportCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.catalogService.ExportCatalog()
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, catalog)
}

func (s *APIServer) exportServiceOffering(w http.ResponseWriter, r *http.Request, offeringID string) {
	record, err := s.catalogService.ExportOffering(offeringID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, record)
}
