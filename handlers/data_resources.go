package handlers

import (
	"net/http"
	"strings"

	"github.com/MarcAntoine-Arnaud/catalog-api/models"
	"github.com/MarcAntoine-Arnaud/catalog-api/utils"
)

// handleDataResources dispatches data resource routes
func (s *APIServer) handleDataResources(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/dataResources")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Collection endpoint: GET /v1/dataResources and POST /v1/dataResources
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			s.getAllDataResources(w, r)
		case http.MethodPost:
			s.createDataResource(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// GET/PUT /v1/dataResources/:resourceId
	if len(parts) == 1 {
		resourceID := parts[0]
		switch r.Method {
		case http.MethodGet:
			s.getDataResource(w, r, resourceID)
		case http.MethodPut:
			s.updateDataResource(w, r, resourceID)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (s *APIServer) createDataResource(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDataResourceRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := utils.GetParticipant(r.Context())
	resource, err := s.resourceService.Create(actor, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusCreated, resource)
}

func (s *APIServer) getDataResource(w http.ResponseWriter, r *http.Request, resourceID string) {
	resource, err := s.resourceService.Get(resourceID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, resource)
}

func (s *APIServer) getAllDataResources(w http.ResponseWriter, r *http.Request) {
	resources, err := s.resourceService.GetAll()
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{
		Items: resources,
		Count: len(resources),
	})
}

func (s *APIServer) updateDataResource(w http.ResponseWriter, r *http.Request, resourceID string) {
	var req models.UpdateDataResourceRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := utils.GetParticipant(r.Context())
	resource, err := s.resourceService.Update(resourceID, actor, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, resource)
}
