package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MarcAntoine-Arnaud/catalog-api/handlers"
	"github.com/MarcAntoine-Arnaud/catalog-api/middleware"
	"github.com/MarcAntoine-Arnaud/catalog-api/models"
)

const (
	testSecret = "test-secret"
	testIssuer = "https://auth.example.com"
)

// newTestServer wires the full API against an in-memory database
func newTestServer(t *testing.T) *http.ServeMux {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.DataResource{}, &models.ServiceOffering{})
	require.NoError(t, err)

	auth := middleware.NewJWTAuthMiddleware(middleware.JWTAuthConfig{
		Secret:         testSecret,
		ExpectedIssuer: testIssuer,
	})

	mux := http.NewServeMux()
	handlers.NewAPIServer(db, auth).SetupRoutes(mux)
	return mux
}

func providerToken(t *testing.T, participantID string) string {
	claims := &models.ParticipantClaims{
		Email: participantID + "@example.com",
		Role:  models.RoleProvider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   participantID,
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServiceOfferingLifecycle(t *testing.T) {
	mux := newTestServer(t)
	ownerToken := providerToken(t, "part_owner")
	intruderToken := providerToken(t, "part_intruder")

	// Register a data resource for the provider
	w := doJSON(t, mux, http.MethodPost, "/v1/dataResources", ownerToken, models.CreateDataResourceRequest{
		Name:        "Weather observations",
		Description: "Station-level observations",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resource models.DataResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resource))
	require.NotEmpty(t, resource.ResourceID)

	var offering models.ServiceOffering

	t.Run("CreateOffering_SpoofedProvidedByIgnored", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodPost, "/v1/serviceofferings", ownerToken, models.CreateServiceOfferingRequest{
			ProvidedBy:    "part_somebody_else",
			Name:          "Weather feed",
			Description:   "Live weather observation stream",
			DataResources: []string{resource.ResourceID},
		})

		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offering))
		assert.Equal(t, "part_owner", offering.ProvidedBy)
		assert.NotEmpty(t, offering.OfferingID)
	})

	t.Run("CreateOffering_RequiresAuth", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodPost, "/v1/serviceofferings", "", models.CreateServiceOfferingRequest{
			Name:        "Anonymous offering",
			Description: "Should fail",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("CreateOffering_DanglingReference", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodPost, "/v1/serviceofferings", ownerToken, models.CreateServiceOfferingRequest{
			Name:          "Broken offering",
			Description:   "References a missing resource",
			DataResources: []string{"res_missing"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("GetOffering_SameBodyAnonymousAndAuthenticated", func(t *testing.T) {
		anonymous := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/"+offering.OfferingID, "", nil)
		require.Equal(t, http.StatusOK, anonymous.Code)

		authenticated := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/"+offering.OfferingID, ownerToken, nil)
		require.Equal(t, http.StatusOK, authenticated.Code)

		assert.Equal(t, anonymous.Body.String(), authenticated.Body.String())
	})

	t.Run("GetOffering_InvalidTokenRejected", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/"+offering.OfferingID, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ListAll_Public", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var response models.CollectionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Count)
	})

	t.Run("ListByParticipant_Public", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/participant/part_owner", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var response models.CollectionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Count)
	})

	t.Run("ListMine", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/me", ownerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var response models.CollectionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Count)
	})

	t.Run("ListMine_RequiresAuth", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("CatalogExport", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/dcat", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var catalog models.DCATCatalog
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
		assert.Equal(t, "dcat:Catalog", catalog.Type)
		require.Len(t, catalog.Services, 1)
		assert.Equal(t, offering.OfferingID, catalog.Services[0].ID)
		require.Len(t, catalog.Services[0].ServesDataset, 1)
		assert.Equal(t, resource.ResourceID, catalog.Services[0].ServesDataset[0].ID)

		// Repeated export with no intervening mutation is identical
		second := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/dcat", "", nil)
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, w.Body.String(), second.Body.String())
	})

	t.Run("CatalogExport_SingleRecord", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/dcat/"+offering.OfferingID, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var record models.DCATDataService
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.Equal(t, "dcat:DataService", record.Type)
	})

	t.Run("CatalogExport_NotFound", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/dcat/sof_missing", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Update_RequiresAuth", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodPut, "/v1/serviceofferings/"+offering.OfferingID, "", models.UpdateServiceOfferingRequest{})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Update_NonOwnerForbidden", func(t *testing.T) {
		description := "Hijacked description"
		w := doJSON(t, mux, http.MethodPut, "/v1/serviceofferings/"+offering.OfferingID, intruderToken, models.UpdateServiceOfferingRequest{
			Description: &description,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Update_Owner", func(t *testing.T) {
		description := "Updated weather stream"
		w := doJSON(t, mux, http.MethodPut, "/v1/serviceofferings/"+offering.OfferingID, ownerToken, models.UpdateServiceOfferingRequest{
			Description: &description,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var updated models.ServiceOffering
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, description, updated.Description)
		assert.Equal(t, "part_owner", updated.ProvidedBy)
	})

	t.Run("Delete_NonOwnerForbidden", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodDelete, "/v1/serviceofferings/"+offering.OfferingID, intruderToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Delete_Owner", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodDelete, "/v1/serviceofferings/"+offering.OfferingID, ownerToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Get_AfterDelete", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings/"+offering.OfferingID, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		listing := doJSON(t, mux, http.MethodGet, "/v1/serviceofferings", "", nil)
		var response models.CollectionResponse
		require.NoError(t, json.Unmarshal(listing.Body.Bytes(), &response))
		assert.Equal(t, 0, response.Count)
	})
}

func TestDataResourceEndpoints(t *testing.T) {
	mux := newTestServer(t)
	ownerToken := providerToken(t, "part_owner")

	t.Run("Create_RequiresAuth", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodPost, "/v1/dataResources", "", models.CreateDataResourceRequest{Name: "Orphan"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	var resource models.DataResource

	t.Run("Create", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodPost, "/v1/dataResources", ownerToken, models.CreateDataResourceRequest{
			Name:    "Soil samples",
			License: "CC-BY-4.0",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resource))
		assert.Equal(t, "part_owner", resource.OwnerID)
	})

	t.Run("Get_Public", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/dataResources/"+resource.ResourceID, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("List_Public", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodGet, "/v1/dataResources", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var response models.CollectionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Count)
	})

	t.Run("Update_NonOwnerForbidden", func(t *testing.T) {
		name := "Hijacked"
		w := doJSON(t, mux, http.MethodPut, "/v1/dataResources/"+resource.ResourceID, providerToken(t, "part_intruder"), models.UpdateDataResourceRequest{
			Name: &name,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Update_Owner", func(t *testing.T) {
		name := "Soil samples 2024"
		w := doJSON(t, mux, http.MethodPut, "/v1/dataResources/"+resource.ResourceID, ownerToken, models.UpdateDataResourceRequest{
			Name: &name,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var updated models.DataResource
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, name, updated.Name)
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		w := doJSON(t, mux, http.MethodDelete, "/v1/dataResources/"+resource.ResourceID, ownerToken, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
