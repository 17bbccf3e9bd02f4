package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcAntoine-Arnaud/catalog-api/models"
	"github.com/MarcAntoine-Arnaud/catalog-api/utils"
)

const (
	testSecret = "test-secret"
	testIssuer = "https://auth.example.com"
)

func signTestToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	claims := &models.ParticipantClaims{
		Email: subject + "@example.com",
		Role:  models.RoleProvider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestMiddleware() *JWTAuthMiddleware {
	return NewJWTAuthMiddleware(JWTAuthConfig{
		Secret:         testSecret,
		ExpectedIssuer: testIssuer,
	})
}

// identityEcho records the participant the middleware resolved
func identityEcho(captured **models.Participant) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = utils.GetParticipant(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestResolveIdentity(t *testing.T) {
	t.Run("MissingHeaderIsAnonymous", func(t *testing.T) {
		var captured *models.Participant
		handler := newTestMiddleware().ResolveIdentity(identityEcho(&captured))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/serviceofferings", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, captured)
	})

	t.Run("ValidToken", func(t *testing.T) {
		var captured *models.Participant
		handler := newTestMiddleware().ResolveIdentity(identityEcho(&captured))

		req := httptest.NewRequest(http.MethodGet, "/v1/serviceofferings", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, "part_1", time.Hour))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "part_1", captured.ParticipantID)
		assert.Equal(t, "part_1@example.com", captured.Email)
		assert.Equal(t, models.RoleProvider, captured.Role)
	})

	t.Run("WrongSignature", func(t *testing.T) {
		var captured *models.Participant
		handler := newTestMiddleware().ResolveIdentity(identityEcho(&captured))

		req := httptest.NewRequest(http.MethodGet, "/v1/serviceofferings", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "other-secret", "part_1", time.Hour))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, captured)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		var captured *models.Participant
		handler := newTestMiddleware().ResolveIdentity(identityEcho(&captured))

		req := httptest.NewRequest(http.MethodGet, "/v1/serviceofferings", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, "part_1", -time.Minute))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		middleware := NewJWTAuthMiddleware(JWTAuthConfig{
			Secret:         testSecret,
			ExpectedIssuer: "https://other-issuer.example.com",
		})
		var captured *models.Participant
		handler := middleware.ResolveIdentity(identityEcho(&captured))

		req := httptest.NewRequest(http.MethodGet, "/v1/serviceofferings", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, "part_1", time.Hour))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		var captured *models.Participant
		handler := newTestMiddleware().ResolveIdentity(identityEcho(&captured))

		req := httptest.NewRequest(http.MethodGet, "/v1/serviceofferings", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		var captured *models.Participant
		handler := newTestMiddleware().ResolveIdentity(identityEcho(&captured))

		claims := &models.ParticipantClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    testIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/serviceofferings", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
