package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MarcAntoine-Arnaud/catalog-api/models"
	"github.com/MarcAntoine-Arnaud/catalog-api/utils"
)

// JWTAuthMiddleware resolves bearer tokens issued by the auth service into a
// participant identity. Token issuance stays outside this service; only
// verification happens here.
type JWTAuthMiddleware struct {
	secret           []byte
	expectedIssuer   string
	expectedAudience string
}

// JWTAuthConfig contains configuration for JWT authentication
type JWTAuthConfig struct {
	Secret           string
	ExpectedIssuer   string
	ExpectedAudience string
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(config JWTAuthConfig) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		secret:           []byte(config.Secret),
		expectedIssuer:   config.ExpectedIssuer,
		expectedAudience: config.ExpectedAudience,
	}
}

// ResolveIdentity returns a middleware that resolves an optional bearer
// credential. A missing Authorization header passes the request through as
// anonymous; a present but invalid token is rejected. Handlers decide
// per-operation whether an identity is required, so public and authenticated
// reads share a single code path.
func (j *JWTAuthMiddleware) ResolveIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := utils.ExtractBearerToken(r)
		if err != nil {
			slog.Warn("Failed to extract bearer token", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or missing authorization header")
			return
		}

		participant, err := j.validateToken(tokenString)
		if err != nil {
			slog.Warn("Token validation failed", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		ctx := utils.SetParticipant(r.Context(), participant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateToken validates a JWT token and returns the participant identity
func (j *JWTAuthMiddleware) validateToken(tokenString string) (*models.Participant, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.expectedIssuer != "" {
		options = append(options, jwt.WithIssuer(j.expectedIssuer))
	}
	if j.expectedAudience != "" {
		options = append(options, jwt.WithAudience(j.expectedAudience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.ParticipantClaims{}, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*models.ParticipantClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("subject claim is missing")
	}

	return models.NewParticipant(claims), nil
}
