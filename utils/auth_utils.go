package utils

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MarcAntoine-Arnaud/catalog-api/models"
	apierrors "github.com/MarcAntoine-Arnaud/catalog-api/pkg/errors"
)

// AuthContextKey is the key type used to store identity in request context
type AuthContextKey string

const (
	// AuthContextKeyParticipant holds the resolved *models.Participant
	AuthContextKeyParticipant AuthContextKey = "authenticated_participant"
)

// ExtractBearerToken extracts the Bearer token from the Authorization header.
// It returns an error if the header is missing, does not use the Bearer
// scheme, or carries an empty token.
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header is missing")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("authorization header must start with 'Bearer '")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", fmt.Errorf("bearer token is empty")
	}

	return token, nil
}

// SetParticipant stores the resolved participant identity in the context
func SetParticipant(ctx context.Context, p *models.Participant) context.Context {
	return context.WithValue(ctx, AuthContextKeyParticipant, p)
}

// GetParticipant retrieves the participant identity from the context.
// It returns nil for anonymous callers.
func GetParticipant(ctx context.Context) *models.Participant {
	p, ok := ctx.Value(AuthContextKeyParticipant).(*models.Participant)
	if !ok {
		return nil
	}
	return p
}

// RequireParticipant retrieves the participant identity or fails with an
// unauthorized error when the caller is anonymous
func RequireParticipant(r *http.Request) (*models.Participant, error) {
	p := GetParticipant(r.Context())
	if p == nil {
		return nil, apierrors.UnauthorizedError("Authentication required")
	}
	return p, nil
}
