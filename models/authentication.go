package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleProvider is the participant role expected on catalog mutations
const RoleProvider = "provider"

// ParticipantClaims represents the JWT claims issued by the auth service for
// a marketplace participant. The subject claim carries the participant id.
type ParticipantClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Participant is the resolved identity of an authenticated caller. A nil
// *Participant means the caller is anonymous.
type Participant struct {
	ParticipantID string `json:"participantId"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
}

// NewParticipant builds a Participant from validated token claims
func NewParticipant(claims *ParticipantClaims) *Participant {
	return &Participant{
		ParticipantID: claims.Subject,
		Email:         claims.Email,
		Role:          claims.Role,
	}
}
