package services

import (
	"github.com/MarcAntoine-Arnaud/catalog-api/models"
	apierrors "github.com/MarcAntoine-Arnaud/catalog-api/pkg/errors"
)

// Visibility policy for service offering reads. Offerings are public-readable:
// anonymous and authenticated callers receive the same projection, so access
// (not field redaction) is what distinguishes the two. ProjectOffering is the
// single seam where redaction would go if offerings ever stop being public.

// ProjectOffering shapes an offering for the requesting identity
func ProjectOffering(offering *models.ServiceOffering, actor *models.Participant) *models.ServiceOffering {
	return offering
}

// ProjectOfferings shapes a list of offerings for the requesting identity
func ProjectOfferings(offerings []models.ServiceOffering, actor *models.Participant) []models.ServiceOffering {
	projected := make([]models.ServiceOffering, 0, len(offerings))
	for i := range offerings {
		projected = append(projected, *ProjectOffering(&offerings[i], actor))
	}
	return projected
}

// RequireOwner checks that the acting participant owns the offering. A nil
// actor is an authentication failure, a mismatched one an authorization
// failure; the two map to distinct HTTP statuses.
func RequireOwner(actor *models.Participant, offering *models.ServiceOffering) error {
	if actor == nil {
		return apierrors.UnauthorizedError("Authentication required")
	}
	if actor.ParticipantID != offering.ProvidedBy {
		return apierrors.ForbiddenError("Only the providing participant may modify this service offering")
	}
	return nil
}
