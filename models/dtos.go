package models

// CreateServiceOfferingRequest is the payload for creating a service offering.
// A providedBy field in the payload is accepted but always overridden by the
// authenticated identity, so ownership cannot be spoofed.
type CreateServiceOfferingRequest struct {
	ProvidedBy         string   `json:"providedBy,omitempty"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Keywords           []string `json:"keywords,omitempty"`
	TermsAndConditions string   `json:"termsAndConditions,omitempty"`
	Price              float64  `json:"price,omitempty"`
	Currency           string   `json:"currency,omitempty"`
	DataResources      []string `json:"dataResources,omitempty"`
}

// UpdateServiceOfferingRequest is the payload for updating a service offering.
// Nil fields are left unchanged. providedBy and offeringId are immutable and
// silently ignored when present in the payload.
type UpdateServiceOfferingRequest struct {
	ProvidedBy         *string   `json:"providedBy,omitempty"`
	Name               *string   `json:"name,omitempty"`
	Description        *string   `json:"description,omitempty"`
	Keywords           *[]string `json:"keywords,omitempty"`
	TermsAndConditions *string   `json:"termsAndConditions,omitempty"`
	Price              *float64  `json:"price,omitempty"`
	Currency           *string   `json:"currency,omitempty"`
	DataResources      *[]string `json:"dataResources,omitempty"`
}

// CreateDataResourceRequest is the payload for registering a data resource
type CreateDataResourceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	License     string `json:"license,omitempty"`
}

// UpdateDataResourceRequest is the payload for updating a data resource
type UpdateDataResourceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	License     *string `json:"license,omitempty"`
}

// CollectionResponse wraps list responses
type CollectionResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}
