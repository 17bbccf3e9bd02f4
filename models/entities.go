package models

// DataResource represents the data_resources table. A data resource is a
// dataset owned by the participant that registered it; service offerings
// reference data resources but never own them.
type DataResource struct {
	ResourceID  string `gorm:"primarykey;column:resource_id" json:"resourceId"`
	OwnerID     string `gorm:"column:owner_id;not null;index" json:"ownerId"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	License     string `gorm:"column:license" json:"license"`
	Timestamps
}

// TableName sets the table name for GORM
func (DataResource) TableName() string {
	return "data_resources"
}

// ServiceOffering represents the service_offerings table. ProvidedBy is bound
// from the authenticated identity at creation time and is immutable.
type ServiceOffering struct {
	OfferingID         string     `gorm:"primarykey;column:offering_id" json:"offeringId"`
	ProvidedBy         string     `gorm:"column:provided_by;not null;index" json:"providedBy"`
	Name               string     `gorm:"column:name;not null" json:"name"`
	Description        string     `gorm:"column:description;not null" json:"description"`
	Keywords           StringList `gorm:"column:keywords;type:jsonb" json:"keywords"`
	TermsAndConditions string     `gorm:"column:terms_and_conditions" json:"termsAndConditions"`
	Price              float64    `gorm:"column:price" json:"price"`
	Currency           string     `gorm:"column:currency" json:"currency"`
	DataResources      StringList `gorm:"column:data_resources;type:jsonb" json:"dataResources"`
	Timestamps
}

// TableName sets the table name for GORM
func (ServiceOffering) TableName() string {
	return "service_offerings"
}
