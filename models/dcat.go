package models

// DCAT export types. Service offerings are published as dcat:DataService
// nodes; each referenced data resource becomes a dcat:Dataset node under
// dcat:servesDataset. Field order is fixed by the struct definitions so that
// repeated exports of an unchanged catalog are byte-identical.

// DCATContext is the JSON-LD context used for catalog documents
type DCATContext struct {
	DCAT string `json:"dcat"`
	DCT  string `json:"dct"`
}

// DefaultDCATContext returns the namespaces referenced by the export
func DefaultDCATContext() DCATContext {
	return DCATContext{
		DCAT: "http://www.w3.org/ns/dcat#",
		DCT:  "http://purl.org/dc/terms/",
	}
}

// DCATDataset represents a dcat:Dataset node for a referenced data resource
type DCATDataset struct {
	ID          string `json:"@id"`
	Type        string `json:"@type"`
	Title       string `json:"dct:title"`
	Description string `json:"dct:description,omitempty"`
	License     string `json:"dct:license,omitempty"`
}

// DCATDataService represents a single service offering as a dcat:DataService
type DCATDataService struct {
	ID            string        `json:"@id"`
	Type          string        `json:"@type"`
	Title         string        `json:"dct:title"`
	Description   string        `json:"dct:description"`
	Publisher     string        `json:"dct:publisher"`
	Issued        string        `json:"dct:issued"`
	Modified      string        `json:"dct:modified"`
	Keywords      []string      `json:"dcat:keyword,omitempty"`
	ServesDataset []DCATDataset `json:"dcat:servesDataset"`
}

// DCATCatalog is the full catalog document
type DCATCatalog struct {
	Context  DCATContext       `json:"@context"`
	Type     string            `json:"@type"`
	Services []DCATDataService `json:"dcat:service"`
}
