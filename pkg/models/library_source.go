package models

// LibrarySource identifies where a use case originated.
type LibrarySource string

const (
	SourceRSAInternal      LibrarySource = "rsa_internal"
	SourceIndustryStandard LibrarySource = "industry_standard"
	SourceAIInventory      LibrarySource = "ai_inventory"
)

// Library tiers.
const (
	TierActive    = "active"
	TierReference = "reference"
)

// LibraryExtensions carries the per-source optional field set. Exactly
// one variant should be populated, matching the use case's LibrarySource.
type LibraryExtensions struct {
	RSAInternal      *RSAInternalFields      `json:"rsa_internal,omitempty"`
	IndustryStandard *IndustryStandardFields `json:"industry_standard,omitempty"`
	AIInventory      *AIInventoryFields      `json:"ai_inventory,omitempty"`
}

// RSAInternalFields are set only on rsa_internal use cases.
type RSAInternalFields struct {
	SponsorName  string `json:"sponsor_name,omitempty"`
	BusinessUnit string `json:"business_unit,omitempty"`
	InternalRef  string `json:"internal_ref,omitempty"`
}

// IndustryStandardFields are set only on industry_standard use cases.
type IndustryStandardFields struct {
	BenchmarkSource  string `json:"benchmark_source,omitempty"`
	IndustryVertical string `json:"industry_vertical,omitempty"`
	MaturityRating   string `json:"maturity_rating,omitempty"`
}

// AIInventoryFields are set only on ai_inventory use cases.
type AIInventoryFields struct {
	VendorName    string `json:"vendor_name,omitempty"`
	ModelProvider string `json:"model_provider,omitempty"`
	InventoryRef  string `json:"inventory_ref,omitempty"`
	RiskAssessed  bool   `json:"risk_assessed,omitempty"`
}

// Variant returns the extension struct matching source, or nil when the
// populated variant does not match.
func (e *LibraryExtensions) Variant(source LibrarySource) interface{} {
	if e == nil {
		return nil
	}
	switch source {
	case SourceRSAInternal:
		if e.RSAInternal != nil {
			return e.RSAInternal
		}
	case SourceIndustryStandard:
		if e.IndustryStandard != nil {
			return e.IndustryStandard
		}
	case SourceAIInventory:
		if e.AIInventory != nil {
			return e.AIInventory
		}
	}
	return nil
}
