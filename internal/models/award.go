package models

// ValidAwardCategories for awards and certifications.
var ValidAwardCategories = map[string]bool{
	"Certification": true,
	"Award":         true,
	"Recognition":   true,
	"ISO":           true,
	"Other":         true,
}

// Award is a public-facing award, certification, or recognition entry.
type Award struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	Description         *string `json:"description,omitempty"`
	AwardDate           string  `json:"awardDate"`
	IssuingOrganization *string `json:"issuingOrganization,omitempty"`
	Certificate         *string `json:"certificate,omitempty"`
	ImageURL            *string `json:"imageUrl,omitempty"`
	Category            string  `json:"category"`
	DisplayOrder        int     `json:"displayOrder"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// CreateAwardRequest carries the fields for a new award entry.
type CreateAwardRequest struct {
	Title               string  `json:"title"`
	Description         *string `json:"description,omitempty"`
	AwardDate           string  `json:"awardDate"`
	IssuingOrganization *string `json:"issuingOrganization,omitempty"`
	Certificate         *string `json:"certificate,omitempty"`
	ImageURL            *string `json:"imageUrl,omitempty"`
	Category            string  `json:"category,omitempty"`
	DisplayOrder        int     `json:"displayOrder,omitempty"`
}

// Validate checks required fields for award creation.
func (r *CreateAwardRequest) Validate() map[string]string {
	errors := map[string]string{}
	if r.Title == "" {
		errors["title"] = "Title is required"
	}
	if r.AwardDate == "" {
		errors["awardDate"] = "Award date is required"
	}
	if r.Category != "" && !ValidAwardCategories[r.Category] {
		errors["category"] = "Invalid award category"
	}
	return errors
}

// UpdateAwardRequest holds the fields that can be updated. DisplayOrder
// is a pointer so an explicit 0 still overwrites the stored value.
type UpdateAwardRequest struct {
	Title               *string `json:"title,omitempty"`
	Description         *string `json:"description,omitempty"`
	AwardDate           *string `json:"awardDate,omitempty"`
	IssuingOrganization *string `json:"issuingOrganization,omitempty"`
	Certificate         *string `json:"certificate,omitempty"`
	ImageURL            *string `json:"imageUrl,omitempty"`
	Category            *string `json:"category,omitempty"`
	DisplayOrder        *int    `json:"displayOrder,omitempty"`
}
