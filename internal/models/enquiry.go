package models

// ValidEnquiryStatuses for public enquiries.
var ValidEnquiryStatuses = map[string]bool{
	"New":     true,
	"Read":    true,
	"Replied": true,
}

// Enquiry is a message submitted through the public contact form.
type Enquiry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Subject   *string `json:"subject,omitempty"`
	Message   string  `json:"message"`
	Phone     *string `json:"phone,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// CreateEnquiryRequest is the public contact form payload.
type CreateEnquiryRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Subject *string `json:"subject,omitempty"`
	Message string  `json:"message"`
	Phone   *string `json:"phone,omitempty"`
}

// Validate checks required fields for a new enquiry.
func (r *CreateEnquiryRequest) Validate() map[string]string {
	errors := map[string]string{}
	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Message == "" {
		errors["message"] = "Message is required"
	}
	return errors
}

// UpdateEnquiryRequest holds the fields that can be updated.
type UpdateEnquiryRequest struct {
	Status  *string `json:"status,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Message *string `json:"message,omitempty"`
}
