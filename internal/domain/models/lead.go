package models

type LeadKind string

const (
	LeadB2B     LeadKind = "b2b"
	LeadContact LeadKind = "contact"
)

// Lead is a corporate enquiry or a contact-form message.
type Lead struct {
	Kind        LeadKind `json:"kind"`
	FirstName   string   `json:"firstName" validate:"required"`
	LastName    string   `json:"lastName" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone,omitempty"`
	Company     string   `json:"company,omitempty"`
	CompanySize string   `json:"companySize,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-1000 1000+"`
	Subject     string   `json:"subject,omitempty" validate:"omitempty,oneof=booking technical business feedback other"`
	Message     string   `json:"message"`
}
