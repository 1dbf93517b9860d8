package services

import (
	"context"
	"strings"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/utils"

	"github.com/go-playground/validator/v10"
)

type LeadSubmitter interface {
	Submit(ctx context.Context, lead models.Lead) error
}

// LeadReceipt is the acknowledgement shown after a form is sent.
type LeadReceipt struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type LeadService struct {
	Leads    LeadSubmitter
	Validate *validator.Validate
}

// SubmitB2B sends a corporate enquiry. Company, phone and company size are required.
func (s *LeadService) SubmitB2B(ctx context.Context, lead models.Lead) (LeadReceipt, error) {
	lead = normalizeLead(lead, models.LeadB2B)
	if lead.Company == "" {
		return LeadReceipt{}, domain.ValidationError{Field: "company", Msg: "is required"}
	}
	if lead.Phone == "" {
		return LeadReceipt{}, domain.ValidationError{Field: "phone", Msg: "is required"}
	}
	if lead.CompanySize == "" {
		return LeadReceipt{}, domain.ValidationError{Field: "companySize", Msg: "is required"}
	}
	if err := s.submit(ctx, lead); err != nil {
		return LeadReceipt{}, err
	}
	return LeadReceipt{
		Title:       "Request Submitted!",
		Description: "We'll contact you within 24 hours to discuss your corporate travel needs.",
	}, nil
}

// SubmitContact sends a contact-form message. Subject and message are required.
func (s *LeadService) SubmitContact(ctx context.Context, lead models.Lead) (LeadReceipt, error) {
	lead = normalizeLead(lead, models.LeadContact)
	if lead.Subject == "" {
		return LeadReceipt{}, domain.ValidationError{Field: "subject", Msg: "is required"}
	}
	if lead.Message == "" {
		return LeadReceipt{}, domain.ValidationError{Field: "message", Msg: "is required"}
	}
	if err := s.submit(ctx, lead); err != nil {
		return LeadReceipt{}, err
	}
	return LeadReceipt{
		Title:       "Message Sent!",
		Description: "We'll get back to you within 24 hours.",
	}, nil
}

func (s *LeadService) submit(ctx context.Context, lead models.Lead) error {
	if err := validateStruct(s.Validate, lead); err != nil {
		return err
	}
	if err := s.Leads.Submit(ctx, lead); err != nil {
		return err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "leads", "submit", "kind="+string(lead.Kind))
	return nil
}

func normalizeLead(l models.Lead, kind models.LeadKind) models.Lead {
	l.Kind = kind
	l.FirstName = utils.NormalizeSpace(l.FirstName)
	l.LastName = utils.NormalizeSpace(l.LastName)
	l.Email = strings.TrimSpace(l.Email)
	l.Phone = strings.TrimSpace(l.Phone)
	l.Company = utils.NormalizeSpace(l.Company)
	l.CompanySize = strings.TrimSpace(l.CompanySize)
	l.Subject = strings.ToLower(strings.TrimSpace(l.Subject))
	l.Message = strings.TrimSpace(l.Message)
	return l
}
