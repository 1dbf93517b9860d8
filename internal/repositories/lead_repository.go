package repositories

import (
	"context"
	"net/http"

	"hotelbook/internal/domain/models"
)

type LeadRepository struct {
	API *APIClient
}

func (r LeadRepository) Submit(ctx context.Context, lead models.Lead) error {
	_, err := r.API.do(ctx, "submit lead", http.MethodPost, "/web/leads", nil, lead)
	return err
}
