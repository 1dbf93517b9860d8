package repositories

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
)

type RoomRepository struct {
	API *APIClient
}

// Search lists rooms of a hotel with their availability for the date range.
func (r RoomRepository) Search(ctx context.Context, hotelID, startDate, endDate string) ([]models.Room, error) {
	const op = "search rooms"
	if strings.TrimSpace(hotelID) == "" {
		return nil, domain.ValidationError{Field: "hotelId", Msg: "hotelId is required"}
	}
	q := url.Values{}
	q.Set("hotelId", strings.TrimSpace(hotelID))
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	env, err := r.API.do(ctx, op, http.MethodGet, "/room/search", q, nil)
	if err != nil {
		return nil, err
	}
	out := []models.Room{}
	if err := decodeData(op, env, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}
