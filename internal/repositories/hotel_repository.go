package repositories

import (
	"context"
	"net/http"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
)

type HotelRepository struct {
	API *APIClient
}

func (r HotelRepository) List(ctx context.Context) ([]models.Hotel, error) {
	const op = "list hotels"
	env, err := r.API.do(ctx, op, http.MethodGet, "/web/hotels", nil, nil)
	if err != nil {
		return nil, err
	}
	out := []models.Hotel{}
	if err := decodeData(op, env, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (r HotelRepository) Get(ctx context.Context, id string) (models.Hotel, error) {
	const op = "get hotel"
	seg, err := pathEscape("hotelId", id)
	if err != nil {
		return models.Hotel{}, err
	}
	env, err := r.API.do(ctx, op, http.MethodGet, "/web/hotels/"+seg, nil, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return models.Hotel{}, domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return models.Hotel{}, err
	}
	if !env.hasData() {
		return models.Hotel{}, domain.NotFoundError{Resource: "hotel"}
	}
	var h models.Hotel
	if err := decodeData(op, env, &h, true); err != nil {
		return models.Hotel{}, err
	}
	return h, nil
}
