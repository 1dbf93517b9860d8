package repositories

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
)

type BookingRepository struct {
	API *APIClient
}

// Create submits a booking and returns the payment gateway redirect.
// Only status:true with a non-empty URL counts as success.
func (r BookingRepository) Create(ctx context.Context, req models.CreateBookingRequest) (models.RedirectPayload, error) {
	const op = "create booking"
	env, err := r.API.do(ctx, op, http.MethodPost, "/booking/create", nil, req)
	if err != nil {
		return models.RedirectPayload{}, err
	}
	if env.Status == nil || !*env.Status {
		return models.RedirectPayload{}, domain.RejectedError{Op: op, Msg: strings.TrimSpace(env.Message)}
	}
	var payload models.RedirectPayload
	if err := decodeData(op, env, &payload, true); err != nil {
		return models.RedirectPayload{}, err
	}
	if payload.URL == "" {
		return models.RedirectPayload{}, domain.MalformedResponseError{Op: op, Reason: "empty redirect url"}
	}
	return payload, nil
}

// ByPhone lists every booking made with the phone number.
func (r BookingRepository) ByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	const op = "bookings by phone"
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domain.ValidationError{Field: "phone", Msg: "phone is required"}
	}
	q := url.Values{}
	q.Set("phone", phone)
	env, err := r.API.do(ctx, op, http.MethodGet, "/booking/mybookings", q, nil)
	if err != nil {
		return nil, err
	}
	if env.Status == nil {
		return nil, domain.MalformedResponseError{Op: op, Reason: "missing status"}
	}
	out := []models.Booking{}
	if err := decodeData(op, env, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}
