package repositories

import (
	"context"
	"net/http"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/utils"
)

type PaymentRepository struct {
	API *APIClient
}

// Validate asks the backend to confirm the payment of a merchant transaction.
func (r PaymentRepository) Validate(ctx context.Context, merchantTxnID string) (models.ValidationResult, error) {
	const op = "validate payment"
	seg, err := pathEscape("merchantTransactionId", merchantTxnID)
	if err != nil {
		return models.ValidationResult{}, err
	}
	env, err := r.API.do(ctx, op, http.MethodGet, "/booking/payment/validate/"+seg, nil, nil)
	if err != nil {
		return models.ValidationResult{}, err
	}
	if env.Status == nil {
		return models.ValidationResult{}, domain.MalformedResponseError{Op: op, Reason: "missing status"}
	}
	// A confirmed payment stays confirmed even when the detail block has a
	// shape we do not know.
	var out models.ValidationResult
	if err := decodeData(op, env, &out, false); err != nil {
		utils.LogWarn(utils.RequestIDFrom(ctx), "payments", "decode_validation", err)
		return models.ValidationResult{}, nil
	}
	return out, nil
}

// Status returns the booking status record of a merchant transaction.
func (r PaymentRepository) Status(ctx context.Context, merchantTxnID string) (models.PaymentRecord, error) {
	const op = "booking status"
	seg, err := pathEscape("merchantTransactionId", merchantTxnID)
	if err != nil {
		return models.PaymentRecord{}, err
	}
	env, err := r.API.do(ctx, op, http.MethodGet, "/booking/payment/status/"+seg, nil, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return models.PaymentRecord{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.PaymentRecord{}, err
	}
	var out models.PaymentRecord
	if err := decodeData(op, env, &out, true); err != nil {
		return models.PaymentRecord{}, err
	}
	if out.Status == "" {
		return models.PaymentRecord{}, domain.MalformedResponseError{Op: op, Reason: "missing status"}
	}
	return out, nil
}
