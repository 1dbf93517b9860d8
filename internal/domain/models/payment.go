package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// RedirectPayload is the data member of a successful booking-creation answer.
// The backend sends either a bare URL string or an object.
type RedirectPayload struct {
	URL                   string `json:"url"`
	MerchantTransactionID string `json:"merchantTransactionId,omitempty"`
}

func (p *RedirectPayload) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "" || trimmed == "null" {
		*p = RedirectPayload{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = RedirectPayload{URL: strings.TrimSpace(s)}
		return nil
	}
	if !strings.HasPrefix(trimmed, "{") {
		return errors.New("redirect payload must be a string or an object")
	}
	var raw struct {
		URL                   string `json:"url"`
		RedirectURL           string `json:"redirectUrl"`
		MerchantTransactionID string `json:"merchantTransactionId"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	url := raw.URL
	if url == "" {
		url = raw.RedirectURL
	}
	*p = RedirectPayload{URL: strings.TrimSpace(url), MerchantTransactionID: strings.TrimSpace(raw.MerchantTransactionID)}
	return nil
}

// StatusBooking is the booking embedded in a payment status record.
type StatusBooking struct {
	BookingID    string      `json:"bookingId"`
	UserInfo     []GuestInfo `json:"userInfo"`
	RoomNo       RoomNumbers `json:"RoomNo"`
	CheckInDate  string      `json:"checkInDate"`
	CheckOutDate string      `json:"checkOutDate"`
	Guests       Guests      `json:"guests"`
	StayDuration int         `json:"stayDuration"`
	TotalAmount  float64     `json:"totalAmount"`
}

// PaymentRecord is the booking status record looked up by merchant transaction id.
type PaymentRecord struct {
	Status                BookingStatus   `json:"status"`
	MerchantTransactionID string          `json:"merchantTransactionId"`
	PaymentMethod         string          `json:"paymentMethod"`
	AmountPaid            float64         `json:"amountPaid"`
	PendingAmount         float64         `json:"pendingAmount"`
	Tax                   float64         `json:"tax"`
	DiscountAmount        float64         `json:"discountAmount"`
	TotalAmount           float64         `json:"totalAmount"`
	GatewayResponse       json.RawMessage `json:"gatewayResponse,omitempty"`
	Booking               *StatusBooking  `json:"bookingId,omitempty"`
}

// ValidationResult is the data member of the payment validation answer.
type ValidationResult struct {
	MerchantTransactionID string        `json:"merchantTransactionId,omitempty"`
	Status                BookingStatus `json:"status,omitempty"`
	AmountPaid            float64       `json:"amountPaid,omitempty"`
	Booking               BookingRef    `json:"bookingId"`
}
