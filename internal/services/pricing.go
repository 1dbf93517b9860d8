package services

import (
	"fmt"
	"strings"

	"hotelbook/internal/domain"
	"hotelbook/internal/utils"
)

type TaxPolicy string

const (
	TaxNone  TaxPolicy = "none"
	TaxGST12 TaxPolicy = "gst12"
)

func ParseTaxPolicy(s string) (TaxPolicy, error) {
	switch TaxPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", TaxNone:
		return TaxNone, nil
	case TaxGST12:
		return TaxGST12, nil
	default:
		return "", fmt.Errorf("unknown tax policy %q", s)
	}
}

func (p TaxPolicy) Rate() float64 {
	if p == TaxGST12 {
		return 0.12
	}
	return 0
}

var promoRates = map[string]float64{
	"SAVE20":    0.20,
	"WELCOME10": 0.10,
}

const invalidPromoMsg = "Please check your promo code and try again."

// PromoRate returns the discount rate of a promo code. Codes are case-insensitive.
func PromoRate(code string) (float64, bool) {
	r, ok := promoRates[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

// Quote is the price breakdown of a selection for a stay.
type Quote struct {
	Nights    int     `json:"nights"`
	Subtotal  float64 `json:"subtotal"`
	TaxRate   float64 `json:"taxRate"`
	Tax       float64 `json:"tax"`
	PromoCode string  `json:"promoCode,omitempty"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

type Pricer struct {
	Tax TaxPolicy
}

// Quote multiplies the per-night selection total by the number of nights,
// then applies tax and the promo discount, both on the subtotal.
func (p Pricer) Quote(sel Selection, promoCode string) (Quote, error) {
	q := Quote{Nights: domain.Nights(sel.CheckIn, sel.CheckOut)}
	q.Subtotal = utils.Round2(sel.TotalPrice() * float64(q.Nights))
	q.TaxRate = p.Tax.Rate()
	q.Tax = utils.Round2(q.Subtotal * q.TaxRate)

	if code := strings.ToUpper(strings.TrimSpace(promoCode)); code != "" {
		rate, ok := PromoRate(code)
		if !ok {
			return Quote{}, domain.ValidationError{Field: "promoCode", Msg: invalidPromoMsg}
		}
		q.PromoCode = code
		q.Discount = utils.Round2(q.Subtotal * rate)
	}
	q.Total = utils.Round2(q.Subtotal + q.Tax - q.Discount)
	return q, nil
}
