package services

import (
	"testing"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
)

func stayOf(rooms []models.Room, qty map[string]int) Selection {
	return Selection{
		CheckIn:    domain.NewDate(2024, 3, 10),
		CheckOut:   domain.NewDate(2024, 3, 13),
		Rooms:      rooms,
		Quantities: qty,
	}
}

func TestQuoteAppliesNightsOnce(t *testing.T) {
	sel := stayOf([]models.Room{deluxeRoom()}, map[string]int{"r1": 2})

	q, err := Pricer{Tax: TaxNone}.Quote(sel, "")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Nights != 3 || q.Subtotal != 6000 || q.Tax != 0 || q.Total != 6000 {
		t.Fatalf("unexpected quote %+v", q)
	}
	if sel.TotalPrice() != 2000 {
		t.Fatalf("selection total must stay per-night, got %v", sel.TotalPrice())
	}
}

func TestQuoteTaxAndPromo(t *testing.T) {
	sel := stayOf([]models.Room{deluxeRoom()}, map[string]int{"r1": 2})

	cases := []struct {
		name     string
		policy   TaxPolicy
		promo    string
		tax      float64
		discount float64
		total    float64
	}{
		{"gst only", TaxGST12, "", 720, 0, 6720},
		{"save20", TaxGST12, "save20", 720, 1200, 5520},
		{"welcome10 no tax", TaxNone, " WELCOME10 ", 0, 600, 5400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Pricer{Tax: tc.policy}.Quote(sel, tc.promo)
			if err != nil {
				t.Fatalf("Quote: %v", err)
			}
			if q.Tax != tc.tax || q.Discount != tc.discount || q.Total != tc.total {
				t.Fatalf("got tax=%v discount=%v total=%v", q.Tax, q.Discount, q.Total)
			}
		})
	}
}

func TestQuoteRejectsUnknownPromo(t *testing.T) {
	sel := stayOf([]models.Room{deluxeRoom()}, map[string]int{"r1": 1})
	_, err := Pricer{}.Quote(sel, "FREESTAY")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseTaxPolicy(t *testing.T) {
	if p, err := ParseTaxPolicy(""); err != nil || p != TaxNone {
		t.Fatalf("empty policy = %v, %v", p, err)
	}
	if p, err := ParseTaxPolicy("GST12"); err != nil || p != TaxGST12 {
		t.Fatalf("gst12 policy = %v, %v", p, err)
	}
	if _, err := ParseTaxPolicy("vat"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
