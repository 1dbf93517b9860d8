package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, h http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewAPIClient(srv.URL+"/", 2*time.Second)
}

func TestRoomSearchSendsQueryAndDecodes(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/room/search", r.URL.Path)
		assert.Equal(t, "h1", r.URL.Query().Get("hotelId"))
		assert.Equal(t, "2024-03-10", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2024-03-13", r.URL.Query().Get("endDate"))
		assert.Equal(t, "rid-42", r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"data":[{"_id":"r1","roomType":"Deluxe","price":1000,"availableUnits":2,"maxcapacity":3}]}`))
	})

	ctx := utils.WithRequestID(context.Background(), "rid-42")
	rooms, err := RoomRepository{API: api}.Search(ctx, "h1", "2024-03-10", "2024-03-13")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "r1", rooms[0].ID)
	assert.Equal(t, 2, rooms[0].AvailableUnits)
	assert.Equal(t, 3, rooms[0].MaxCapacity)
}

func TestMalformedBodyIsDistinctKind(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := HotelRepository{API: api}.List(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsMalformedResponse(err))
	assert.False(t, domain.IsUpstream(err))
}

func TestMissingDataIsMalformed(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true}`))
	})

	_, err := HotelRepository{API: api}.List(context.Background())
	assert.True(t, domain.IsMalformedResponse(err))
}

func TestNon2xxIsUpstreamAndKeepsMessage(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"message":"Room no longer available"}`))
	})

	_, err := BookingRepository{API: api}.Create(context.Background(), models.CreateBookingRequest{HotelID: "h1"})
	require.Error(t, err)
	assert.True(t, domain.IsUpstream(err))
	msg, ok := domain.RejectionMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Room no longer available", msg)
}

func TestTransportFailureIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	api := NewAPIClient(srv.URL, time.Second)

	_, err := HotelRepository{API: api}.List(context.Background())
	assert.True(t, domain.IsUpstream(err))
}

func TestCreateBookingAcceptsStringAndObjectPayload(t *testing.T) {
	cases := map[string]struct {
		body    string
		wantURL string
		wantTxn string
	}{
		"string": {`{"status":true,"data":"https://pay.example.com/x"}`, "https://pay.example.com/x", ""},
		"object": {`{"status":true,"data":{"redirectUrl":"https://pay.example.com/y","merchantTransactionId":"MT1"}}`, "https://pay.example.com/y", "MT1"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				var got models.CreateBookingRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				assert.Equal(t, []string{"r1", "r1"}, got.RoomID)
				_, _ = w.Write([]byte(tc.body))
			})
			p, err := BookingRepository{API: api}.Create(context.Background(), models.CreateBookingRequest{RoomID: []string{"r1", "r1"}})
			require.NoError(t, err)
			assert.Equal(t, tc.wantURL, p.URL)
			assert.Equal(t, tc.wantTxn, p.MerchantTransactionID)
		})
	}
}

func TestCreateBookingRejected(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid dates"}`))
	})
	_, err := BookingRepository{API: api}.Create(context.Background(), models.CreateBookingRequest{})
	assert.True(t, domain.IsRejected(err))
	assert.EqualError(t, err, "Invalid dates")
}

func TestCreateBookingWithoutURLIsMalformed(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"merchantTransactionId":"MT1"}}`))
	})
	_, err := BookingRepository{API: api}.Create(context.Background(), models.CreateBookingRequest{})
	assert.True(t, domain.IsMalformedResponse(err))
}

func TestHotelGetNotFound(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := HotelRepository{API: api}.Get(context.Background(), "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestPaymentStatusDecodesEmbeddedBooking(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/booking/payment/status/MT%2F1", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"data":{"status":"booked","merchantTransactionId":"MT/1","totalAmount":6720,
			"bookingId":{"bookingId":"BK-9","RoomNo":["101","102"],"guests":{"adults":2,"children":1},"stayDuration":3}}}`))
	})
	rec, err := PaymentRepository{API: api}.Status(context.Background(), "MT/1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, rec.Status)
	require.NotNil(t, rec.Booking)
	assert.Equal(t, "BK-9", rec.Booking.BookingID)
	assert.Equal(t, models.RoomNumbers{"101", "102"}, rec.Booking.RoomNo)
	assert.Equal(t, 3, rec.Booking.StayDuration)
}

func TestPaymentValidateRequiresTxn(t *testing.T) {
	_, err := PaymentRepository{API: NewAPIClient("http://unused", time.Second)}.Validate(context.Background(), "  ")
	assert.True(t, domain.IsValidation(err))
}

func TestBookingsByPhoneAllowsEmptyData(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "+911234", r.URL.Query().Get("phone"))
		_, _ = w.Write([]byte(`{"status":true,"data":null}`))
	})
	out, err := BookingRepository{API: api}.ByPhone(context.Background(), " +911234 ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPaymentStatusAcceptsNumericRoomNumbers(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"status":"booked","bookingId":{"bookingId":"BK-9","RoomNo":[101,"102A",null]}}}`))
	})
	rec, err := PaymentRepository{API: api}.Status(context.Background(), "MT1")
	require.NoError(t, err)
	require.NotNil(t, rec.Booking)
	assert.Equal(t, models.RoomNumbers{"101", "102A"}, rec.Booking.RoomNo)
}

func TestBookingsByPhoneDecodesPopulatedReferences(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":[
			{"_id":"b1","bookingId":"BK-1","status":"booked",
			 "hotelId":{"_id":"h1","hotelName":"Sea View","city":"Goa","state":"GA"},
			 "roomId":[{"_id":"r1","roomType":"Deluxe"},{"_id":"r1","roomType":"Deluxe"}],
			 "RoomNo":[201,202],"checkInDate":"2025-01-10","checkOutDate":"2025-01-12"},
			{"_id":"b2","bookingId":"BK-2","status":"pending","hotelId":"h2","roomId":["r7"],"RoomNo":["12"]}]}`))
	})
	out, err := BookingRepository{API: api}.ByPhone(context.Background(), "+911234")
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, models.BookingHotel{ID: "h1", HotelName: "Sea View", City: "Goa", State: "GA"}, out[0].Hotel)
	assert.Equal(t, []models.BookingRoom{{ID: "r1", RoomType: "Deluxe"}, {ID: "r1", RoomType: "Deluxe"}}, out[0].Rooms)
	assert.Equal(t, models.RoomNumbers{"201", "202"}, out[0].RoomNo)

	assert.Equal(t, models.BookingHotel{ID: "h2"}, out[1].Hotel)
	assert.Equal(t, []models.BookingRoom{{ID: "r7"}}, out[1].Rooms)
	assert.Equal(t, models.RoomNumbers{"12"}, out[1].RoomNo)
}

func TestPaymentValidateDecodesPopulatedBooking(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/booking/payment/validate/MT1", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":true,"message":"Payment successful",
			"data":{"merchantTransactionId":"MT1","status":"booked","amountPaid":6720,"bookingId":{"_id":"b1","bookingId":"BK-9"}}}`))
	})
	res, err := PaymentRepository{API: api}.Validate(context.Background(), "MT1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, res.Status)
	assert.Equal(t, models.BookingRef{ID: "b1", BookingID: "BK-9"}, res.Booking)

	b, err := json.Marshal(res.Booking)
	require.NoError(t, err)
	assert.JSONEq(t, `"BK-9"`, string(b))
}

func TestPaymentValidateKeepsSuccessOnUnknownDataShape(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"amountPaid":"lots","bookingId":[1,2]}}`))
	})
	res, err := PaymentRepository{API: api}.Validate(context.Background(), "MT1")
	require.NoError(t, err)
	assert.Equal(t, models.ValidationResult{}, res)
}

func TestPaymentValidateRejectedStaysRejected(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":false,"message":"Payment not completed","data":{"bookingId":[1]}}`))
	})
	_, err := PaymentRepository{API: api}.Validate(context.Background(), "MT1")
	assert.True(t, domain.IsRejected(err))
}
