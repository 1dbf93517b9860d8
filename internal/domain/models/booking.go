package models

import "hotelbook/internal/domain"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusBooked    BookingStatus = "booked"
	StatusCheckIn   BookingStatus = "checkin"
	StatusCheckOut  BookingStatus = "checkout"
	StatusCancelled BookingStatus = "cancelled"
	StatusFailed    BookingStatus = "failed"
)

type GuestInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Age   int    `json:"age,omitempty"`
}

type Guests struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Booking is a reservation as returned by the bookings-by-phone lookup.
type Booking struct {
	ID           string        `json:"_id"`
	BookingID    string        `json:"bookingId"`
	Hotel        BookingHotel  `json:"hotelId"`
	Rooms        []BookingRoom `json:"roomId"`
	Status       BookingStatus `json:"status"`
	CheckInDate  domain.Date   `json:"checkInDate"`
	CheckOutDate domain.Date   `json:"checkOutDate"`
	UserInfo     []GuestInfo   `json:"userInfo"`
	RoomNo       RoomNumbers   `json:"RoomNo"`
	Guests       Guests        `json:"guests"`
	StayDuration int           `json:"stayDuration"`
	TotalAmount  float64       `json:"totalAmount"`
}

// CreateBookingRequest is the body of the booking-creation call.
// RoomID repeats each room id once per selected unit.
type CreateBookingRequest struct {
	HotelID         string      `json:"hotelId"`
	RoomID          []string    `json:"roomId"`
	CheckInDate     string      `json:"checkInDate"`
	CheckOutDate    string      `json:"checkOutDate"`
	UserInfo        []GuestInfo `json:"userInfo"`
	Guests          Guests      `json:"guests"`
	SpecialRequests string      `json:"specialRequests,omitempty"`
	Subtotal        float64     `json:"subtotal"`
	Tax             float64     `json:"tax"`
	Discount        float64     `json:"discount"`
	TotalAmount     float64     `json:"totalAmount"`
	PromoCode       string      `json:"promoCode,omitempty"`
}
