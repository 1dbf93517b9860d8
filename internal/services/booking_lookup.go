package services

import (
	"context"
	"strings"
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/utils"
)

type BookingFinder interface {
	ByPhone(ctx context.Context, phone string) ([]models.Booking, error)
}

const (
	MsgPhoneRequired = "Please enter your phone number to search bookings"
	MsgNoBookings    = "No bookings found for this phone number"
)

var statusLabels = map[models.BookingStatus]string{
	models.StatusPending:   "Pending",
	models.StatusBooked:    "Confirmed",
	models.StatusCheckIn:   "Checked In",
	models.StatusCheckOut:  "Completed",
	models.StatusCancelled: "Cancelled",
	models.StatusFailed:    "Failed",
}

// StatusLabel is the human label of a booking status; unknown statuses pass through.
func StatusLabel(s models.BookingStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

type BookingView struct {
	models.Booking
	StatusLabel string `json:"statusLabel"`
	Nights      int    `json:"nights"`
}

// BookingPartition groups bookings for the "my bookings" tabs. A booking can
// sit in more than one group or in none; Unclassified lists the latter.
type BookingPartition struct {
	Upcoming     []BookingView `json:"upcoming"`
	Past         []BookingView `json:"past"`
	Cancelled    []BookingView `json:"cancelled"`
	Unclassified []BookingView `json:"unclassified"`
}

func isUpcoming(b models.Booking, now time.Time) bool {
	return (b.Status == models.StatusPending || b.Status == models.StatusBooked) &&
		!b.CheckInDate.IsZero() && b.CheckInDate.After(now)
}

func isPast(b models.Booking, now time.Time) bool {
	if b.Status == models.StatusCheckOut {
		return true
	}
	return (b.Status == models.StatusBooked || b.Status == models.StatusCheckIn) &&
		!b.CheckOutDate.IsZero() && b.CheckOutDate.Before(now)
}

func isCancelled(b models.Booking) bool {
	return b.Status == models.StatusCancelled || b.Status == models.StatusFailed
}

// PartitionBookings applies the tab predicates independently to each booking.
// A booked stay in progress, or a pending one whose check-in has passed,
// matches no tab.
func PartitionBookings(bookings []models.Booking, now time.Time) BookingPartition {
	out := BookingPartition{
		Upcoming:     []BookingView{},
		Past:         []BookingView{},
		Cancelled:    []BookingView{},
		Unclassified: []BookingView{},
	}
	for _, b := range bookings {
		v := BookingView{Booking: b, StatusLabel: StatusLabel(b.Status), Nights: domain.Nights(b.CheckInDate, b.CheckOutDate)}
		matched := false
		if isUpcoming(b, now) {
			out.Upcoming = append(out.Upcoming, v)
			matched = true
		}
		if isPast(b, now) {
			out.Past = append(out.Past, v)
			matched = true
		}
		if isCancelled(b) {
			out.Cancelled = append(out.Cancelled, v)
			matched = true
		}
		if !matched {
			out.Unclassified = append(out.Unclassified, v)
		}
	}
	return out
}

type BookingLookupService struct {
	Bookings BookingFinder
	Now      func() time.Time
}

// SearchByPhone finds a guest's bookings and groups them. Only emptiness of
// the phone is checked.
func (s *BookingLookupService) SearchByPhone(ctx context.Context, phone string) (BookingPartition, int, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return BookingPartition{}, 0, domain.ValidationError{Msg: MsgPhoneRequired}
	}
	bookings, err := s.Bookings.ByPhone(ctx, phone)
	if err != nil {
		return BookingPartition{}, 0, err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "bookings", "search_by_phone", "phone="+utils.PhoneDigest(phone))
	return PartitionBookings(bookings, now), len(bookings), nil
}
