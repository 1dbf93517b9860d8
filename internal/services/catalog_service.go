package services

import (
	"context"
	"strings"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/repositories"
	"hotelbook/internal/utils"
)

const (
	msgDatesRequired = "Please select check-in and check-out dates"
	msgDatesOrder    = "Check-out date must be after check-in date"
)

// Stay is a validated check-in/check-out pair.
type Stay struct {
	CheckIn  domain.Date
	CheckOut domain.Date
}

func (s Stay) Nights() int { return domain.Nights(s.CheckIn, s.CheckOut) }

// ParseStay requires both dates and a check-out after the check-in.
func ParseStay(checkIn, checkOut string) (Stay, error) {
	checkIn, checkOut = strings.TrimSpace(checkIn), strings.TrimSpace(checkOut)
	if checkIn == "" || checkOut == "" {
		return Stay{}, domain.ValidationError{Msg: msgDatesRequired}
	}
	in, err := domain.ParseDate(checkIn)
	if err != nil {
		return Stay{}, domain.ValidationError{Field: "checkIn", Msg: "must be a YYYY-MM-DD date", Err: err}
	}
	out, err := domain.ParseDate(checkOut)
	if err != nil {
		return Stay{}, domain.ValidationError{Field: "checkOut", Msg: "must be a YYYY-MM-DD date", Err: err}
	}
	stay := Stay{CheckIn: in, CheckOut: out}
	if stay.Nights() < 1 {
		return Stay{}, domain.ValidationError{Msg: msgDatesOrder}
	}
	return stay, nil
}

// RoomView is a room with its gallery resolved against the hotel images.
type RoomView struct {
	models.Room
	Gallery []models.Image `json:"gallery"`
}

// HotelDetails is a hotel page. Rooms is filled when both dates were given;
// ScrollTo then tells the client to bring the room list into view.
type HotelDetails struct {
	Hotel      models.Hotel `json:"hotel"`
	CheckIn    string       `json:"checkIn,omitempty"`
	CheckOut   string       `json:"checkOut,omitempty"`
	Rooms      []RoomView   `json:"rooms,omitempty"`
	RoomsError string       `json:"roomsError,omitempty"`
	ScrollTo   string       `json:"scrollTo,omitempty"`
}

// CatalogService reads hotel inventory and room availability.
type CatalogService struct {
	Hotels repositories.HotelSource
	Rooms  RoomSearcher
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.Hotels.List(ctx)
}

func (s *CatalogService) Hotel(ctx context.Context, id string) (models.Hotel, error) {
	if strings.TrimSpace(id) == "" {
		return models.Hotel{}, domain.ValidationError{Field: "hotelId", Msg: "hotelId is required"}
	}
	return s.Hotels.Get(ctx, id)
}

func (s *CatalogService) SearchRooms(ctx context.Context, hotelID string, stay Stay) ([]models.Room, error) {
	if strings.TrimSpace(hotelID) == "" {
		return nil, domain.ValidationError{Field: "hotelId", Msg: "hotelId is required"}
	}
	return s.Rooms.Search(ctx, hotelID, stay.CheckIn.String(), stay.CheckOut.String())
}

// Availability validates the dates before searching.
func (s *CatalogService) Availability(ctx context.Context, hotelID, checkIn, checkOut string) ([]RoomView, error) {
	stay, err := ParseStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	hotel, err := s.Hotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.SearchRooms(ctx, hotelID, stay)
	if err != nil {
		return nil, err
	}
	return roomViews(hotel, rooms), nil
}

// Details loads a hotel and, when both dates are present, searches its rooms.
// A failed room search does not fail the page.
func (s *CatalogService) Details(ctx context.Context, hotelID, checkIn, checkOut string) (HotelDetails, error) {
	hotel, err := s.Hotel(ctx, hotelID)
	if err != nil {
		return HotelDetails{}, err
	}
	out := HotelDetails{Hotel: hotel, CheckIn: strings.TrimSpace(checkIn), CheckOut: strings.TrimSpace(checkOut)}
	if out.CheckIn == "" || out.CheckOut == "" {
		return out, nil
	}

	stay, err := ParseStay(out.CheckIn, out.CheckOut)
	if err == nil {
		var rooms []models.Room
		rooms, err = s.SearchRooms(ctx, hotelID, stay)
		if err == nil {
			out.Rooms = roomViews(hotel, rooms)
			out.ScrollTo = "rooms"
			return out, nil
		}
	}
	utils.LogWarn(utils.RequestIDFrom(ctx), "catalog", "auto_search_rooms", err)
	out.RoomsError = err.Error()
	return out, nil
}

// Warm refreshes the cached hotel list when the source supports it.
func (s *CatalogService) Warm(ctx context.Context) (int, error) {
	r, ok := s.Hotels.(interface {
		Refresh(ctx context.Context) (int, error)
	})
	if !ok {
		return 0, nil
	}
	return r.Refresh(ctx)
}

func roomViews(h models.Hotel, rooms []models.Room) []RoomView {
	out := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomView{Room: r, Gallery: h.RoomImages(r)})
	}
	return out
}
