package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// The backend populates references on some endpoints and sends bare ids on
// others. The types below accept both forms.

// refKind reports whether b is null, a JSON string or a JSON object.
func refKind(b []byte) byte {
	t := bytes.TrimSpace(b)
	if len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return 0
	}
	return t[0]
}

// BookingHotel is the hotel of a booking, populated or by id.
type BookingHotel struct {
	ID        string `json:"_id,omitempty"`
	HotelName string `json:"hotelName,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
}

func (h *BookingHotel) UnmarshalJSON(b []byte) error {
	switch refKind(b) {
	case 0:
		*h = BookingHotel{}
		return nil
	case '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*h = BookingHotel{ID: strings.TrimSpace(id)}
		return nil
	case '{':
		type plain BookingHotel
		var p plain
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		*h = BookingHotel(p)
		return nil
	}
	return errors.New("hotel reference must be an id or an object")
}

// BookingRoom is one booked room, populated or by id.
type BookingRoom struct {
	ID       string `json:"_id,omitempty"`
	RoomType string `json:"roomType,omitempty"`
}

func (r *BookingRoom) UnmarshalJSON(b []byte) error {
	switch refKind(b) {
	case 0:
		*r = BookingRoom{}
		return nil
	case '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = BookingRoom{ID: strings.TrimSpace(id)}
		return nil
	case '{':
		type plain BookingRoom
		var p plain
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		*r = BookingRoom(p)
		return nil
	}
	return errors.New("room reference must be an id or an object")
}

// BookingRef is a booking referenced from a payment answer. It encodes as
// the human booking id.
type BookingRef struct {
	ID        string
	BookingID string
}

func (r *BookingRef) UnmarshalJSON(b []byte) error {
	switch refKind(b) {
	case 0:
		*r = BookingRef{}
		return nil
	case '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = BookingRef{BookingID: strings.TrimSpace(id)}
		return nil
	case '{':
		var raw struct {
			ID        string `json:"_id"`
			BookingID string `json:"bookingId"`
		}
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*r = BookingRef{ID: raw.ID, BookingID: raw.BookingID}
		return nil
	}
	return errors.New("booking reference must be an id or an object")
}

func (r BookingRef) MarshalJSON() ([]byte, error) {
	if r.BookingID == "" {
		return json.Marshal(r.ID)
	}
	return json.Marshal(r.BookingID)
}

// RoomNumbers are room numbers sent as strings or numbers.
type RoomNumbers []string

func (n *RoomNumbers) UnmarshalJSON(b []byte) error {
	if refKind(b) == 0 {
		*n = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(RoomNumbers, 0, len(raw))
	for _, item := range raw {
		switch refKind(item) {
		case 0:
			continue
		case '"':
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			out = append(out, s)
		default:
			var num json.Number
			if err := json.Unmarshal(item, &num); err != nil {
				return err
			}
			if _, err := strconv.ParseFloat(num.String(), 64); err != nil {
				return err
			}
			out = append(out, num.String())
		}
	}
	*n = out
	return nil
}
