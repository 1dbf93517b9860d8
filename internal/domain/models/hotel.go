package models

// Image is a gallery entry. RoomType is set on room images only.
type Image struct {
	ID       string `json:"_id,omitempty"`
	URL      string `json:"url"`
	Caption  string `json:"caption,omitempty"`
	RoomType string `json:"roomType,omitempty"`
}

type HotelImages struct {
	Hotel      []Image `json:"hotel"`
	Rooms      []Image `json:"rooms"`
	Facilities []Image `json:"facilities"`
}

type HotelPolicies struct {
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	SmokingPolicy string `json:"smokingPolicy"`
	PetPolicy     string `json:"petPolicy"`
}

// Hotel mirrors the backend inventory record.
type Hotel struct {
	ID                     string        `json:"_id"`
	HotelName              string        `json:"hotelName"`
	PropertyType           string        `json:"propertyType"`
	Description            string        `json:"description"`
	StarRating             float64       `json:"starRating"`
	Address                string        `json:"address"`
	City                   string        `json:"city"`
	State                  string        `json:"state"`
	PostalCode             string        `json:"postalCode"`
	ContactName            string        `json:"contactName"`
	Email                  string        `json:"email"`
	Phone                  string        `json:"phone"`
	Website                string        `json:"website"`
	Facilities             []string      `json:"facilities"`
	Policies               HotelPolicies `json:"policies"`
	AcceptedPaymentMethods []string      `json:"acceptedPaymentMethods"`
	Images                 HotelImages   `json:"images"`
}

// RoomImages returns the gallery for a room: its own images when it has any,
// otherwise the hotel's room images tagged with the same room type.
func (h Hotel) RoomImages(r Room) []Image {
	if len(r.Images) > 0 {
		return r.Images
	}
	out := []Image{}
	for _, img := range h.Images.Rooms {
		if img.RoomType != "" && img.RoomType == r.RoomType {
			out = append(out, img)
		}
	}
	return out
}
