package models

// Room is one bookable room type returned by the availability search.
// AvailableUnits is the snapshot taken at search time and bounds the selection.
type Room struct {
	ID              string   `json:"_id"`
	RoomType        string   `json:"roomType"`
	Price           float64  `json:"price"`
	AvailableUnits  int      `json:"availableUnits"`
	TotalAvailable  int      `json:"totalAvailable"`
	CurrentlyBooked int      `json:"currentlyBooked"`
	MaxCapacity     int      `json:"maxcapacity"`
	Amenities       []string `json:"amenities"`
	Images          []Image  `json:"images,omitempty"`
}
