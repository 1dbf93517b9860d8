package services

import (
	"context"
	"encoding/json"
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/repositories"
	"hotelbook/internal/utils"

	"github.com/google/uuid"
)

// Selection is the set of rooms a guest picked from one availability search.
// Rooms is the search-time snapshot; quantities never exceed its availableUnits.
type Selection struct {
	ID         string         `json:"id"`
	HotelID    string         `json:"hotelId"`
	HotelName  string         `json:"hotelName,omitempty"`
	CheckIn    domain.Date    `json:"checkIn"`
	CheckOut   domain.Date    `json:"checkOut"`
	Rooms      []models.Room  `json:"rooms"`
	Quantities map[string]int `json:"quantities"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type SelectedRoom struct {
	Room      models.Room `json:"room"`
	Quantity  int         `json:"quantity"`
	LineTotal float64     `json:"lineTotal"`
}

func (s Selection) availableUnits(roomID string) int {
	for _, r := range s.Rooms {
		if r.ID == roomID {
			if r.AvailableUnits < 0 {
				return 0
			}
			return r.AvailableUnits
		}
	}
	return 0
}

// SetQuantity clamps qty to [0, availableUnits] and returns the stored value.
// Zero removes the entry.
func (s *Selection) SetQuantity(roomID string, qty int) int {
	if s.Quantities == nil {
		s.Quantities = map[string]int{}
	}
	if limit := s.availableUnits(roomID); qty > limit {
		qty = limit
	}
	if qty <= 0 {
		delete(s.Quantities, roomID)
		return 0
	}
	s.Quantities[roomID] = qty
	return qty
}

// UpdateQuantity moves a room's quantity by delta, clamped the same way as SetQuantity.
func (s *Selection) UpdateQuantity(roomID string, delta int) int {
	return s.SetQuantity(roomID, s.Quantities[roomID]+delta)
}

func (s *Selection) Remove(roomID string) {
	delete(s.Quantities, roomID)
}

func (s Selection) TotalSelectedRooms() int {
	n := 0
	for _, q := range s.Quantities {
		n += q
	}
	return n
}

// TotalPrice is the per-night price of the selection. Nights are applied at checkout.
func (s Selection) TotalPrice() float64 {
	total := 0.0
	for _, r := range s.Rooms {
		total += r.Price * float64(s.Quantities[r.ID])
	}
	return utils.Round2(total)
}

// Items lists the selected rooms in search order.
func (s Selection) Items() []SelectedRoom {
	out := []SelectedRoom{}
	for _, r := range s.Rooms {
		q := s.Quantities[r.ID]
		if q <= 0 {
			continue
		}
		out = append(out, SelectedRoom{Room: r, Quantity: q, LineTotal: utils.Round2(r.Price * float64(q))})
	}
	return out
}

// RoomIDs repeats each room id once per selected unit.
func (s Selection) RoomIDs() []string {
	out := []string{}
	for _, it := range s.Items() {
		for i := 0; i < it.Quantity; i++ {
			out = append(out, it.Room.ID)
		}
	}
	return out
}

// SelectionSummary is the view of a selection returned to clients.
type SelectionSummary struct {
	Selection
	Items              []SelectedRoom `json:"items"`
	TotalSelectedRooms int            `json:"totalSelectedRooms"`
	TotalPrice         float64        `json:"totalPrice"`
	Nights             int            `json:"nights"`
}

func (s Selection) Summary() SelectionSummary {
	return SelectionSummary{
		Selection:          s,
		Items:              s.Items(),
		TotalSelectedRooms: s.TotalSelectedRooms(),
		TotalPrice:         s.TotalPrice(),
		Nights:             domain.Nights(s.CheckIn, s.CheckOut),
	}
}

type RoomSearcher interface {
	Search(ctx context.Context, hotelID, startDate, endDate string) ([]models.Room, error)
}

// SelectionService keeps selections in the session store, one per search.
type SelectionService struct {
	Catalog *CatalogService
	Store   repositories.SessionStore
	TTL     time.Duration
	Now     func() time.Time

	locks keyedMutex
}

func (s *SelectionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create searches availability for the stay and opens an empty selection over the result.
func (s *SelectionService) Create(ctx context.Context, owner, hotelID, checkIn, checkOut string) (Selection, error) {
	stay, err := ParseStay(checkIn, checkOut)
	if err != nil {
		return Selection{}, err
	}
	rooms, err := s.Catalog.SearchRooms(ctx, hotelID, stay)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{
		ID:         uuid.NewString(),
		HotelID:    hotelID,
		CheckIn:    stay.CheckIn,
		CheckOut:   stay.CheckOut,
		Rooms:      rooms,
		Quantities: map[string]int{},
		CreatedAt:  s.now().UTC(),
	}
	if h, err := s.Catalog.Hotel(ctx, hotelID); err == nil {
		sel.HotelName = h.HotelName
	}
	if err := s.save(ctx, owner, sel); err != nil {
		return Selection{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "selection", "create", "selection_id="+sel.ID+" hotel_id="+hotelID)
	return sel, nil
}

func (s *SelectionService) Get(ctx context.Context, owner, id string) (Selection, error) {
	b, err := s.Store.Load(ctx, repositories.KindSelection, id, owner)
	if err != nil {
		return Selection{}, err
	}
	var sel Selection
	if err := json.Unmarshal(b, &sel); err != nil {
		return Selection{}, domain.InternalError{Msg: "decode selection", Err: err}
	}
	if sel.Quantities == nil {
		sel.Quantities = map[string]int{}
	}
	return sel, nil
}

// Adjust applies a quantity delta; Set stores an absolute quantity.
func (s *SelectionService) Adjust(ctx context.Context, owner, id, roomID string, delta int) (Selection, error) {
	return s.mutate(ctx, owner, id, func(sel *Selection) { sel.UpdateQuantity(roomID, delta) })
}

func (s *SelectionService) Set(ctx context.Context, owner, id, roomID string, qty int) (Selection, error) {
	return s.mutate(ctx, owner, id, func(sel *Selection) { sel.SetQuantity(roomID, qty) })
}

func (s *SelectionService) Remove(ctx context.Context, owner, id, roomID string) (Selection, error) {
	return s.mutate(ctx, owner, id, func(sel *Selection) { sel.Remove(roomID) })
}

func (s *SelectionService) mutate(ctx context.Context, owner, id string, fn func(*Selection)) (Selection, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sel, err := s.Get(ctx, owner, id)
	if err != nil {
		return Selection{}, err
	}
	fn(&sel)
	if err := s.save(ctx, owner, sel); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

func (s *SelectionService) save(ctx context.Context, owner string, sel Selection) error {
	b, err := json.Marshal(sel)
	if err != nil {
		return domain.InternalError{Msg: "encode selection", Err: err}
	}
	return s.Store.Save(ctx, repositories.KindSelection, sel.ID, owner, b, s.TTL)
}
