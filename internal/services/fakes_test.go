package services

import (
	"context"
	"sync"
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/repositories"
)

type fakeHotels struct {
	ListFn func(ctx context.Context) ([]models.Hotel, error)
	GetFn  func(ctx context.Context, id string) (models.Hotel, error)
}

func (f fakeHotels) List(ctx context.Context) ([]models.Hotel, error) { return f.ListFn(ctx) }

func (f fakeHotels) Get(ctx context.Context, id string) (models.Hotel, error) {
	if f.GetFn == nil {
		return models.Hotel{ID: id, HotelName: "Sea View"}, nil
	}
	return f.GetFn(ctx, id)
}

type fakeRooms struct {
	mu    sync.Mutex
	calls int
	Fn    func(ctx context.Context, hotelID, start, end string) ([]models.Room, error)
}

func (f *fakeRooms) Search(ctx context.Context, hotelID, start, end string) ([]models.Room, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.Fn(ctx, hotelID, start, end)
}

type fakeBookings struct {
	mu     sync.Mutex
	calls  int
	last   models.CreateBookingRequest
	Fn     func(ctx context.Context, req models.CreateBookingRequest) (models.RedirectPayload, error)
	ByFn   func(ctx context.Context, phone string) ([]models.Booking, error)
	phones []string
}

func (f *fakeBookings) Create(ctx context.Context, req models.CreateBookingRequest) (models.RedirectPayload, error) {
	f.mu.Lock()
	f.calls++
	f.last = req
	f.mu.Unlock()
	return f.Fn(ctx, req)
}

func (f *fakeBookings) ByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	f.phones = append(f.phones, phone)
	return f.ByFn(ctx, phone)
}

type fakeGateway struct {
	mu        sync.Mutex
	statusTxn []string
	ValidFn   func(ctx context.Context, txn string) (models.ValidationResult, error)
	StatusFn  func(ctx context.Context, txn string) (models.PaymentRecord, error)
}

func (f *fakeGateway) Validate(ctx context.Context, txn string) (models.ValidationResult, error) {
	return f.ValidFn(ctx, txn)
}

func (f *fakeGateway) Status(ctx context.Context, txn string) (models.PaymentRecord, error) {
	f.mu.Lock()
	f.statusTxn = append(f.statusTxn, txn)
	f.mu.Unlock()
	return f.StatusFn(ctx, txn)
}

func deluxeRoom() models.Room {
	return models.Room{ID: "r1", RoomType: "Deluxe", Price: 1000, AvailableUnits: 2, TotalAvailable: 5, CurrentlyBooked: 3, MaxCapacity: 2}
}

func suiteRoom() models.Room {
	return models.Room{ID: "r2", RoomType: "Suite", Price: 2500, AvailableUnits: 1, MaxCapacity: 4}
}

type fixture struct {
	store      *repositories.MemorySessionStore
	rooms      *fakeRooms
	bookings   *fakeBookings
	selections *SelectionService
	checkout   *CheckoutService
}

func newFixture(rooms ...models.Room) *fixture {
	store := repositories.NewMemorySessionStore()
	fr := &fakeRooms{Fn: func(context.Context, string, string, string) ([]models.Room, error) { return rooms, nil }}
	catalog := &CatalogService{Hotels: fakeHotels{}, Rooms: fr}
	sel := &SelectionService{Catalog: catalog, Store: store, TTL: time.Hour}
	fb := &fakeBookings{Fn: func(context.Context, models.CreateBookingRequest) (models.RedirectPayload, error) {
		return models.RedirectPayload{}, domain.UpstreamError{Op: "create booking"}
	}}
	co := &CheckoutService{Selections: sel, Bookings: fb, Store: store, Pricer: Pricer{Tax: TaxNone}, TTL: time.Hour, Validate: NewValidator()}
	return &fixture{store: store, rooms: fr, bookings: fb, selections: sel, checkout: co}
}
