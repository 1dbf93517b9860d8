package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/repositories"
	"hotelbook/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CheckoutState string

const (
	StateDetails    CheckoutState = "details"
	StateProcessing CheckoutState = "processing"
	StatePayment    CheckoutState = "payment"
)

const (
	MsgAcceptTerms   = "Please accept the terms and conditions to proceed."
	MsgBookingFailed = "Booking failed. Please try again."
	msgNoSelection   = "Please select at least one room before checking out."
)

// GuestDetails is the checkout form.
type GuestDetails struct {
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Age             int    `json:"age,omitempty" validate:"gte=0,lte=120"`
	Adults          int    `json:"adults,omitempty" validate:"gte=0"`
	Children        int    `json:"children,omitempty" validate:"gte=0"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	PromoCode       string `json:"promoCode,omitempty"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}

func (g GuestDetails) trimmed() GuestDetails {
	g.Name = utils.NormalizeSpace(g.Name)
	g.Phone = strings.TrimSpace(g.Phone)
	g.Email = strings.TrimSpace(g.Email)
	g.SpecialRequests = strings.TrimSpace(g.SpecialRequests)
	g.PromoCode = strings.ToUpper(strings.TrimSpace(g.PromoCode))
	return g
}

// Checkout is one pass through details, processing and payment.
// Payment is terminal; RedirectURL is set only there.
type Checkout struct {
	ID                    string         `json:"id"`
	SelectionID           string         `json:"selectionId"`
	State                 CheckoutState  `json:"state"`
	HotelID               string         `json:"hotelId"`
	HotelName             string         `json:"hotelName,omitempty"`
	CheckIn               domain.Date    `json:"checkIn"`
	CheckOut              domain.Date    `json:"checkOut"`
	Items                 []SelectedRoom `json:"items"`
	Quote                 Quote          `json:"quote"`
	Guest                 *GuestDetails  `json:"guest,omitempty"`
	Message               string         `json:"message,omitempty"`
	RedirectURL           string         `json:"redirectUrl,omitempty"`
	MerchantTransactionID string         `json:"merchantTransactionId,omitempty"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

type BookingCreator interface {
	Create(ctx context.Context, req models.CreateBookingRequest) (models.RedirectPayload, error)
}

// CheckoutService drives the checkout state machine. State lives in the
// session store; transitions on one checkout are serialized.
type CheckoutService struct {
	Selections *SelectionService
	Bookings   BookingCreator
	Store      repositories.SessionStore
	Pricer     Pricer
	TTL        time.Duration
	Validate   *validator.Validate
	Now        func() time.Time

	locks keyedMutex
}

func (s *CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Start opens a checkout over a non-empty selection. Without one the caller
// is sent back to the hotel list.
func (s *CheckoutService) Start(ctx context.Context, owner, selectionID string) (Checkout, error) {
	sel, err := s.Selections.Get(ctx, owner, selectionID)
	if err != nil && !domain.IsNotFound(err) {
		return Checkout{}, err
	}
	if err != nil || sel.TotalSelectedRooms() == 0 {
		return Checkout{}, domain.ConflictError{Resource: "checkout", Msg: msgNoSelection, Redirect: "/hotels", Err: err}
	}
	quote, err := s.Pricer.Quote(sel, "")
	if err != nil {
		return Checkout{}, err
	}
	now := s.now()
	co := Checkout{
		ID:          uuid.NewString(),
		SelectionID: sel.ID,
		State:       StateDetails,
		HotelID:     sel.HotelID,
		HotelName:   sel.HotelName,
		CheckIn:     sel.CheckIn,
		CheckOut:    sel.CheckOut,
		Items:       sel.Items(),
		Quote:       quote,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.save(ctx, owner, co); err != nil {
		return Checkout{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "checkout", "start", "checkout_id="+co.ID+" selection_id="+sel.ID)
	return co, nil
}

func (s *CheckoutService) Get(ctx context.Context, owner, id string) (Checkout, error) {
	b, err := s.Store.Load(ctx, repositories.KindCheckout, id, owner)
	if err != nil {
		return Checkout{}, err
	}
	var co Checkout
	if err := json.Unmarshal(b, &co); err != nil {
		return Checkout{}, domain.InternalError{Msg: "decode checkout", Err: err}
	}
	return co, nil
}

// Submit validates the guest form and creates the booking. The returned
// Checkout is always the state after the call, also when err is non-nil.
func (s *CheckoutService) Submit(ctx context.Context, owner, id string, guest GuestDetails) (Checkout, error) {
	co, req, err := s.beginSubmit(ctx, owner, id, guest.trimmed())
	if err != nil || req == nil {
		return co, err
	}

	rid := utils.RequestIDFrom(ctx)
	utils.LogEvent(rid, "checkout", "submit", "checkout_id="+co.ID+" phone="+utils.PhoneDigest(guest.Phone))
	payload, callErr := s.Bookings.Create(ctx, *req)

	// The outcome must be recorded even when the caller has gone away.
	return s.finishSubmit(context.WithoutCancel(ctx), owner, id, payload, callErr)
}

func (s *CheckoutService) beginSubmit(ctx context.Context, owner, id string, guest GuestDetails) (Checkout, *models.CreateBookingRequest, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	co, err := s.Get(ctx, owner, id)
	if err != nil {
		return Checkout{}, nil, err
	}
	switch co.State {
	case StateProcessing:
		return co, nil, domain.ConflictError{Resource: "checkout", Msg: "booking is already being processed"}
	case StatePayment:
		return co, nil, domain.ConflictError{Resource: "checkout", Msg: "booking already created; continue to payment"}
	}

	co.Guest = &guest
	if !guest.AgreeToTerms {
		return s.stayInDetails(ctx, owner, co, domain.ValidationError{Msg: MsgAcceptTerms})
	}
	if err := validateStruct(s.Validate, guest); err != nil {
		return s.stayInDetails(ctx, owner, co, err)
	}

	sel := Selection{HotelID: co.HotelID, CheckIn: co.CheckIn, CheckOut: co.CheckOut, Quantities: map[string]int{}}
	for _, it := range co.Items {
		sel.Rooms = append(sel.Rooms, it.Room)
		sel.Quantities[it.Room.ID] = it.Quantity
	}
	quote, err := s.Pricer.Quote(sel, guest.PromoCode)
	if err != nil {
		return s.stayInDetails(ctx, owner, co, err)
	}
	co.Quote = quote

	adults := guest.Adults
	if adults < 1 {
		adults = 1
	}
	req := models.CreateBookingRequest{
		HotelID:      co.HotelID,
		RoomID:       sel.RoomIDs(),
		CheckInDate:  co.CheckIn.String(),
		CheckOutDate: co.CheckOut.String(),
		UserInfo: []models.GuestInfo{{
			Name:  guest.Name,
			Phone: guest.Phone,
			Email: guest.Email,
			Age:   guest.Age,
		}},
		Guests:          models.Guests{Adults: adults, Children: guest.Children},
		SpecialRequests: guest.SpecialRequests,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		Discount:        quote.Discount,
		TotalAmount:     quote.Total,
		PromoCode:       quote.PromoCode,
	}

	co.State = StateProcessing
	co.Message = ""
	co.UpdatedAt = s.now()
	if err := s.save(ctx, owner, co); err != nil {
		return Checkout{}, nil, err
	}
	return co, &req, nil
}

func (s *CheckoutService) stayInDetails(ctx context.Context, owner string, co Checkout, cause error) (Checkout, *models.CreateBookingRequest, error) {
	co.State = StateDetails
	co.Message = cause.Error()
	co.UpdatedAt = s.now()
	if err := s.save(ctx, owner, co); err != nil {
		return Checkout{}, nil, err
	}
	return co, nil, cause
}

func (s *CheckoutService) finishSubmit(ctx context.Context, owner, id string, payload models.RedirectPayload, callErr error) (Checkout, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	co, err := s.Get(ctx, owner, id)
	if err != nil {
		return Checkout{}, err
	}
	co.UpdatedAt = s.now()
	rid := utils.RequestIDFrom(ctx)

	if callErr != nil {
		msg, ok := domain.RejectionMessage(callErr)
		if !ok {
			msg = MsgBookingFailed
		}
		co.State = StateDetails
		co.Message = msg
		utils.LogWarn(rid, "checkout", "create_booking", callErr)
		if err := s.save(ctx, owner, co); err != nil {
			return Checkout{}, err
		}
		return co, domain.RejectedError{Op: "create booking", Msg: msg}
	}

	co.State = StatePayment
	co.Message = ""
	co.RedirectURL = payload.URL
	co.MerchantTransactionID = payload.MerchantTransactionID
	if co.MerchantTransactionID == "" {
		co.MerchantTransactionID = "HB-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if err := s.save(ctx, owner, co); err != nil {
		return Checkout{}, err
	}
	if err := s.Store.Delete(ctx, repositories.KindSelection, co.SelectionID); err != nil {
		utils.LogWarn(rid, "checkout", "clear_selection", err)
	}
	utils.LogEvent(rid, "checkout", "payment_ready", "checkout_id="+co.ID+" txn="+co.MerchantTransactionID)
	return co, nil
}

// Redirect returns the payment gateway URL. Only valid once the booking exists.
func (s *CheckoutService) Redirect(ctx context.Context, owner, id string) (string, error) {
	co, err := s.Get(ctx, owner, id)
	if err != nil {
		return "", err
	}
	if co.State != StatePayment || co.RedirectURL == "" {
		return "", domain.ConflictError{Resource: "checkout", Msg: "payment is not ready yet"}
	}
	return co.RedirectURL, nil
}

func (s *CheckoutService) save(ctx context.Context, owner string, co Checkout) error {
	b, err := json.Marshal(co)
	if err != nil {
		return domain.InternalError{Msg: "encode checkout", Err: err}
	}
	return s.Store.Save(ctx, repositories.KindCheckout, co.ID, owner, b, s.TTL)
}
