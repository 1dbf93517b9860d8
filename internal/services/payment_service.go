package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/utils"
)

type PaymentGateway interface {
	Validate(ctx context.Context, merchantTxnID string) (models.ValidationResult, error)
	Status(ctx context.Context, merchantTxnID string) (models.PaymentRecord, error)
}

type ValidationOutcome string

const (
	OutcomeSuccess ValidationOutcome = "success"
	OutcomeFailed  ValidationOutcome = "failed"
)

const (
	MsgTxnRequired    = "Merchant Transaction ID is required"
	MsgReceiptFailure = "Something went wrong while fetching booking details"
)

// Action is a follow-up the client can offer. Method is empty for plain navigation.
type Action struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

// PaymentValidation is the outcome page shown after the gateway returns.
type PaymentValidation struct {
	MerchantTransactionID string                   `json:"merchantTransactionId"`
	Outcome               ValidationOutcome        `json:"outcome"`
	Title                 string                   `json:"title"`
	Message               string                   `json:"message"`
	Result                *models.ValidationResult `json:"result,omitempty"`
	Next                  Action                   `json:"next"`
}

// StatusPresentation is how a booking status is shown.
type StatusPresentation struct {
	Status      models.BookingStatus `json:"status"`
	Icon        string               `json:"icon"`
	Color       string               `json:"color"`
	Background  string               `json:"background"`
	Title       string               `json:"title"`
	Subtitle    string               `json:"subtitle"`
	Badge       string               `json:"badge"`
	Refreshable bool                 `json:"refreshable"`
}

// PresentStatus maps a status to its presentation. It depends on nothing but
// its argument, so repeated calls agree.
func PresentStatus(status models.BookingStatus) StatusPresentation {
	p := StatusPresentation{Status: status}
	switch status {
	case models.StatusBooked:
		p.Icon, p.Color, p.Background = "CheckCircle", "text-green-600", "bg-green-100"
		p.Title, p.Subtitle = "Payment Successful! 🎉", "Your booking has been confirmed"
		p.Badge = "Payment Completed"
	case models.StatusPending:
		p.Icon, p.Color, p.Background = "Clock", "text-yellow-600", "bg-yellow-100"
		p.Title, p.Subtitle = "Payment Pending ⏳", "Your payment is being processed"
		p.Badge = "Payment Pending"
		p.Refreshable = true
	case models.StatusFailed:
		p.Icon, p.Color, p.Background = "XCircle", "text-red-600", "bg-red-100"
		p.Title, p.Subtitle = "Payment Failed ❌", "There was an issue with your payment"
		p.Badge = "Payment Failed"
	default:
		p.Icon, p.Color, p.Background = "AlertCircle", "text-gray-600", "bg-gray-100"
		p.Title, p.Subtitle = "Unknown Status", "Please contact support"
		p.Badge = "Unknown Status"
	}
	return p
}

// Receipt is the booking status page for one merchant transaction.
type Receipt struct {
	MerchantTransactionID string               `json:"merchantTransactionId"`
	Record                models.PaymentRecord `json:"record"`
	Presentation          StatusPresentation   `json:"presentation"`
	Actions               []Action             `json:"actions"`
	Attempts              int                  `json:"attempts,omitempty"`
}

// ErrorPanel is the single error view every receipt failure collapses into.
type ErrorPanel struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  Action `json:"action"`
}

func statusPath(txn string) string {
	return "/api/payments/status/" + url.PathEscape(txn)
}

// ReceiptErrorPanel builds the error view for a failed receipt lookup.
func ReceiptErrorPanel(txn string, err error) ErrorPanel {
	msg := MsgReceiptFailure
	if strings.TrimSpace(txn) == "" {
		msg = MsgTxnRequired
	} else if m, ok := domain.RejectionMessage(err); ok {
		msg = m
	}
	return ErrorPanel{
		Title:   "Oops! Something went wrong",
		Message: msg,
		Action:  Action{Label: "Try Again", Href: statusPath(txn), Method: "GET"},
	}
}

type PaymentService struct {
	Gateway PaymentGateway
	Poll    RetryPolicy
	// Sleep waits between polls. Nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// ValidatePayment is a single attempt. A missing id, any error and a false
// status all read as failed.
func (s *PaymentService) ValidatePayment(ctx context.Context, txn string) PaymentValidation {
	txn = strings.TrimSpace(txn)
	failed := PaymentValidation{
		MerchantTransactionID: txn,
		Outcome:               OutcomeFailed,
		Title:                 "Payment Failed",
		Message:               "There was an issue processing your payment. Please try again or contact support.",
		Next:                  Action{Label: "Return Home", Href: "/"},
	}
	if txn == "" {
		return failed
	}

	res, err := s.Gateway.Validate(ctx, txn)
	if err != nil {
		utils.LogWarn(utils.RequestIDFrom(ctx), "payment", "validate", err)
		return failed
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "payment", "validate", "txn="+txn+" outcome=success")
	return PaymentValidation{
		MerchantTransactionID: txn,
		Outcome:               OutcomeSuccess,
		Title:                 "Payment Successful!",
		Message:               "Your booking has been confirmed. You will receive a confirmation email shortly.",
		Result:                &res,
		Next:                  Action{Label: "View My Bookings", Href: "/my-bookings"},
	}
}

// Receipt looks the status up once.
func (s *PaymentService) Receipt(ctx context.Context, txn string) (Receipt, error) {
	txn = strings.TrimSpace(txn)
	if txn == "" {
		return Receipt{}, domain.ValidationError{Field: "merchantTransactionId", Msg: MsgTxnRequired}
	}
	rec, err := s.Gateway.Status(ctx, txn)
	if err != nil {
		return Receipt{}, err
	}
	return buildReceipt(txn, rec, 1), nil
}

// Refresh re-issues the lookup for the same transaction.
func (s *PaymentService) Refresh(ctx context.Context, txn string) (Receipt, error) {
	return s.Receipt(ctx, txn)
}

// AwaitStatus polls while the status is pending, backing off between attempts.
// It returns the last receipt seen, which may still be pending once attempts run out.
// Transport failures are retried; any other error ends the wait.
func (s *PaymentService) AwaitStatus(ctx context.Context, txn string) (Receipt, error) {
	txn = strings.TrimSpace(txn)
	if txn == "" {
		return Receipt{}, domain.ValidationError{Field: "merchantTransactionId", Msg: MsgTxnRequired}
	}
	policy := s.Poll
	if policy.MaxAttempts < 1 {
		policy = NewRetryPolicy(1, time.Second, 0)
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var (
		last    Receipt
		lastErr error
		seen    bool
	)
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		rec, err := s.Gateway.Status(ctx, txn)
		switch {
		case err == nil:
			last, lastErr, seen = buildReceipt(txn, rec, attempt), nil, true
			if rec.Status != models.StatusPending {
				return last, nil
			}
		case domain.IsUpstream(err):
			lastErr = err
		default:
			return Receipt{}, err
		}
		if attempt == policy.MaxAttempts {
			break
		}
		if err := sleep(ctx, policy.Backoff(attempt)); err != nil {
			if seen {
				return last, nil
			}
			return Receipt{}, err
		}
	}
	if seen {
		return last, nil
	}
	return Receipt{}, lastErr
}

func buildReceipt(txn string, rec models.PaymentRecord, attempts int) Receipt {
	p := PresentStatus(rec.Status)
	actions := []Action{}
	switch {
	case p.Refreshable:
		actions = append(actions, Action{Label: "Refresh Status", Href: statusPath(txn), Method: "GET"})
	case rec.Status == models.StatusBooked:
		actions = append(actions,
			Action{Label: "Download Receipt", Href: statusPath(txn) + "/receipt.pdf", Method: "GET"},
			Action{Label: "View My Bookings", Href: "/my-bookings"},
		)
	default:
		actions = append(actions, Action{Label: "Back to Home", Href: "/"})
	}
	return Receipt{
		MerchantTransactionID: txn,
		Record:                rec,
		Presentation:          p,
		Actions:               actions,
		Attempts:              attempts,
	}
}
