package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"hotelbook/internal/domain"
	"hotelbook/internal/domain/models"
	"hotelbook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the booking receipt PDF of a paid transaction.
type DocsService struct {
	Payments PaymentGateway
	SiteName string
	Now      func() time.Time
	// Loader replaces the status lookup in tests.
	Loader func(ctx context.Context, txn string) (models.PaymentRecord, error)
}

func (s DocsService) GenerateReceipt(ctx context.Context, txn string) ([]byte, string, error) {
	txn = strings.TrimSpace(txn)
	if txn == "" {
		return nil, "", domain.ValidationError{Field: "merchantTransactionId", Msg: MsgTxnRequired}
	}
	rec, err := s.load(ctx, txn)
	if err != nil {
		return nil, "", err
	}
	if rec.Status != models.StatusBooked && rec.Status != models.StatusCheckIn && rec.Status != models.StatusCheckOut {
		return nil, "", domain.ConflictError{Resource: "receipt", Msg: "payment is not completed"}
	}
	if rec.MerchantTransactionID == "" {
		rec.MerchantTransactionID = txn
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "docs", "generate_receipt", "txn="+txn)

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return buildReceiptPDF(rec, utils.Safe(s.SiteName, "HotelBook"), now)
}

func (s DocsService) load(ctx context.Context, txn string) (models.PaymentRecord, error) {
	if s.Loader != nil {
		return s.Loader(ctx, txn)
	}
	return s.Payments.Status(ctx, txn)
}

func buildReceiptPDF(rec models.PaymentRecord, siteName string, issuedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(siteName+" Booking Receipt"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(strings.ToUpper(siteName)+" - BOOKING RECEIPT"))
	pdf.Ln(12)

	b := rec.Booking
	if b == nil {
		b = &models.StatusBooking{}
	}
	guest := models.GuestInfo{}
	if len(b.UserInfo) > 0 {
		guest = b.UserInfo[0]
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID     : %s", utils.Safe(b.BookingID, "-")),
		fmt.Sprintf("Transaction ID : %s", utils.Safe(rec.MerchantTransactionID, "-")),
		fmt.Sprintf("Status         : %s", StatusLabel(rec.Status)),
		fmt.Sprintf("Issued         : %s", issuedAt.Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Guest")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, s := range []string{
		fmt.Sprintf("Name  : %s", utils.Safe(guest.Name, "-")),
		fmt.Sprintf("Phone : %s", utils.Safe(guest.Phone, "-")),
		fmt.Sprintf("Email : %s", utils.Safe(guest.Email, "-")),
	} {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Stay")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, s := range []string{
		fmt.Sprintf("Check-in  : %s", utils.Safe(utils.DisplayDate(b.CheckInDate), "-")),
		fmt.Sprintf("Check-out : %s", utils.Safe(utils.DisplayDate(b.CheckOutDate), "-")),
		fmt.Sprintf("Nights    : %d", b.StayDuration),
		fmt.Sprintf("Rooms     : %s", utils.Safe(strings.Join(b.RoomNo, ", "), "-")),
		fmt.Sprintf("Guests    : %d adult(s), %d child(ren)", b.Guests.Adults, b.Guests.Children),
	} {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	total := rec.TotalAmount
	if total == 0 {
		total = b.TotalAmount
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Payment")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, s := range []string{
		fmt.Sprintf("Method   : %s", utils.Safe(rec.PaymentMethod, "-")),
		fmt.Sprintf("Tax      : %s", utils.FormatINR(rec.Tax)),
		fmt.Sprintf("Discount : %s", utils.FormatINR(rec.DiscountAmount)),
		fmt.Sprintf("Paid     : %s", utils.FormatINR(rec.AmountPaid)),
		fmt.Sprintf("Pending  : %s", utils.FormatINR(rec.PendingAmount)),
	} {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 9, tr("Total    : "+utils.FormatINR(total)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this receipt with a photo ID at check-in.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(utils.Safe(b.BookingID, rec.MerchantTransactionID)))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
