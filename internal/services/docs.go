package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"travelbooking/internal/domain/models"
	"travelbooking/internal/repositories"
	"travelbooking/internal/utils"
)

// DocsService renders the booking PDFs: one e-ticket per participant
// and one invoice per booking.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
	Loader      func(int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID      int64
	ItemType       models.ItemType
	ItemName       string
	Status         models.BookingStatus
	PaymentMethod  models.PaymentMethod
	Subtotal       int64
	DiscountCode   string
	DiscountAmount int64
	Total          int64
	BookedAt       time.Time
	Participants   []models.Participant
}

func (s DocsService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s DocsService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(data)
}

func (s DocsService) loadBookingDocData(bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return bookingDocData{}, err
	}
	parts, err := s.BookingRepo.GetParticipants(bookingID)
	if err != nil {
		return bookingDocData{}, err
	}

	return bookingDocData{
		BookingID:      b.ID,
		ItemType:       b.ItemType,
		ItemName:       b.ItemName,
		Status:         b.Status,
		PaymentMethod:  b.PaymentMethod,
		Subtotal:       b.Subtotal,
		DiscountCode:   b.DiscountCode,
		DiscountAmount: b.DiscountAmount,
		Total:          b.Total,
		BookedAt:       b.CreatedAt,
		Participants:   parts,
	}, nil
}

func buildETicketPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking code : #%d", d.BookingID),
		fmt.Sprintf("Item         : %s (%s)", safeText(d.ItemName, "-"), d.ItemType),
		fmt.Sprintf("Status       : %s", d.Status),
		fmt.Sprintf("Booked at    : %s", d.BookedAt.Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Travellers:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range d.Participants {
		tag := ""
		if p.IsContact {
			tag = " (contact)"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s, %s%s", i+1, safeText(p.FullName, "-"), p.Role, tag))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this e-ticket together with a valid ID at check-in.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.BookingID, safeFilePart(d.ItemName))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d", d.BookingID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice no : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+utils.FormatDate(time.Now()))
	pdf.Ln(10)

	contact := contactOf(d.Participants)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safeText(contact.FullName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Phone : %s", safeText(contact.Phone, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	desc := fmt.Sprintf("1) %s (%s), %d traveller(s)", safeText(d.ItemName, "-"), d.ItemType, len(d.Participants))
	pdf.MultiCell(0, 6, desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Subtotal : "+utils.FormatVND(d.Subtotal))
	pdf.Ln(6)
	if d.DiscountAmount > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Discount : -%s (%s)", utils.FormatVND(d.DiscountAmount), safeText(d.DiscountCode, "-")))
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatVND(d.Total))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Paid by %s.", d.PaymentMethod), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d.pdf", d.BookingID)
	return buf.Bytes(), filename, nil
}

func contactOf(parts []models.Participant) models.Participant {
	for _, p := range parts {
		if p.IsContact {
			return p
		}
	}
	if len(parts) > 0 {
		return parts[0]
	}
	return models.Participant{}
}

func safeText(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "booking"
	}
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "booking"
	}
	return b.String()
}
