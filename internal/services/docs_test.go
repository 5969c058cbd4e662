package services

import (
	"bytes"
	"testing"
	"time"

	"travelbooking/internal/domain/models"
)

func TestDocsServiceGeneratesBookingPDFs(t *testing.T) {
	loader := func(id int64) (bookingDocData, error) {
		return bookingDocData{
			BookingID:      id,
			ItemType:       models.ItemTypeTour,
			ItemName:       "Ha Long Bay 3D2N",
			Status:         models.BookingStatusConfirmed,
			PaymentMethod:  models.PaymentMethodMoMo,
			Subtotal:       3000000,
			DiscountCode:   "SUMMER10",
			DiscountAmount: 300000,
			Total:          2700000,
			BookedAt:       time.Now(),
			Participants: []models.Participant{
				validContact(),
				{FullName: "Nguyen Thi C", Role: models.RoleChild, Gender: "female", DateOfBirth: "2018-06-06"},
			},
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateETicket(42)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("e-ticket does not look like a PDF")
	}
	if filename != "ETICKET_42_Ha_Long_Bay_3D2N.pdf" {
		t.Fatalf("e-ticket filename = %q", filename)
	}

	invoice, invName, err := svc.GenerateInvoice(42)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if !bytes.HasPrefix(invoice, []byte("%PDF")) {
		t.Fatalf("invoice does not look like a PDF")
	}
	if invName != "INVOICE_42.pdf" {
		t.Fatalf("invoice filename = %q", invName)
	}
}
