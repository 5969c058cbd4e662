package services

import (
	"context"
	"testing"
	"time"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

type fakeRecons struct {
	recorded []models.Reconciliation
}

func (f *fakeRecons) Record(rec models.Reconciliation) error {
	f.recorded = append(f.recorded, rec)
	return nil
}

func stagedDraft() models.PendingBooking {
	return models.PendingBooking{
		Provider:       "momo",
		OrderID:        "TB-42",
		UserID:         7,
		ItemType:       models.ItemTypeTour,
		ItemID:         3,
		ItemName:       "Ha Long Bay 3D2N",
		Subtotal:       3000000,
		DiscountCode:   "SUMMER10",
		DiscountAmount: 300000,
		Total:          2700000,
		PaymentMethod:  models.PaymentMethodMoMo,
		IdempotencyKey: "abc123",
		Participants:   []models.Participant{validContact()},
		StagedAt:       time.Now().UTC(),
	}
}

func returnService(gw *fakeGateway, pending *fakePending, bookings *fakeBookings, recons *fakeRecons, discounts *fakeDiscounts) PaymentReturnService {
	return PaymentReturnService{
		Bookings:  bookings,
		Discounts: discounts,
		Gateways:  map[string]PaymentGateway{"momo": gw},
		Pending:   pending,
		Recons:    recons,
	}
}

func TestHandleReturnSuccessCreatesConfirmedBooking(t *testing.T) {
	pending := newFakePending()
	_ = pending.Stage(context.Background(), stagedDraft())

	gw := &fakeGateway{
		provider: "momo",
		status:   PaymentStatusResult{State: PaymentSuccess, TransactionID: "999", Amount: 2700000},
	}
	bookings := &fakeBookings{}
	discounts := &fakeDiscounts{}
	svc := returnService(gw, pending, bookings, &fakeRecons{}, discounts)

	out, err := svc.HandleReturn(context.Background(), "momo", ReturnParams{OrderID: "TB-42", ResultCode: "0"})
	if err != nil {
		t.Fatalf("HandleReturn returned error: %v", err)
	}

	if out.Status != ReturnConfirmed {
		t.Fatalf("status = %s, want confirmed", out.Status)
	}
	if out.Booking == nil || out.Booking.Status != models.BookingStatusConfirmed {
		t.Fatalf("booking = %+v, want confirmed booking", out.Booking)
	}
	if out.Booking.GatewayOrderID != "TB-42" {
		t.Fatalf("gateway order id = %q", out.Booking.GatewayOrderID)
	}
	if len(pending.slots) != 0 {
		t.Fatalf("slot was not claimed")
	}
	if len(discounts.consumed) != 1 {
		t.Fatalf("discount was not consumed")
	}
	if gw.queryCalls != 1 {
		t.Fatalf("status must be verified exactly once, got %d", gw.queryCalls)
	}
}

func TestHandleReturnReplayedURLConflicts(t *testing.T) {
	pending := newFakePending()
	_ = pending.Stage(context.Background(), stagedDraft())

	gw := &fakeGateway{
		provider: "momo",
		status:   PaymentStatusResult{State: PaymentSuccess, TransactionID: "999", Amount: 2700000},
	}
	bookings := &fakeBookings{}
	svc := returnService(gw, pending, bookings, &fakeRecons{}, &fakeDiscounts{})

	params := ReturnParams{OrderID: "TB-42", ResultCode: "0"}
	if _, err := svc.HandleReturn(context.Background(), "momo", params); err != nil {
		t.Fatalf("first return failed: %v", err)
	}

	_, err := svc.HandleReturn(context.Background(), "momo", params)
	if !domain.IsNotFound(err) {
		t.Fatalf("replay error = %v, want not found", err)
	}
	if len(bookings.created) != 1 {
		t.Fatalf("replay booked twice: %d bookings", len(bookings.created))
	}
}

func TestHandleReturnMismatchLeavesSlotUntouched(t *testing.T) {
	pending := newFakePending()
	_ = pending.Stage(context.Background(), stagedDraft())

	// Gateway verifies paid, but the amount does not match the draft.
	gw := &fakeGateway{
		provider: "momo",
		status:   PaymentStatusResult{State: PaymentSuccess, TransactionID: "999", Amount: 1000},
	}
	bookings := &fakeBookings{}
	svc := returnService(gw, pending, bookings, &fakeRecons{}, &fakeDiscounts{})

	_, err := svc.HandleReturn(context.Background(), "momo", ReturnParams{OrderID: "TB-42", ResultCode: "0"})
	if !domain.IsConflict(err) {
		t.Fatalf("error = %v, want conflict", err)
	}
	if len(bookings.created) != 0 {
		t.Fatalf("a booking was created on mismatch")
	}
	if len(pending.slots) != 1 {
		t.Fatalf("slot must stay for support on mismatch")
	}
}

func TestHandleReturnURLHintDisagreesWithVerifiedSuccess(t *testing.T) {
	pending := newFakePending()
	_ = pending.Stage(context.Background(), stagedDraft())

	gw := &fakeGateway{
		provider: "momo",
		status:   PaymentStatusResult{State: PaymentSuccess, TransactionID: "999", Amount: 2700000},
	}
	svc := returnService(gw, pending, &fakeBookings{}, &fakeRecons{}, &fakeDiscounts{})

	_, err := svc.HandleReturn(context.Background(), "momo", ReturnParams{OrderID: "TB-42", ResultCode: "49"})
	if !domain.IsConflict(err) {
		t.Fatalf("error = %v, want conflict", err)
	}
	if len(pending.slots) != 1 {
		t.Fatalf("slot must stay on status mismatch")
	}
}

func TestHandleReturnVerifiedFailureDropsDraft(t *testing.T) {
	pending := newFakePending()
	_ = pending.Stage(context.Background(), stagedDraft())

	gw := &fakeGateway{
		provider: "momo",
		status:   PaymentStatusResult{State: PaymentFailed, Message: "User cancelled", RawCode: "1006"},
	}
	bookings := &fakeBookings{}
	svc := returnService(gw, pending, bookings, &fakeRecons{}, &fakeDiscounts{})

	out, err := svc.HandleReturn(context.Background(), "momo", ReturnParams{OrderID: "TB-42", ResultCode: "1006"})
	if err != nil {
		t.Fatalf("HandleReturn returned error: %v", err)
	}
	if out.Status != ReturnFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if out.Message != "User cancelled" {
		t.Fatalf("message = %q", out.Message)
	}
	if len(bookings.created) != 0 {
		t.Fatalf("a booking was created on failure")
	}
	if len(pending.slots) != 0 {
		t.Fatalf("draft was not dropped after verified failure")
	}
}

func TestHandleReturnStillProcessingKeepsSlot(t *testing.T) {
	pending := newFakePending()
	_ = pending.Stage(context.Background(), stagedDraft())

	gw := &fakeGateway{
		provider: "momo",
		status:   PaymentStatusResult{State: PaymentPending, RawCode: "9000"},
	}
	svc := returnService(gw, pending, &fakeBookings{}, &fakeRecons{}, &fakeDiscounts{})

	out, err := svc.HandleReturn(context.Background(), "momo", ReturnParams{OrderID: "TB-42", ResultCode: "9000"})
	if err != nil {
		t.Fatalf("HandleReturn returned error: %v", err)
	}
	if out.Status != ReturnPending {
		t.Fatalf("status = %s, want pending", out.Status)
	}
	if len(pending.slots) != 1 {
		t.Fatalf("slot must stay while payment is processing")
	}
}

func TestHandleReturnCreateFailureRecordsReconciliation(t *testing.T) {
	pending := newFakePending()
	_ = pending.Stage(context.Background(), stagedDraft())

	gw := &fakeGateway{
		provider: "momo",
		status:   PaymentStatusResult{State: PaymentSuccess, TransactionID: "999", Amount: 2700000},
	}
	bookings := &fakeBookings{fail: domain.InternalError{Msg: "db down"}}
	recons := &fakeRecons{}
	svc := returnService(gw, pending, bookings, recons, &fakeDiscounts{})

	out, err := svc.HandleReturn(context.Background(), "momo", ReturnParams{OrderID: "TB-42", ResultCode: "0"})
	if err != nil {
		t.Fatalf("HandleReturn returned error: %v", err)
	}
	if out.Status != ReturnReconciliationNeeded {
		t.Fatalf("status = %s, want reconciliation_needed", out.Status)
	}
	if len(recons.recorded) != 1 {
		t.Fatalf("reconciliation was not recorded")
	}
	rec := recons.recorded[0]
	if rec.OrderID != "TB-42" || rec.Amount != 2700000 || rec.TransactionID != "999" {
		t.Fatalf("reconciliation = %+v", rec)
	}
}

func TestHandleReturnUnknownOrder(t *testing.T) {
	gw := &fakeGateway{provider: "momo"}
	svc := returnService(gw, newFakePending(), &fakeBookings{}, &fakeRecons{}, &fakeDiscounts{})

	_, err := svc.HandleReturn(context.Background(), "momo", ReturnParams{OrderID: "TB-unknown", ResultCode: "0"})
	if !domain.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
	if gw.queryCalls != 0 {
		t.Fatalf("gateway was queried for an unknown order")
	}
}

func TestHandleReturnMissingParams(t *testing.T) {
	gw := &fakeGateway{provider: "momo"}
	svc := returnService(gw, newFakePending(), &fakeBookings{}, &fakeRecons{}, &fakeDiscounts{})

	if _, err := svc.HandleReturn(context.Background(), "momo", ReturnParams{ResultCode: "0"}); !domain.IsValidation(err) {
		t.Fatalf("missing order id error = %v, want validation", err)
	}
	if _, err := svc.HandleReturn(context.Background(), "momo", ReturnParams{OrderID: "TB-1"}); !domain.IsValidation(err) {
		t.Fatalf("missing result code error = %v, want validation", err)
	}
	if _, err := svc.HandleReturn(context.Background(), "vnpay", ReturnParams{OrderID: "TB-1", ResultCode: "0"}); !domain.IsValidation(err) {
		t.Fatalf("unknown provider error = %v, want validation", err)
	}
}
