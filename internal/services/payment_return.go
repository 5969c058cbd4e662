package services

import (
	"context"
	"fmt"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
	"travelbooking/internal/utils"
)

// ReconciliationRecorder persists captured-but-unbooked payments.
type ReconciliationRecorder interface {
	Record(rec models.Reconciliation) error
}

// ReturnParams are the query parameters the gateway appends to the
// redirect URL. Only OrderID and ResultCode matter here; everything
// else is re-verified server to server.
type ReturnParams struct {
	OrderID    string
	ResultCode string
	Message    string
}

type ReturnStatus string

const (
	ReturnConfirmed            ReturnStatus = "confirmed"
	ReturnFailed               ReturnStatus = "failed"
	ReturnPending              ReturnStatus = "pending"
	ReturnReconciliationNeeded ReturnStatus = "reconciliation_needed"
)

// ReturnOutcome is what the return page renders.
type ReturnOutcome struct {
	Status  ReturnStatus    `json:"status"`
	Booking *models.Booking `json:"booking,omitempty"`
	Message string          `json:"message,omitempty"`
}

type PaymentReturnService struct {
	Bookings  BookingCreator
	Discounts DiscountLookup
	Gateways  map[string]PaymentGateway
	Pending   PendingStore
	Recons    ReconciliationRecorder
	Notifier  Notifier
	RequestID string
}

// HandleReturn settles a gateway redirect. The URL result code is only a
// hint; the booking is created solely on a verified server-to-server
// status, and the pending slot is claimed atomically so a replayed URL
// cannot book twice.
func (s PaymentReturnService) HandleReturn(ctx context.Context, provider string, params ReturnParams) (ReturnOutcome, error) {
	gw, ok := s.Gateways[provider]
	if !ok {
		return ReturnOutcome{}, domain.ValidationError{Field: "provider", Msg: "unknown payment provider " + provider}
	}
	if params.OrderID == "" {
		return ReturnOutcome{}, domain.ValidationError{Field: "order_id", Msg: "order id is required"}
	}
	if params.ResultCode == "" {
		return ReturnOutcome{}, domain.ValidationError{Field: "result_code", Msg: "result code is required"}
	}

	pending, err := s.Pending.Peek(ctx, provider, params.OrderID)
	if err != nil {
		if domain.IsNotFound(err) {
			return ReturnOutcome{}, domain.NotFoundError{Resource: "pending booking", Err: err}
		}
		return ReturnOutcome{}, err
	}

	status, err := gw.QueryStatus(ctx, params.OrderID)
	if err != nil {
		// Could not verify. The slot stays so a later retry can settle it.
		utils.LogError(s.RequestID, "payment_return", "verify", err)
		return ReturnOutcome{}, err
	}

	urlHint := gw.IsSuccessCode(params.ResultCode)

	switch status.State {
	case PaymentSuccess:
		if !urlHint {
			// The gateway says paid but the URL claims failure. Leave the
			// slot alone and let support look at it.
			utils.LogEvent(s.RequestID, "payment_return", "mismatch",
				fmt.Sprintf("order %s verified paid but url code %s disagrees", params.OrderID, params.ResultCode))
			return ReturnOutcome{}, domain.ConflictError{Msg: "payment status mismatch, please contact support"}
		}
		if status.Amount > 0 && status.Amount != pending.Total {
			utils.LogEvent(s.RequestID, "payment_return", "mismatch",
				fmt.Sprintf("order %s amount %d does not match staged total %d", params.OrderID, status.Amount, pending.Total))
			return ReturnOutcome{}, domain.ConflictError{Msg: "payment amount mismatch, please contact support"}
		}
		return s.settleSuccess(ctx, provider, pending, status)

	case PaymentFailed:
		// Verified failure: drop the draft, the user can start over.
		if err := s.Pending.Delete(ctx, provider, params.OrderID); err != nil {
			utils.LogError(s.RequestID, "payment_return", "cleanup", err)
		}
		msg := status.Message
		if msg == "" {
			msg = "payment was not completed"
		}
		utils.LogEvent(s.RequestID, "payment_return", "failed",
			fmt.Sprintf("order %s failed with code %s", params.OrderID, status.RawCode))
		return ReturnOutcome{Status: ReturnFailed, Message: msg}, nil

	default:
		// Still processing at the gateway. Keep the slot; the user can
		// refresh the return page.
		return ReturnOutcome{Status: ReturnPending, Message: "payment is still being processed"}, nil
	}
}

func (s PaymentReturnService) settleSuccess(ctx context.Context, provider string, pending models.PendingBooking, status PaymentStatusResult) (ReturnOutcome, error) {
	claimed, err := s.Pending.Claim(ctx, provider, pending.OrderID)
	if err != nil {
		if domain.IsNotFound(err) {
			// Someone else settled this order between Peek and Claim.
			return ReturnOutcome{}, domain.ConflictError{Msg: "this payment has already been processed"}
		}
		return ReturnOutcome{}, err
	}

	note := claimed.Note
	txnNote := fmt.Sprintf("paid via %s, transaction %s", provider, status.TransactionID)
	if note != "" {
		note = note + "; " + txnNote
	} else {
		note = txnNote
	}

	booking := &models.Booking{
		UserID:         claimed.UserID,
		ItemType:       claimed.ItemType,
		ItemID:         claimed.ItemID,
		ItemName:       claimed.ItemName,
		Subtotal:       claimed.Subtotal,
		DiscountCode:   claimed.DiscountCode,
		DiscountAmount: claimed.DiscountAmount,
		Total:          claimed.Total,
		PaymentMethod:  claimed.PaymentMethod,
		GatewayOrderID: claimed.OrderID,
		IdempotencyKey: claimed.IdempotencyKey,
		Note:           note,
		Status:         models.BookingStatusConfirmed,
	}
	if err := s.Bookings.Create(booking, claimed.Participants); err != nil {
		// Money is captured but the booking could not be written. Record
		// it for support; do not re-stage, the claim already consumed the
		// slot and a retry with captured money must be a human decision.
		utils.LogError(s.RequestID, "payment_return", "create", err)
		rec := models.Reconciliation{
			Provider:      provider,
			OrderID:       claimed.OrderID,
			TransactionID: status.TransactionID,
			UserID:        claimed.UserID,
			Amount:        claimed.Total,
			Reason:        err.Error(),
		}
		if s.Recons != nil {
			if rerr := s.Recons.Record(rec); rerr != nil {
				utils.LogError(s.RequestID, "payment_return", "reconcile", rerr)
			}
		}
		if s.Notifier != nil {
			s.Notifier.Notify(ctx, "payment.reconciliation_needed", map[string]any{
				"provider": provider,
				"order_id": claimed.OrderID,
				"user_id":  claimed.UserID,
				"amount":   claimed.Total,
			})
		}
		return ReturnOutcome{
			Status:  ReturnReconciliationNeeded,
			Message: "your payment was received; our team will confirm the booking shortly",
		}, nil
	}

	if s.Discounts != nil {
		s.Discounts.Consume(claimed.DiscountCode)
	}
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, "booking.confirmed", map[string]any{
			"booking_id": booking.ID,
			"user_id":    booking.UserID,
			"total":      booking.Total,
			"provider":   provider,
		})
	}
	utils.LogEvent(s.RequestID, "payment_return", "confirmed",
		fmt.Sprintf("order %s settled, booking %d total %s", claimed.OrderID, booking.ID, utils.FormatVND(booking.Total)))

	return ReturnOutcome{Status: ReturnConfirmed, Booking: booking}, nil
}
