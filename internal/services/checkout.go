package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
	"travelbooking/internal/utils"
)

// BookingCreator is the slice of the booking repository checkout needs.
type BookingCreator interface {
	Create(b *models.Booking, participants []models.Participant) error
}

// DiscountLookup resolves and consumes discount codes.
type DiscountLookup interface {
	Lookup(code string, now time.Time) (*models.Discount, error)
	Consume(code string)
}

type CheckoutInput struct {
	UserID        int64
	ItemType      models.ItemType
	ItemID        int64
	ItemName      string
	BasePrice     int64
	Counts        map[models.Role]int
	AddOns        []models.AddOn
	DiscountCode  string
	PaymentMethod models.PaymentMethod
	Participants  []models.Participant
	Note          string
}

// CheckoutResult is either a booking (direct payment methods) or a
// redirect to a gateway (wallet methods), never both.
type CheckoutResult struct {
	Booking  *models.Booking `json:"booking,omitempty"`
	Provider string          `json:"provider,omitempty"`
	OrderID  string          `json:"order_id,omitempty"`
	PayURL   string          `json:"pay_url,omitempty"`
	Quote    models.Quote    `json:"quote"`
}

type CheckoutService struct {
	Bookings  BookingCreator
	Discounts DiscountLookup
	Gateways  map[models.PaymentMethod]PaymentGateway
	Pending   PendingStore
	Notifier  Notifier
	RequestID string
	Now       func() time.Time
}

func (s CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IdempotencyKey fingerprints a submission. Two identical submissions
// inside the same five-minute window hash to the same key, which the
// bookings table rejects as a duplicate.
func IdempotencyKey(userID int64, itemType models.ItemType, itemID int64, participantCount int, total int64, at time.Time) string {
	bucket := at.UTC().Truncate(5 * time.Minute).Unix()
	raw := fmt.Sprintf("%d|%s|%d|%d|%d|%d", userID, itemType, itemID, participantCount, total, bucket)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Submit runs the whole checkout: validation, pricing, discount, then
// either a direct booking or a gateway hand-off. Validation failures
// never reach the network.
func (s CheckoutService) Submit(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	if in.PaymentMethod == "" {
		return CheckoutResult{}, domain.ValidationError{Field: "payment_method", Msg: "a payment method must be selected"}
	}
	if !in.PaymentMethod.Valid() {
		return CheckoutResult{}, domain.ValidationError{Field: "payment_method", Msg: "unknown payment method " + string(in.PaymentMethod)}
	}
	if !in.ItemType.Valid() {
		return CheckoutResult{}, domain.ValidationError{Field: "item_type", Msg: "unknown item type"}
	}
	if in.BasePrice <= 0 {
		return CheckoutResult{}, domain.ValidationError{Field: "item", Msg: "item has no price"}
	}
	if err := ValidateParticipants(in.Participants, models.RulesFor(in.ItemType)); err != nil {
		return CheckoutResult{}, err
	}
	if err := ReconcileCounts(in.Counts, in.Participants, in.AddOns); err != nil {
		return CheckoutResult{}, err
	}

	now := s.now()
	discount, err := s.Discounts.Lookup(in.DiscountCode, now)
	if err != nil {
		return CheckoutResult{}, err
	}

	fares := RoleFares(in.BasePrice, models.PolicyFor(in.ItemType))
	items := LineItemsFromCounts(in.Counts, fares)
	subtotal := Subtotal(items, in.AddOns)
	if subtotal <= 0 {
		return CheckoutResult{}, domain.ValidationError{Field: "participants", Msg: "nothing to book"}
	}

	discountAmount := ApplyDiscount(discount, subtotal)
	total := subtotal - discountAmount
	quote := models.Quote{
		Subtotal:       subtotal,
		DiscountCode:   in.DiscountCode,
		DiscountAmount: discountAmount,
		Total:          total,
	}

	idemKey := IdempotencyKey(in.UserID, in.ItemType, in.ItemID, len(in.Participants), total, now)

	if !in.PaymentMethod.RequiresGateway() {
		booking := &models.Booking{
			UserID:         in.UserID,
			ItemType:       in.ItemType,
			ItemID:         in.ItemID,
			ItemName:       in.ItemName,
			Subtotal:       subtotal,
			DiscountCode:   in.DiscountCode,
			DiscountAmount: discountAmount,
			Total:          total,
			PaymentMethod:  in.PaymentMethod,
			IdempotencyKey: idemKey,
			Note:           in.Note,
			Status:         models.BookingStatusPending,
		}
		if err := s.Bookings.Create(booking, in.Participants); err != nil {
			return CheckoutResult{}, err
		}
		s.Discounts.Consume(in.DiscountCode)
		if s.Notifier != nil {
			s.Notifier.Notify(ctx, "booking.created", map[string]any{
				"booking_id": booking.ID,
				"user_id":    booking.UserID,
				"total":      booking.Total,
				"method":     booking.PaymentMethod,
			})
		}
		contact := contactOf(in.Participants)
		utils.LogEvent(s.RequestID, "checkout", "submit",
			fmt.Sprintf("booking %d created for %s, total %s", booking.ID, utils.MaskPhone(contact.Phone), utils.FormatVND(total)))
		return CheckoutResult{Booking: booking, Quote: quote}, nil
	}

	gw, ok := GatewayFor(s.Gateways, in.PaymentMethod)
	if !ok {
		return CheckoutResult{}, domain.ValidationError{Field: "payment_method", Msg: string(in.PaymentMethod) + " is not available"}
	}

	orderRef := "TB-" + uuid.NewString()
	session, err := gw.CreatePayment(ctx, PaymentRequest{
		OrderRef:    orderRef,
		Amount:      total,
		Description: fmt.Sprintf("Booking %s for user %d", in.ItemName, in.UserID),
		UserID:      in.UserID,
	})
	if err != nil {
		// Nothing was staged, so the user can simply retry.
		utils.LogError(s.RequestID, "checkout", "initiate", err)
		return CheckoutResult{}, err
	}

	pb := models.PendingBooking{
		Provider:       session.Provider,
		OrderID:        session.OrderID,
		RequestID:      session.RequestID,
		UserID:         in.UserID,
		ItemType:       in.ItemType,
		ItemID:         in.ItemID,
		ItemName:       in.ItemName,
		Subtotal:       subtotal,
		DiscountCode:   in.DiscountCode,
		DiscountAmount: discountAmount,
		Total:          total,
		Participants:   in.Participants,
		Note:           in.Note,
		PaymentMethod:  in.PaymentMethod,
		IdempotencyKey: idemKey,
		StagedAt:       now.UTC(),
	}
	if err := s.Pending.Stage(ctx, pb); err != nil {
		utils.LogError(s.RequestID, "checkout", "stage", err)
		return CheckoutResult{}, err
	}

	utils.LogEvent(s.RequestID, "checkout", "submit",
		fmt.Sprintf("order %s staged with %s, total %s", session.OrderID, session.Provider, utils.FormatVND(total)))
	return CheckoutResult{
		Provider: session.Provider,
		OrderID:  session.OrderID,
		PayURL:   session.PayURL,
		Quote:    quote,
	}, nil
}
