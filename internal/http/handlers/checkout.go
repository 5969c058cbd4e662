package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
	"travelbooking/internal/http/middleware"
	"travelbooking/internal/repositories"
	"travelbooking/internal/services"
)

// CheckoutHandlers owns the booking funnel: quote, participant form
// setup and final submission. Prices always come from the catalog on
// the server, never from the client payload.
type CheckoutHandlers struct {
	Gateways map[models.PaymentMethod]services.PaymentGateway
	Pending  services.PendingStore
	Notifier services.Notifier
}

type checkoutItemRef struct {
	ItemType models.ItemType `json:"item_type"`
	ItemID   int64           `json:"item_id"`
}

// loadItem resolves the priced catalog entry behind an item reference.
func loadItem(ref checkoutItemRef) (name string, basePrice int64, err error) {
	switch ref.ItemType {
	case models.ItemTypeTour:
		t, err := repositories.TourRepository{}.GetByID(ref.ItemID)
		if err != nil {
			return "", 0, err
		}
		if !t.Active {
			return "", 0, domain.ValidationError{Field: "item", Msg: "tour is not open for booking"}
		}
		return t.Name, t.BasePrice, nil
	case models.ItemTypeFlight:
		f, err := repositories.FlightRepository{}.GetByID(ref.ItemID)
		if err != nil {
			return "", 0, err
		}
		if !f.Active {
			return "", 0, domain.ValidationError{Field: "item", Msg: "flight is not open for booking"}
		}
		return f.Code + " " + f.Origin + "-" + f.Dest, f.BaseFare, nil
	case models.ItemTypeActivity:
		a, err := repositories.ActivityRepository{}.GetByID(ref.ItemID)
		if err != nil {
			return "", 0, err
		}
		if !a.Active {
			return "", 0, domain.ValidationError{Field: "item", Msg: "activity is not open for booking"}
		}
		return a.Name, a.BasePrice, nil
	default:
		return "", 0, domain.ValidationError{Field: "item_type", Msg: "unknown item type"}
	}
}

type quoteRequest struct {
	checkoutItemRef
	Counts       map[models.Role]int `json:"counts"`
	AddOns       []models.AddOn      `json:"addons"`
	DiscountCode string              `json:"discount_code"`
}

// POST /api/checkout/quote
func (h CheckoutHandlers) Quote(c *gin.Context) {
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	_, basePrice, err := loadItem(req.checkoutItemRef)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	reqID := middleware.GetRequestID(c)
	discounts := services.DiscountService{RequestID: reqID}
	discount, err := discounts.Lookup(req.DiscountCode, time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	fares := services.RoleFares(basePrice, models.PolicyFor(req.ItemType))
	items := services.LineItemsFromCounts(req.Counts, fares)
	subtotal := services.Subtotal(items, req.AddOns)
	amount := services.ApplyDiscount(discount, subtotal)

	c.JSON(http.StatusOK, gin.H{
		"fares": fares,
		"items": items,
		"quote": models.Quote{
			Subtotal:       subtotal,
			DiscountCode:   req.DiscountCode,
			DiscountAmount: amount,
			Total:          subtotal - amount,
		},
	})
}

type participantsInitRequest struct {
	ItemType models.ItemType     `json:"item_type"`
	Counts   map[models.Role]int `json:"counts"`
}

// POST /api/checkout/participants
func (h CheckoutHandlers) InitParticipants(c *gin.Context) {
	var req participantsInitRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	list := services.InitParticipants(req.Counts)
	if len(list) == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "counts", Msg: "at least one traveller is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"participants": list,
		"rules":        models.RulesFor(req.ItemType),
	})
}

type submitRequest struct {
	checkoutItemRef
	Counts        map[models.Role]int  `json:"counts"`
	AddOns        []models.AddOn       `json:"addons"`
	DiscountCode  string               `json:"discount_code"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Participants  []models.Participant `json:"participants"`
	Note          string               `json:"note"`
}

// POST /api/checkout/submit
func (h CheckoutHandlers) Submit(c *gin.Context) {
	var req submitRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	userID := middleware.GetUserID(c)
	if userID <= 0 {
		RespondError(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	name, basePrice, err := loadItem(req.checkoutItemRef)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.CheckoutService{
		Bookings:  repositories.BookingRepository{},
		Discounts: services.DiscountService{RequestID: reqID},
		Gateways:  h.Gateways,
		Pending:   h.Pending,
		Notifier:  h.Notifier,
		RequestID: reqID,
	}

	res, err := svc.Submit(c.Request.Context(), services.CheckoutInput{
		UserID:        userID,
		ItemType:      req.ItemType,
		ItemID:        req.ItemID,
		ItemName:      name,
		BasePrice:     basePrice,
		Counts:        req.Counts,
		AddOns:        req.AddOns,
		DiscountCode:  req.DiscountCode,
		PaymentMethod: req.PaymentMethod,
		Participants:  req.Participants,
		Note:          req.Note,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := http.StatusCreated
	if res.Booking == nil {
		// Gateway flow: nothing is booked yet, the client must redirect.
		status = http.StatusOK
	}
	c.JSON(status, res)
}
