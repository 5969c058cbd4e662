package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"travelbooking/internal/domain/models"
	"travelbooking/internal/http/middleware"
	"travelbooking/internal/repositories"
	"travelbooking/internal/services"
)

// PaymentHandlers settles gateway returns and manages discounts and
// reconciliations on the admin side.
type PaymentHandlers struct {
	Gateways map[string]services.PaymentGateway
	Pending  services.PendingStore
	Notifier services.Notifier
}

// resultCodeParam maps the provider to the query parameter its redirect
// carries the result code in.
func resultCodeParam(provider string) string {
	if provider == "zalopay" {
		return "status"
	}
	return "resultCode"
}

func orderIDParam(provider string) string {
	if provider == "zalopay" {
		return "apptransid"
	}
	return "orderId"
}

// GET /api/payments/:provider/return
func (h PaymentHandlers) Return(c *gin.Context) {
	provider := c.Param("provider")

	reqID := middleware.GetRequestID(c)
	svc := services.PaymentReturnService{
		Bookings:  repositories.BookingRepository{},
		Discounts: services.DiscountService{RequestID: reqID},
		Gateways:  h.Gateways,
		Pending:   h.Pending,
		Recons:    repositories.ReconciliationRepository{},
		Notifier:  h.Notifier,
		RequestID: reqID,
	}

	out, err := svc.HandleReturn(c.Request.Context(), provider, services.ReturnParams{
		OrderID:    c.Query(orderIDParam(provider)),
		ResultCode: c.Query(resultCodeParam(provider)),
		Message:    c.Query("message"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type validateDiscountRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

// POST /api/discounts/validate
func (h PaymentHandlers) ValidateDiscount(c *gin.Context) {
	var req validateDiscountRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.DiscountService{RequestID: middleware.GetRequestID(c)}
	d, err := svc.Lookup(req.Code, time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	amount := services.ApplyDiscount(d, req.Subtotal)
	c.JSON(http.StatusOK, gin.H{
		"valid":           d != nil,
		"discount":        d,
		"discount_amount": amount,
		"total":           req.Subtotal - amount,
	})
}

// GET /api/admin/discounts
func (h PaymentHandlers) ListDiscounts(c *gin.Context) {
	out, err := repositories.DiscountRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounts": out})
}

// POST /api/admin/discounts
func (h PaymentHandlers) CreateDiscount(c *gin.Context) {
	var d models.Discount
	if !BindJSONOrError(c, &d) {
		return
	}
	if err := (repositories.DiscountRepository{}).Create(&d); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"discount": d})
}

// PUT /api/admin/discounts/:id
func (h PaymentHandlers) UpdateDiscount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid discount id", err)
		return
	}
	var d models.Discount
	if !BindJSONOrError(c, &d) {
		return
	}
	d.ID = id
	if err := (repositories.DiscountRepository{}).Update(d); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discount": d})
}

// DELETE /api/admin/discounts/:id
func (h PaymentHandlers) DeleteDiscount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid discount id", err)
		return
	}
	if err := (repositories.DiscountRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "discount deleted"})
}

// GET /api/admin/reconciliations
func (h PaymentHandlers) ListReconciliations(c *gin.Context) {
	out, err := repositories.ReconciliationRepository{}.ListUnresolved()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciliations": out})
}

// PUT /api/admin/reconciliations/:id/resolve
func (h PaymentHandlers) ResolveReconciliation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid reconciliation id", err)
		return
	}
	if err := (repositories.ReconciliationRepository{}).MarkResolved(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reconciliation resolved"})
}
