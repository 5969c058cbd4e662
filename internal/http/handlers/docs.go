package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelbooking/internal/http/middleware"
	"travelbooking/internal/services"
)

// DocsHandlers serves booking documents as PDF downloads. Users can
// fetch documents for their own bookings only.
type DocsHandlers struct{}

func (h DocsHandlers) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{RequestID: middleware.GetRequestID(c)}
}

func (h DocsHandlers) ownedBookingID(c *gin.Context) (int64, bool) {
	id, ok := bookingIDParam(c)
	if !ok {
		return 0, false
	}
	if middleware.GetUserRole(c) == "admin" {
		return id, true
	}
	if _, err := bookingService(c).GetForUser(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return 0, false
	}
	return id, true
}

func servePDF(c *gin.Context, pdf []byte, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/bookings/:id/eticket
func (h DocsHandlers) ETicket(c *gin.Context) {
	id, ok := h.ownedBookingID(c)
	if !ok {
		return
	}
	pdf, filename, err := h.docsService(c).GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdf, filename)
}

// GET /api/bookings/:id/invoice
func (h DocsHandlers) Invoice(c *gin.Context) {
	id, ok := h.ownedBookingID(c)
	if !ok {
		return
	}
	pdf, filename, err := h.docsService(c).GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	servePDF(c, pdf, filename)
}
