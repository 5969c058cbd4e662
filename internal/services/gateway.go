package services

import (
	"context"

	"travelbooking/internal/domain/models"
)

// PaymentRequest is what checkout hands to a gateway to open a session.
type PaymentRequest struct {
	OrderRef    string
	Amount      int64
	Description string
	ExtraData   string
	UserID      int64
}

// PaymentSession is the gateway's answer: where to send the user and
// which IDs to remember for the return leg.
type PaymentSession struct {
	Provider  string
	OrderID   string
	PayURL    string
	RequestID string
}

type PaymentState string

const (
	PaymentPending PaymentState = "pending"
	PaymentSuccess PaymentState = "success"
	PaymentFailed  PaymentState = "failed"
)

// PaymentStatusResult is the authoritative status from a server-to-server
// query, never from redirect URL parameters alone.
type PaymentStatusResult struct {
	State         PaymentState
	TransactionID string
	Amount        int64
	Message       string
	RawCode       string
}

type PaymentGateway interface {
	Provider() string
	CreatePayment(ctx context.Context, req PaymentRequest) (PaymentSession, error)
	QueryStatus(ctx context.Context, orderID string) (PaymentStatusResult, error)
	// IsSuccessCode reports whether a result code carried on the redirect
	// URL claims success. It is only a hint; QueryStatus decides.
	IsSuccessCode(code string) bool
}

// GatewayFor maps a payment method to its registered gateway.
func GatewayFor(gateways map[models.PaymentMethod]PaymentGateway, method models.PaymentMethod) (PaymentGateway, bool) {
	gw, ok := gateways[method]
	return gw, ok
}
