package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain"
)

// MoMoGateway talks to the MoMo v2 wallet API. Requests are signed with
// HMAC-SHA256 over an alphabetically ordered raw query string.
type MoMoGateway struct {
	Config intconfig.MoMoEnv
	Client *http.Client
}

func NewMoMoGateway(cfg intconfig.MoMoEnv) *MoMoGateway {
	return &MoMoGateway{
		Config: cfg,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *MoMoGateway) Provider() string { return "momo" }

func (g *MoMoGateway) sign(raw string) string {
	mac := hmac.New(sha256.New, []byte(g.Config.SecretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

type momoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

type momoCreateResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	PayURL     string `json:"payUrl"`
	OrderID    string `json:"orderId"`
	RequestID  string `json:"requestId"`
}

// createSignatureRaw builds the raw string MoMo expects for the create
// call: fields in alphabetical order, joined with &.
func (g *MoMoGateway) createSignatureRaw(req momoCreateRequest) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		g.Config.AccessKey, req.Amount, req.ExtraData, req.IPNURL, req.OrderID,
		req.OrderInfo, req.PartnerCode, req.RedirectURL, req.RequestID, req.RequestType,
	)
}

func (g *MoMoGateway) CreatePayment(ctx context.Context, req PaymentRequest) (PaymentSession, error) {
	orderID := req.OrderRef
	requestID := uuid.NewString()

	body := momoCreateRequest{
		PartnerCode: g.Config.PartnerCode,
		AccessKey:   g.Config.AccessKey,
		RequestID:   requestID,
		Amount:      req.Amount,
		OrderID:     orderID,
		OrderInfo:   req.Description,
		RedirectURL: g.Config.RedirectURL,
		IPNURL:      g.Config.IPNURL,
		ExtraData:   req.ExtraData,
		RequestType: "captureWallet",
		Lang:        "vi",
	}
	body.Signature = g.sign(g.createSignatureRaw(body))

	var resp momoCreateResponse
	if err := g.post(ctx, "/v2/gateway/api/create", body, &resp); err != nil {
		return PaymentSession{}, domain.GatewayError{Provider: "momo", Stage: "initiate", Err: err}
	}
	if resp.ResultCode != 0 {
		return PaymentSession{}, domain.GatewayError{Provider: "momo", Stage: "initiate", Msg: resp.Message}
	}

	return PaymentSession{
		Provider:  "momo",
		OrderID:   orderID,
		PayURL:    resp.PayURL,
		RequestID: requestID,
	}, nil
}

type momoQueryRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	OrderID     string `json:"orderId"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

type momoQueryResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	Amount     int64  `json:"amount"`
	TransID    int64  `json:"transId"`
}

func (g *MoMoGateway) QueryStatus(ctx context.Context, orderID string) (PaymentStatusResult, error) {
	requestID := uuid.NewString()
	body := momoQueryRequest{
		PartnerCode: g.Config.PartnerCode,
		AccessKey:   g.Config.AccessKey,
		RequestID:   requestID,
		OrderID:     orderID,
		Lang:        "vi",
	}
	raw := fmt.Sprintf("accessKey=%s&orderId=%s&partnerCode=%s&requestId=%s",
		g.Config.AccessKey, orderID, g.Config.PartnerCode, requestID)
	body.Signature = g.sign(raw)

	var resp momoQueryResponse
	if err := g.post(ctx, "/v2/gateway/api/query", body, &resp); err != nil {
		return PaymentStatusResult{}, domain.GatewayError{Provider: "momo", Stage: "verify", Err: err}
	}

	out := PaymentStatusResult{
		TransactionID: fmt.Sprintf("%d", resp.TransID),
		Amount:        resp.Amount,
		Message:       resp.Message,
		RawCode:       fmt.Sprintf("%d", resp.ResultCode),
	}
	switch resp.ResultCode {
	case 0:
		out.State = PaymentSuccess
	case 1000, 7000, 7002, 9000:
		out.State = PaymentPending
	default:
		out.State = PaymentFailed
	}
	return out, nil
}

func (g *MoMoGateway) IsSuccessCode(code string) bool {
	return code == "0"
}

func (g *MoMoGateway) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Config.Endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("momo returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
