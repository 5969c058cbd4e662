package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain"
)

// ZaloPayGateway talks to the ZaloPay v2 API. Create requests are
// signed with key1, callbacks with key2. The order ID on the wire is
// the app_trans_id, which must be prefixed with the current yymmdd.
type ZaloPayGateway struct {
	Config intconfig.ZaloPayEnv
	Client *http.Client
	Now    func() time.Time
}

func NewZaloPayGateway(cfg intconfig.ZaloPayEnv) *ZaloPayGateway {
	return &ZaloPayGateway{
		Config: cfg,
		Client: &http.Client{Timeout: 30 * time.Second},
		Now:    time.Now,
	}
}

func (g *ZaloPayGateway) Provider() string { return "zalopay" }

func (g *ZaloPayGateway) mac(key, raw string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}

// AppTransID builds the dated transaction ID ZaloPay requires.
func (g *ZaloPayGateway) AppTransID(ref string) string {
	return g.Now().Format("060102") + "_" + ref
}

type zaloCreateResponse struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	OrderURL      string `json:"order_url"`
	ZpTransToken  string `json:"zp_trans_token"`
}

func (g *ZaloPayGateway) CreatePayment(ctx context.Context, req PaymentRequest) (PaymentSession, error) {
	appTransID := g.AppTransID(req.OrderRef)
	appTime := g.Now().UnixMilli()
	appUser := fmt.Sprintf("user_%d", req.UserID)

	embed, _ := json.Marshal(map[string]string{
		"redirecturl": g.Config.RedirectURL,
		"extra":       req.ExtraData,
	})
	items := "[]"

	raw := fmt.Sprintf("%d|%s|%s|%d|%d|%s|%s",
		g.Config.AppID, appTransID, appUser, req.Amount, appTime, string(embed), items)

	form := url.Values{}
	form.Set("app_id", fmt.Sprintf("%d", g.Config.AppID))
	form.Set("app_trans_id", appTransID)
	form.Set("app_user", appUser)
	form.Set("app_time", fmt.Sprintf("%d", appTime))
	form.Set("amount", fmt.Sprintf("%d", req.Amount))
	form.Set("embed_data", string(embed))
	form.Set("item", items)
	form.Set("description", req.Description)
	form.Set("callback_url", g.Config.CallbackURL)
	form.Set("mac", g.mac(g.Config.Key1, raw))

	var resp zaloCreateResponse
	if err := g.postForm(ctx, "/v2/create", form, &resp); err != nil {
		return PaymentSession{}, domain.GatewayError{Provider: "zalopay", Stage: "initiate", Err: err}
	}
	if resp.ReturnCode != 1 {
		return PaymentSession{}, domain.GatewayError{Provider: "zalopay", Stage: "initiate", Msg: resp.ReturnMessage}
	}

	return PaymentSession{
		Provider:  "zalopay",
		OrderID:   appTransID,
		PayURL:    resp.OrderURL,
		RequestID: resp.ZpTransToken,
	}, nil
}

type zaloQueryResponse struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	Amount        int64  `json:"amount"`
	ZpTransID     int64  `json:"zp_trans_id"`
	IsProcessing  bool   `json:"is_processing"`
}

func (g *ZaloPayGateway) QueryStatus(ctx context.Context, orderID string) (PaymentStatusResult, error) {
	raw := fmt.Sprintf("%d|%s|%s", g.Config.AppID, orderID, g.Config.Key1)

	form := url.Values{}
	form.Set("app_id", fmt.Sprintf("%d", g.Config.AppID))
	form.Set("app_trans_id", orderID)
	form.Set("mac", g.mac(g.Config.Key1, raw))

	var resp zaloQueryResponse
	if err := g.postForm(ctx, "/v2/query", form, &resp); err != nil {
		return PaymentStatusResult{}, domain.GatewayError{Provider: "zalopay", Stage: "verify", Err: err}
	}

	out := PaymentStatusResult{
		TransactionID: fmt.Sprintf("%d", resp.ZpTransID),
		Amount:        resp.Amount,
		Message:       resp.ReturnMessage,
		RawCode:       fmt.Sprintf("%d", resp.ReturnCode),
	}
	switch {
	case resp.ReturnCode == 1:
		out.State = PaymentSuccess
	case resp.ReturnCode == 3 || resp.IsProcessing:
		out.State = PaymentPending
	default:
		out.State = PaymentFailed
	}
	return out, nil
}

func (g *ZaloPayGateway) IsSuccessCode(code string) bool {
	return code == "1"
}

func (g *ZaloPayGateway) postForm(ctx context.Context, path string, form url.Values, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Config.Endpoint+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zalopay returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
