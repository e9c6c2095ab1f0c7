package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-backend/internal/config"
)

// TapGateway is the live client for the Tap charges API, used for regional
// wallet and mada charges outside test mode.
type TapGateway struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

func NewTapGateway(cfg *config.Tap) *TapGateway {
	return &TapGateway{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		secretKey:  cfg.SecretKey,
	}
}

type tapChargeResult struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Response struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"response"`
}

func (g *TapGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	payload := map[string]interface{}{
		"amount":   req.Amount.StringFixed(2),
		"currency": req.Currency,
		"source": map[string]string{
			"id": req.Token,
		},
		"reference": map[string]string{
			"transaction": req.IntentID,
		},
		"metadata": req.Metadata,
	}

	var result tapChargeResult
	if err := g.post(ctx, "/v2/charges", payload, &result); err != nil {
		return nil, err
	}

	if result.Status == "DECLINED" || result.Status == "FAILED" {
		return &ChargeResult{
			Status:        "declined",
			Declined:      true,
			DeclineReason: result.Response.Message,
		}, nil
	}

	return &ChargeResult{
		TransactionID: result.ID,
		Status:        "succeeded",
	}, nil
}

func (g *TapGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	payload := map[string]interface{}{
		"charge_id": req.TransactionID,
		"amount":    req.Amount.StringFixed(2),
		"currency":  req.Currency,
		"reason":    req.Reason,
	}

	var result tapChargeResult
	if err := g.post(ctx, "/v2/refunds", payload, &result); err != nil {
		return nil, err
	}

	if result.Status == "DECLINED" || result.Status == "FAILED" {
		return nil, fmt.Errorf("tap refund %s: %s", result.Status, result.Response.Message)
	}

	return &RefundResult{
		RefundID: result.ID,
		Status:   "succeeded",
	}, nil
}

func (g *TapGateway) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.baseApiURL+path,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tap error %d: %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tap response: %w", err)
	}

	return nil
}
