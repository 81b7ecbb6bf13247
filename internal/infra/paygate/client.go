// Package paygate is the payment coordination boundary: a thin client for a
// PayMongo-style gateway. The allocator only needs "create an intent, get a
// reference", "attach a method, get a redirect URL"; everything else about
// the gateway protocol stays out of this codebase.
package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/pkg/config"
	"bistro-reserve/internal/pkg/errs"
)

var ErrGatewayUnavailable = errs.New("payment gateway request failed")

type Client struct {
	hc        *http.Client
	baseURL   string
	secretKey string
	returnURL string
	minAmount int64
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		// Bounded timeout: a slow gateway must never stretch the booking
		// transaction, which opens only after the reference is in hand.
		hc:        &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		returnURL: cfg.ReturnURL,
		minAmount: cfg.MinAmountCentavos,
	}
}

// MinAmountCentavos is the smallest fee the gateway accepts.
func (c *Client) MinAmountCentavos() int64 {
	return c.minAmount
}

// CreateIntent registers a payment of the given amount and returns the
// gateway's opaque reference. The reference correlates later fulfillment and
// cancellation signals with the reservation.
func (c *Client) CreateIntent(ctx context.Context, amountCentavos int64) (string, error) {
	if amountCentavos < c.minAmount {
		return "", fmt.Errorf("amount %d below gateway minimum %d", amountCentavos, c.minAmount)
	}

	payload := map[string]any{
		"data": map[string]any{
			"attributes": map[string]any{
				"amount":                 amountCentavos,
				"currency":               "PHP",
				"payment_method_allowed": []string{"paymaya", "gcash"},
			},
		},
	}

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.post(ctx, "/payment_intents", payload, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", errs.Mark(errs.New("gateway returned no intent id"), ErrGatewayUnavailable)
	}

	return resp.Data.ID, nil
}

// AttachMethod binds the chosen method to an existing intent and returns the
// checkout redirect URL for the customer.
func (c *Client) AttachMethod(ctx context.Context, reference string, method reservation.PaymentMethod) (string, error) {
	payload := map[string]any{
		"data": map[string]any{
			"attributes": map[string]any{
				"payment_method": gatewayMethod(method),
				"return_url":     c.returnURL,
			},
		},
	}

	var resp struct {
		Data struct {
			Attributes struct {
				NextAction struct {
					Redirect struct {
						URL string `json:"url"`
					} `json:"redirect"`
				} `json:"next_action"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := c.post(ctx, "/payment_intents/"+reference+"/attach", payload, &resp); err != nil {
		return "", err
	}
	if resp.Data.Attributes.NextAction.Redirect.URL == "" {
		return "", errs.Mark(errs.New("gateway returned no redirect url"), ErrGatewayUnavailable)
	}

	return resp.Data.Attributes.NextAction.Redirect.URL, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.secretKey, "")

	res, err := c.hc.Do(req)
	if err != nil {
		return errs.Mark(err, ErrGatewayUnavailable)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return errs.Mark(err, ErrGatewayUnavailable)
	}

	if res.StatusCode >= 400 {
		var gwErr struct {
			Errors []struct {
				Detail string `json:"detail"`
			} `json:"errors"`
		}
		_ = json.Unmarshal(raw, &gwErr)
		if len(gwErr.Errors) > 0 && gwErr.Errors[0].Detail != "" {
			return errs.Mark(
				fmt.Errorf("gateway rejected request: %s (status=%d)", gwErr.Errors[0].Detail, res.StatusCode),
				ErrGatewayUnavailable,
			)
		}
		return errs.Mark(fmt.Errorf("gateway rejected request (status=%d)", res.StatusCode), ErrGatewayUnavailable)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to decode gateway response"), ErrGatewayUnavailable)
	}

	return nil
}

func gatewayMethod(m reservation.PaymentMethod) string {
	if m == reservation.MethodMaya {
		return "paymaya"
	}
	return "gcash"
}
