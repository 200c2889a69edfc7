// Package payment wraps the hosted payment gateway: intent creation over its
// REST API and HMAC verification of the signature it returns in callbacks.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config holds the merchant credentials and endpoint for the gateway.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

// Gateway is an HTTP client for the payment provider.
type Gateway struct {
	cfg        Config
	httpClient *http.Client
}

// GatewayOrder is the remote payment intent registered for an order draft.
type GatewayOrder struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
	CreatedAtTS int64  `json:"created_at"`
}

// New creates a Gateway with a bounded-timeout HTTP client.
func New(cfg Config) *Gateway {
	return &Gateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// KeyID returns the public key identifier clients embed in the checkout widget.
func (g *Gateway) KeyID() string {
	return g.cfg.KeyID
}

// CreateOrder registers a payment intent for the given amount in minor
// currency units and returns the gateway-side order.
func (g *Gateway) CreateOrder(ctx context.Context, amountPaisa int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountPaisa,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling gateway request: %w", err)
	}

	url := g.cfg.BaseURL + "/v1/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", g.basicAuth())

	log.WithFields(log.Fields{
		"amount":   amountPaisa,
		"currency": currency,
		"receipt":  receipt,
	}).Debug("Creating gateway payment order")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("payment gateway error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var order GatewayOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("error unmarshaling gateway response: %w", err)
	}

	log.WithField("gateway_order_id", order.ID).Info("Gateway payment order created")
	return &order, nil
}

// VerifySignature recomputes HMAC-SHA256(secret, orderID + "|" + paymentID)
// and compares it to the signature supplied by the gateway callback.
// Comparison is constant-time; any single-character difference fails.
func (g *Gateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.cfg.KeySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// basicAuth builds the Authorization header from the merchant key pair.
func (g *Gateway) basicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(g.cfg.KeyID+":"+g.cfg.KeySecret))
}
