// Package razorpay is a minimal Razorpay Orders API client covering order
// creation and payment signature verification.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.razorpay.com"

// Client creates orders and verifies payment signatures.
type Client interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// OrderRequest is the request body for POST /v1/orders.
type OrderRequest struct {
	Amount   int               `json:"amount"` // smallest currency unit (paise)
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// Order is the created order returned by Razorpay.
type Order struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

// NewClient creates a Razorpay API client authenticated with the given key
// pair.
func NewClient(keyID, keySecret string, opts ...Option) Client {
	c := &httpClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "razorpay: marshal order")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "razorpay: build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "razorpay: create order")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, eris.Wrap(err, "razorpay: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("razorpay: create order status %d: %s", resp.StatusCode, respBody)
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, eris.Wrap(err, "razorpay: unmarshal order")
	}
	return &order, nil
}

// VerifySignature checks the checkout callback signature:
// hex(HMAC-SHA256("<order_id>|<payment_id>", key_secret)). The comparison
// is constant-time.
func (c *httpClient) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
