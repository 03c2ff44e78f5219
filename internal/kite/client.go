// Package kite is a thin REST client for the Zerodha Kite Connect v3 API.
package kite

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	baseURL     = "https://api.kite.trade"
	loginURL    = "https://kite.trade/connect/login"
	kiteVersion = "3"
)

// Error is the structured error envelope Kite returns on failed calls.
type Error struct {
	Message    string
	ErrorType  string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "unknown Kite API error"
	}
	return e.Message
}

// envelope is Kite's uniform response wrapper.
type envelope struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	ErrorType string          `json:"error_type"`
	Data      json.RawMessage `json:"data"`
}

// Client calls the Kite Connect API. A Client without an access token can
// only generate login URLs and exchange request tokens; WithAccessToken
// derives an authorized client for a logged-in user.
type Client struct {
	apiKey      string
	apiSecret   string
	accessToken string
	http        *resty.Client
}

func New(apiKey, apiSecret string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("X-Kite-Version", kiteVersion)

	return &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		http:      http,
	}
}

// WithAccessToken returns a client that authorizes requests with the given
// token. The underlying HTTP client is shared.
func (c *Client) WithAccessToken(token string) *Client {
	clone := *c
	clone.accessToken = token
	return &clone
}

// SetBaseURL points the client at a different API host. Used in tests.
func (c *Client) SetBaseURL(u string) {
	c.http.SetBaseURL(u)
}

// LoginURL is the Kite Connect login page users open to obtain a request
// token.
func (c *Client) LoginURL() string {
	return fmt.Sprintf("%s?api_key=%s&v=%s", loginURL, c.apiKey, kiteVersion)
}

// GenerateSession exchanges a request token for an access token. The
// checksum is SHA-256 over api_key + request_token + api_secret.
func (c *Client) GenerateSession(ctx context.Context, requestToken string) (*UserSession, error) {
	sum := sha256.Sum256([]byte(c.apiKey + requestToken + c.apiSecret))

	var session UserSession
	if err := c.postForm(ctx, "/session/token", map[string]string{
		"api_key":       c.apiKey,
		"request_token": requestToken,
		"checksum":      hex.EncodeToString(sum[:]),
	}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) Profile(ctx context.Context) (map[string]any, error) {
	var profile map[string]any
	if err := c.get(ctx, "/user/profile", &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *Client) Holdings(ctx context.Context) ([]Holding, error) {
	var holdings []Holding
	if err := c.get(ctx, "/portfolio/holdings", &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

func (c *Client) Positions(ctx context.Context) (*Positions, error) {
	var positions Positions
	if err := c.get(ctx, "/portfolio/positions", &positions); err != nil {
		return nil, err
	}
	return &positions, nil
}

func (c *Client) Margins(ctx context.Context) (*Margins, error) {
	var margins Margins
	if err := c.get(ctx, "/user/margins", &margins); err != nil {
		return nil, err
	}
	return &margins, nil
}

// PlaceOrder submits a regular order. Variety defaults to "regular".
func (c *Client) PlaceOrder(ctx context.Context, params OrderParams) (*OrderResponse, error) {
	variety := params.Variety
	if variety == "" {
		variety = "regular"
	}

	form := map[string]string{
		"exchange":         params.Exchange,
		"tradingsymbol":    params.Tradingsymbol,
		"transaction_type": params.TransactionType,
		"quantity":         strconv.Itoa(params.Quantity),
		"product":          params.Product,
		"order_type":       params.OrderType,
		"validity":         params.Validity,
	}
	if params.Price > 0 {
		form["price"] = strconv.FormatFloat(params.Price, 'f', -1, 64)
	}
	if params.TriggerPrice > 0 {
		form["trigger_price"] = strconv.FormatFloat(params.TriggerPrice, 'f', -1, 64)
	}

	var resp OrderResponse
	if err := c.postForm(ctx, "/orders/"+variety, form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderHistory returns the state transitions of one order, oldest first.
func (c *Client) OrderHistory(ctx context.Context, orderID string) ([]Order, error) {
	var history []Order
	if err := c.get(ctx, "/orders/"+orderID, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *Client) MFHoldings(ctx context.Context) ([]MFHolding, error) {
	var holdings []MFHolding
	if err := c.get(ctx, "/mf/holdings", &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

func (c *Client) MFOrders(ctx context.Context) ([]MFOrder, error) {
	var orders []MFOrder
	if err := c.get(ctx, "/mf/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) MFOrder(ctx context.Context, orderID string) (*MFOrder, error) {
	var order MFOrder
	if err := c.get(ctx, "/mf/orders/"+orderID, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) MFSIPs(ctx context.Context) ([]MFSIP, error) {
	var sips []MFSIP
	if err := c.get(ctx, "/mf/sips", &sips); err != nil {
		return nil, err
	}
	return sips, nil
}

// MFInstruments returns the raw CSV dump of tradable mutual-fund schemes.
func (c *Client) MFInstruments(ctx context.Context) (string, error) {
	resp, err := c.request(ctx).Get("/mf/instruments")
	if err != nil {
		return "", fmt.Errorf("fetch mf instruments: %w", err)
	}
	if resp.IsError() {
		return "", decodeError(resp)
	}
	return resp.String(), nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.accessToken != "" {
		req.SetHeader("Authorization", "token "+c.apiKey+":"+c.accessToken)
	}
	return req
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.request(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return unwrap(resp, out)
}

func (c *Client) postForm(ctx context.Context, path string, form map[string]string, out any) error {
	resp, err := c.request(ctx).SetFormData(form).Post(path)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	return unwrap(resp, out)
}

// unwrap decodes Kite's envelope, turning error responses into *Error and
// unmarshalling the data payload on success.
func unwrap(resp *resty.Response, out any) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.IsError() {
			return &Error{Message: resp.Status(), StatusCode: resp.StatusCode()}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.IsError() || env.Status == "error" {
		return &Error{
			Message:    env.Message,
			ErrorType:  env.ErrorType,
			StatusCode: resp.StatusCode(),
		}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func decodeError(resp *resty.Response) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil || env.Message == "" {
		return &Error{Message: resp.Status(), StatusCode: resp.StatusCode()}
	}
	return &Error{Message: env.Message, ErrorType: env.ErrorType, StatusCode: resp.StatusCode()}
}
