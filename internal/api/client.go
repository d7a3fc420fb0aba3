package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxUploadSize caps image uploads client-side so an oversized file never
// costs a round trip. The backend stores small images inline as data URLs.
const MaxUploadSize = 1 << 20

// Client is the REST client for the marketplace backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a marketplace client.
//
// baseURL is the API root, e.g. "https://debazaar.click/api".
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// TelegramAuth exchanges a chat-platform identity for a marketplace user.
func (c *Client) TelegramAuth(ctx context.Context, req AuthRequest) (*User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/telegram/", nil, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "auth rejected"}
	}
	return &User{ID: resp.UserID, Username: resp.Username, FirstName: resp.FirstName, TelegramID: resp.TelegramID}, nil
}

// ListingsQuery narrows the listings feed. Zero values mean no filter.
type ListingsQuery struct {
	Search string
	Seller string
}

// Listings returns active listings, newest first.
func (c *Client) Listings(ctx context.Context, q ListingsQuery) ([]Listing, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Seller != "" {
		params.Set("seller", q.Seller)
	}
	var resp listingsResponse
	if err := c.do(ctx, http.MethodGet, "/listings/", params, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Listings, nil
}

// Listing fetches a single listing by id.
func (c *Client) Listing(ctx context.Context, id int) (*Listing, error) {
	var l Listing
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/listings/%d/", id), nil, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateListing publishes a new listing.
func (c *Client) CreateListing(ctx context.Context, data CreateListingData) (*CreateListingResponse, error) {
	var resp CreateListingResponse
	if err := c.do(ctx, http.MethodPost, "/listings/", nil, data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteListing soft-deletes a listing. The backend rejects the call when
// sellerID does not own the listing.
func (c *Client) DeleteListing(ctx context.Context, id int, sellerID string) error {
	body := map[string]string{"seller_id": sellerID}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/listings/%d/delete/", id), nil, body, nil)
}

// CreateOrder starts the escrow flow for a listing.
func (c *Client) CreateOrder(ctx context.Context, data CreateOrderData) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders/", nil, data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Order fetches an order by its server-assigned id.
func (c *Client) Order(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID)+"/", nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Deposit runs the simulated escrow deposit for an order.
func (c *Client) Deposit(ctx context.Context, orderID, buyerAddress string) (*DepositResponse, error) {
	body := map[string]string{"buyer_address": buyerAddress}
	var resp DepositResponse
	if err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/deposit/", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConfirmDelivery confirms receipt of the digital goods, releasing escrow.
func (c *Client) ConfirmDelivery(ctx context.Context, orderID string) (*ConfirmResponse, error) {
	var resp ConfirmResponse
	if err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/confirm/", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload stores an image file. Files over MaxUploadSize are rejected
// before any request is made.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (*UploadResponse, error) {
	if int64(len(data)) > MaxUploadSize {
		return nil, &ValidationError{Field: "image", Reason: "file too large, maximum size is 1MB"}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("upload: build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("upload: write form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("upload: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/", &buf)
	if err != nil {
		return nil, fmt.Errorf("upload: create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp UploadResponse
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Str("method", req.Method).Str("url", req.URL.Path).Err(err).Msg("request failed")
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// errorMessage pulls the server's message out of an error body. The backend
// uses both {"error": …} and {"detail": …}; anything else is passed through
// raw so the user still sees something actionable.
func errorMessage(raw []byte) string {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Detail != "" {
			return body.Detail
		}
	}
	return strings.TrimSpace(string(raw))
}
