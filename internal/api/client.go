// Package api implements the HTTP client for the investment-control service.
// Every method performs a single round trip and maps the outcome onto model
// types or a *TransportError; retries and caching are left to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsaniceto14/investctl/internal/model"
)

const (
	defaultCollectionPath = "/investments"
	defaultAuthPath       = "/register"
	defaultTimeout        = 30 * time.Second

	dateLayout = "2006-01-02"
)

// Config controls how the client reaches the service.
type Config struct {
	BaseURL        string        // e.g. "http://localhost:8600"
	CollectionPath string        // defaults to "/investments"
	AuthPath       string        // defaults to "/register"
	Timeout        time.Duration // per-request timeout, defaults to 30s
}

// Client talks to the investment-control API. It holds no collection state;
// the caller owns what to do with fetched pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	collection string
	auth       string
}

// NewClient validates cfg and returns a ready client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("API base URL %q must be http or https", cfg.BaseURL)
	}

	collection := cfg.CollectionPath
	if collection == "" {
		collection = defaultCollectionPath
	}
	auth := cfg.AuthPath
	if auth == "" {
		auth = defaultAuthPath
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimSuffix(base.String(), "/"),
		collection: collection,
		auth:       auth,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// pageResponse is the envelope the service wraps collection pages in. Only
// content is read; the surrounding paging metadata is ignored. The pointer
// distinguishes a missing content field from an empty page.
type pageResponse struct {
	Content *[]investmentPayload `json:"content"`
}

// investmentPayload mirrors one record on the wire. Pointer fields
// distinguish absent from zero so validation can reject incomplete records.
type investmentPayload struct {
	ID     *int64           `json:"id"`
	Name   *string          `json:"name"`
	Type   *string          `json:"type"`
	Amount *decimal.Decimal `json:"amount"`
	Date   *string          `json:"date"`
}

func (p investmentPayload) toModel() (model.Investment, error) {
	switch {
	case p.ID == nil:
		return model.Investment{}, fmt.Errorf("missing id")
	case p.Name == nil || *p.Name == "":
		return model.Investment{}, fmt.Errorf("missing name")
	case p.Type == nil:
		return model.Investment{}, fmt.Errorf("missing type")
	case p.Amount == nil:
		return model.Investment{}, fmt.Errorf("missing amount")
	case p.Amount.IsNegative():
		return model.Investment{}, fmt.Errorf("negative amount %s", p.Amount)
	case p.Date == nil:
		return model.Investment{}, fmt.Errorf("missing date")
	}
	date, err := time.Parse(dateLayout, *p.Date)
	if err != nil {
		return model.Investment{}, fmt.Errorf("invalid date %q: %w", *p.Date, err)
	}
	return model.Investment{
		ID:     *p.ID,
		Name:   *p.Name,
		Type:   *p.Type,
		Amount: *p.Amount,
		Date:   date,
	}, nil
}

// investmentBody is the JSON body for create and update calls. Amounts travel
// as bare JSON numbers.
type investmentBody struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Amount json.Number `json:"amount"`
	Date   string      `json:"date"`
	ID     int64       `json:"id,omitempty"`
}

// FetchPage retrieves one page of the collection. page is the zero-based
// index the service expects; callers working with 1-based pages convert
// before calling.
func (c *Client) FetchPage(ctx context.Context, page, size int) ([]model.Investment, error) {
	const op = "load investments"

	u := c.baseURL + c.collection
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u += "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !is2xx(resp.StatusCode) {
		return nil, statusError(op, resp)
	}

	var payload pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if payload.Content == nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("response has no content field")}
	}

	investments := make([]model.Investment, 0, len(*payload.Content))
	for i, item := range *payload.Content {
		inv, err := item.toModel()
		if err != nil {
			return nil, &TransportError{Op: op, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		investments = append(investments, inv)
	}
	return investments, nil
}

// Delete removes one record from the remote store. No idempotency is assumed:
// deleting an id that is already gone surfaces whatever the service replies.
func (c *Client) Delete(ctx context.Context, id int64) error {
	const op = "delete investment"

	u := fmt.Sprintf("%s%s/%d", c.baseURL, c.collection, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !is2xx(resp.StatusCode) {
		return statusError(op, resp)
	}
	return nil
}

// Create stores a new investment. The created record is not returned; callers
// re-fetch the page they are looking at after a successful save.
func (c *Client) Create(ctx context.Context, inv model.Investment) error {
	return c.save(ctx, http.MethodPost, c.baseURL+c.collection, inv, false)
}

// Update replaces the record with inv.ID.
func (c *Client) Update(ctx context.Context, inv model.Investment) error {
	u := fmt.Sprintf("%s%s/%d", c.baseURL, c.collection, inv.ID)
	return c.save(ctx, http.MethodPut, u, inv, true)
}

func (c *Client) save(ctx context.Context, method, u string, inv model.Investment, includeID bool) error {
	const op = "save investment"

	body := investmentBody{
		Name:   inv.Name,
		Type:   inv.Type,
		Amount: json.Number(inv.Amount.String()),
		Date:   inv.Date.Format(dateLayout),
	}
	if includeID {
		body.ID = inv.ID
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(jsonBody))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !is2xx(resp.StatusCode) {
		return statusError(op, resp)
	}
	return nil
}

// Register creates a service account with the given credentials. One POST,
// no session handling, no retry.
func (c *Client) Register(ctx context.Context, username, password string) error {
	const op = "register account"

	creds := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}
	jsonBody, err := json.Marshal(creds)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.auth, bytes.NewReader(jsonBody))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !is2xx(resp.StatusCode) {
		return statusError(op, resp)
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// statusError turns a non-2xx response into a TransportError, keeping a
// trimmed copy of the body for the message.
func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &TransportError{
		Op:     op,
		Status: resp.StatusCode,
		Err:    fmt.Errorf("service returned %d: %s", resp.StatusCode, msg),
	}
}
