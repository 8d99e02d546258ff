// Package smarty provides a client for the SmartyStreets US street-address
// verification API and maps its response space onto validation outcomes.
package smarty

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production verification endpoint.
const DefaultBaseURL = "https://us-street.api.smartystreets.com/street-address"

// DefaultTimeout bounds each verification call.
const DefaultTimeout = 10 * time.Second

// Sentinel status values persisted when no real verification result exists.
const (
	StatusNotValidated     = "Not Validated"
	StatusAPIError         = "API Error"
	StatusValidationFailed = "Validation Failed"
)

// Client calls the address verification service.
type Client struct {
	authID     string
	authToken  string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the verification endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a Client. Empty credentials are allowed; Validate then
// short-circuits to the "Not Validated" sentinel without any network call.
func New(authID, authToken string, opts ...Option) *Client {
	c := &Client{
		authID:     authID,
		authToken:  authToken,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.authID != "" && c.authToken != ""
}

// Validate checks one address against the verification service.
//
// Service-level failures (non-200, transport errors) degrade into sentinel
// outcomes and never return an error. The only returned error is a 200
// response whose body cannot be decoded; callers treat that as fatal for the
// enclosing request. No retries are performed.
func (c *Client) Validate(ctx context.Context, street, city, state, zipcode string) (Outcome, error) {
	if !c.Configured() {
		log.Printf("smarty: credentials not provided, skipping validation")
		return Outcome{Sentinel: StatusNotValidated}, nil
	}

	params := url.Values{}
	params.Set("auth-id", c.authID)
	params.Set("auth-token", c.authToken)
	params.Set("street", street)
	params.Set("city", city)
	params.Set("state", state)
	params.Set("zipcode", zipcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to create verification request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("smarty: address validation failed: %v", err)
		return Outcome{Sentinel: StatusValidationFailed}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("smarty: API error: %d", resp.StatusCode)
		return Outcome{Sentinel: StatusAPIError}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read verification response: %w", err)
	}

	var candidates []Candidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return Outcome{}, fmt.Errorf("failed to decode verification response: %w", err)
	}

	if len(candidates) == 0 {
		return Outcome{NoMatch: true}, nil
	}

	checkCandidateSchema(body)
	return Outcome{Candidates: candidates, raw: json.RawMessage(body)}, nil
}
