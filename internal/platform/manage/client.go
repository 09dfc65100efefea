// Package manage is the client for the orb management API: record
// creation, channel assignment, and access token issuance.
package manage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/worldcoin/orb-registration/internal/identity"
)

// userAgent is the client string the access gateway expects.
const userAgent = "curl/8.1.2"

// Client talks to the management API of one environment.
type Client struct {
	baseURL     string
	authToken   string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a management API client. authToken is the long-lived
// bearer credential; accessToken the short-lived gateway token fetched at
// the start of the run.
func NewClient(baseURL, authToken, accessToken string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		authToken:   authToken,
		accessToken: accessToken,
		httpClient:  &http.Client{},
	}
}

// BackendError is a non-2xx response from the management API, with the
// response body preserved verbatim for the operator.
type BackendError struct {
	Status int
	Body   string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("management API error (status %d): %s", e.Status, e.Body)
}

// IsConflict reports whether err is a conflict response, meaning the
// resource already exists.
func IsConflict(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Status == http.StatusConflict
}

type createRequest struct {
	BuildVersion     string `json:"BuildVersion"`
	ManufacturerName string `json:"ManufacturerName"`
	Platform         string `json:"Platform"`
}

type createResponse struct {
	Name string `json:"name"`
}

type detailsResponse struct {
	Name string `json:"Name"`
}

type channelRequest struct {
	Channel string `json:"channel"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// CreateOrFetch registers the orb and returns its display name. A
// conflict response means the orb is already registered; the existing
// record's name is looked up and returned with existed set. Any other
// non-2xx response is fatal.
func (c *Client) CreateOrFetch(ctx context.Context, id identity.OrbID, buildVersion, manufacturer, platform string) (string, bool, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/orbs/"+id.String(), createRequest{
		BuildVersion:     buildVersion,
		ManufacturerName: manufacturer,
		Platform:         platform,
	})
	if err != nil {
		return "", false, err
	}

	var out createResponse
	if err := c.do(req, &out); err != nil {
		if IsConflict(err) {
			name, ferr := c.fetchName(ctx, id)
			if ferr != nil {
				return "", false, fmt.Errorf("orb %s already exists but lookup failed: %w", id, ferr)
			}
			return name, true, nil
		}
		return "", false, fmt.Errorf("create orb %s: %w", id, err)
	}

	if out.Name == "" {
		return "", false, fmt.Errorf("create orb %s: response carries no name", id)
	}
	return out.Name, false, nil
}

// fetchName returns the display name of an already registered orb.
func (c *Client) fetchName(ctx context.Context, id identity.OrbID) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/orbs/"+id.String()+"/details", nil)
	if err != nil {
		return "", err
	}

	var out detailsResponse
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("fetch orb %s details: %w", id, err)
	}

	if out.Name == "" {
		return "", fmt.Errorf("no name found for orb %s in details response", id)
	}
	return out.Name, nil
}

// SetChannel assigns the update channel for the orb.
func (c *Client) SetChannel(ctx context.Context, id identity.OrbID, channel string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/orbs/"+id.String()+"/channel", channelRequest{Channel: channel})
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("set channel for orb %s: %w", id, err)
	}
	return nil
}

// IssueToken obtains the orb's access token. The token ends up inside the
// unit's persistent images and must never be logged.
func (c *Client) IssueToken(ctx context.Context, id identity.OrbID) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/tokens?orbId="+id.String(), struct{}{})
	if err != nil {
		return "", err
	}

	var out tokenResponse
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("issue token for orb %s: %w", id, err)
	}

	if out.Token == "" {
		return "", fmt.Errorf("issue token for orb %s: response carries no token", id)
	}
	return out.Token, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.authToken)
	req.Header.Set("User-Agent", userAgent)
	// Assigned directly to keep the lowercase name the gateway expects,
	// bypassing Go's header canonicalization.
	req.Header["cf-access-token"] = []string{c.accessToken}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &BackendError{Status: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w (status %d)", err, resp.StatusCode)
	}
	return nil
}
