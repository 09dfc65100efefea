// Package inventory is the client for the device inventory GraphQL API,
// which tracks every manufactured orb as a FLASHED device record.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/worldcoin/orb-registration/internal/identity"
)

// insertOrbMutation registers one device record. The on_conflict clause
// makes a duplicate insert affect zero rows instead of erroring, which
// RegisterDevice then reports as a LogicError.
const insertOrbMutation = `
mutation InsertOrb(
	$deviceId: String,
	$name: String!,
	$deviceType: orbDeviceTypeEnum_enum!,
	$isDevelopment: Boolean!
) {
	insert_orb(
		objects: [{
			name: $name,
			deviceId: $deviceId,
			status: FLASHED,
			deviceType: $deviceType,
			isDevelopment: $isDevelopment
		}],
		on_conflict: {constraint: orb_pkey}
	) {
		affected_rows
	}
}`

// Client talks to the inventory GraphQL endpoint.
type Client struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
}

func NewClient(endpoint, authToken string) *Client {
	return &Client{
		endpoint:   endpoint,
		authToken:  authToken,
		httpClient: &http.Client{},
	}
}

// BackendError is a non-2xx response from the inventory API with its
// body preserved verbatim.
type BackendError struct {
	Status int
	Body   string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("inventory API error (status %d): %s", e.Status, e.Body)
}

// LogicError reports a mutation that was accepted by the transport but
// did not land exactly one row. The full response body is kept because
// GraphQL reports errors inside a 200 response.
type LogicError struct {
	AffectedRows int
	Body         string
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("inventory registration affected %d rows, want 1: %s", e.AffectedRows, e.Body)
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type insertOrbResponse struct {
	Data struct {
		InsertOrb struct {
			AffectedRows int `json:"affected_rows"`
		} `json:"insert_orb"`
	} `json:"data"`
}

// RegisterDevice inserts the orb's device record. deviceType is the
// hardware version string, and isDevelopment marks dev-release units.
// Success requires the mutation to affect exactly one row.
func (c *Client) RegisterDevice(ctx context.Context, id identity.OrbID, name, deviceType string, isDevelopment bool) error {
	payload := graphqlRequest{
		Query: insertOrbMutation,
		Variables: map[string]any{
			"deviceId":      id.String(),
			"name":          name,
			"deviceType":    deviceType,
			"isDevelopment": isDevelopment,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mutation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("register orb %s in inventory: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("register orb %s in inventory: %w", id, &BackendError{Status: resp.StatusCode, Body: string(body)})
	}

	var out insertOrbResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("parse inventory response: %w", err)
	}

	if rows := out.Data.InsertOrb.AffectedRows; rows != 1 {
		return fmt.Errorf("register orb %s in inventory: %w", id, &LogicError{AffectedRows: rows, Body: string(body)})
	}
	return nil
}
