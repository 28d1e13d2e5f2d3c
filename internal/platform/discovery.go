package platform

import (
	"context"
	"encoding/json"
	"fmt"
)

// PingResponse holds the parsed /ping/ response.
type PingResponse struct {
	Version string `json:"version"`
}

// ParsePingResponse extracts the version from a /ping/ JSON response body.
func ParsePingResponse(body []byte) (*PingResponse, error) {
	var resp PingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing ping response: %w", err)
	}
	if resp.Version == "" {
		return nil, fmt.Errorf("ping response missing version field")
	}
	return &resp, nil
}

// DiscoverVersion fetches and parses the platform version from the ping
// endpoint.
func DiscoverVersion(ctx context.Context, client *Client) (string, error) {
	body, err := client.Get(ctx, apiPrefix+"ping/", nil)
	if err != nil {
		return "", err
	}
	resp, err := ParsePingResponse(body)
	if err != nil {
		return "", err
	}
	return resp.Version, nil
}
