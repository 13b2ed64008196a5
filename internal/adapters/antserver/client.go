// Package antserver contains the REST client for the ANT fleet
// controller.
package antserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/agvlog/internal/ports/secondary"
)

// Client talks to the ANT server REST API. It implements the
// MissionSubmitter, MissionQuerier and VehicleTelemetry ports.
//
// Every call runs under a bounded timeout so a stalled controller can
// never wedge a poll cycle.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client for the controller at baseURL. apiKey may
// be empty when the controller does not require authentication.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// submitRequest is the wire form of a mission submission.
type submitRequest struct {
	MissionType int    `json:"missiontype"`
	FromNode    string `json:"fromnode"`
	ToNode      string `json:"tonode"`
	Payload     string `json:"payload"`
	Reference   string `json:"reference,omitempty"`
}

// submitResponse is the controller's answer to a submission.
type submitResponse struct {
	RetCode int `json:"retcode"`
	Payload struct {
		AcceptedMissions []string `json:"acceptedmissions"`
	} `json:"payload"`
}

// Submit dispatches a mission to the controller.
func (c *Client) Submit(ctx context.Context, sub secondary.MissionSubmission) (*secondary.SubmitResult, error) {
	body, err := json.Marshal(submitRequest{
		MissionType: int(sub.Type),
		FromNode:    sub.FromNode,
		ToNode:      sub.ToNode,
		Payload:     sub.Payload,
		Reference:   sub.Reference,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode mission submission: %w", err)
	}

	var resp submitResponse
	if err := c.do(ctx, http.MethodPost, "/wms/rest/missions", body, &resp); err != nil {
		return nil, err
	}

	return &secondary.SubmitResult{
		RetCode:            secondary.RetCode(resp.RetCode),
		AcceptedMissionIDs: resp.Payload.AcceptedMissions,
	}, nil
}

// missionWire is the wire form of one mission in a query response.
type missionWire struct {
	MissionID       string `json:"missionid"`
	State           int    `json:"state"`
	NavigationState int    `json:"navigationstate"`
	TransportState  int    `json:"transportstate"`
	ArrivingTime    string `json:"arrivingtime"`
}

// missionsResponse is the controller's answer to a missions query.
type missionsResponse struct {
	RetCode int `json:"retcode"`
	Payload struct {
		Missions []missionWire `json:"missions"`
	} `json:"payload"`
}

// RecentMissions returns up to limit of the most recent missions,
// newest first.
func (c *Client) RecentMissions(ctx context.Context, limit int) ([]secondary.MissionStatus, error) {
	path := "/wms/rest/missions?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()

	var resp missionsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	missions := make([]secondary.MissionStatus, 0, len(resp.Payload.Missions))
	for _, m := range resp.Payload.Missions {
		missions = append(missions, secondary.MissionStatus{
			MissionID:       m.MissionID,
			State:           m.State,
			NavigationState: m.NavigationState,
			TransportState:  m.TransportState,
			ArrivingTime:    m.ArrivingTime,
		})
	}
	return missions, nil
}

// vehicleResponse is the controller's answer to a vehicle query. Every
// field may be absent and defaults to empty.
type vehicleResponse struct {
	State struct {
		VehicleState []string `json:"vehicle.state"`
		Errors       []string `json:"errors"`
		BatteryInfo  []string `json:"battery.info"`
		Messages     []string `json:"messages"`
	} `json:"state"`
	Alarms []string `json:"alarms"`
}

// Vehicle returns the telemetry snapshot for the named vehicle.
func (c *Client) Vehicle(ctx context.Context, name string) (*secondary.VehicleSnapshot, error) {
	path := "/wms/rest/vehicles/" + url.PathEscape(name)

	var resp vehicleResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return &secondary.VehicleSnapshot{
		States:   resp.State.VehicleState,
		Errors:   resp.State.Errors,
		Battery:  resp.State.BatteryInfo,
		Messages: resp.State.Messages,
		Alarms:   resp.Alarms,
	}, nil
}

// do performs one bounded-timeout request and decodes the JSON answer.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("controller request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("controller returned status %d for %s %s", resp.StatusCode, method, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode controller response: %w", err)
	}

	return nil
}

// Ensure Client implements the fleet ports
var (
	_ secondary.MissionSubmitter = (*Client)(nil)
	_ secondary.MissionQuerier   = (*Client)(nil)
	_ secondary.VehicleTelemetry = (*Client)(nil)
)
