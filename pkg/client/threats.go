package client

import (
	"context"
	"fmt"
	"strconv"
)

// ThreatService handles log analysis and threat response API calls
type ThreatService struct {
	client *Client
}

// Analyze submits a log event for anomaly scoring
func (s *ThreatService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	var resp AnalyzeResponse
	if err := s.client.doRequest(ctx, "POST", "/api/v1/analyze", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListActive retrieves all currently active threats
func (s *ThreatService) ListActive(ctx context.Context) (*ActiveThreatsResponse, error) {
	var resp ActiveThreatsResponse
	if err := s.client.doRequest(ctx, "GET", "/api/v1/threats/active", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History retrieves up to limit most recent threats. A non-positive limit
// uses the server default.
func (s *ThreatService) History(ctx context.Context, limit int) (*ThreatHistoryResponse, error) {
	path := "/api/v1/threats/history"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp ThreatHistoryResponse
	if err := s.client.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Respond initiates automated incident response against an active threat.
// An empty action uses the default auto-mitigation playbook.
func (s *ThreatService) Respond(ctx context.Context, id int64, action string) (*RespondResponse, error) {
	path := fmt.Sprintf("/api/v1/threats/%d/respond", id)

	var body interface{}
	if action != "" {
		body = map[string]string{"action": action}
	}

	var resp RespondResponse
	if err := s.client.doRequest(ctx, "POST", path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
