package client

import "context"

// DashboardService handles dashboard metrics API calls
type DashboardService struct {
	client *Client
}

// Metrics retrieves the aggregate dashboard snapshot
func (s *DashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	var resp DashboardMetrics
	if err := s.client.doRequest(ctx, "GET", "/api/v1/dashboard/metrics", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
