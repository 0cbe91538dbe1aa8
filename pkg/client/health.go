package client

import "context"

// HealthService handles health check API calls
type HealthService struct {
	client *Client
}

// Check retrieves the service liveness status
func (s *HealthService) Check(ctx context.Context) (*HealthStatus, error) {
	var resp HealthStatus
	if err := s.client.doRequest(ctx, "GET", "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
