package client

import (
	"context"
	"fmt"
)

// AlertService handles alert-related API calls
type AlertService struct {
	client *Client
}

// List retrieves alerts, optionally only unread ones
func (s *AlertService) List(ctx context.Context, unreadOnly bool) (*AlertsResponse, error) {
	path := "/api/v1/alerts"
	if unreadOnly {
		path += "?unread_only=true"
	}

	var resp AlertsResponse
	if err := s.client.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MarkRead marks an alert as read
func (s *AlertService) MarkRead(ctx context.Context, id int64) (*StatusResponse, error) {
	path := fmt.Sprintf("/api/v1/alerts/%d/read", id)

	var resp StatusResponse
	if err := s.client.doRequest(ctx, "PUT", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
