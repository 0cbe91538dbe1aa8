package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ScanService handles file scanning API calls
type ScanService struct {
	client *Client
}

// ScanFile uploads a file for scanning and returns its verdict
func (s *ScanService) ScanFile(ctx context.Context, fileName string, content io.Reader) (*ScanResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.client.baseURL+"/api/scan", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var resp ScanResult
	if err := s.client.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LookupHash checks a file hash against the known-malware database
func (s *ScanService) LookupHash(ctx context.Context, hash string) (*HashLookup, error) {
	var resp HashLookup
	if err := s.client.doRequest(ctx, "GET", "/api/lookup/"+hash, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats retrieves scanner statistics
func (s *ScanService) Stats(ctx context.Context) (*ScanStats, error) {
	var resp ScanStats
	if err := s.client.doRequest(ctx, "GET", "/api/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Config retrieves the scanner protection configuration
func (s *ScanService) Config(ctx context.Context) (*ScanConfig, error) {
	var resp ScanConfig
	if err := s.client.doRequest(ctx, "GET", "/api/config", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
