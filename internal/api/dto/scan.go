package dto

// ScanHistoryResponse is the placeholder scan history payload.
type ScanHistoryResponse struct {
	Scans   []interface{} `json:"scans"`
	Total   int           `json:"total"`
	Message string        `json:"message"`
}
