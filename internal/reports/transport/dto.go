// Package transport defines the reports module's response DTOs.
package transport

import "time"

// SummaryResponse is the list view of one report.
type SummaryResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	IssueID   string    `json:"issueId"`
	StationID string    `json:"stationId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListResponse wraps a page of report summaries.
type ListResponse struct {
	Items []SummaryResponse `json:"items"`
	Total int               `json:"total"`
}
