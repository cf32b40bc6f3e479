package dto

import "time"

type ActivityCountResponse struct {
	Type     string     `json:"type"`
	Count    int        `json:"count"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

type ActivitySummaryResponse struct {
	Events []ActivityCountResponse `json:"events"`
}
