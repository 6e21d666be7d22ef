package domain

import "time"

type Greeting struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type APIInfo struct {
	APIName        string `json:"api_name"`
	Version        string `json:"version"`
	Description    string `json:"description"`
	TotalEndpoints int    `json:"total_endpoints"`
}

type Echo struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
