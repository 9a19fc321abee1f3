package dto

import "time"

// APIResponse is the standard envelope for successful endpoint responses
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// ResultList is the typed report envelope: report endpoints always answer
// with {"results": [...]}, never a bare array, so decoding failures surface
// as errors instead of silently degrading to empty.
type ResultList[T any] struct {
	Results []T `json:"results"`
}
