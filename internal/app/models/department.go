package models

// Department represents a department; pure reference data for the portal
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
