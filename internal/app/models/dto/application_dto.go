package dto

// SubmitApplicationRequest is the student submission payload
type SubmitApplicationRequest struct {
	PositionID      int64    `json:"position_id" binding:"required"`
	ApplyReason     string   `json:"apply_reason" binding:"required"`
	HasCommunicated bool     `json:"has_communicated"`
	Materials       []string `json:"materials"`
}

// DecisionRequest is the administrator review payload. Status accepts
// "approved" or "rejected"; the idempotency key protects a retried approval
// from creating a second workload record.
type DecisionRequest struct {
	Status         string   `json:"status" binding:"required,oneof=approved rejected"`
	Note           string   `json:"note"`
	FinalScore     *float64 `json:"final_score"`
	IdempotencyKey string   `json:"idempotency_key"`
}

// StatusDistribution is the per-status application count summary
type StatusDistribution struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Withdrawn int `json:"withdrawn"`
}
