package dto

// AssignPointsRequest grants (amount > 0) or deducts (amount < 0) points.
// Zero is rejected by the service with a validation error.
type AssignPointsRequest struct {
	EmployeeID      string `json:"employee_id"      validate:"required,uuid"`
	Amount          int64  `json:"amount"`
	JustificationID string `json:"justification_id" validate:"required,uuid"`
}

type AssignPointsResponse struct {
	AssignmentID string `json:"assignment_id"`
	EmployeeID   string `json:"employee_id"`
	Amount       int64  `json:"amount"`
	NewBalance   int64  `json:"new_balance"`
}

type RedeemRequest struct {
	RewardID string `json:"reward_id" validate:"required,uuid"`
}

type RedeemResponse struct {
	RedemptionID string `json:"redemption_id"`
	RewardName   string `json:"reward_name"`
	PointsCost   int64  `json:"points_cost"`
	NewBalance   int64  `json:"new_balance"`
}

// BalanceDrift reports a profile whose stored balance differs from the sum of
// its applied ledger records.
type BalanceDrift struct {
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Stored     int64  `json:"stored"`
	Expected   int64  `json:"expected"`
	Difference int64  `json:"difference"`
}

type AuditResponse struct {
	TenantID string         `json:"tenant_id"`
	Checked  int            `json:"checked"`
	Drifts   []BalanceDrift `json:"drifts"`
}
