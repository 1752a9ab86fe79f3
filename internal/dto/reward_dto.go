package dto

type CreateRewardRequest struct {
	Name           string `json:"name"            validate:"required,min=1,max=120"`
	PointsRequired int64  `json:"points_required" validate:"required,gt=0"`
}

type UpdateRewardRequest struct {
	Name           string `json:"name"            validate:"omitempty,min=1,max=120"`
	PointsRequired *int64 `json:"points_required" validate:"omitempty,gt=0"`
}

type RewardResponse struct {
	ID             string `json:"id"`
	TenantID       string `json:"tenant_id"`
	Name           string `json:"name"`
	PointsRequired int64  `json:"points_required"`
	Active         bool   `json:"active"`
}
