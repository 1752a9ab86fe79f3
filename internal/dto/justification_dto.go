package dto

type CreateJustificationRequest struct {
	Text string `json:"text" validate:"required,min=1,max=200"`
}

type JustificationResponse struct {
	ID       string  `json:"id"`
	TenantID *string `json:"tenant_id"` // nil for global justifications
	Text     string  `json:"text"`
	Global   bool    `json:"global"`
}
