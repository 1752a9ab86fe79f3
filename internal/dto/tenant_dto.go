package dto

type CreateTenantRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

type UpdateTenantRequest struct {
	Name   string `json:"name"   validate:"omitempty,min=2,max=120"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive pending_payment"`
}

type TenantResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
