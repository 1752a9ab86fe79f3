package dto

// CreateUserRequest provisions an identity plus its profile. The role is
// implied by the endpoint: Managers create Admins, Admins create Employees.
type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateProfileRequest changes display data only. The e-mail is the sign-in
// identity and cannot be changed here.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type ProfileResponse struct {
	ID       string  `json:"id"`
	Role     string  `json:"role"`
	TenantID *string `json:"tenant_id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Points   int64   `json:"points"`
	Active   bool    `json:"active"`
}
