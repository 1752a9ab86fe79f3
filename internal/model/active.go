package model

// isActive resolves the tri-state active flag shared by profiles, rewards and
// justifications: NULL (field never written) counts as active.
func isActive(flag *bool) bool {
	return flag == nil || *flag
}

// ActiveFlag returns a pointer suitable for the is_active columns.
func ActiveFlag(v bool) *bool { return &v }
