package dto

// HistoryEntry is one normalised row of an employee's history feed.
type HistoryEntry struct {
	Kind        string `json:"kind"` // assignment | redemption
	ID          string `json:"id"`
	Date        string `json:"date"`   // RFC 3339
	Amount      int64  `json:"amount"` // negative for redemptions
	Description string `json:"description"`
}

type EmployeeHistoryResponse struct {
	EmployeeID string         `json:"employee_id"`
	Balance    int64          `json:"balance"`
	Entries    []HistoryEntry `json:"entries"`
}

// AssignmentItem is one row of the tenant-wide assignment history.
type AssignmentItem struct {
	ID                string `json:"id"`
	AdminEmail        string `json:"admin_email"`
	EmployeeID        string `json:"employee_id"`
	EmployeeEmail     string `json:"employee_email"`
	EmployeeName      string `json:"employee_name"`
	Amount            int64  `json:"amount"`
	JustificationText string `json:"justification_text"`
	CreatedAt         string `json:"created_at"`
}

// AssignmentListResponse is one page of GET /v1/history/tenant. HasMore is
// true while later pages remain; Data alone is not the full history.
type AssignmentListResponse struct {
	Data    []AssignmentItem `json:"data"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
	HasMore bool             `json:"has_more"`
}
