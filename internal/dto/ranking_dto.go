package dto

type RankingEntry struct {
	Rank       int    `json:"rank"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Points     int64  `json:"points"`
}

type RankingResponse struct {
	TenantID string         `json:"tenant_id"`
	Limit    int            `json:"limit"`
	Entries  []RankingEntry `json:"entries"`
}
