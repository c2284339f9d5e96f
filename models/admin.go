package models

// UserOverview is one row of the admin overview.
type UserOverview struct {
	UserID         int64    `json:"userId"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           Role     `json:"role"`
	Status         Status   `json:"status"`
	TotalFiles     int      `json:"totalFiles"`
	WorkedFiles    []string `json:"workedFiles"`
	UntouchedFiles []string `json:"untouchedFiles"`
}
