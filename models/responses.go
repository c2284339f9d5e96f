package models

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is returned by endpoints that only acknowledge an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// UploadResponse is returned by a successful upload.
type UploadResponse struct {
	Message    string `json:"message"`
	File       File   `json:"file"`
	ParsedRows int    `json:"parsedRows"`
}

// ParsedRowsResponse wraps the parsed rows of a file.
type ParsedRowsResponse struct {
	Data []Row `json:"data"`
}

// InsightsResponse wraps generated insight lines.
type InsightsResponse struct {
	Insights []string `json:"insights"`
}

// CountResponse wraps a single counter.
type CountResponse struct {
	Count int64 `json:"count"`
}
