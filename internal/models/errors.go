package models

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse acknowledges deletions.
type MessageResponse struct {
	Message string `json:"message"`
}
