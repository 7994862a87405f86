package dto

// ErrorResponse carries a user-facing failure message.
type ErrorResponse struct {
	Error string `json:"error"`
}
