package transport

// Message is the body of operations that only acknowledge success.
type Message struct {
	Message string `json:"message"`
}

// Created acknowledges a new record.
type Created struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// ErrorBody is returned with every non-2xx API response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewError returns an error body.
func NewError(code string, message string) ErrorBody {
	return ErrorBody{Error: message, Code: code}
}
