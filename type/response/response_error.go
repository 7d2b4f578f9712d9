package response

type ErrorResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
	Errors  any     `json:"errors,omitempty"`
}

func Error(msg any) *ErrorResponse {
	if message, ok := msg.(string); ok {
		return &ErrorResponse{
			Success: false,
			Message: &message,
		}
	}

	unknown := "Unknown Error"
	return &ErrorResponse{
		Success: false,
		Message: &unknown,
	}
}

// ErrorWithDetails carries structured detail alongside the message,
// used for per-row batch errors.
func ErrorWithDetails(msg string, details any) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Message: &msg,
		Errors:  details,
	}
}
