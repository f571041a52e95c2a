package dto

// APIResponse is the uniform envelope for successful responses. The HTTP
// status code is mirrored in the body.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// APIErrorResponse is the uniform envelope for failed responses.
type APIErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// NewSuccessResponse wraps a payload in the success envelope.
func NewSuccessResponse(statusCode int, data interface{}, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// NewErrorResponse builds the failure envelope. Errors is always non-nil so
// the field serializes as an array.
func NewErrorResponse(statusCode int, message string, errs []string) APIErrorResponse {
	if errs == nil {
		errs = []string{}
	}
	return APIErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     errs,
	}
}
