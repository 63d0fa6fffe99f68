package dto

// ResponseStatus is the coarse outcome carried in every envelope
type ResponseStatus string

const (
	StatusSuccess    ResponseStatus = "SUCCESS"
	StatusBadRequest ResponseStatus = "BAD_REQUEST"
	StatusNotFound   ResponseStatus = "NOT_FOUND"
	StatusConflict   ResponseStatus = "CONFLICT"
	StatusError      ResponseStatus = "ERROR"
)

// APIResponse is the envelope written by every endpoint
type APIResponse struct {
	StatusCode int            `json:"statusCode" example:"201"`
	Status     ResponseStatus `json:"status" example:"SUCCESS"`
	Payload    interface{}    `json:"payload"`
	Message    string         `json:"message" example:"Migration completed"`
}

// NewAPIResponse creates a new response envelope
func NewAPIResponse(statusCode int, status ResponseStatus, payload interface{}, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Status:     status,
		Payload:    payload,
		Message:    message,
	}
}
