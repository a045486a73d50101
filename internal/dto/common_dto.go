package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// FieldErrorsResponse carries the full list of validation violations for a
// rejected submission.
type FieldErrorsResponse struct {
	Errors []string `json:"errors"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	DB        string `json:"db"`
	Timestamp string `json:"ts"`
}
