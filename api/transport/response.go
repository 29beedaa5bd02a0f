package transport

// ErrorResponse carries a single user-facing error message, used for 404s
// and generic server faults.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse carries the accumulated field violations of a 400.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

// HealthResponse is the fixed body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Canonical bodies for the routing-level failure modes.
var (
	RouteNotFound = ErrorResponse{Error: "Route not found"}
	InternalFault = ErrorResponse{Error: "Internal server error"}
	InvalidJSON   = ValidationResponse{Errors: []string{"Request body must be valid JSON"}}
	HealthOK      = HealthResponse{Status: "ok"}
)
