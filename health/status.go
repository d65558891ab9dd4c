package health

// Health status constants represent the operational state of a component.
const (
	// StatusHealthy indicates the component is fully operational.
	StatusHealthy = "healthy"

	// StatusDegraded indicates the component works but something around it
	// is off, for example diagnostics cannot be written.
	StatusDegraded = "degraded"

	// StatusUnhealthy indicates activation would fail.
	StatusUnhealthy = "unhealthy"
)

// Status represents the health state of a component.
type Status struct {
	// Status is the current health state (healthy, degraded, or unhealthy).
	Status string `json:"status" yaml:"status"`

	// Message provides a human-readable description of the health status.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Details contains additional context and diagnostic information.
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// IsHealthy returns true if the status is StatusHealthy.
func (s Status) IsHealthy() bool {
	return s.Status == StatusHealthy
}

// IsDegraded returns true if the status is StatusDegraded.
func (s Status) IsDegraded() bool {
	return s.Status == StatusDegraded
}

// IsUnhealthy returns true if the status is StatusUnhealthy.
func (s Status) IsUnhealthy() bool {
	return s.Status == StatusUnhealthy
}

// Healthy creates a healthy status with an optional message.
func Healthy(message string) Status {
	return Status{Status: StatusHealthy, Message: message}
}

// Degraded creates a degraded status with a message and optional details.
func Degraded(message string, details map[string]any) Status {
	return Status{Status: StatusDegraded, Message: message, Details: details}
}

// Unhealthy creates an unhealthy status with a message and optional details.
func Unhealthy(message string, details map[string]any) Status {
	return Status{Status: StatusUnhealthy, Message: message, Details: details}
}

// Check is a named status.
type Check struct {
	Name   string
	Status Status
}

// Named pairs a status with a name for Combine.
func Named(name string, status Status) Check {
	return Check{Name: name, Status: status}
}
