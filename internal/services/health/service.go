package health

const livenessMessage = "Research Tool Backend Running"

// Service encapsulates health-related checks.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Liveness returns the plain-text message served at the root path.
func (s *Service) Liveness() string {
	return livenessMessage
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}
