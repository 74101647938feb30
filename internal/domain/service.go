package domain

// ServiceKind identifies which Cognitive Services API a profile targets.
type ServiceKind string

const (
	ServiceFace ServiceKind = "face"
	ServiceText ServiceKind = "text"
)

// DisplayName returns the human-readable API name used in messages.
func (k ServiceKind) DisplayName() string {
	switch k {
	case ServiceFace:
		return "Face API"
	case ServiceText:
		return "Text API"
	default:
		return string(k)
	}
}

// ServiceKinds lists every supported service.
func ServiceKinds() []ServiceKind {
	return []ServiceKind{ServiceFace, ServiceText}
}

// ServiceConfig is the read-only configuration consumed when executing requests.
type ServiceConfig struct {
	Endpoint   string
	Key        string
	Configured bool
}
