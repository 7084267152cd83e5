package models

// DeviceIdentity describes the host. Available is false when the OS query
// failed and the identity is degraded.
type DeviceIdentity struct {
	HostName      string `json:"hostName"`
	OSDescription string `json:"osDescription"`
	Alias         string `json:"alias,omitempty"`
	Available     bool   `json:"available"`
}

// ContainerInfo holds Docker container details
type ContainerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Status string `json:"status"`
	State  string `json:"state"`
}
