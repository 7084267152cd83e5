package models

// MetricSample holds CPU, memory and disk utilization read at one point in time
type MetricSample struct {
	CPUPercent      float64 `json:"cpuPercent"`
	MemoryPercent   float64 `json:"memoryPercent"`
	MemoryAvailable uint64  `json:"memoryAvailable"`
	DiskPercent     float64 `json:"diskPercent"`
	DiskFree        uint64  `json:"diskFree"`
}

// Snapshot is everything one collection phase produced
type Snapshot struct {
	Device     DeviceIdentity  `json:"device"`
	System     MetricSample    `json:"system"`
	Network    NetworkCounters `json:"network"`
	Processes  ProcessSnapshot `json:"processes"`
	Containers []ContainerInfo `json:"containers,omitempty"`
	Latency    []LatencyInfo   `json:"latency,omitempty"`
}
