package models

type ProcessEntry struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpuPercent"`
	MemoryRSS  uint64  `json:"memoryRss"`
}

// ProcessSnapshot is the filtered process list. NoMatches is set by the
// collector when the filter matched nothing, so renderers never see an
// ambiguous empty list.
type ProcessSnapshot struct {
	Filter    string         `json:"filter"`
	Entries   []ProcessEntry `json:"entries"`
	NoMatches bool           `json:"noMatches"`
}
