package models

import "time"

// NetworkCounters are cumulative totals across all interfaces, not a rate.
type NetworkCounters struct {
	BytesSent uint64 `json:"bytesSent"`
	BytesRecv uint64 `json:"bytesRecv"`
}

type LatencyInfo struct {
	Target     string        `json:"target"`
	AvgRTT     time.Duration `json:"avgRtt"`
	PacketLoss float64       `json:"packetLoss"`
	Reachable  bool          `json:"reachable"`
}
