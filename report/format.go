package report

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	bytesPerMB = 1024 * 1024
	bytesPerGB = 1024 * 1024 * 1024
)

// GB renders bytes / 1024^3 with two decimals.
func GB(b uint64) string {
	return fmt.Sprintf("%.2f GB", float64(b)/bytesPerGB)
}

// MB renders bytes / 1024^2 with two decimals.
func MB(b uint64) string {
	return fmt.Sprintf("%.2f MB", float64(b)/bytesPerMB)
}

// Percent prints the value as reported, in its shortest exact form, and
// always with a fractional part (3 -> "3.0").
func Percent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
