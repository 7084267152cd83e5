package collector

import (
	"context"
	"errors"
	"strings"

	"hostreport/models"

	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"
)

var hostInfo = host.InfoWithContext

// DescribeDevice reads the host name and OS. Device identity is context, not
// a reading, so failures return the degraded identity instead of an error.
func DescribeDevice(ctx context.Context, alias string, log *zap.Logger) models.DeviceIdentity {
	info, err := hostInfo(ctx)
	if err == nil && (info == nil || info.Hostname == "") {
		err = errors.New("empty host info")
	}
	if err != nil {
		log.Warn("device info unavailable", zap.Error(err))
		return models.DeviceIdentity{}
	}

	return models.DeviceIdentity{
		HostName:      info.Hostname,
		OSDescription: osDescription(info),
		Alias:         alias,
		Available:     true,
	}
}

// osDescription renders "<system> <release>" the way uname prints it.
func osDescription(info *host.InfoStat) string {
	name := systemName(info.OS)
	if info.KernelVersion == "" {
		return name
	}
	return name + " " + info.KernelVersion
}

func systemName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "netbsd":
		return "NetBSD"
	case "":
		return "Unknown"
	}
	return strings.ToUpper(goos[:1]) + goos[1:]
}
