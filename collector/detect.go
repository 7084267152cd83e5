package collector

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type Capabilities struct {
	HasDockerSocket bool
	HasHostPID      bool
}

var (
	caps     Capabilities
	capsOnce sync.Once
)

// DetectCapabilities probes the environment once per process and logs what the
// report will be able to see.
func DetectCapabilities(log *zap.Logger) Capabilities {
	capsOnce.Do(func() {
		caps = Capabilities{
			HasDockerSocket: fileExists(dockerSocket),
			HasHostPID:      detectHostPID(),
		}

		log.Info("capabilities",
			zap.Bool("docker", caps.HasDockerSocket),
			zap.Bool("host_pid", caps.HasHostPID),
		)
		if !caps.HasHostPID {
			log.Warn("running in a private PID namespace, process section only sees this container")
		}
	})
	return caps
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// detectHostPID reports false when PID 1 is this reporter, i.e. we are the
// init of a container without the host's process table.
func detectHostPID() bool {
	data, err := os.ReadFile("/proc/1/cmdline")
	if err != nil {
		// not linux, or /proc hidden: assume host view
		return true
	}
	cmdline := strings.ReplaceAll(string(data), "\x00", " ")
	cmdline = strings.TrimSpace(strings.ToLower(cmdline))

	return !strings.Contains(cmdline, "hostreport")
}
