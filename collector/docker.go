package collector

import (
	"context"
	"os"
	"strings"

	"hostreport/models"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"go.uber.org/zap"
)

const dockerSocket = "/var/run/docker.sock"

// dockerReachable reports whether a daemon is configured: either the local
// socket exists or DOCKER_HOST points somewhere else (tcp, ssh, npipe).
func dockerReachable(caps Capabilities) bool {
	return caps.HasDockerSocket || os.Getenv(client.EnvOverrideHost) != ""
}

// CollectContainers lists all containers, running and stopped. Docker is
// optional context, so errors only produce an empty list.
func CollectContainers(ctx context.Context, log *zap.Logger) []models.ContainerInfo {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		log.Warn("docker client error", zap.Error(err))
		return nil
	}
	defer cli.Close()

	list, err := cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		log.Warn("docker list error", zap.Error(err))
		return nil
	}

	containers := make([]models.ContainerInfo, 0, len(list))
	for _, c := range list {
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}

		id := c.ID
		if len(id) > 12 {
			id = id[:12]
		}

		containers = append(containers, models.ContainerInfo{
			ID:     id,
			Name:   name,
			Image:  c.Image,
			Status: c.Status,
			State:  string(c.State),
		})
	}

	return containers
}
