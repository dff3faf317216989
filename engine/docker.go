package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	logrus "github.com/sirupsen/logrus"
)

// DockerClient implements Client against the Docker Engine API. Every
// platform call is traced to logs/harness.log so a failed run leaves a
// record of the exact sequence of engine operations.
type DockerClient struct {
	api    *client.Client
	logger *logrus.Logger
}

// NewDockerClient connects to the Docker daemon using the standard
// environment (DOCKER_HOST etc.). Construction fails if the daemon is
// unreachable; there is no retry.
func NewDockerClient() (*DockerClient, error) {
	api, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %v", err)
	}

	logger := logrus.New()
	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}
	logFile, err := os.OpenFile("logs/harness.log", os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}
	logger.SetOutput(logFile)

	return &DockerClient{api: api, logger: logger}, nil
}

func (d *DockerClient) Ping(ctx context.Context) error {
	if _, err := d.api.Ping(ctx); err != nil {
		d.logger.Errorf("ping failed: %v", err)
		return fmt.Errorf("docker daemon unreachable: %v", err)
	}
	return nil
}

func (d *DockerClient) CreateContainer(ctx context.Context, img, name string) (string, error) {
	resp, err := d.api.ContainerCreate(ctx, &container.Config{Image: img}, nil, nil, nil, name)
	if err != nil {
		d.logger.Errorf("failed to create container %s from %s: %v", name, img, err)
		return "", fmt.Errorf("failed to create container: %v", err)
	}
	d.logger.Printf("Created container %s from %s", shortID(resp.ID), img)
	return resp.ID, nil
}

func (d *DockerClient) CopyToContainer(ctx context.Context, containerID string, archive io.Reader) error {
	if err := d.api.CopyToContainer(ctx, containerID, "/", archive, container.CopyToContainerOptions{}); err != nil {
		d.logger.Errorf("put archive into %s failed: %v", shortID(containerID), err)
		return fmt.Errorf("put archive failed: %v", err)
	}
	d.logger.Printf("Injected archive into container %s", shortID(containerID))
	return nil
}

func (d *DockerClient) CommitContainer(ctx context.Context, containerID, imageName string) error {
	if _, err := d.api.ContainerCommit(ctx, containerID, container.CommitOptions{Reference: imageName}); err != nil {
		d.logger.Errorf("failed to commit %s as %s: %v", shortID(containerID), imageName, err)
		return fmt.Errorf("failed to commit container: %v", err)
	}
	d.logger.Printf("Committed container %s as image %s", shortID(containerID), imageName)
	return nil
}

func (d *DockerClient) RemoveContainer(ctx context.Context, containerID string) error {
	if err := d.api.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true}); err != nil {
		d.logger.Errorf("failed to remove container %s: %v", shortID(containerID), err)
		return fmt.Errorf("failed to remove container: %v", err)
	}
	d.logger.Printf("Removed container %s", shortID(containerID))
	return nil
}

func (d *DockerClient) RemoveImage(ctx context.Context, imageName string) error {
	if _, err := d.api.ImageRemove(ctx, imageName, image.RemoveOptions{Force: true}); err != nil {
		d.logger.Errorf("failed to remove image %s: %v", imageName, err)
		return fmt.Errorf("failed to remove image: %v", err)
	}
	d.logger.Printf("Removed image %s", imageName)
	return nil
}

// Run creates, starts and waits out a container, then captures its
// stdout stream. The container is force-removed before Run returns,
// success or failure. No timeout is imposed beyond what ctx carries.
func (d *DockerClient) Run(ctx context.Context, img string, command []string, runtime string) ([]byte, error) {
	cfg := &container.Config{
		Image: img,
		Cmd:   command,
	}
	hostCfg := &container.HostConfig{
		Runtime: runtime,
	}

	resp, err := d.api.ContainerCreate(ctx, cfg, hostCfg, nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %v", err)
	}
	defer func() {
		if err := d.api.ContainerRemove(context.Background(), resp.ID, container.RemoveOptions{Force: true}); err != nil {
			d.logger.Errorf("failed to remove container %s: %v", shortID(resp.ID), err)
		}
	}()

	d.logger.Printf("Running %v in %s (runtime=%q)", command, shortID(resp.ID), runtime)
	if err := d.api.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return nil, fmt.Errorf("failed to start container: %v", err)
	}

	statusCh, errCh := d.api.ContainerWait(ctx, resp.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return nil, fmt.Errorf("failed waiting for container: %v", err)
	case status := <-statusCh:
		stdout, logErr := d.containerStdout(ctx, resp.ID)
		if status.StatusCode != 0 {
			return nil, fmt.Errorf("container exited with status %d", status.StatusCode)
		}
		if logErr != nil {
			return nil, logErr
		}
		return stdout, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// containerStdout demultiplexes the container's log stream and keeps
// stdout only. The container is created without a TTY, so the stream
// arrives in the multiplexed stdcopy format.
func (d *DockerClient) containerStdout(ctx context.Context, containerID string) ([]byte, error) {
	rc, err := d.api.ContainerLogs(ctx, containerID, container.LogsOptions{ShowStdout: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read container logs: %v", err)
	}
	defer rc.Close()

	var stdout bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, io.Discard, rc); err != nil {
		return nil, fmt.Errorf("failed to demux container logs: %v", err)
	}
	return stdout.Bytes(), nil
}

// shortID returns a shortened container ID for logging
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
