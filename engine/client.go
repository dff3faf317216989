package engine

import (
	"context"
	"io"
)

// Client is the capability set the harness needs from a container
// platform: image creation/removal, container lifecycle, archive
// injection and commit. The Docker SDK implementation lives in
// docker.go; tests substitute fakes.
type Client interface {
	// Ping verifies the platform is reachable. A failed ping at startup
	// is a precondition failure for the whole suite.
	Ping(ctx context.Context) error

	// CreateContainer creates a stopped container from image with the
	// given name and returns its ID.
	CreateContainer(ctx context.Context, image, name string) (string, error)

	// CopyToContainer injects a tar archive into the container's
	// filesystem rooted at /.
	CopyToContainer(ctx context.Context, containerID string, archive io.Reader) error

	// CommitContainer commits the container's current filesystem as a
	// new image.
	CommitContainer(ctx context.Context, containerID, imageName string) error

	// RemoveContainer force-removes a container.
	RemoveContainer(ctx context.Context, containerID string) error

	// RemoveImage force-removes an image, even if containers still
	// reference it.
	RemoveImage(ctx context.Context, imageName string) error

	// Run executes command in a fresh container built from image,
	// selected onto the named OCI runtime (empty selects the platform
	// default), waits for completion, and returns captured stdout. The
	// container never outlives the call. A platform error or non-zero
	// exit is returned as an error.
	Run(ctx context.Context, image string, command []string, runtime string) ([]byte, error)
}
