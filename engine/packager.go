package engine

import (
	"context"
	"fmt"
	"os"
)

// PackageArtifact bakes the file at artifactPath into a new image named
// imageName: it creates a stopped container from baseImage, injects the
// artifact as a tar layer landing at destPath, commits the container as
// imageName and removes it. The transit archive is written to local
// storage and deleted before returning, success or failure. Overwriting
// an existing path in the base image is permitted.
//
// On failure the partially created container is removed; the committed
// image (if any) is the caller's to clean up via RemoveImage.
func PackageArtifact(ctx context.Context, c Client, imageName, baseImage, artifactPath, destPath string) error {
	containerID, err := c.CreateContainer(ctx, baseImage, imageName)
	if err != nil {
		return fmt.Errorf("failed to create container from %s: %w", baseImage, err)
	}

	tarPath, err := writeArchive(artifactPath, destPath)
	if err != nil {
		c.RemoveContainer(ctx, containerID)
		return err
	}
	defer os.Remove(tarPath)

	archive, err := os.Open(tarPath)
	if err != nil {
		c.RemoveContainer(ctx, containerID)
		return fmt.Errorf("failed to reopen archive: %v", err)
	}
	if err := c.CopyToContainer(ctx, containerID, archive); err != nil {
		archive.Close()
		c.RemoveContainer(ctx, containerID)
		return fmt.Errorf("put archive failed: %w", err)
	}
	archive.Close()

	if err := c.CommitContainer(ctx, containerID, imageName); err != nil {
		c.RemoveContainer(ctx, containerID)
		return fmt.Errorf("failed to commit %s: %w", imageName, err)
	}
	return c.RemoveContainer(ctx, containerID)
}
