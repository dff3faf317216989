package engine

import (
	"context"
	"os"

	"go.uber.org/zap"
)

// CleanupCase releases the resources a test case may have left behind:
// the generated image (force-removed, even if containers still reference
// it) and the locally compiled binary. It runs on success and failure
// paths alike; empty arguments mean the resource was never created.
// Errors are logged rather than returned, since cleanup typically runs
// while an earlier failure is already propagating.
func CleanupCase(ctx context.Context, c Client, imageName, binaryPath string, log *zap.Logger) {
	if imageName != "" {
		if err := c.RemoveImage(ctx, imageName); err != nil {
			log.Warn("failed to remove image",
				zap.String("image", imageName),
				zap.Error(err))
		}
	}
	if binaryPath != "" {
		if err := os.Remove(binaryPath); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove binary",
				zap.String("path", binaryPath),
				zap.Error(err))
		}
	}
}
