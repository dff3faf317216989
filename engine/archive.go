package engine

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"strings"
)

// writeArchive wraps the file at src in a single-entry tar archive whose
// entry path is dst relative to the filesystem root, written to a
// temporary file on local disk. The caller owns the returned path and
// must delete it; the archive never survives the packaging call that
// asked for it.
func writeArchive(src, dst string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %v", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat artifact: %v", err)
	}

	f, err := os.CreateTemp("", "sentinel-harness-*.tar")
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %v", err)
	}

	tw := tar.NewWriter(f)
	hdr := &tar.Header{
		Name: strings.TrimPrefix(dst, "/"),
		Mode: 0755,
		Size: info.Size(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write archive header: %v", err)
	}
	if _, err := io.Copy(tw, in); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write archive: %v", err)
	}
	if err := tw.Close(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to finalize archive: %v", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close archive: %v", err)
	}
	return f.Name(), nil
}
