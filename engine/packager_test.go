package engine

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// stubClient is a minimal Client for packager and runner tests.
type stubClient struct {
	createErr error
	copyErr   error
	commitErr error
	runErrs   map[string]error  // keyed by runtime string
	runOuts   map[string][]byte // keyed by runtime string

	created           []string
	archives          [][]byte
	committed         []string
	removedContainers []string
	removedImages     []string
	runRuntimes       []string
}

func (s *stubClient) Ping(ctx context.Context) error { return nil }

func (s *stubClient) CreateContainer(ctx context.Context, image, name string) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created = append(s.created, name)
	return "ctr-" + name, nil
}

func (s *stubClient) CopyToContainer(ctx context.Context, containerID string, archive io.Reader) error {
	if s.copyErr != nil {
		return s.copyErr
	}
	data, err := io.ReadAll(archive)
	if err != nil {
		return err
	}
	s.archives = append(s.archives, data)
	return nil
}

func (s *stubClient) CommitContainer(ctx context.Context, containerID, imageName string) error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.committed = append(s.committed, imageName)
	return nil
}

func (s *stubClient) RemoveContainer(ctx context.Context, containerID string) error {
	s.removedContainers = append(s.removedContainers, containerID)
	return nil
}

func (s *stubClient) RemoveImage(ctx context.Context, imageName string) error {
	s.removedImages = append(s.removedImages, imageName)
	return nil
}

func (s *stubClient) Run(ctx context.Context, image string, command []string, runtime string) ([]byte, error) {
	s.runRuntimes = append(s.runRuntimes, runtime)
	if err, ok := s.runErrs[runtime]; ok && err != nil {
		return nil, err
	}
	return s.runOuts[runtime], nil
}

func writeArtifact(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "hello_world")
	if err := os.WriteFile(src, []byte("\x7fELF fake"), 0755); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}
	return src
}

func TestPackageArtifact(t *testing.T) {
	// Redirect temp files so we can verify the transit archive is gone
	// after the call.
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	stub := &stubClient{}
	src := writeArtifact(t)

	err := PackageArtifact(context.Background(), stub, "ubuntu-hello_world", "ubuntu", src, "/hello_world")
	if err != nil {
		t.Fatalf("PackageArtifact failed: %v", err)
	}

	if len(stub.created) != 1 || stub.created[0] != "ubuntu-hello_world" {
		t.Errorf("created = %v", stub.created)
	}
	if len(stub.committed) != 1 || stub.committed[0] != "ubuntu-hello_world" {
		t.Errorf("committed = %v", stub.committed)
	}
	if len(stub.removedContainers) != 1 {
		t.Errorf("container not removed after commit: %v", stub.removedContainers)
	}

	// The injected archive holds the artifact at its destination path.
	if len(stub.archives) != 1 {
		t.Fatalf("expected 1 injected archive, got %d", len(stub.archives))
	}
	tr := tar.NewReader(bytes.NewReader(stub.archives[0]))
	hdr, err := tr.Next()
	if err != nil {
		t.Fatalf("injected archive unreadable: %v", err)
	}
	if hdr.Name != "hello_world" {
		t.Errorf("archive entry = %q, want hello_world", hdr.Name)
	}

	// The transit archive file was deleted before returning.
	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	for _, e := range entries {
		t.Errorf("leftover temp file: %s", e.Name())
	}
}

func TestPackageArtifactInjectionFailure(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	stub := &stubClient{copyErr: errors.New("rejected")}
	src := writeArtifact(t)

	err := PackageArtifact(context.Background(), stub, "ubuntu-echo", "ubuntu", src, "/echo")
	if err == nil {
		t.Fatal("expected error")
	}

	// The created container is removed, nothing committed, archive gone.
	if len(stub.removedContainers) != 1 {
		t.Errorf("container not removed: %v", stub.removedContainers)
	}
	if len(stub.committed) != 0 {
		t.Errorf("unexpected commit: %v", stub.committed)
	}
	entries, _ := os.ReadDir(tmp)
	for _, e := range entries {
		t.Errorf("leftover temp file: %s", e.Name())
	}
}

func TestPackageArtifactCommitFailure(t *testing.T) {
	stub := &stubClient{commitErr: errors.New("no space")}
	src := writeArtifact(t)

	err := PackageArtifact(context.Background(), stub, "ubuntu-echo", "ubuntu", src, "/echo")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(stub.removedContainers) != 1 {
		t.Errorf("container not removed on commit failure: %v", stub.removedContainers)
	}
}

func TestPackageArtifactMissingArtifact(t *testing.T) {
	stub := &stubClient{}

	err := PackageArtifact(context.Background(), stub, "ubuntu-ghost", "ubuntu", "/nonexistent/ghost", "/ghost")
	if err == nil {
		t.Fatal("expected error")
	}
	// The container created before archiving is cleaned up.
	if len(stub.removedContainers) != 1 {
		t.Errorf("container not removed: %v", stub.removedContainers)
	}
}

// TestPackageArtifactDistinctNames checks that packaging the same
// artifact under two image names produces two independent images.
func TestPackageArtifactDistinctNames(t *testing.T) {
	stub := &stubClient{}
	src := writeArtifact(t)

	for _, name := range []string{"ubuntu-a", "ubuntu-b"} {
		if err := PackageArtifact(context.Background(), stub, name, "ubuntu", src, "/prog"); err != nil {
			t.Fatalf("PackageArtifact(%s) failed: %v", name, err)
		}
	}
	if len(stub.committed) != 2 || stub.committed[0] == stub.committed[1] {
		t.Errorf("committed = %v, want two distinct images", stub.committed)
	}
}
