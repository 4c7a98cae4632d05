package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Cached listing filenames under the work directory.
const (
	FilesetListingFile = "lslpp.txt"
	FixListingFile     = "emgr.txt"
)

// SystemState lists the installed software levels and the currently applied
// interim fixes of the target system.
type SystemState interface {
	// ListFilesets returns the colon-delimited installed-software listing.
	ListFilesets(ctx context.Context) (string, error)
	// ListFixes returns the sectioned applied-fix listing.
	ListFixes(ctx context.Context) (string, error)
}

// LocalSystemState runs lslpp and emgr via os/exec. When a work directory is
// configured, each listing is also written there (lslpp.txt, emgr.txt) so
// later runs and other tooling can reuse it.
type LocalSystemState struct {
	workdir string
	timeout time.Duration
}

// NewLocalSystemState constructs a LocalSystemState. workdir may be empty to
// disable listing caching.
func NewLocalSystemState(workdir string) *LocalSystemState {
	return &LocalSystemState{
		workdir: workdir,
		timeout: 2 * time.Minute,
	}
}

// ListFilesets runs 'lslpp -Lcq'.
func (a *LocalSystemState) ListFilesets(ctx context.Context) (string, error) {
	output, err := a.run(ctx, "/bin/lslpp", "-Lcq")
	if err != nil {
		return "", fmt.Errorf("list filesets: %w", err)
	}

	a.cache(FilesetListingFile, output)

	return output, nil
}

// ListFixes runs 'emgr -lv3'.
func (a *LocalSystemState) ListFixes(ctx context.Context) (string, error) {
	output, err := a.run(ctx, "/usr/sbin/emgr", "-lv3")
	if err != nil {
		return "", fmt.Errorf("list fixes: %w", err)
	}

	a.cache(FixListingFile, output)

	return output, nil
}

func (a *LocalSystemState) run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, stderr.String())
	}

	return stdout.String(), nil
}

// cache writes a listing under the work directory. Failures only degrade the
// cache, never the run.
func (a *LocalSystemState) cache(filename, output string) {
	if a.workdir == "" {
		return
	}

	path := filepath.Join(a.workdir, filename)
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		slog.Warn("Cannot cache system listing", "path", path, "error", err)
	}
}

// FileSystemState reads previously cached listings from a work directory
// instead of shelling out. Useful off-host and in tests.
type FileSystemState struct {
	workdir string
}

// NewFileSystemState constructs a FileSystemState reading from workdir.
func NewFileSystemState(workdir string) *FileSystemState {
	return &FileSystemState{workdir: workdir}
}

// ListFilesets reads the cached lslpp listing.
func (a *FileSystemState) ListFilesets(ctx context.Context) (string, error) {
	return a.read(ctx, FilesetListingFile)
}

// ListFixes reads the cached emgr listing.
func (a *FileSystemState) ListFixes(ctx context.Context) (string, error) {
	return a.read(ctx, FixListingFile)
}

func (a *FileSystemState) read(ctx context.Context, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(a.workdir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read cached listing: %w", err)
	}

	return string(data), nil
}
