// Package adapter provides the external collaborators of the resolver
// behind interfaces: package inspection, system state listing and report
// persistence.
package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	m "efixctl.dev/pkg/efixctl/internal/model"
)

// EfixInspector extracts the raw metadata text describing one epkg package.
type EfixInspector interface {
	// Inspect returns the combined stdout/stderr of the package inspection
	// for the epkg at path.
	Inspect(ctx context.Context, path m.Path) (string, error)
}

// LocalEmgrInspector inspects packages with the interim fix manager via
// os/exec. The emgr output is pre-filtered to the PREREQ and PACKAGE
// paragraphs, the only sections the parser consumes.
type LocalEmgrInspector struct {
	timeout time.Duration
}

// NewLocalEmgrInspector constructs a LocalEmgrInspector with a default
// 60s per-package timeout.
func NewLocalEmgrInspector() *LocalEmgrInspector {
	return &LocalEmgrInspector{
		timeout: 60 * time.Second,
	}
}

// Inspect runs 'emgr -dXv3 -e <path>' and returns its combined output.
func (a *LocalEmgrInspector) Inspect(ctx context.Context, path m.Path) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmdline := fmt.Sprintf("LC_ALL=C /usr/sbin/emgr -dXv3 -e %s | /bin/grep -p -e PREREQ -e PACKAG", path)
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", cmdline)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()

	return output, err
}
