// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office wraps the headless office-suite converter (LibreOffice's
// soffice binary) used for spreadsheet-to-PDF conversion.
package office

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pdiddy/convert-engine/pkg/types"
)

const (
	defaultBin     = "soffice"
	defaultTimeout = 2 * time.Minute
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, lastLine(msg))
		}
		return err
	}
	return nil
}

// lastLine returns the final non-empty line of s, which for soffice is the
// line carrying the actual failure reason.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return s
}

var defaultExec executor = &osExecutor{}

// Tool invokes the soffice binary for document conversion. The executable
// path is resolved and validated once at construction.
type Tool struct {
	path    string
	timeout time.Duration
	exec    executor
}

// New resolves the soffice executable from cfg and returns a Tool. When
// cfg.ExecutablePath is empty the binary is looked up on PATH. A missing
// or unusable executable is an error here, not at conversion time.
func New(cfg types.OfficeConfig) (*Tool, error) {
	return newTool(cfg, defaultExec)
}

func newTool(cfg types.OfficeConfig, exec executor) (*Tool, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	path := cfg.ExecutablePath
	if path == "" {
		resolved, err := exec.LookPath(defaultBin)
		if err != nil {
			return nil, fmt.Errorf("soffice not found on PATH (set office.executable_path): %w", err)
		}
		path = resolved
	} else {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("soffice executable %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("soffice executable %s is a directory", path)
		}
	}

	return &Tool{path: path, timeout: timeout, exec: exec}, nil
}

// Path returns the resolved executable path.
func (t *Tool) Path() string { return t.path }

// ConvertToPDF converts inputPath to PDF, writing the output into outDir.
// The invocation is bounded by the Tool's timeout; a hung process is
// killed when the deadline passes.
func (t *Tool) ConvertToPDF(ctx context.Context, inputPath, outDir string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	args := []string{"--headless", "--convert-to", "pdf", "--outdir", outDir, inputPath}
	if err := t.exec.Run(ctx, t.path, args...); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("soffice timed out after %s converting %s", t.timeout, inputPath)
		}
		return fmt.Errorf("soffice failed converting %s: %w", inputPath, err)
	}
	return nil
}
