package lvm

import (
	"fmt"
	"os/exec"
	"strings"

	"lvm-segments-visualizer/internal/utils"
)

// PVDisplayTool wraps the external pvdisplay command that produces the
// allocation report this package parses.
type PVDisplayTool struct {
	command string
	useSudo bool
}

// NewPVDisplayTool creates a new PVDisplayTool instance. An empty command
// means the default binary from PATH.
func NewPVDisplayTool(command string, useSudo bool) *PVDisplayTool {
	if command == "" {
		command = "pvdisplay"
	}
	tool := &PVDisplayTool{useSudo: useSudo}
	if utils.CommandExists(command) {
		tool.command = command
	}
	return tool
}

// IsAvailable checks if pvdisplay is available on the system.
func (t *PVDisplayTool) IsAvailable() bool {
	return t.command != ""
}

// GetName returns the tool name.
func (t *PVDisplayTool) GetName() string {
	return "pvdisplay"
}

// GetVersion returns the pvdisplay version.
func (t *PVDisplayTool) GetVersion() string {
	if !t.IsAvailable() {
		return ""
	}
	version, err := utils.GetToolVersion(t.command, "--version")
	if err != nil {
		return "unknown"
	}
	return version
}

// Run executes pvdisplay in segment mode with megabyte units and returns the
// raw report text. Parsing is left to the caller; a command failure is
// reported before any parsing is attempted.
func (t *PVDisplayTool) Run() (string, error) {
	if !t.IsAvailable() {
		return "", fmt.Errorf("pvdisplay not found in PATH")
	}

	args := []string{"-m", "--units", "m"}
	var cmd *exec.Cmd
	if t.useSudo {
		cmd = exec.Command("sudo", append([]string{t.command}, args...)...)
	} else {
		cmd = exec.Command(t.command, args...)
	}

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("pvdisplay failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("pvdisplay failed: %w", err)
	}
	return string(output), nil
}
