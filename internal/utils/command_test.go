package utils

import "testing"

func TestCommandExists(t *testing.T) {
	// sh is present on any platform the tool runs on
	if !CommandExists("sh") {
		t.Error("Expected sh to exist")
	}
	if CommandExists("definitely-not-a-real-command-xyz") {
		t.Error("Expected nonexistent command to be reported missing")
	}
}

func TestGetToolVersionMissingTool(t *testing.T) {
	if _, err := GetToolVersion("definitely-not-a-real-command-xyz", "--version"); err == nil {
		t.Error("Expected error for missing tool")
	}
}
