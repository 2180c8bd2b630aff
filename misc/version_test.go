package misc

import "testing"

func TestGetAppName(t *testing.T) {
	if GetAppName() == "" {
		t.Error("GetAppName() is empty")
	}
	appName = "blox"
	defer func() { appName = "" }()
	if got := GetAppName(); got != "blox" {
		t.Errorf("GetAppName() = %q, want blox", got)
	}
}

func TestGetGitHash(t *testing.T) {
	if GetGitHash() == "" {
		t.Error("GetGitHash() is empty")
	}
	gitHash = "abc123"
	defer func() { gitHash = "" }()
	if got := GetGitHash(); got != "abc123" {
		t.Errorf("GetGitHash() = %q, want abc123", got)
	}
}
