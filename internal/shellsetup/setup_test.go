package shellsetup

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectShellInternal(t *testing.T) {
	tests := []struct {
		name          string
		goos          string
		envShell      string
		envComspec    string
		parent        func() string
		expectedShell string
	}{
		{
			name:          "uses SHELL when set",
			goos:          "linux",
			envShell:      "/bin/zsh",
			expectedShell: "zsh",
		},
		{
			name:          "falls back to parent shell",
			goos:          "linux",
			parent:        func() string { return "/usr/bin/bash" },
			expectedShell: "bash",
		},
		{
			name:          "windows prefers COMSPEC",
			goos:          "windows",
			envComspec:    `C:\Windows\System32\cmd.exe`,
			expectedShell: "cmd",
		},
		{
			name:          "windows fallback",
			goos:          "windows",
			expectedShell: "pwsh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := func(key string) string {
				switch key {
				case "SHELL":
					return tt.envShell
				case "COMSPEC":
					return tt.envComspec
				default:
					return ""
				}
			}
			got := detectShellInternal(tt.goos, env, tt.parent)
			if got != tt.expectedShell {
				t.Fatalf("detectShellInternal() = %q, want %q", got, tt.expectedShell)
			}
		})
	}
}

func TestWriteSetupSnippets(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{"rcd() {", `command "/opt/bin/rpick" --mode directory "$@"`, `cd -- "$dest"`}},
		{"/usr/bin/zsh", []string{"rcd() {"}},
		{"fish", []string{"function rcd", "builtin cd"}},
		{"powershell.exe", []string{"function rcd {", "Set-Location $dest"}},
		{"tcsh", []string{"alias rcd 'cd \"`/opt/bin/rpick --mode directory`\"'"}},
		{"cmd", []string{"rcd.cmd", `('"/opt/bin/rpick" --mode directory %*')`, `cd /d "%%d"`}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := WriteSetup(&buf, tt.shell, Config{Executable: "/opt/bin/rpick"}); err != nil {
				t.Fatalf("WriteSetup: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Fatalf("snippet for %s missing %q:\n%s", tt.shell, want, buf.String())
				}
			}
		})
	}
}

func TestWriteSetupDetectsShell(t *testing.T) {
	t.Setenv("SHELL", "")
	var buf bytes.Buffer
	shell, err := WriteSetup(&buf, "", Config{
		Executable:   "rpick",
		DetectParent: func() string { return "/usr/local/bin/fish" },
	})
	if err != nil {
		t.Fatalf("WriteSetup: %v", err)
	}
	if shell != "fish" || !strings.Contains(buf.String(), "function rcd") {
		t.Fatalf("expected fish snippet, got %s:\n%s", shell, buf.String())
	}
}
