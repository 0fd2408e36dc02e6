// Package shellsetup prints shell functions that cd into a directory
// chosen with rpick.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// FunctionName is the name of the generated shell function.
const FunctionName = "rcd"

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides the rpick path baked into the snippet.
	Executable string
}

// WriteSetup writes the integration snippet for shellOverride, or for the
// detected shell when shellOverride is empty, and returns the shell used.
func WriteSetup(w io.Writer, shellOverride string, cfg Config) (string, error) {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	shell = canonicalShellName(shell)

	rpath := cfg.Executable
	if rpath == "" {
		var err error
		if rpath, err = os.Executable(); err != nil {
			rpath = "rpick"
		}
	}
	quoted := strconv.Quote(rpath)

	var err error
	switch shell {
	case "fish":
		_, err = fmt.Fprintf(w, `function %[1]s
    set dest (command %[2]s --mode directory $argv); or return $status
    if test -d "$dest"
        builtin cd "$dest"
    end
end
`, FunctionName, quoted)
	case "pwsh":
		_, err = fmt.Fprintf(w, `function %[1]s {
    $dest = & %[2]s --mode directory @args
    if ($LASTEXITCODE -eq 0 -and $dest -and (Test-Path $dest -PathType Container)) {
        Set-Location $dest
    }
}
`, FunctionName, quoted)
	case "tcsh", "csh":
		_, err = fmt.Fprintf(w, "alias %s 'cd \"`%s --mode directory`\"'\n", FunctionName, rpath)
	case "cmd":
		_, err = fmt.Fprintf(w, `:: Save as %[1]s.cmd and run "call %[1]s.cmd" from cmd.exe sessions.
@echo off
for /f "delims=" %%%%d in ('%[2]s --mode directory %%*') do (
    if not "%%%%d"=="" cd /d "%%%%d"
)
`, FunctionName, quoted)
	default:
		_, err = fmt.Fprintf(w, `%[1]s() {
    dest=$(command %[2]s --mode directory "$@") || return $?
    if [ -d "$dest" ]; then
        cd -- "$dest"
    fi
}
`, FunctionName, quoted)
	}
	return shell, err
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell != "" {
			switch shell {
			case "pwsh", "cmd":
				return shell
			}
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := path.Base(value)
	base = strings.ToLower(base)
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "\"") {
		value = value[1:]
		if idx := strings.IndexRune(value, '"'); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if strings.HasPrefix(value, "'") {
		value = value[1:]
		if idx := strings.IndexRune(value, '\''); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}
