package shellsetup

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// DetectParentShellName returns the executable name of the parent process.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}

	proc, err := process.NewProcess(int32(ppid))
	if err != nil {
		return ""
	}
	if exe, err := proc.Exe(); err == nil && exe != "" {
		return exe
	}
	name, err := proc.Name()
	if err != nil {
		return ""
	}
	return name
}
