package driver

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// The samsung-galaxybook platform driver ships with mainline kernels since
// 6.9; on older kernels it may be built as a module that simply is not
// loaded yet. This package only probes and, on request, modprobes; it
// never builds or installs anything.

// ModuleName is how the driver appears in /proc/modules.
const ModuleName = "samsung_galaxybook"

// Loaded reports whether the driver is present, either compiled in (its
// platform-driver directory exists) or as a loaded module.
func Loaded(driverDir string) bool {
	if info, err := os.Stat(driverDir); err == nil && info.IsDir() {
		return true
	}
	return moduleLoaded(ModuleName)
}

// TryLoad attempts to modprobe the driver. Requires root; the caller
// decides whether a failure is worth reporting.
func TryLoad() error {
	return modprobe(ModuleName)
}

func modprobe(name string) error {
	if err := exec.Command("modprobe", name).Run(); err != nil {
		return fmt.Errorf("modprobe %s: %w", name, err)
	}
	return nil
}

// moduleLoaded scans /proc/modules for the named module.
func moduleLoaded(name string) bool {
	f, err := os.Open("/proc/modules")
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && fields[0] == name {
			return true
		}
	}
	return false
}
