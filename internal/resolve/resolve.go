package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/junevm/galaxybookctl/internal/sysfs"
)

// The samsung-galaxybook driver has exposed its attributes from three
// different places over its life: a udev rule that symlinks them under /dev,
// the platform-driver directory in sysfs (one subdirectory per bound device,
// named after the ACPI device id), and the raw ACPI device node. Which one
// exists depends on the kernel and driver version installed, so the correct
// path for an attribute has to be discovered at runtime.

// devicePrefix is how galaxybook ACPI device ids start (SAM0427, SAM0428, ...).
// Entries under the platform-driver directory that match are device
// instances; everything else there (bind, unbind, module, ...) is driver
// plumbing.
const devicePrefix = "SAM"

// Resolver locates the control file for a runtime-resolved attribute by
// probing candidate locations in priority order. The zero value is not
// useful; use Default or fill in the roots explicitly (tests do the latter).
type Resolver struct {
	// UdevDir is the convenience directory a udev rule may populate,
	// normally /dev/samsung-galaxybook.
	UdevDir string

	// DriverDir is the platform-driver root, normally
	// /sys/bus/platform/drivers/samsung-galaxybook.
	DriverDir string

	// ACPIDevDir is the fixed ACPI device node used as the fallback,
	// normally /sys/bus/acpi/devices/SCAI:00.
	ACPIDevDir string
}

// Default returns a Resolver probing the standard kernel locations.
func Default() Resolver {
	return Resolver{
		UdevDir:    "/dev/samsung-galaxybook",
		DriverDir:  "/sys/bus/platform/drivers/samsung-galaxybook",
		ACPIDevDir: "/sys/bus/acpi/devices/SCAI:00",
	}
}

// Resolve returns the control path for the named attribute (for example
// "allow_recording"). It is a pure function of the filesystem state at call
// time and is meant to be called once per attribute at startup; the result
// is used unchanged for the rest of the run.
//
// Probe order:
//  1. The udev path, if it exists and is readable.
//  2. Each device entry under the driver directory whose name starts with
//     the galaxybook device prefix, first readable attribute wins. Entries
//     are taken in directory order; with at most one device instance bound
//     in practice, the order never matters.
//  3. The ACPI device path, unconditionally. This last candidate is not
//     verified: if the attribute is not actually there, the eventual read
//     or write reports the failure against the real path.
func (r Resolver) Resolve(attr string) string {
	udev := filepath.Join(r.UdevDir, attr)
	if sysfs.Readable(udev) {
		return udev
	}

	if entries, err := os.ReadDir(r.DriverDir); err == nil {
		for _, entry := range entries {
			if !strings.HasPrefix(entry.Name(), devicePrefix) {
				continue
			}
			path := filepath.Join(r.DriverDir, entry.Name(), attr)
			if sysfs.Readable(path) {
				return path
			}
		}
	}

	return filepath.Join(r.ACPIDevDir, attr)
}

// DriverBound reports whether the platform driver directory exists, i.e.
// whether the samsung-galaxybook driver is loaded at all. Used only to give
// the user a hint when every probe fell through to the ACPI fallback.
func (r Resolver) DriverBound() bool {
	info, err := os.Stat(r.DriverDir)
	return err == nil && info.IsDir()
}
