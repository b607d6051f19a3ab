package sysfs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// This package talks to sysfs-style attribute files: plain-text pseudo-files
// exposed by the kernel that represent hardware control knobs. Reading one
// yields the current value as a single line of text; writing one changes the
// hardware state. The files live under /sys (or a udev-created /dev alias)
// and usually require root to write.
//
// All operations are single-shot and synchronous. There is no buffering and
// no retry: sysfs reads and writes are plain syscalls against pseudo-files
// and either succeed immediately or fail for good.

var (
	// ErrUnreadable means the attribute file could not be opened for
	// reading (missing path, or the driver did not expose it).
	ErrUnreadable = errors.New("attribute not readable")

	// ErrPermission means the explicit pre-write permission check failed.
	// This is kept distinct from a generic open failure so the CLI can
	// tell the user to re-run with sudo instead of printing a raw EACCES.
	ErrPermission = errors.New("permission denied")

	// ErrWriteFailed means the open-for-write failed even though the
	// permission pre-check passed (a race, or a filesystem quirk).
	ErrWriteFailed = errors.New("write failed")
)

// Read returns the first line of the attribute file at path, with the
// trailing newline stripped. Sysfs attributes are single-line by
// convention, so the first line is the whole value.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnreadable, path)
	}

	// Keep only the first line. Most attributes end with a single '\n';
	// a few multi-value files (like platform_profile_choices) are still
	// one line of space-separated tokens.
	value := string(data)
	if i := strings.IndexByte(value, '\n'); i >= 0 {
		value = value[:i]
	}
	return value, nil
}

// Write stores value into the attribute file at path.
//
// The effective-uid write permission is checked explicitly first, using the
// same access(2) call the kernel will consult on open. Failing fast here
// gives a clear "run with sudo" style error instead of a generic open
// failure. The value is written exactly as given, with no trailing newline,
// in a single attempt.
func Write(path, value string) error {
	if err := unix.Access(path, unix.W_OK); err != nil {
		return fmt.Errorf("%w: %s", ErrPermission, path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		// The pre-check passed but the open still failed; report it as
		// a generic write error rather than a permission problem.
		return fmt.Errorf("%w: %s", ErrWriteFailed, path)
	}
	defer f.Close()

	if _, err := f.WriteString(value); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

// Readable reports whether the attribute at path exists and is readable by
// the current effective uid. Used by the resolver to probe candidate
// locations without opening them.
func Readable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
