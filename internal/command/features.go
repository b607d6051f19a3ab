package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/junevm/galaxybookctl/internal/sysfs"
)

// Paths holds the resolved control-file location for every feature. The
// three toggle paths come out of internal/resolve at startup; the rest are
// fixed kernel locations (possibly overridden by the config file). The
// struct is filled once in main and never changes for the rest of the run.
type Paths struct {
	Power          string
	Fan            string
	Profile        string
	ProfileChoices string
	KbdBacklight   string
	AllowRecording string
	StartOnLidOpen string
	USBCharge      string
}

// Features builds the handler for every hardware feature, keyed by command
// name. Command output goes to out; errors travel back through Run's return
// value and are printed by the dispatcher.
func Features(paths Paths, out io.Writer) map[string]Command {
	return map[string]Command{
		"power":             powerCommand(paths.Power, out),
		"fan":               fanCommand(paths.Fan, out),
		"perf":              perfCommand(paths.Profile, paths.ProfileChoices, out),
		"record":            toggleCommand("record", "Recording permission", "recording permission", paths.AllowRecording, out),
		"kbd":               kbdCommand(paths.KbdBacklight, out),
		"start-on-lid-open": toggleCommand("start-on-lid-open", "Start on lid open", "start on lid open", paths.StartOnLidOpen, out),
		"usb-charge":        toggleCommand("usb-charge", "USB charge", "USB charge", paths.USBCharge, out),
	}
}

// powerCommand controls the battery charge threshold: the battery stops
// charging at this percentage to reduce long-term wear.
func powerCommand(path string, out io.Writer) Command {
	return Command{
		Usage: "  power read    Read the charge threshold\n" +
			"  power set <value>  Set the charge threshold (0-100)",
		Run: func(args []string) error {
			sub, err := subcommand(args, "power", "'read' or 'set'")
			if err != nil {
				return err
			}
			switch sub {
			case "read":
				value, err := sysfs.Read(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Current charge threshold: %s%%\n", value)
				return nil
			case "set":
				raw, err := setValue(args, "power set")
				if err != nil {
					return err
				}
				value, err := parseIntInRange(raw, 0, 100)
				if err != nil {
					return err
				}
				if err := sysfs.Write(path, strconv.Itoa(value)); err != nil {
					return err
				}
				fmt.Fprintf(out, "Set charge threshold to %d%%\n", value)
				return nil
			}
			return fmt.Errorf("%w: power '%s'", ErrUnknownSubcommand, sub)
		},
	}
}

// fanCommand reads the current fan speed. The ACPI fan device has no
// writable speed control, so this feature is read only.
func fanCommand(path string, out io.Writer) Command {
	return Command{
		Usage: "  fan read      Read current fan speed in RPM",
		Run: func(args []string) error {
			sub, err := subcommand(args, "fan", "'read'")
			if err != nil {
				return err
			}
			if sub != "read" {
				return fmt.Errorf("%w: fan '%s'", ErrUnknownSubcommand, sub)
			}
			value, err := sysfs.Read(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Current fan speed: %s RPM\n", value)
			return nil
		},
	}
}

// perfCommand controls the ACPI platform profile. The set of valid profile
// names is whatever the platform_profile_choices attribute says right now,
// so validation reads that file at set time instead of hardcoding a list.
func perfCommand(profilePath, choicesPath string, out io.Writer) Command {
	return Command{
		Usage: "  perf read     Read current performance mode\n" +
			"  perf set <mode>  Set performance mode (low-power/balanced/performance)\n" +
			"  perf list     List available performance modes",
		Run: func(args []string) error {
			sub, err := subcommand(args, "perf", "'read', 'set', or 'list'")
			if err != nil {
				return err
			}
			switch sub {
			case "read":
				value, err := sysfs.Read(profilePath)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Current performance mode: %s\n", value)
				return nil
			case "set":
				mode, err := setValue(args, "perf set")
				if err != nil {
					return err
				}
				choices, err := sysfs.Read(choicesPath)
				if err != nil {
					return err
				}
				if !strings.Contains(choices, mode) {
					return fmt.Errorf("%w: invalid performance mode '%s'", ErrInvalidValue, mode)
				}
				if err := sysfs.Write(profilePath, mode); err != nil {
					return err
				}
				fmt.Fprintf(out, "Set performance mode to %s\n", mode)
				return nil
			case "list":
				choices, err := sysfs.Read(choicesPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Available performance modes: %s\n", choices)
				return nil
			}
			return fmt.Errorf("%w: perf '%s'", ErrUnknownSubcommand, sub)
		},
	}
}

// kbdCommand controls the keyboard backlight level (0 = off, 1-3 =
// brightness).
func kbdCommand(path string, out io.Writer) Command {
	return Command{
		Usage: "  kbd read      Read keyboard backlight level\n" +
			"  kbd set <0-3> Set keyboard backlight level (0=off, 1-3=brightness)\n" +
			"               Note: Backlight may be affected by ambient light sensor\n" +
			"               and GNOME's automatic backlight control",
		Run: func(args []string) error {
			sub, err := subcommand(args, "kbd", "'read' or 'set'")
			if err != nil {
				return err
			}
			switch sub {
			case "read":
				value, err := sysfs.Read(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Keyboard backlight level: %s\n", value)
				return nil
			case "set":
				raw, err := setValue(args, "kbd set")
				if err != nil {
					return err
				}
				value, err := parseIntInRange(raw, 0, 3)
				if err != nil {
					return err
				}
				if err := sysfs.Write(path, strconv.Itoa(value)); err != nil {
					return err
				}
				fmt.Fprintf(out, "Set keyboard backlight level to %d\n", value)
				return nil
			}
			return fmt.Errorf("%w: kbd '%s'", ErrUnknownSubcommand, sub)
		},
	}
}

// toggleCommand builds the handler for an on/off attribute (recording
// permission, start-on-lid-open, USB charging). The three behave
// identically apart from the command name and the wording used in output,
// so they share one constructor. label heads the read output ("Recording
// permission: Enabled"); phrase is the mid-sentence form ("recording
// permission", but "USB charge", which keeps its capitals anywhere).
func toggleCommand(name, label, phrase, path string, out io.Writer) Command {
	return Command{
		Usage: fmt.Sprintf("  %s read   Read %s status\n", name, phrase) +
			fmt.Sprintf("  %s set <value>  Set %s (0/1, on/off, true/false, yes/no)", name, phrase),
		Run: func(args []string) error {
			sub, err := subcommand(args, name, "'read' or 'set'")
			if err != nil {
				return err
			}
			switch sub {
			case "read":
				value, err := sysfs.Read(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", label, enabledString(value))
				return nil
			case "set":
				raw, err := setValue(args, name+" set")
				if err != nil {
					return err
				}
				value, err := NormalizeToggle(raw)
				if err != nil {
					return err
				}
				if err := sysfs.Write(path, value); err != nil {
					return err
				}
				fmt.Fprintf(out, "Set %s to %s\n", phrase, enabledString(value))
				return nil
			}
			return fmt.Errorf("%w: %s '%s'", ErrUnknownSubcommand, name, sub)
		},
	}
}

// NormalizeToggle maps the accepted on/off spellings to the canonical "0"
// or "1" the kernel attributes store. Anything else is rejected before a
// write is attempted.
func NormalizeToggle(value string) (string, error) {
	switch value {
	case "0", "off", "false", "no":
		return "0", nil
	case "1", "on", "true", "yes":
		return "1", nil
	}
	return "", fmt.Errorf("%w: value must be one of: 0/1, on/off, true/false, yes/no", ErrInvalidValue)
}

// enabledString renders a stored toggle value for humans. The kernel writes
// exactly "1" for enabled; anything else reads as disabled.
func enabledString(value string) string {
	if value == "1" {
		return "Enabled"
	}
	return "Disabled"
}

// subcommand extracts args[1], or fails with a hint listing the accepted
// subcommands.
func subcommand(args []string, name, accepted string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: missing %s subcommand, use %s", ErrMissingArgument, name, accepted)
	}
	return args[1], nil
}

// setValue extracts the value argument for a set subcommand (args[2]).
func setValue(args []string, what string) (string, error) {
	if len(args) < 3 {
		return "", fmt.Errorf("%w: missing value for '%s'", ErrMissingArgument, what)
	}
	return args[2], nil
}

// parseIntInRange validates a numeric set argument: it must parse as an
// integer and fall within [min, max] inclusive.
func parseIntInRange(raw string, min, max int) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid value '%s'", ErrInvalidValue, raw)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%w: value must be between %d and %d", ErrInvalidValue, min, max)
	}
	return value, nil
}
