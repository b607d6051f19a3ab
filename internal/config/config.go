package config

import (
	"fmt"
	"os"
	"path/filepath"

	jsonParser "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Global koanf instance. Use "." as the key delimiter.
var k = koanf.New(".")

// Config holds the control-file locations the tool operates on.
//
// The defaults match a stock kernel with the samsung-galaxybook driver, so
// almost nobody needs a config file. The overrides exist for kernels that
// relocate an attribute (the driver has moved things between releases) and
// for pointing the tool at a fake sysfs tree.
//
// The `koanf` struct tags map JSON keys in the config file to these fields.
type Config struct {
	// PowerPath is the battery charge-control threshold attribute.
	PowerPath string `koanf:"POWER_PATH" json:"POWER_PATH"`

	// FanPath is the ACPI fan speed attribute (read only).
	FanPath string `koanf:"FAN_PATH" json:"FAN_PATH"`

	// ProfilePath and ProfileChoicesPath are the ACPI platform profile
	// attribute and its companion listing the accepted profile names.
	ProfilePath        string `koanf:"PROFILE_PATH" json:"PROFILE_PATH"`
	ProfileChoicesPath string `koanf:"PROFILE_CHOICES_PATH" json:"PROFILE_CHOICES_PATH"`

	// KbdBacklightPath is the keyboard backlight LED brightness attribute.
	KbdBacklightPath string `koanf:"KBD_BACKLIGHT_PATH" json:"KBD_BACKLIGHT_PATH"`

	// UdevDir, DriverDir and ACPIDevDir are the probe roots for the
	// runtime-resolved attributes (allow_recording, start_on_lid_open,
	// usb_charge). See internal/resolve for how they are used.
	UdevDir    string `koanf:"UDEV_DIR" json:"UDEV_DIR"`
	DriverDir  string `koanf:"DRIVER_DIR" json:"DRIVER_DIR"`
	ACPIDevDir string `koanf:"ACPI_DEV_DIR" json:"ACPI_DEV_DIR"`
}

// DefaultConfig returns the stock kernel paths for the Galaxy Book family.
func DefaultConfig() Config {
	return Config{
		PowerPath:          "/sys/class/power_supply/BAT1/charge_control_end_threshold",
		FanPath:            "/sys/bus/acpi/devices/PNP0C0B:00/fan_speed_rpm",
		ProfilePath:        "/sys/firmware/acpi/platform_profile",
		ProfileChoicesPath: "/sys/firmware/acpi/platform_profile_choices",
		KbdBacklightPath:   "/sys/class/leds/samsung-galaxybook::kbd_backlight/brightness",
		UdevDir:            "/dev/samsung-galaxybook",
		DriverDir:          "/sys/bus/platform/drivers/samsung-galaxybook",
		ACPIDevDir:         "/sys/bus/acpi/devices/SCAI:00",
	}
}

// GetConfigDir returns the directory where the configuration file is stored.
// Usually ~/.config/galaxybookctl
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "galaxybookctl"), nil
}

// Load reads the configuration, falling back to defaults if no file exists.
// Defaults are loaded first and the file (if any) is merged on top, so a
// config file only needs to name the paths it actually overrides.
func Load() (Config, error) {
	// 1. Load defaults.
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("error loading default config: %w", err)
	}

	// 2. Merge the file on top, if present.
	dir, err := GetConfigDir()
	if err != nil {
		return Config{}, err
	}
	path := filepath.Join(dir, "config.json")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), jsonParser.Parser()); err != nil {
			return Config{}, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// 3. Unmarshal into the struct.
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return cfg, nil
}
