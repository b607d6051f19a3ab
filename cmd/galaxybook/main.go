package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/junevm/galaxybookctl/internal/command"
	"github.com/junevm/galaxybookctl/internal/config"
	"github.com/junevm/galaxybookctl/internal/driver"
	"github.com/junevm/galaxybookctl/internal/resolve"
	"github.com/junevm/galaxybookctl/internal/ui"
)

// Version is the current version of the application.
// This is set at build time via -ldflags.
var Version = "dev"

func main() {
	// 1. Parse flags. Everything after the flags is the command and its
	// arguments ("power set 80", "perf list", ...).
	versionMode := flag.Bool("version", false, "Display version and exit")
	shortVersionMode := flag.Bool("v", false, "Display version and exit")
	checkMode := flag.Bool("check", false, "Check whether the samsung-galaxybook driver is loaded")
	flag.Parse()

	if *versionMode || *shortVersionMode {
		fmt.Printf("galaxybook version %s\n", Version)
		return
	}

	// 2. Load configuration. The config file only exists to override
	// control paths on unusual kernels; missing or broken config falls
	// back to the stock paths.
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	resolver := resolve.Resolver{
		UdevDir:    cfg.UdevDir,
		DriverDir:  cfg.DriverDir,
		ACPIDevDir: cfg.ACPIDevDir,
	}

	// 3. Handle driver check mode. If the driver is missing we try a
	// modprobe before giving up; on older kernels the module exists but
	// nothing loads it at boot.
	if *checkMode {
		if driver.Loaded(cfg.DriverDir) {
			fmt.Println("samsung-galaxybook driver is loaded")
			return
		}
		fmt.Fprintln(os.Stderr, "samsung-galaxybook driver is not loaded, trying modprobe...")
		if err := driver.TryLoad(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("samsung-galaxybook driver loaded")
		return
	}

	// 4. Resolve the three attributes whose location varies by kernel
	// version. This happens exactly once, here, before any command runs;
	// the resolved paths stay fixed for the rest of the process.
	paths := command.Paths{
		Power:          cfg.PowerPath,
		Fan:            cfg.FanPath,
		Profile:        cfg.ProfilePath,
		ProfileChoices: cfg.ProfileChoicesPath,
		KbdBacklight:   cfg.KbdBacklightPath,
		AllowRecording: resolver.Resolve("allow_recording"),
		StartOnLidOpen: resolver.Resolve("start_on_lid_open"),
		USBCharge:      resolver.Resolve("usb_charge"),
	}

	// 5. Build the command set: one handler per feature, plus the
	// interactive panel. The help command is added by NewRegistry once
	// the set is complete.
	cmds := command.Features(paths, os.Stdout)
	cmds["ui"] = command.Command{
		Usage: "  ui            Open the interactive control panel",
		Run: func([]string) error {
			if !driver.Loaded(cfg.DriverDir) {
				fmt.Fprintf(os.Stderr, "Warning: samsung-galaxybook driver not detected (try 'sudo modprobe %s')\n", driver.ModuleName)
			}
			return ui.Run(paths)
		},
	}

	registry := command.NewRegistry(cmds, os.Stdout, os.Stderr)
	os.Exit(registry.Dispatch(flag.Args()))
}
