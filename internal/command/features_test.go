package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/junevm/galaxybookctl/internal/sysfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPaths lays out a fake sysfs tree in a temp dir, one file per
// feature, seeded with plausible hardware values.
func newTestPaths(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	return Paths{
		Power:          write("charge_control_end_threshold", "80\n"),
		Fan:            write("fan_speed_rpm", "4712\n"),
		Profile:        write("platform_profile", "balanced\n"),
		ProfileChoices: write("platform_profile_choices", "low-power balanced performance\n"),
		KbdBacklight:   write("brightness", "1\n"),
		AllowRecording: write("allow_recording", "1\n"),
		StartOnLidOpen: write("start_on_lid_open", "0\n"),
		USBCharge:      write("usb_charge", "0\n"),
	}
}

func fileContent(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPowerReadAndSet(t *testing.T) {
	paths := newTestPaths(t)
	out := &bytes.Buffer{}
	cmds := Features(paths, out)

	require.NoError(t, cmds["power"].Run([]string{"power", "read"}))
	assert.Equal(t, "Current charge threshold: 80%\n", out.String())

	out.Reset()
	require.NoError(t, cmds["power"].Run([]string{"power", "set", "85"}))
	assert.Equal(t, "Set charge threshold to 85%\n", out.String())
	assert.Equal(t, "85", fileContent(t, paths.Power))

	// Set followed by read reflects the new value.
	out.Reset()
	require.NoError(t, cmds["power"].Run([]string{"power", "read"}))
	assert.Equal(t, "Current charge threshold: 85%\n", out.String())
}

func TestPowerSetBounds(t *testing.T) {
	paths := newTestPaths(t)
	cmds := Features(paths, &bytes.Buffer{})

	for _, v := range []string{"0", "100"} {
		assert.NoError(t, cmds["power"].Run([]string{"power", "set", v}), "boundary %s", v)
	}
	for _, v := range []string{"-1", "101", "abc", ""} {
		err := cmds["power"].Run([]string{"power", "set", v})
		assert.ErrorIs(t, err, ErrInvalidValue, "value %q", v)
	}
	// The last valid write was "100"; every rejection left it alone.
	assert.Equal(t, "100", fileContent(t, paths.Power))
}

func TestFanReadOnly(t *testing.T) {
	paths := newTestPaths(t)
	out := &bytes.Buffer{}
	cmds := Features(paths, out)

	require.NoError(t, cmds["fan"].Run([]string{"fan", "read"}))
	assert.Equal(t, "Current fan speed: 4712 RPM\n", out.String())

	err := cmds["fan"].Run([]string{"fan", "set", "2000"})
	assert.ErrorIs(t, err, ErrUnknownSubcommand)
}

func TestPerfSetValidatesAgainstChoices(t *testing.T) {
	paths := newTestPaths(t)
	out := &bytes.Buffer{}
	cmds := Features(paths, out)

	require.NoError(t, cmds["perf"].Run([]string{"perf", "set", "performance"}))
	assert.Equal(t, "Set performance mode to performance\n", out.String())
	assert.Equal(t, "performance", fileContent(t, paths.Profile))

	err := cmds["perf"].Run([]string{"perf", "set", "turbo"})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "performance", fileContent(t, paths.Profile))
}

func TestPerfList(t *testing.T) {
	paths := newTestPaths(t)
	out := &bytes.Buffer{}
	cmds := Features(paths, out)

	require.NoError(t, cmds["perf"].Run([]string{"perf", "list"}))
	assert.Equal(t, "Available performance modes: low-power balanced performance\n", out.String())
}

func TestKbdBounds(t *testing.T) {
	paths := newTestPaths(t)
	cmds := Features(paths, &bytes.Buffer{})

	for _, v := range []string{"0", "3"} {
		assert.NoError(t, cmds["kbd"].Run([]string{"kbd", "set", v}), "boundary %s", v)
	}
	for _, v := range []string{"-1", "4"} {
		err := cmds["kbd"].Run([]string{"kbd", "set", v})
		assert.ErrorIs(t, err, ErrInvalidValue, "value %s", v)
	}
	assert.Equal(t, "3", fileContent(t, paths.KbdBacklight))
}

func TestNormalizeToggle(t *testing.T) {
	for _, token := range []string{"0", "off", "false", "no"} {
		got, err := NormalizeToggle(token)
		require.NoError(t, err, "token %s", token)
		assert.Equal(t, "0", got, "token %s", token)
	}
	for _, token := range []string{"1", "on", "true", "yes"} {
		got, err := NormalizeToggle(token)
		require.NoError(t, err, "token %s", token)
		assert.Equal(t, "1", got, "token %s", token)
	}
	for _, token := range []string{"2", "ON", "enable", "maybe", ""} {
		_, err := NormalizeToggle(token)
		assert.ErrorIs(t, err, ErrInvalidValue, "token %q", token)
	}
}

func TestToggleReadRendersEnabledDisabled(t *testing.T) {
	paths := newTestPaths(t)
	out := &bytes.Buffer{}
	cmds := Features(paths, out)

	require.NoError(t, cmds["record"].Run([]string{"record", "read"}))
	assert.Equal(t, "Recording permission: Enabled\n", out.String())

	out.Reset()
	require.NoError(t, cmds["usb-charge"].Run([]string{"usb-charge", "read"}))
	assert.Equal(t, "USB charge: Disabled\n", out.String())
}

func TestToggleSetNormalizesBeforeWriting(t *testing.T) {
	paths := newTestPaths(t)
	out := &bytes.Buffer{}
	cmds := Features(paths, out)

	require.NoError(t, cmds["start-on-lid-open"].Run([]string{"start-on-lid-open", "set", "yes"}))
	assert.Equal(t, "Set start on lid open to Enabled\n", out.String())
	assert.Equal(t, "1", fileContent(t, paths.StartOnLidOpen))

	out.Reset()
	require.NoError(t, cmds["start-on-lid-open"].Run([]string{"start-on-lid-open", "set", "off"}))
	assert.Equal(t, "Set start on lid open to Disabled\n", out.String())
	assert.Equal(t, "0", fileContent(t, paths.StartOnLidOpen))

	// A bad token is rejected before any write happens.
	err := cmds["start-on-lid-open"].Run([]string{"start-on-lid-open", "set", "enable"})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "0", fileContent(t, paths.StartOnLidOpen))
}

func TestToggleWordingKeepsUSBChargeCapitals(t *testing.T) {
	paths := newTestPaths(t)
	out := &bytes.Buffer{}
	cmds := Features(paths, out)

	// "USB charge" keeps its capitals mid-sentence; the other toggles
	// lowercase their label there.
	require.NoError(t, cmds["usb-charge"].Run([]string{"usb-charge", "set", "on"}))
	assert.Equal(t, "Set USB charge to Enabled\n", out.String())
	assert.Equal(t, "1", fileContent(t, paths.USBCharge))

	assert.Contains(t, cmds["usb-charge"].Usage, "Read USB charge status")
	assert.Contains(t, cmds["usb-charge"].Usage, "Set USB charge (0/1, on/off, true/false, yes/no)")

	out.Reset()
	require.NoError(t, cmds["record"].Run([]string{"record", "set", "off"}))
	assert.Equal(t, "Set recording permission to Disabled\n", out.String())
	assert.Contains(t, cmds["record"].Usage, "Read recording permission status")
}

func TestKbdUsageMentionsBacklightInterference(t *testing.T) {
	cmds := Features(Paths{}, &bytes.Buffer{})

	assert.Contains(t, cmds["kbd"].Usage, "ambient light sensor")
	assert.Contains(t, cmds["kbd"].Usage, "GNOME's automatic backlight control")
}

func TestMissingSubcommandAndValue(t *testing.T) {
	paths := newTestPaths(t)
	cmds := Features(paths, &bytes.Buffer{})

	for name := range cmds {
		err := cmds[name].Run([]string{name})
		assert.ErrorIs(t, err, ErrMissingArgument, "command %s", name)
	}

	for _, name := range []string{"power", "perf", "record", "kbd", "start-on-lid-open", "usb-charge"} {
		err := cmds[name].Run([]string{name, "set"})
		assert.ErrorIs(t, err, ErrMissingArgument, "command %s", name)
	}
}

func TestUnknownSubcommand(t *testing.T) {
	paths := newTestPaths(t)
	cmds := Features(paths, &bytes.Buffer{})

	for name := range cmds {
		err := cmds[name].Run([]string{name, "bogus"})
		assert.ErrorIs(t, err, ErrUnknownSubcommand, "command %s", name)
	}
}

func TestReadSurfacesAccessorError(t *testing.T) {
	paths := newTestPaths(t)
	require.NoError(t, os.Remove(paths.Power))
	cmds := Features(paths, &bytes.Buffer{})

	err := cmds["power"].Run([]string{"power", "read"})
	require.ErrorIs(t, err, sysfs.ErrUnreadable)
	assert.Contains(t, err.Error(), paths.Power)
}
