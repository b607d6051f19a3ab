package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/junevm/galaxybookctl/internal/command"
	"github.com/junevm/galaxybookctl/internal/sysfs"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------
// AESTHETICS
// ---------------------------------------------------------
// Lipgloss styles for the control panel. Think of it like CSS for the
// terminal.

var (
	colorBlue   = lipgloss.Color("#1428A0") // Samsung blue
	colorCyan   = lipgloss.Color("#01CDFE")
	colorYellow = lipgloss.Color("#FFFFB6")
	colorDark   = lipgloss.Color("#1A1A2E")
	colorGray   = lipgloss.Color("#6E6E80")
	colorRed    = lipgloss.Color("#FF5F5F")

	appStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorBlue).
			Padding(0, 1).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Width(22)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorDark).
			Background(colorCyan).
			Bold(true)

	errValueStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Italic(true).
			MarginTop(1)
)

// ---------------------------------------------------------
// MODEL
// ---------------------------------------------------------
// The Model holds the entire state of the panel: one row per hardware
// feature, a cursor, and the last action's status line. There is no timer:
// values are read when the panel opens and re-read only on demand, so the
// panel stays a one-shot tool rather than a monitor.

// featureKind decides which keys act on a row.
type featureKind int

const (
	kindReadOnly featureKind = iota // fan: no writable control
	kindToggle                      // record, start-on-lid-open, usb-charge
	kindLevel                       // power, kbd: integer with a step
	kindProfile                     // perf: cycles through the choices file
)

// feature is one row of the panel.
type feature struct {
	label string
	path  string
	kind  featureKind

	// min/max/step bound kindLevel adjustments.
	min, max, step int

	// choicesPath feeds kindProfile with its valid values.
	choicesPath string

	value string
	err   error
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Apply   key.Binding
	Incr    key.Binding
	Decr    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp is what the bubbles help bar renders at the bottom.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Apply, k.Incr, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Apply:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle/cycle")),
	Incr:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "adjust")),
	Decr:    key.NewBinding(key.WithKeys("left", "h")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-read")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type model struct {
	features  []feature
	cursor    int
	statusMsg string
	help      help.Model
	width     int
	height    int
}

// initialModel builds one row per feature from the resolved control paths.
func initialModel(paths command.Paths) model {
	features := []feature{
		{label: "Charge threshold", path: paths.Power, kind: kindLevel, min: 0, max: 100, step: 5},
		{label: "Fan speed", path: paths.Fan, kind: kindReadOnly},
		{label: "Performance mode", path: paths.Profile, kind: kindProfile, choicesPath: paths.ProfileChoices},
		{label: "Recording permission", path: paths.AllowRecording, kind: kindToggle},
		{label: "Keyboard backlight", path: paths.KbdBacklight, kind: kindLevel, min: 0, max: 3, step: 1},
		{label: "Start on lid open", path: paths.StartOnLidOpen, kind: kindToggle},
		{label: "USB charge", path: paths.USBCharge, kind: kindToggle},
	}

	m := model{features: features, help: help.New()}
	m.refresh()
	return m
}

// refresh re-reads every feature's current value from the hardware.
func (m *model) refresh() {
	for i := range m.features {
		m.features[i].value, m.features[i].err = sysfs.Read(m.features[i].path)
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// Update receives key events and applies the requested hardware change
// synchronously; sysfs writes return immediately, so there is nothing to
// run in the background.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.cursor = len(m.features) - 1
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.features)-1 {
				m.cursor++
			} else {
				m.cursor = 0
			}

		case key.Matches(msg, keys.Refresh):
			m.refresh()
			m.statusMsg = "Re-read all values"

		case key.Matches(msg, keys.Apply):
			m.apply(m.cursor, 0)

		case key.Matches(msg, keys.Incr):
			m.apply(m.cursor, +1)

		case key.Matches(msg, keys.Decr):
			m.apply(m.cursor, -1)
		}
	}

	return m, nil
}

// apply performs the hardware change for the selected row. direction is +1
// or -1 for level adjustments; toggles and profile cycling ignore it (enter
// and right both advance).
func (m *model) apply(i, direction int) {
	f := &m.features[i]

	var next string
	switch f.kind {
	case kindReadOnly:
		m.statusMsg = fmt.Sprintf("%s is read-only", f.label)
		return

	case kindToggle:
		if f.value == "1" {
			next = "0"
		} else {
			next = "1"
		}

	case kindLevel:
		if direction == 0 {
			m.statusMsg = "Use ←/→ to adjust"
			return
		}
		current, err := strconv.Atoi(f.value)
		if err != nil {
			m.statusMsg = fmt.Sprintf("Cannot adjust %s: current value '%s'", f.label, f.value)
			return
		}
		target := current + direction*f.step
		if target < f.min {
			target = f.min
		}
		if target > f.max {
			target = f.max
		}
		if target == current {
			return
		}
		next = strconv.Itoa(target)

	case kindProfile:
		choices, err := sysfs.Read(f.choicesPath)
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return
		}
		next = nextChoice(strings.Fields(choices), f.value, direction)
		if next == "" {
			return
		}
	}

	if err := sysfs.Write(f.path, next); err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return
	}

	// Read back rather than trusting the write: the kernel may clamp or
	// reformat the stored value.
	f.value, f.err = sysfs.Read(f.path)
	m.statusMsg = fmt.Sprintf("Set %s to %s", strings.ToLower(f.label), f.value)
}

// nextChoice picks the neighbor of current in the choices list, wrapping at
// both ends. direction 0 or +1 advances, -1 goes back.
func nextChoice(choices []string, current string, direction int) string {
	if len(choices) == 0 {
		return ""
	}
	step := 1
	if direction < 0 {
		step = -1
	}
	for i, c := range choices {
		if c == current {
			return choices[(i+step+len(choices))%len(choices)]
		}
	}
	// Current value not in the list; start from the first choice.
	return choices[0]
}

// ---------------------------------------------------------
// VIEW
// ---------------------------------------------------------

func (m model) View() string {
	title := titleStyle.Render(" GALAXY BOOK CONTROL ")

	var rows []string
	for i, f := range m.features {
		value := f.value
		switch f.kind {
		case kindReadOnly:
			value += " RPM"
		case kindToggle:
			if f.value == "1" {
				value = "Enabled"
			} else {
				value = "Disabled"
			}
		case kindLevel:
			if f.max == 100 {
				value += "%"
			}
		}

		rendered := valueStyle.Render(value)
		if f.err != nil {
			rendered = errValueStyle.Render("unavailable")
		}

		label := labelStyle.Render(f.label)
		if m.cursor == i {
			label = selectedStyle.Render("➤ " + f.label)
			label = lipgloss.NewStyle().Width(22).Render(label)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, rendered))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)

	status := ""
	if m.statusMsg != "" {
		status = statusStyle.Render(m.statusMsg)
	}

	ui := lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		status,
		lipgloss.NewStyle().Foreground(colorGray).MarginTop(1).Render(m.help.View(keys)),
	)

	if m.width > 0 {
		return appStyle.Render(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, ui))
	}
	return appStyle.Render(ui)
}

// Run starts the Bubble Tea program.
func Run(paths command.Paths) error {
	// tea.WithAltScreen() switches to the alternate terminal buffer,
	// so when you quit, the terminal is restored to its previous state.
	p := tea.NewProgram(initialModel(paths), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
