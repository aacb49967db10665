package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/hollow/internal/config"
)

// Dark palette with a blue accent; mutable so settings can override.
var (
	ColorAccent  = lipgloss.Color("#4a90e2")
	ColorText    = lipgloss.Color("#ffffff")
	ColorMuted   = lipgloss.Color("#8a8f98")
	ColorDim     = lipgloss.Color("#3c3f41")
	ColorSuccess = lipgloss.Color("#6abf69")
	ColorWarning = lipgloss.Color("#e5c07b")
	ColorError   = lipgloss.Color("#e06c75")
)

// Pre-built styles, rebuilt by rebuildStyles() after color changes.
var (
	styleHeader         lipgloss.Style
	styleHeaderLabel    lipgloss.Style
	styleDivider        lipgloss.Style
	styleIconDone       lipgloss.Style
	styleIconHollow     lipgloss.Style
	styleIconFailed     lipgloss.Style
	styleIconSkipped    lipgloss.Style
	styleFilePath       lipgloss.Style
	styleFileDir        lipgloss.Style
	styleFileSize       lipgloss.Style
	styleFileSpeed      lipgloss.Style
	styleError          lipgloss.Style
	styleErrorPath      lipgloss.Style
	styleKeybindKey     lipgloss.Style
	styleKeybindLabel   lipgloss.Style
	styleBigNumber      lipgloss.Style
	styleSparkline      lipgloss.Style
	styleProgressFilled lipgloss.Style
	styleProgressEmpty  lipgloss.Style
	styleStatus         lipgloss.Style
	styleSavePrompt     lipgloss.Style
	styleSaveInput      lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles reconstructs all lipgloss styles from the current color vars.
func rebuildStyles() {
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	styleHeaderLabel = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	styleDivider = lipgloss.NewStyle().Foreground(ColorDim)
	styleIconDone = lipgloss.NewStyle().Foreground(ColorSuccess)
	styleIconHollow = lipgloss.NewStyle().Foreground(ColorAccent)
	styleIconFailed = lipgloss.NewStyle().Foreground(ColorError)
	styleIconSkipped = lipgloss.NewStyle().Foreground(ColorMuted)
	styleFilePath = lipgloss.NewStyle().Foreground(ColorText)
	styleFileDir = lipgloss.NewStyle().Foreground(ColorMuted)
	styleFileSize = lipgloss.NewStyle().Foreground(ColorMuted)
	styleFileSpeed = lipgloss.NewStyle().Foreground(ColorAccent)
	styleError = lipgloss.NewStyle().Foreground(ColorError)
	styleErrorPath = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	styleKeybindKey = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	styleKeybindLabel = lipgloss.NewStyle().Foreground(ColorMuted)
	styleBigNumber = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	styleSparkline = lipgloss.NewStyle().Foreground(ColorAccent)
	styleProgressFilled = lipgloss.NewStyle().Foreground(ColorSuccess)
	styleProgressEmpty = lipgloss.NewStyle().Foreground(ColorDim)
	styleStatus = lipgloss.NewStyle().Foreground(ColorWarning).Italic(true)
	styleSavePrompt = lipgloss.NewStyle().Foreground(ColorMuted)
	styleSaveInput = lipgloss.NewStyle().Foreground(ColorText)
}

// ApplyTheme overrides colors from the settings theme block and rebuilds all styles.
func ApplyTheme(tc config.ThemeConfig) {
	if tc.Accent != nil {
		ColorAccent = lipgloss.Color(*tc.Accent)
	}
	if tc.Text != nil {
		ColorText = lipgloss.Color(*tc.Text)
	}
	if tc.Muted != nil {
		ColorMuted = lipgloss.Color(*tc.Muted)
	}
	if tc.Dim != nil {
		ColorDim = lipgloss.Color(*tc.Dim)
	}
	if tc.Success != nil {
		ColorSuccess = lipgloss.Color(*tc.Success)
	}
	if tc.Warning != nil {
		ColorWarning = lipgloss.Color(*tc.Warning)
	}
	if tc.Error != nil {
		ColorError = lipgloss.Color(*tc.Error)
	}
	rebuildStyles()
}
