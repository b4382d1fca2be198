package planner

import (
	"fmt"
	"strings"

	"studyplanner/internal/config"
)

type FontSize int

const (
	FontSmall FontSize = iota
	FontMedium
	FontLarge
)

var fontSizes = []FontSize{FontSmall, FontMedium, FontLarge}

func (f FontSize) String() string {
	switch f {
	case FontSmall:
		return "small"
	case FontLarge:
		return "large"
	default:
		return "medium"
	}
}

func ParseFontSize(v string) (FontSize, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "small":
		return FontSmall, nil
	case "", "medium":
		return FontMedium, nil
	case "large":
		return FontLarge, nil
	default:
		return FontMedium, fmt.Errorf("unknown font size %q", v)
	}
}

// Step moves through the sizes, clamping at either end.
func (f FontSize) Step(delta int) FontSize {
	i := int(f) + delta
	if i < 0 {
		i = 0
	}
	if i >= len(fontSizes) {
		i = len(fontSizes) - 1
	}
	return fontSizes[i]
}

// Preferences are display toggles held in memory for the life of the process.
type Preferences struct {
	DarkMode             bool
	FontSize             FontSize
	NotificationsEnabled bool
	OfflineMode          bool
}

func DefaultPreferences() Preferences {
	return Preferences{FontSize: FontMedium, NotificationsEnabled: true}
}

// PreferencesFromConfig seeds the startup values; config validation already
// rejected unknown font sizes.
func PreferencesFromConfig(c config.Preferences) Preferences {
	size, err := ParseFontSize(c.FontSize)
	if err != nil {
		size = FontMedium
	}
	return Preferences{
		DarkMode:             c.DarkMode,
		FontSize:             size,
		NotificationsEnabled: c.Notifications,
		OfflineMode:          c.Offline,
	}
}
