package booking

import (
	"fmt"
	"strings"

	"clubhouse/models"
)

// ParseWindows parses a comma separated schedule such as
// "08:00-11:00,16:00-21:00". "24:00" is accepted as a closing time.
func ParseWindows(spec string) ([]models.OperatingWindow, error) {
	var windows []models.OperatingWindow
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.Split(part, "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid session %q: want HH:MM-HH:MM", part)
		}
		start, err := ParseClock(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("session %q: %w", part, err)
		}
		end, err := parseClosing(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("session %q: %w", part, err)
		}
		windows = append(windows, models.OperatingWindow{Start: start, End: end})
	}
	if err := ValidateWindows(windows); err != nil {
		return nil, err
	}
	return windows, nil
}

func parseClosing(s string) (int, error) {
	if strings.TrimSpace(s) == "24:00" {
		return minutesPerDay, nil
	}
	return ParseClock(s)
}

// ValidateWindows checks that windows are non-empty, inside one day, ordered
// by start and pairwise disjoint.
func ValidateWindows(windows []models.OperatingWindow) error {
	if len(windows) == 0 {
		return fmt.Errorf("schedule has no sessions")
	}
	for i, w := range windows {
		if w.Start < 0 || w.End > minutesPerDay || w.Start >= w.End {
			return fmt.Errorf("session %s-%s is not a valid interval", FormatClock(w.Start), FormatClock(w.End))
		}
		if i > 0 && w.Start < windows[i-1].End {
			return fmt.Errorf("session %s-%s overlaps or precedes the previous session",
				FormatClock(w.Start), FormatClock(w.End))
		}
	}
	return nil
}
