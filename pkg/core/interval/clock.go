package interval

import "fmt"

// ParseMinute converts a 24-hour "HH:MM" clock string to a minute of day.
// "24:00" is accepted as the end-of-day boundary.
func ParseMinute(s string) (int, error) {
	var hour, min int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &min); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	if hour < 0 || hour > 24 || min < 0 || min > 59 {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	minute := hour*60 + min
	if minute > MinutesPerDay {
		return 0, fmt.Errorf("clock time %q is past the end of the day", s)
	}
	return minute, nil
}

// FormatMinute renders a minute of day as 24-hour "HH:MM".
func FormatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
