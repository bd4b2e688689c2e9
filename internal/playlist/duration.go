package playlist

import (
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts an ISO 8601 duration such as "PT1H4M13S" to
// seconds. Malformed or empty input yields zero.
func ParseISODuration(value string) int {
	if value == "" {
		return 0
	}
	match := isoDurationPattern.FindStringSubmatch(value)
	if match == nil {
		return 0
	}
	days := atoiDefault(match[1])
	hours := atoiDefault(match[2])
	minutes := atoiDefault(match[3])
	seconds := atoiDefault(match[4])
	return ((days*24+hours)*60+minutes)*60 + seconds
}

// FormatDuration renders a second count as a compact human-readable string.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	remainder := seconds % 60
	switch {
	case hours > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m " + strconv.Itoa(remainder) + "s"
	case minutes > 0:
		return strconv.Itoa(minutes) + "m " + strconv.Itoa(remainder) + "s"
	default:
		return strconv.Itoa(remainder) + "s"
	}
}

func atoiDefault(value string) int {
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
