package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unknown is the sentinel for a missing or unparseable time. Callers must
// treat it as "no time information", never as zero seconds.
const Unknown = -1.0

// clockRun matches an HH:MM:SS-shaped token, optionally followed by a
// fractional part (".mmm", ",mmm") or a frame part (":FF").
var clockRun = regexp.MustCompile(`\d{1,2}:\d{2}:\d{2}[,.:]?\d*`)

// ParseClock converts a timestamp token to seconds.
//
// The first HH:MM:SS-shaped run found in the token wins; a bare MM:SS token
// is accepted as-is. Colon-separated parts are interpreted by count:
// 2 = MM:SS, 3 = HH:MM:SS, 4 = HH:MM:SS:FF where the frame part is treated
// as hundredths. Both "," and "." work as fractional separators. Anything
// else returns Unknown.
func ParseClock(token string) float64 {
	s := clockRun.FindString(token)
	if s == "" {
		s = strings.TrimSpace(token)
	}
	s = strings.ReplaceAll(s, ",", ".")

	parts := strings.Split(s, ":")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return Unknown
		}
		values = append(values, v)
	}

	switch len(values) {
	case 4:
		return values[0]*3600 + values[1]*60 + values[2] + values[3]/100.0
	case 3:
		return values[0]*3600 + values[1]*60 + values[2]
	case 2:
		return values[0]*60 + values[1]
	}
	return Unknown
}

// HasClock reports whether a line carries time information, either a
// "-->" range separator or a bare HH:MM:SS run.
func HasClock(line string) bool {
	return strings.Contains(line, "-->") || clockRun.MatchString(line)
}

// FindPreceding scans the given text backward, line by line, for the nearest
// timestamp header. The closest qualifying line wins. Range lines ("-->")
// yield both start and end; single-timestamp lines yield only a start. If the
// line immediately above the winner is purely numeric (a subtitle sequence
// number), it is prepended to the header joined by a newline.
//
// An empty header means no timestamp exists anywhere above; start and end are
// then Unknown.
func FindPreceding(textBefore string) (header string, start, end float64) {
	lines := strings.Split(strings.TrimSpace(textBefore), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !HasClock(line) {
			continue
		}

		start, end = Unknown, Unknown
		if strings.Contains(line, "-->") {
			parts := strings.SplitN(line, "-->", 2)
			start = ParseClock(parts[0])
			end = ParseClock(parts[1])
		} else {
			start = ParseClock(line)
		}

		header = line
		if i > 0 {
			if prev := strings.TrimSpace(lines[i-1]); isDigits(prev) {
				header = prev + "\n" + line
			}
		}
		return header, start, end
	}
	return "", Unknown, Unknown
}

// RangeDuration parses a full "start --> end" line and returns its duration
// in seconds, or 0 when the line is not a well-ordered range.
func RangeDuration(line string) float64 {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0
	}
	start := ParseClock(parts[0])
	end := ParseClock(parts[1])
	if start >= 0 && end > start {
		return end - start
	}
	return 0
}

// FormatDuration renders a duration in seconds as "42s" or "3m 17s".
// Negative input is clamped to zero.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", int(math.Ceil(seconds)))
	}
	minutes := int(math.Floor(seconds / 60))
	remaining := int(math.Ceil(math.Mod(seconds, 60)))
	return fmt.Sprintf("%dm %ds", minutes, remaining)
}

// FormatSRT formats seconds as an SRT timestamp "00:00:00,000"
func FormatSRT(seconds float64) string {
	return formatClock(seconds, ",")
}

// FormatVTT formats seconds as a WebVTT timestamp "00:00:00.000"
func FormatVTT(seconds float64) string {
	return formatClock(seconds, ".")
}

func formatClock(seconds float64, sep string) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(math.Round(seconds * 1000))
	hours := totalMillis / 3600000
	minutes := (totalMillis % 3600000) / 60000
	secs := (totalMillis % 60000) / 1000
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, sep, millis)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
