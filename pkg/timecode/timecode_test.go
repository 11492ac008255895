package timecode

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected float64
	}{
		{"plain HH:MM:SS", "00:01:30", 90},
		{"MM:SS", "02:15", 135},
		{"comma millis", "00:00:01,500", 1.5},
		{"dot millis", "00:00:01.500", 1.5},
		{"frame part as hundredths", "01:02:03:50", 3723.5},
		{"embedded in line", "x 00:00:10,000 trailing", 10},
		{"garbage", "hello world", Unknown},
		{"empty", "", Unknown},
		{"single number", "42", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseClock(tt.token); got != tt.expected {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.token, got, tt.expected)
			}
		})
	}
}

func TestFindPreceding(t *testing.T) {
	text := "1\n00:00:10 --> 00:00:12\nSpeaker 1: hi\n\n"

	header, start, end := FindPreceding(text)
	if header != "1\n00:00:10 --> 00:00:12" {
		t.Errorf("Expected sequence-numbered header, got %q", header)
	}
	if start != 10.0 {
		t.Errorf("Expected start 10.0, got %v", start)
	}
	if end != 12.0 {
		t.Errorf("Expected end 12.0, got %v", end)
	}
}

func TestFindPreceding_ClosestWins(t *testing.T) {
	text := "00:00:01 --> 00:00:02\nfar away\n\n00:00:30 --> 00:00:35\nnear\n"

	header, start, end := FindPreceding(text)
	if header != "00:00:30 --> 00:00:35" {
		t.Errorf("Expected nearest header to win, got %q", header)
	}
	if start != 30.0 || end != 35.0 {
		t.Errorf("Expected (30, 35), got (%v, %v)", start, end)
	}
}

func TestFindPreceding_SingleTimestamp(t *testing.T) {
	text := "some intro\n00:01:00:00\nSpeaker text\n"

	header, start, end := FindPreceding(text)
	if header != "00:01:00:00" {
		t.Errorf("Expected bare timestamp header, got %q", header)
	}
	if start != 60.0 {
		t.Errorf("Expected start 60.0, got %v", start)
	}
	if end != Unknown {
		t.Errorf("Expected end to stay Unknown, got %v", end)
	}
}

func TestFindPreceding_NoTimestamp(t *testing.T) {
	header, start, end := FindPreceding("just\nplain\ntext")
	if header != "" {
		t.Errorf("Expected empty header, got %q", header)
	}
	if start != Unknown || end != Unknown {
		t.Errorf("Expected Unknown sentinels, got (%v, %v)", start, end)
	}
}

func TestRangeDuration(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected float64
	}{
		{"valid range", "00:00:10,000 --> 00:00:15,500", 5.5},
		{"reversed range", "00:00:15 --> 00:00:10", 0},
		{"no separator", "00:00:15", 0},
		{"garbage sides", "abc --> def", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangeDuration(tt.line); got != tt.expected {
				t.Errorf("RangeDuration(%q) = %v, want %v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"under a minute", 42.2, "43s"},
		{"exactly zero", 0, "0s"},
		{"negative clamps", -5, "0s"},
		{"minutes and seconds", 125.1, "2m 6s"},
		{"exact minute", 120, "2m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.expected {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.expected)
			}
		})
	}
}

func TestFormatSRT(t *testing.T) {
	if got := FormatSRT(1.0); got != "00:00:01,000" {
		t.Errorf("FormatSRT(1.0) = %q, want 00:00:01,000", got)
	}
	if got := FormatSRT(3661.25); got != "01:01:01,250" {
		t.Errorf("FormatSRT(3661.25) = %q, want 01:01:01,250", got)
	}
	if got := FormatSRT(-2); got != "00:00:00,000" {
		t.Errorf("FormatSRT(-2) = %q, want 00:00:00,000", got)
	}
}

func TestFormatVTT(t *testing.T) {
	if got := FormatVTT(5.0); got != "00:00:05.000" {
		t.Errorf("FormatVTT(5.0) = %q, want 00:00:05.000", got)
	}
}
