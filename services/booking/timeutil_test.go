package booking

import "testing"

func TestParseClock(t *testing.T) {
	valid := map[string]int{"00:00": 0, "08:00": 480, "9:30": 570, "16:00": 960, "23:59": 1439}
	for in, want := range valid {
		got, err := ParseClock(in)
		if err != nil {
			t.Errorf("ParseClock(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseClock(%q) = %d, want %d", in, got, want)
		}
	}
	for _, in := range []string{"", "24:00", "12:60", "12", "ab:cd", "12:5", "-1:00", "+9:00", "09:-0", "09:+5", " 9: 30", "009:00"} {
		if _, err := ParseClock(in); err == nil {
			t.Errorf("ParseClock(%q) should fail", in)
		}
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for m := 0; m < minutesPerDay; m += 7 {
		s := FormatClock(m)
		if len(s) != 5 {
			t.Fatalf("FormatClock(%d) = %q, want HH:MM", m, s)
		}
		back, err := ParseClock(s)
		if err != nil || back != m {
			t.Fatalf("round trip %d -> %q -> %d (%v)", m, s, back, err)
		}
	}
	if got := FormatClock(480); got != "08:00" {
		t.Errorf("FormatClock(480) = %q", got)
	}
}

func TestAddHoursNoRollover(t *testing.T) {
	if got := AddHours(20*60, 1); got != 21*60 {
		t.Errorf("AddHours(20:00, 1) = %d", got)
	}
	if got := AddHours(23*60, 2); got != 25*60 {
		t.Errorf("AddHours(23:00, 2) = %d, want 1500", got)
	}
}

func TestParseWindows(t *testing.T) {
	windows, err := ParseWindows("08:00-11:00, 16:00-21:00")
	if err != nil {
		t.Fatalf("ParseWindows: %v", err)
	}
	if len(windows) != 2 || windows[0].Start != 480 || windows[0].End != 660 || windows[1].Start != 960 || windows[1].End != 1260 {
		t.Errorf("windows = %+v", windows)
	}
	if w, err := ParseWindows("18:00-24:00"); err != nil || w[0].End != minutesPerDay {
		t.Errorf("closing at midnight: %+v, %v", w, err)
	}

	for _, bad := range []string{"", "08:00", "11:00-08:00", "16:00-21:00,08:00-11:00", "08:00-11:00,10:00-12:00", "08:00-25:00"} {
		if _, err := ParseWindows(bad); err == nil {
			t.Errorf("ParseWindows(%q) should fail", bad)
		}
	}
}
