package domain

import "testing"

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-12-01", "2000-01-31", "2100-12-31"}
	invalid := []string{"", "2025-1-01", "2025/12/01", "1999-12-01", "2101-01-01", "2025-13-01", "2025-00-10", "2025-12-32", "2025-12-00"}

	for _, d := range valid {
		if !IsValidDate(d) {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if IsValidDate(d) {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidTime(t *testing.T) {
	for _, v := range []string{"00:00", "09:05", "23:59"} {
		if !IsValidTime(v) {
			t.Errorf("IsValidTime(%q) = false", v)
		}
	}
	for _, v := range []string{"24:00", "9:05", "12:60", "12-30", ""} {
		if IsValidTime(v) {
			t.Errorf("IsValidTime(%q) = true", v)
		}
	}
}

func TestIsValidID(t *testing.T) {
	if !IsValidID("B001") {
		t.Error("B001 should be accepted")
	}
	if IsValidID("") || IsValidID("B 001") || IsValidID("ABCDEFGHIJKLMNOPQRSTU") {
		t.Error("empty, spaced or over-long ids should be rejected")
	}
	for _, id := range []string{"S,9", "B\n1", "a\r"} {
		if IsValidID(id) {
			t.Errorf("%q carries a file delimiter and should be rejected", id)
		}
	}
}
