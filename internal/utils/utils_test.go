package utils

import (
	"math"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:    "0 min",
		59:   "1 min",
		600:  "10 min",
		3600: "1h 00min",
		3900: "1h 05min",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(850); got != "850 m" {
		t.Errorf("FormatDistance(850) = %q", got)
	}
	if got := FormatDistance(12345); got != "12.3 km" {
		t.Errorf("FormatDistance(12345) = %q", got)
	}
}

func TestHaversineMeters(t *testing.T) {
	if d := HaversineMeters(60.1699, 24.9384, 60.1699, 24.9384); d != 0 {
		t.Fatalf("same point distance = %f, want 0", d)
	}
	// Helsinki central to Espoo central is roughly 16 km.
	d := HaversineMeters(60.1699, 24.9384, 60.2055, 24.6559)
	if math.Abs(d-16200) > 700 {
		t.Fatalf("unexpected Helsinki-Espoo distance %f", d)
	}
}

func TestDeref(t *testing.T) {
	name := "Kamppi"
	blank := "  "
	if Deref(nil, "-") != "-" || Deref(&blank, "-") != "-" || Deref(&name, "-") != "Kamppi" {
		t.Fatalf("Deref mismatch")
	}
}

func TestParseISO(t *testing.T) {
	got, err := ParseISO(" 2025-10-14T10:00:00.5+03:00 ")
	if err != nil {
		t.Fatalf("ParseISO: %v", err)
	}
	if got.UTC().Format(time.RFC3339Nano) != "2025-10-14T07:00:00.5Z" {
		t.Fatalf("unexpected instant %s", got.UTC())
	}
	if _, err := ParseISO("1728900000000"); err == nil {
		t.Fatalf("epoch millis are not RFC 3339")
	}
}
