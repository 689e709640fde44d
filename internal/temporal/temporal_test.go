package temporal_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmadden/officepal/internal/temporal"
)

// reference instant for all table cases: Wednesday 2024-01-10, noon.
var ref = time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

func TestParse_TomorrowAndNextWeekday(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"tomorrow with am token", "tomorrow 9am", "2024-01-11 09:00"},
		{"tomorrow defaults to 9am", "tomorrow", "2024-01-11 09:00"},
		{"tomorrow pm token", "tomorrow 3pm", "2024-01-11 15:00"},
		{"tomorrow with minutes", "tomorrow 3:30pm", "2024-01-11 15:30"},
		{"tomorrow bare hour", "tomorrow at 15", "2024-01-11 15:00"},
		{"tomorrow bare hour-minute", "tomorrow 3:30", "2024-01-11 03:30"},
		{"tomorrow spaced meridiem", "tomorrow 3 pm", "2024-01-11 15:00"},
		{"tomorrow noon boundary", "tomorrow 12pm", "2024-01-11 12:00"},
		{"tomorrow midnight boundary", "tomorrow 12am", "2024-01-11 00:00"},
		{"next monday defaults", "next monday", "2024-01-15 09:00"},
		{"next monday with token", "next monday 3pm", "2024-01-15 15:00"},
		{"next wednesday is a week out", "next wednesday", "2024-01-17 09:00"},
		{"next sunday", "next sunday 10:15am", "2024-01-14 10:15"},
		{"monday-first order wins", "next friday or next monday", "2024-01-15 09:00"},
		{"uppercase input", "Next Monday 3PM", "2024-01-15 15:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := temporal.Parse(tc.in, ref)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("parse %q: got %q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParse_FallbackAbsolute(t *testing.T) {
	got, err := temporal.Parse("2024-03-05 14:00", ref)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "2024-03-05 14:00" {
		t.Fatalf("got %q want %q", got, "2024-03-05 14:00")
	}
}

func TestParse_Unparseable(t *testing.T) {
	for _, in := range []string{"blurble frobnitz", "qwerty uiop"} {
		if _, err := temporal.Parse(in, ref); !errors.Is(err, temporal.ErrUnparseable) {
			t.Fatalf("parse %q: expected ErrUnparseable, got %v", in, err)
		}
	}
}

func TestParse_OutOfRangeClock(t *testing.T) {
	if _, err := temporal.Parse("tomorrow at 99", ref); !errors.Is(err, temporal.ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable for out-of-range hour, got %v", err)
	}
}

func TestParse_OutputAlwaysRoundTrips(t *testing.T) {
	// Every successful parse must feed the ledger a string that parses
	// back under the fixed layout.
	for _, in := range []string{"tomorrow 3pm", "next saturday", "2024-03-05 14:00"} {
		got, err := temporal.Parse(in, ref)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := time.ParseInLocation(temporal.Layout, got, time.Local); err != nil {
			t.Fatalf("parse %q produced non-round-trippable %q: %v", in, got, err)
		}
	}
}
