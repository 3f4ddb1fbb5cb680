package config

import (
	"testing"
	"time"
)

func TestTimerDuration(t *testing.T) {
	cases := []struct {
		timer Timer
		want  time.Duration
	}{
		{Timer{}, 0},
		{Timer{Seconds: 30}, 30 * time.Second},
		{Timer{Minutes: 5}, 5 * time.Minute},
		{Timer{Hours: 2, Minutes: 30}, 2*time.Hour + 30*time.Minute},
		{Timer{Days: 1}, 24 * time.Hour},
		{Timer{Days: 1, Hours: 6, Minutes: 15, Seconds: 45}, 30*time.Hour + 15*time.Minute + 45*time.Second},
	}

	for _, tc := range cases {
		if got := tc.timer.Duration(); got != tc.want {
			t.Fatalf("Duration(%+v) = %s, want %s", tc.timer, got, tc.want)
		}
	}
}

func TestTimerIsZero(t *testing.T) {
	if !(Timer{}).IsZero() {
		t.Fatal("empty timer should be zero")
	}
	if (Timer{Seconds: 1}).IsZero() {
		t.Fatal("non-empty timer should not be zero")
	}
}

func TestMaxBodyBytes(t *testing.T) {
	original := GetConfig()
	t.Cleanup(func() { configValue.Store(original) })

	var cfg Config
	configValue.Store(cfg)
	if got := MaxBodyBytes(); got != 16<<20 {
		t.Fatalf("expected 16 MiB default, got %d", got)
	}

	cfg.Firewall.MaxBodyMiB = 4
	configValue.Store(cfg)
	if got := MaxBodyBytes(); got != 4<<20 {
		t.Fatalf("expected 4 MiB, got %d", got)
	}
}
