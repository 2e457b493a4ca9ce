package redis

import (
	"testing"
	"time"
)

func TestDayKeyFormat(t *testing.T) {
	got := dayKey("provider_1", 2026, time.September, 16)
	want := "provider-appointments:provider_1:2026-9-16"
	if got != want {
		t.Errorf("expected key %q, got %q", want, got)
	}
}

func TestDayKey_NoZeroPadding(t *testing.T) {
	got := dayKey("p", 2026, time.January, 5)
	want := "provider-appointments:p:2026-1-5"
	if got != want {
		t.Errorf("expected key %q, got %q", want, got)
	}
}
