package model

import (
	"testing"
	"time"
)

func TestProgressSnapshot_ETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{31, "00:31"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
	}

	for _, test := range tests {
		snap := ProgressSnapshot{ETASec: test.etaSec}
		result := snap.ETAString()
		if result != test.expected {
			t.Errorf("ProgressSnapshot{ETASec: %d}.ETAString() = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestSession_FindFormat(t *testing.T) {
	sess := &Session{
		UserID: 1,
		Formats: []FormatOption{
			{ID: "22", Label: "720p - 50 MiB"},
			{ID: "18", Label: "360p - 20 MiB"},
		},
	}

	opt, ok := sess.FindFormat("22")
	if !ok {
		t.Fatal("expected format 22 to be found")
	}
	if opt.Label != "720p - 50 MiB" {
		t.Errorf("expected label '720p - 50 MiB', got '%s'", opt.Label)
	}

	if _, ok := sess.FindFormat("137"); ok {
		t.Error("expected format 137 to be absent")
	}
}

func TestSession_ExpiredAt(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := &Session{UserID: 1, CreatedAt: created}

	tests := []struct {
		name     string
		now      time.Time
		ttl      time.Duration
		expected bool
	}{
		{"fresh", created.Add(time.Minute), 30 * time.Minute, false},
		{"at boundary", created.Add(30 * time.Minute), 30 * time.Minute, false},
		{"past boundary", created.Add(31 * time.Minute), 30 * time.Minute, true},
		{"zero ttl never expires", created.Add(1000 * time.Hour), 0, false},
	}

	for _, test := range tests {
		result := sess.ExpiredAt(test.now, test.ttl)
		if result != test.expected {
			t.Errorf("%s: ExpiredAt = %v, expected %v", test.name, result, test.expected)
		}
	}
}
