package session

import (
	"errors"
	"testing"
	"time"

	"github.com/ytget/tg-video-bot/internal/model"
)

var testFormats = []model.FormatOption{{ID: "22", Label: "720p - 50 MiB"}}

func TestManager_OpenAndAcquire(t *testing.T) {
	m := NewManager(NewStore(), 30*time.Minute)

	if _, err := m.Acquire(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound before Open, got %v", err)
	}

	if _, err := m.Open(1, "https://youtu.be/abc", "Demo", testFormats); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	sess, err := m.Acquire(1)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if sess.SourceURL != "https://youtu.be/abc" {
		t.Errorf("unexpected session URL '%s'", sess.SourceURL)
	}

	m.Invalidate(1)
	if _, err := m.Acquire(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Invalidate, got %v", err)
	}
}

func TestManager_LazyExpiry(t *testing.T) {
	store := NewStore()
	m := NewManager(store, 30*time.Minute)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	if _, err := m.Open(1, "https://youtu.be/abc", "Demo", testFormats); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	current = current.Add(29 * time.Minute)
	if _, err := m.Acquire(1); err != nil {
		t.Errorf("expected fresh session, got %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := m.Acquire(1); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}

	// Eviction is lazy but real: the store entry is gone
	if store.Len() != 0 {
		t.Errorf("expected expired session to be evicted, store has %d", store.Len())
	}
	if _, err := m.Acquire(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after eviction, got %v", err)
	}
}

func TestManager_InFlightGuard(t *testing.T) {
	m := NewManager(NewStore(), 0)

	if err := m.Begin(1); err != nil {
		t.Fatalf("first Begin failed: %v", err)
	}

	if err := m.Begin(1); !errors.Is(err, ErrTaskInProgress) {
		t.Errorf("expected ErrTaskInProgress for second Begin, got %v", err)
	}

	// A different user is unaffected
	if err := m.Begin(2); err != nil {
		t.Errorf("Begin for another user failed: %v", err)
	}

	m.End(1)
	if err := m.Begin(1); err != nil {
		t.Errorf("Begin after End failed: %v", err)
	}
}

func TestManager_OpenRejectedWhileTaskRuns(t *testing.T) {
	m := NewManager(NewStore(), 0)

	if _, err := m.Open(1, "https://youtu.be/abc", "Demo", testFormats); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := m.Begin(1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if _, err := m.Open(1, "https://youtu.be/def", "Other", testFormats); !errors.Is(err, ErrTaskInProgress) {
		t.Errorf("expected ErrTaskInProgress for Open during task, got %v", err)
	}

	m.End(1)
	if _, err := m.Open(1, "https://youtu.be/def", "Other", testFormats); err != nil {
		t.Errorf("Open after End failed: %v", err)
	}
}
