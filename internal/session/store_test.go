package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ytget/tg-video-bot/internal/model"
)

func TestStore_PutGetRemove(t *testing.T) {
	store := NewStore()

	if _, err := store.Get(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty store, got %v", err)
	}

	store.Put(&model.Session{UserID: 1, SourceURL: "https://youtu.be/abc", Title: "Demo"})

	sess, err := store.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sess.Title != "Demo" {
		t.Errorf("expected title 'Demo', got '%s'", sess.Title)
	}

	// A new session for the same user replaces the old one
	store.Put(&model.Session{UserID: 1, SourceURL: "https://youtu.be/def", Title: "Other"})
	sess, err = store.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sess.Title != "Other" {
		t.Errorf("expected replacement session, got '%s'", sess.Title)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 session, got %d", store.Len())
	}

	store.Remove(1)
	if _, err := store.Get(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Remove, got %v", err)
	}

	// Removing again is a no-op
	store.Remove(1)
}

func TestStore_ConcurrentUsers(t *testing.T) {
	store := NewStore()
	const users = 50

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			store.Put(&model.Session{UserID: userID, Title: fmt.Sprintf("video-%d", userID)})
			if _, err := store.Get(userID); err != nil {
				t.Errorf("user %d: Get failed: %v", userID, err)
			}
		}(int64(i))
	}
	wg.Wait()

	if store.Len() != users {
		t.Errorf("expected %d sessions, got %d", users, store.Len())
	}
}
