package model

import "time"

// Session holds the per-user state between link submission and format
// selection. At most one session exists per user; a new link overwrites it.
type Session struct {
	UserID    int64
	SourceURL string
	Title     string
	Formats   []FormatOption // resolver-preference order
	CreatedAt time.Time
}

// FindFormat returns the option carrying the given selection token
func (s *Session) FindFormat(id string) (FormatOption, bool) {
	for _, f := range s.Formats {
		if f.ID == id {
			return f, true
		}
	}
	return FormatOption{}, false
}

// ExpiredAt reports whether the session is older than ttl at the given time.
// A zero ttl disables expiry.
func (s *Session) ExpiredAt(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.CreatedAt) > ttl
}
