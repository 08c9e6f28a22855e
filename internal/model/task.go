package model

import (
	"fmt"
	"time"
)

// VideoInfo is the resolver's view of a single video: its title and the raw
// format descriptors available for download.
type VideoInfo struct {
	URL         string
	Title       string
	Descriptors []FormatDescriptor
}

// FormatDescriptor is raw per-format metadata reported by the resolver
type FormatDescriptor struct {
	ID           string // opaque, stable per resolver
	QualityLabel string // e.g. "720p", "1080p60"
	FPS          int
	HasVideo     bool
	HasAudio     bool
	Size         int64 // bytes, 0 when the resolver does not report it
	MimeType     string
}

// FormatOption is one selectable entry offered to the user. ID is the only
// value carried back on selection; Label is what the user sees.
type FormatOption struct {
	ID    string
	Label string
	Size  int64
}

// DownloadTask tracks one fetch-and-upload cycle for a single user. It is
// transient: it exists only while the orchestrator runs it.
type DownloadTask struct {
	ID         string
	UserID     int64
	SourceURL  string
	Title      string
	FormatID   string
	Status     TaskStatus
	OutputPath string // path to the local file, empty until the fetch starts
	FileSize   int64  // measured size in bytes after the fetch
	LastError  string // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// ProgressSnapshot is an immutable view of fetch progress, derived from
// fetcher callbacks and used to decide whether a status edit is warranted.
type ProgressSnapshot struct {
	Percent int    // 0 to 100, -1 if total size is unknown
	Speed   string // human readable speed (e.g. "1.2 MiB/s")
	ETASec  int    // ETA in seconds, -1 if unknown
	Phase   ProgressPhase
}

// ETAString returns ETA formatted as hh:mm:ss or mm:ss, or "—" if unknown
func (p ProgressSnapshot) ETAString() string {
	if p.ETASec <= 0 {
		return "—"
	}

	hours := p.ETASec / 3600
	minutes := (p.ETASec % 3600) / 60
	seconds := p.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
