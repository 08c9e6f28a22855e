package resolver

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kkdai/youtube/v2"

	"github.com/ytget/tg-video-bot/internal/model"
	"github.com/ytget/tg-video-bot/internal/platform"
)

// Recognized video host markers
var hostMarkers = []string{"youtube.com", "youtu.be"}

// Retry settings for transient stream failures
const (
	maxFetchRetries = 1
	retryBackoff    = 2 * time.Second
)

// DefaultSnapshotInterval floors how often Fetch emits progress snapshots
const DefaultSnapshotInterval = 500 * time.Millisecond

// IsVideoURL reports whether text contains a recognized video host marker
func IsVideoURL(text string) bool {
	for _, marker := range hostMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// YouTube resolves video metadata and fetches streams. It implements both
// the resolver and fetcher collaborator contracts of the download package.
type YouTube struct {
	client           youtube.Client
	snapshotInterval time.Duration
}

// NewYouTube creates a resolver with default settings
func NewYouTube() *YouTube {
	return &YouTube{snapshotInterval: DefaultSnapshotInterval}
}

// Resolve returns the title and raw format descriptors for rawURL
func (y *YouTube) Resolve(ctx context.Context, rawURL string) (*model.VideoInfo, error) {
	video, err := y.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rawURL, err)
	}

	info := &model.VideoInfo{
		URL:         rawURL,
		Title:       video.Title,
		Descriptors: make([]model.FormatDescriptor, 0, len(video.Formats)),
	}
	for _, f := range video.Formats {
		info.Descriptors = append(info.Descriptors, descriptorFromFormat(f))
	}
	return info, nil
}

func descriptorFromFormat(f youtube.Format) model.FormatDescriptor {
	return model.FormatDescriptor{
		ID:           strconv.Itoa(f.ItagNo),
		QualityLabel: f.QualityLabel,
		FPS:          f.FPS,
		HasVideo:     f.QualityLabel != "" || f.Width > 0,
		HasAudio:     f.AudioChannels > 0,
		Size:         f.ContentLength,
		MimeType:     f.MimeType,
	}
}

// Fetch downloads the format identified by formatID (an itag) into
// destPath, emitting throttled progress snapshots. Transient stream
// failures are retried once; no partial file survives a failure.
func (y *YouTube) Fetch(ctx context.Context, rawURL, formatID, destPath string, onProgress func(model.ProgressSnapshot)) error {
	itag, err := strconv.Atoi(formatID)
	if err != nil {
		return fmt.Errorf("bad format id %q: %w", formatID, err)
	}

	video, err := y.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", rawURL, err)
	}
	target := video.Formats.FindByItag(itag)
	if target == nil {
		return fmt.Errorf("itag %d is not offered for video %s", itag, video.ID)
	}

	var lastErr error
	for attempt := 0; attempt <= maxFetchRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			log.Printf("retrying fetch of %s (itag %d), attempt %d", video.ID, itag, attempt+1)
		}

		lastErr = y.fetchOnce(ctx, video, target, destPath, onProgress)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
		log.Printf("fetch attempt %d for %s failed: %v", attempt+1, video.ID, lastErr)
	}
	return lastErr
}

func (y *YouTube) fetchOnce(ctx context.Context, video *youtube.Video, target *youtube.Format, destPath string, onProgress func(model.ProgressSnapshot)) error {
	stream, size, err := y.client.GetStreamContext(ctx, video, target)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	defer stream.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}

	counter := &progressWriter{
		total:      size,
		started:    time.Now(),
		interval:   y.snapshotInterval,
		onProgress: onProgress,
	}
	_, err = io.Copy(io.MultiWriter(out, counter), contextReader{ctx: ctx, r: stream})

	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := platform.RemoveIfExists(destPath); rmErr != nil {
			log.Printf("removing partial file %s: %v", destPath, rmErr)
		}
		return fmt.Errorf("downloading stream: %w", err)
	}

	if onProgress != nil {
		onProgress(model.ProgressSnapshot{Percent: 100, ETASec: -1, Phase: model.PhaseFinished})
	}
	return nil
}

// contextReader makes the copy loop honor cancellation between reads
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// progressWriter counts copied bytes and emits rate-limited snapshots
type progressWriter struct {
	total      int64
	done       int64
	started    time.Time
	lastEmit   time.Time
	interval   time.Duration
	onProgress func(model.ProgressSnapshot)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.done += int64(len(p))
	if w.onProgress == nil {
		return len(p), nil
	}

	now := time.Now()
	if !w.lastEmit.IsZero() && now.Sub(w.lastEmit) < w.interval {
		return len(p), nil
	}
	w.lastEmit = now
	w.onProgress(w.snapshot(now))
	return len(p), nil
}

func (w *progressWriter) snapshot(now time.Time) model.ProgressSnapshot {
	snap := model.ProgressSnapshot{Percent: -1, ETASec: -1, Phase: model.PhaseFetching}

	var bytesPerSec float64
	if elapsed := now.Sub(w.started).Seconds(); elapsed > 0 {
		bytesPerSec = float64(w.done) / elapsed
		snap.Speed = humanize.IBytes(uint64(bytesPerSec)) + "/s"
	}

	if w.total > 0 {
		snap.Percent = int(float64(w.done) / float64(w.total) * 100)
		if bytesPerSec > 0 && w.total > w.done {
			snap.ETASec = int(float64(w.total-w.done) / bytesPerSec)
		}
	}
	return snap
}
