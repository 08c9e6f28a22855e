package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/tg-video-bot/internal/format"
	"github.com/ytget/tg-video-bot/internal/model"
	"github.com/ytget/tg-video-bot/internal/platform"
	"github.com/ytget/tg-video-bot/internal/session"
)

// User-visible status messages
const (
	msgInvalidLink    = "❌ That doesn't look like a video link. Send a YouTube URL."
	msgResolving      = "🔍 Getting video info..."
	msgResolveFailed  = "⚠️ Failed to fetch: %v"
	msgNoFormats      = "⚠️ No downloadable formats with both audio and video."
	msgSessionExpired = "❌ Session expired. Send the link again."
	msgUnknownFormat  = "❌ That quality is no longer available. Send the link again."
	msgTaskInProgress = "⏳ A download is already running. Wait for it to finish."
	msgDownloading    = "⬇️ Downloading video..."
	msgFetchFailed    = "⚠️ Download failed: %v"
	msgUploading      = "📤 Uploading to Telegram..."
	msgUploadFailed   = "❌ Upload failed: %v"
	msgSent           = "✅ Sent!"
)

const fileExtension = ".mp4"

// Options configures a Service
type Options struct {
	DownloadDir   string
	MaxUploadSize int64         // bytes; files above this are never uploaded
	EditInterval  time.Duration // minimum delay between progress edits
	LinkChecker   func(string) bool
}

// Service drives a user's session through the download lifecycle:
// link intake, format presentation, fetch with progress, size gating,
// upload, and cleanup.
type Service struct {
	sessions  *session.Manager
	resolver  Resolver
	fetcher   Fetcher
	messenger Messenger
	opts      Options
}

// NewService creates the orchestrator over its collaborators
func NewService(sessions *session.Manager, resolver Resolver, fetcher Fetcher, messenger Messenger, opts Options) *Service {
	return &Service{
		sessions:  sessions,
		resolver:  resolver,
		fetcher:   fetcher,
		messenger: messenger,
		opts:      opts,
	}
}

// HandleLink processes an inbound text message as a candidate video link.
// On success the user's session is created (replacing any previous one) and
// the quality picker is sent. The returned error classifies the failure;
// the user has already been messaged about it.
func (s *Service) HandleLink(ctx context.Context, userID int64, text string) error {
	if s.opts.LinkChecker != nil && !s.opts.LinkChecker(text) {
		s.sendText(userID, msgInvalidLink)
		return ErrInvalidLink
	}

	s.sendText(userID, msgResolving)

	info, err := s.resolver.Resolve(ctx, text)
	if err != nil {
		s.sendText(userID, fmt.Sprintf(msgResolveFailed, err))
		return err
	}

	options, err := format.Present(info.Descriptors)
	if err != nil {
		s.sendText(userID, msgNoFormats)
		return err
	}

	title := platform.SanitizeFilename(info.Title)
	if _, err := s.sessions.Open(userID, text, title, options); err != nil {
		s.sendText(userID, msgTaskInProgress)
		return err
	}

	if err := s.messenger.SendOptions(userID, title, options); err != nil {
		// Without a visible picker the session is unusable
		s.sessions.Invalidate(userID)
		log.Printf("user %d: sending quality picker failed: %v", userID, err)
		return err
	}
	return nil
}

// HandleSelection processes a quality selection event carrying the opaque
// format token. It validates the session and token, takes the per-user
// in-flight guard, and runs the full fetch-upload cycle. The session and
// any local file are always gone by the time it returns.
func (s *Service) HandleSelection(ctx context.Context, userID int64, formatID string) error {
	sess, err := s.sessions.Acquire(userID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
			s.sendText(userID, msgSessionExpired)
			return err
		}
		return err
	}

	opt, ok := sess.FindFormat(formatID)
	if !ok {
		s.sendText(userID, msgUnknownFormat)
		return ErrUnknownFormat
	}

	if err := s.sessions.Begin(userID); err != nil {
		s.sendText(userID, msgTaskInProgress)
		return err
	}

	task := &model.DownloadTask{
		ID:        newTaskID(),
		UserID:    userID,
		SourceURL: sess.SourceURL,
		Title:     sess.Title,
		FormatID:  opt.ID,
		Status:    model.TaskStatusDownloading,
		StartedAt: time.Now(),
	}
	log.Printf("task %s: user %d selected %s of %q", task.ID, userID, format.Summary(opt), task.Title)

	return s.runTask(ctx, task)
}

// runTask executes one fetch-upload cycle. Cleanup is unconditional: the
// local file, the session, and the in-flight guard never outlive the task.
func (s *Service) runTask(ctx context.Context, task *model.DownloadTask) error {
	defer s.sessions.End(task.UserID)
	defer s.sessions.Invalidate(task.UserID)
	defer func() {
		task.FinishedAt = time.Now()
		if err := platform.RemoveIfExists(task.OutputPath); err != nil {
			log.Printf("task %s: cleanup of %s failed: %v", task.ID, task.OutputPath, err)
		}
	}()

	ref, err := s.messenger.SendText(task.UserID, msgDownloading)
	if err != nil {
		// No status message to edit; the task itself continues
		log.Printf("task %s: sending status message failed: %v", task.ID, err)
	}
	reporter := NewReporter(s.messenger, ref, task.ID, s.opts.EditInterval)

	task.OutputPath = filepath.Join(s.opts.DownloadDir, localFileName(task))

	if err := s.fetcher.Fetch(ctx, task.SourceURL, task.FormatID, task.OutputPath, reporter.Update); err != nil {
		return s.fail(task, ref, fmt.Sprintf(msgFetchFailed, err), err)
	}
	reporter.Finish()

	s.transition(task, model.TaskStatusSizeCheck)
	size, err := platform.FileSize(task.OutputPath)
	if err != nil {
		return s.fail(task, ref, fmt.Sprintf(msgFetchFailed, err), err)
	}
	task.FileSize = size

	if size > s.opts.MaxUploadSize {
		tooLarge := &FileTooLargeError{Size: size, Limit: s.opts.MaxUploadSize}
		return s.fail(task, ref, "⚠️ "+tooLarge.Error(), tooLarge)
	}

	s.transition(task, model.TaskStatusUploading)
	s.status(task.UserID, ref, msgUploading)

	if err := s.messenger.SendFile(ctx, task.UserID, task.OutputPath, task.Title+fileExtension, task.Title); err != nil {
		return s.fail(task, ref, fmt.Sprintf(msgUploadFailed, err), err)
	}

	s.transition(task, model.TaskStatusDone)
	s.status(task.UserID, ref, msgSent)
	log.Printf("task %s: delivered %q (%d bytes) to user %d", task.ID, task.Title, task.FileSize, task.UserID)
	return nil
}

// fail marks the task failed and delivers its single terminal message
func (s *Service) fail(task *model.DownloadTask, ref MessageRef, text string, err error) error {
	s.transition(task, model.TaskStatusFailed)
	task.LastError = err.Error()
	s.status(task.UserID, ref, text)
	log.Printf("task %s: failed: %v", task.ID, err)
	return err
}

// transition advances the task state, logging any illegal step
func (s *Service) transition(task *model.DownloadTask, next model.TaskStatus) {
	if !task.Status.CanTransitionTo(next) {
		log.Printf("task %s: illegal transition %s -> %s", task.ID, task.Status, next)
	}
	task.Status = next
}

// status edits the status message, falling back to a fresh message when the
// edit fails, so every terminal outcome stays visible to the user
func (s *Service) status(userID int64, ref MessageRef, text string) {
	if ref != (MessageRef{}) {
		if err := s.messenger.EditText(ref, text); err == nil {
			return
		}
	}
	s.sendText(userID, text)
}

func (s *Service) sendText(userID int64, text string) {
	if _, err := s.messenger.SendText(userID, text); err != nil {
		log.Printf("user %d: sending %q failed: %v", userID, text, err)
	}
}

// localFileName builds a task-unique filename so concurrent tasks for
// similarly titled videos never collide on disk
func localFileName(task *model.DownloadTask) string {
	base := platform.SanitizeFilename(task.Title)
	if base == "" {
		base = "video"
	}
	short := task.ID
	if len(short) > 8 {
		// The tail of the ID carries its random bits
		short = short[len(short)-8:]
	}
	return base + "-" + short + fileExtension
}

func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("task-%d", time.Now().UnixNano())
	}
	return id.String()
}
