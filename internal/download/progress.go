package download

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ytget/tg-video-bot/internal/model"
)

const msgProcessing = "⚙️ Processing..."

// Reporter turns raw fetch progress snapshots into throttled edits of a
// single status message. Updates with byte-identical rendered text are
// suppressed, edits are floored to a minimum interval, and edit failures
// are logged but never propagated: progress reporting is best effort and
// must not abort a download.
type Reporter struct {
	messenger   Messenger
	ref         MessageRef
	taskID      string
	minInterval time.Duration

	mu       sync.Mutex
	lastText string
	lastEdit time.Time
	finished bool
}

// NewReporter creates a reporter editing ref on behalf of taskID
func NewReporter(messenger Messenger, ref MessageRef, taskID string, minInterval time.Duration) *Reporter {
	return &Reporter{
		messenger:   messenger,
		ref:         ref,
		taskID:      taskID,
		minInterval: minInterval,
	}
}

// Update processes one progress snapshot. Snapshots arrive from a single
// fetch goroutine, so edits are applied in emission order.
func (r *Reporter) Update(snap model.ProgressSnapshot) {
	if snap.Phase == model.PhaseFinished {
		r.Finish()
		return
	}

	text := renderProgress(snap)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished || text == r.lastText {
		return
	}
	if !r.lastEdit.IsZero() && time.Since(r.lastEdit) < r.minInterval {
		return
	}
	r.apply(text)
}

// Finish emits the terminal processing message exactly once. Further
// updates are ignored.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return
	}
	r.finished = true
	r.apply(msgProcessing)
}

// apply edits the status message; callers hold r.mu
func (r *Reporter) apply(text string) {
	r.lastText = text
	r.lastEdit = time.Now()

	if r.ref == (MessageRef{}) {
		return
	}
	if err := r.messenger.EditText(r.ref, text); err != nil {
		log.Printf("task %s: progress edit failed: %v", r.taskID, err)
	}
}

func renderProgress(snap model.ProgressSnapshot) string {
	text := "⬇️ Downloading video..."
	if snap.Percent >= 0 {
		text = fmt.Sprintf("⬇️ Downloading video... %d%%", snap.Percent)
	}
	if snap.Speed != "" {
		text += fmt.Sprintf(" (%s, ETA %s)", snap.Speed, snap.ETAString())
	}
	return text
}
