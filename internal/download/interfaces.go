package download

import (
	"context"

	"github.com/ytget/tg-video-bot/internal/model"
)

// Resolver extracts the title and the raw list of available formats for a
// video URL.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*model.VideoInfo, error)
}

// Fetcher transfers the bytes of a chosen format into destPath, reporting
// progress snapshots through onProgress in emission order. On failure no
// partial file remains at destPath.
type Fetcher interface {
	Fetch(ctx context.Context, url, formatID, destPath string, onProgress func(model.ProgressSnapshot)) error
}

// MessageRef identifies a previously sent chat message so it can be edited
type MessageRef struct {
	ChatID    int64
	MessageID string
}

// Messenger delivers text, edits, quality pickers and files to a chat user.
// EditText failures are non-fatal to a task; SendFile failure fails it.
type Messenger interface {
	SendText(userID int64, text string) (MessageRef, error)
	EditText(ref MessageRef, text string) error
	SendOptions(userID int64, title string, options []model.FormatOption) error
	SendFile(ctx context.Context, userID int64, filePath, fileName, caption string) error
}
