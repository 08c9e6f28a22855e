package download

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	// ErrInvalidLink means the message text does not look like a video link
	ErrInvalidLink = errors.New("not a recognized video link")

	// ErrUnknownFormat means the selection token is absent from the session
	ErrUnknownFormat = errors.New("selected format is not in the offered list")
)

// FileTooLargeError reports a downloaded file exceeding the upload limit
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: %s (limit %s)",
		humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Limit)))
}
