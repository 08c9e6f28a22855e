package format

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/ytget/tg-video-bot/internal/model"
)

// ErrNoFormats means no descriptor carried both audio and video streams
var ErrNoFormats = errors.New("no downloadable formats with both audio and video")

const (
	labelSeparator   = " - "
	unknownQuality   = "unknown quality"
	unknownSizeLabel = "size unknown"
)

// Present filters descriptors to those carrying both a video and an audio
// stream, labels them, and deduplicates by label keeping the first
// occurrence in resolver order. Returns ErrNoFormats when nothing survives.
//
// Video-only and audio-only descriptors are excluded: delivering them would
// require a separate mux step this bot does not perform.
func Present(descriptors []model.FormatDescriptor) ([]model.FormatOption, error) {
	seen := make(map[string]bool, len(descriptors))
	var options []model.FormatOption

	for _, d := range descriptors {
		if !d.HasVideo || !d.HasAudio {
			continue
		}

		label := Label(d)
		if seen[label] {
			continue
		}
		seen[label] = true

		options = append(options, model.FormatOption{
			ID:    d.ID,
			Label: label,
			Size:  d.Size,
		})
	}

	if len(options) == 0 {
		return nil, ErrNoFormats
	}
	return options, nil
}

// Label builds the display label for a descriptor: the quality note plus a
// human-readable size when the resolver reported one.
func Label(d model.FormatDescriptor) string {
	quality := d.QualityLabel
	if quality == "" {
		quality = unknownQuality
	}

	if d.Size > 0 {
		return quality + labelSeparator + humanize.IBytes(uint64(d.Size))
	}
	return quality + labelSeparator + unknownSizeLabel
}

// Summary renders a one-line description of an option for status messages
func Summary(opt model.FormatOption) string {
	return fmt.Sprintf("%s (%s)", opt.ID, opt.Label)
}
