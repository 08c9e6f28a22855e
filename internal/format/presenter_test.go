package format

import (
	"errors"
	"testing"

	"github.com/ytget/tg-video-bot/internal/model"
)

func progressive(id, quality string, size int64) model.FormatDescriptor {
	return model.FormatDescriptor{
		ID:           id,
		QualityLabel: quality,
		HasVideo:     true,
		HasAudio:     true,
		Size:         size,
	}
}

func TestPresent_FiltersAndOrders(t *testing.T) {
	descriptors := []model.FormatDescriptor{
		progressive("22", "720p", 50*1024*1024),
		{ID: "137", QualityLabel: "1080p", HasVideo: true, HasAudio: false, Size: 80 * 1024 * 1024},
		{ID: "140", QualityLabel: "", HasVideo: false, HasAudio: true, Size: 4 * 1024 * 1024},
		progressive("18", "360p", 20*1024*1024),
	}

	options, err := Present(descriptors)
	if err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	if options[0].ID != "22" || options[1].ID != "18" {
		t.Errorf("expected resolver order [22 18], got [%s %s]", options[0].ID, options[1].ID)
	}
	if options[0].Label != "720p - 50 MiB" {
		t.Errorf("expected label '720p - 50 MiB', got '%s'", options[0].Label)
	}
	if options[1].Label != "360p - 20 MiB" {
		t.Errorf("expected label '360p - 20 MiB', got '%s'", options[1].Label)
	}
}

func TestPresent_DeduplicatesByLabel(t *testing.T) {
	// Same rendered label, different itags: the first in resolver order wins
	descriptors := []model.FormatDescriptor{
		progressive("22", "720p", 50*1024*1024),
		progressive("298", "720p", 50*1024*1024),
		progressive("18", "360p", 0),
		progressive("134", "360p", 0),
	}

	options, err := Present(descriptors)
	if err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	if len(options) != 2 {
		t.Fatalf("expected 2 options after dedup, got %d", len(options))
	}
	if options[0].ID != "22" {
		t.Errorf("expected first occurrence '22' to win, got '%s'", options[0].ID)
	}

	seen := map[string]bool{}
	for _, opt := range options {
		if seen[opt.Label] {
			t.Errorf("duplicate label '%s' in output", opt.Label)
		}
		seen[opt.Label] = true
	}
}

func TestPresent_NoFormats(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []model.FormatDescriptor
	}{
		{"empty input", nil},
		{"video only", []model.FormatDescriptor{
			{ID: "137", QualityLabel: "1080p", HasVideo: true},
		}},
		{"audio only", []model.FormatDescriptor{
			{ID: "140", HasAudio: true},
		}},
	}

	for _, test := range tests {
		_, err := Present(test.descriptors)
		if !errors.Is(err, ErrNoFormats) {
			t.Errorf("%s: expected ErrNoFormats, got %v", test.name, err)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		descriptor model.FormatDescriptor
		expected   string
	}{
		{progressive("22", "720p", 50 * 1024 * 1024), "720p - 50 MiB"},
		{progressive("18", "360p", 0), "360p - size unknown"},
		{progressive("x", "", 1024), "unknown quality - 1.0 KiB"},
	}

	for _, test := range tests {
		result := Label(test.descriptor)
		if result != test.expected {
			t.Errorf("Label(%s) = %q, expected %q", test.descriptor.ID, result, test.expected)
		}
	}
}
