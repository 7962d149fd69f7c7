package resolution

import (
	"testing"

	"github.com/ytget/ytmp4/internal/model"
)

func TestExtensionEquals(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{"mp4", true},
		{"MP4", true},
		{".mp4", true},
		{" mp4 ", true},
		{"webm", false},
		{"", false},
	}

	for _, test := range tests {
		if got := extensionEquals(model.FormatRecord{Extension: test.ext}, ContainerMP4); got != test.expected {
			t.Errorf("extensionEquals(%q) = %v, expected %v", test.ext, got, test.expected)
		}
	}
}

func TestIsVideoOnly(t *testing.T) {
	if !isVideoOnly(model.FormatRecord{VideoCodec: "avc1", AudioCodec: "none"}) {
		t.Fatal("video-only record should pass")
	}
	if isVideoOnly(model.FormatRecord{VideoCodec: "avc1", AudioCodec: "mp4a"}) {
		t.Fatal("muxed record should not pass")
	}
	if isVideoOnly(model.FormatRecord{VideoCodec: "none", AudioCodec: "mp4a"}) {
		t.Fatal("audio-only record should not pass")
	}
}

func TestBitrate(t *testing.T) {
	if bitrate(model.FormatRecord{AverageBitrate: -5}) != 0 {
		t.Fatal("negative bitrate should count as zero")
	}
	if bitrate(model.FormatRecord{AverageBitrate: 12.5}) != 12.5 {
		t.Fatal("bitrate should pass through")
	}
}
