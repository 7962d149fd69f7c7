package resolution

import (
	"strings"

	"github.com/ytget/ytmp4/internal/model"
)

// ContainerMP4 is the only container extension the resolver offers.
const ContainerMP4 = "mp4"

// isVideoOnly returns true when the record has a video codec and no audio codec.
// Audio is merged in separately, so muxed streams are skipped.
func isVideoOnly(f model.FormatRecord) bool {
	return f.HasVideo() && !f.HasAudio()
}

// extensionEquals compares the container extension case-insensitively, ignoring a leading dot.
func extensionEquals(f model.FormatRecord, ext string) bool {
	got := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(f.Extension)), ".")
	return got == ext
}

// hasHeight returns true when the extractor reported a height.
func hasHeight(f model.FormatRecord) bool {
	return f.Height > 0
}

// qualifies combines all filter criteria.
func qualifies(f model.FormatRecord) bool {
	return isVideoOnly(f) && extensionEquals(f, ContainerMP4) && hasHeight(f)
}

// bitrate treats a missing or negative bitrate as zero.
func bitrate(f model.FormatRecord) float64 {
	if f.AverageBitrate < 0 {
		return 0
	}
	return f.AverageBitrate
}
