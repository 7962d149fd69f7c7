package model

import (
	"strconv"
	"strings"
)

// CodecNone is how extractors mark a stream without video or audio.
const CodecNone = "none"

// FormatRecord describes one stream variant offered by an extractor.
// Zero values mean "not reported": an empty codec, Height 0 and
// AverageBitrate 0 are all treated as absent.
type FormatRecord struct {
	FormatID       string  `json:"format_id"`
	VideoCodec     string  `json:"vcodec,omitempty"`
	AudioCodec     string  `json:"acodec,omitempty"`
	Extension      string  `json:"ext"`
	Height         int     `json:"height,omitempty"`
	AverageBitrate float64 `json:"tbr,omitempty"` // kbit/s
}

// HasVideo reports whether the record carries a video stream.
func (f FormatRecord) HasVideo() bool {
	return codecPresent(f.VideoCodec)
}

// HasAudio reports whether the record carries an audio stream.
func (f FormatRecord) HasAudio() bool {
	return codecPresent(f.AudioCodec)
}

func codecPresent(codec string) bool {
	c := strings.TrimSpace(codec)
	return c != "" && !strings.EqualFold(c, CodecNone)
}

// ResolutionEntry is one selectable resolution and the format chosen for it.
type ResolutionEntry struct {
	Height   int
	FormatID string
}

// Label returns the display form, e.g. "1080p".
func (r ResolutionEntry) Label() string {
	return strconv.Itoa(r.Height) + "p"
}

// VideoInfo is the extractor's description of a single video.
type VideoInfo struct {
	ID        string
	URL       string
	Title     string
	Extension string
	Formats   []FormatRecord
}

// GetDisplayTitle returns the title, or the URL when the title is empty or looks like a URL.
func (v *VideoInfo) GetDisplayTitle() string {
	if v.Title != "" && !strings.HasPrefix(v.Title, "http") {
		return v.Title
	}
	return v.URL
}
