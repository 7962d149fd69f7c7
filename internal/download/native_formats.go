package download

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/ytdlp/types"

	"github.com/ytget/ytmp4/internal/model"
)

var (
	heightRe = regexp.MustCompile(`([0-9]{3,4})p`)
	codecsRe = regexp.MustCompile(`codecs="?([^";]+)"?`)
)

// Codec family prefixes as they appear in MIME codecs lists.
var (
	videoCodecPrefixes = []string{"avc", "vp8", "vp9", "vp09", "av01", "hev", "hvc"}
	audioCodecPrefixes = []string{"mp4a", "opus", "vorbis", "ac-3", "ec-3", "flac"}
)

// mimeParts splits `video/mp4; codecs="avc1.640028"` into kind, subtype and codecs.
func mimeParts(mime string) (kind, subtype string, codecs []string) {
	m := strings.ToLower(strings.TrimSpace(mime))
	base := m
	if i := strings.Index(m, ";"); i >= 0 {
		base = m[:i]
	}
	if k, s, ok := strings.Cut(strings.TrimSpace(base), "/"); ok {
		kind, subtype = k, s
	}
	if match := codecsRe.FindStringSubmatch(m); len(match) == 2 {
		for _, c := range strings.Split(match[1], ",") {
			if c = strings.TrimSpace(c); c != "" {
				codecs = append(codecs, c)
			}
		}
	}
	return kind, subtype, codecs
}

func hasPrefixAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// splitCodecs assigns each codec to the video or audio side by family. A
// codec of unknown family falls to the side named by the MIME kind.
func splitCodecs(kind string, codecs []string) (video, audio string) {
	for _, c := range codecs {
		switch {
		case hasPrefixAny(c, videoCodecPrefixes):
			if video == "" {
				video = c
			}
		case hasPrefixAny(c, audioCodecPrefixes):
			if audio == "" {
				audio = c
			}
		case kind == "video" && video == "":
			video = c
		case kind == "audio" && audio == "":
			audio = c
		}
	}
	return video, audio
}

func parseHeight(label string) int {
	m := heightRe.FindStringSubmatch(label)
	if len(m) < 2 {
		return 0
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return h
}

// toFormatRecord maps an extractor format. Bitrate is reported in bit/s and
// converted to kbit/s.
func toFormatRecord(f types.Format) model.FormatRecord {
	kind, subtype, codecs := mimeParts(f.MimeType)
	video, audio := splitCodecs(kind, codecs)
	if video == "" {
		video = model.CodecNone
	}
	if audio == "" {
		audio = model.CodecNone
	}
	return model.FormatRecord{
		FormatID:       strconv.Itoa(f.Itag),
		VideoCodec:     video,
		AudioCodec:     audio,
		Extension:      subtype,
		Height:         parseHeight(f.Quality),
		AverageBitrate: float64(f.Bitrate) / 1000,
	}
}

func toFormatRecords(formats []types.Format) []model.FormatRecord {
	out := make([]model.FormatRecord, 0, len(formats))
	for _, f := range formats {
		if f.Itag <= 0 {
			continue
		}
		out = append(out, toFormatRecord(f))
	}
	return out
}

// bestAudio returns the highest bitrate audio-only format, preferring MP4
// audio. ok is false when the video has no separate audio track.
func bestAudio(formats []types.Format) (best types.Format, ok bool) {
	var fallback types.Format
	var haveFallback bool
	for _, f := range formats {
		kind, subtype, _ := mimeParts(f.MimeType)
		if kind != "audio" || f.Itag <= 0 {
			continue
		}
		if subtype == "mp4" {
			if !ok || f.Bitrate > best.Bitrate {
				best, ok = f, true
			}
			continue
		}
		if !haveFallback || f.Bitrate > fallback.Bitrate {
			fallback, haveFallback = f, true
		}
	}
	if ok {
		return best, true
	}
	return fallback, haveFallback
}

// audioExtension returns the file extension for an audio format.
func audioExtension(f types.Format) string {
	_, subtype, _ := mimeParts(f.MimeType)
	if subtype == "mp4" || subtype == "" {
		return ".m4a"
	}
	return "." + subtype
}
