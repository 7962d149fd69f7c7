package download

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ytget/ytdlp/types"

	"github.com/ytget/ytmp4/internal/model"
	"github.com/ytget/ytmp4/internal/resolution"
)

func TestToFormatRecord(t *testing.T) {
	tests := []struct {
		name   string
		format types.Format
		want   model.FormatRecord
	}{
		{
			name:   "adaptive video",
			format: types.Format{Itag: 137, MimeType: `video/mp4; codecs="avc1.640028"`, Quality: "1080p", Bitrate: 4_000_000},
			want:   model.FormatRecord{FormatID: "137", VideoCodec: "avc1.640028", AudioCodec: "none", Extension: "mp4", Height: 1080, AverageBitrate: 4000},
		},
		{
			name:   "adaptive audio",
			format: types.Format{Itag: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 130_000},
			want:   model.FormatRecord{FormatID: "140", VideoCodec: "none", AudioCodec: "mp4a.40.2", Extension: "mp4", AverageBitrate: 130},
		},
		{
			name:   "progressive",
			format: types.Format{Itag: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Quality: "360p", Bitrate: 500_000},
			want:   model.FormatRecord{FormatID: "18", VideoCodec: "avc1.42001e", AudioCodec: "mp4a.40.2", Extension: "mp4", Height: 360, AverageBitrate: 500},
		},
		{
			name:   "webm with fps label",
			format: types.Format{Itag: 303, MimeType: `video/webm; codecs="vp9"`, Quality: "1080p60", Bitrate: 5_000_000},
			want:   model.FormatRecord{FormatID: "303", VideoCodec: "vp9", AudioCodec: "none", Extension: "webm", Height: 1080, AverageBitrate: 5000},
		},
		{
			name:   "unknown codec on video mime",
			format: types.Format{Itag: 999, MimeType: `video/mp4; codecs="xyz1"`, Quality: "720p"},
			want:   model.FormatRecord{FormatID: "999", VideoCodec: "xyz1", AudioCodec: "none", Extension: "mp4", Height: 720},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toFormatRecord(tt.format))
		})
	}
}

func TestToFormatRecords_FeedResolver(t *testing.T) {
	formats := []types.Format{
		{Itag: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Quality: "360p", Bitrate: 500_000},
		{Itag: 134, MimeType: `video/mp4; codecs="avc1.4d401e"`, Quality: "360p", Bitrate: 300_000},
		{Itag: 136, MimeType: `video/mp4; codecs="avc1.4d401f"`, Quality: "720p", Bitrate: 1_200_000},
		{Itag: 398, MimeType: `video/mp4; codecs="av01.0.05M.08"`, Quality: "720p", Bitrate: 1_500_000},
		{Itag: 247, MimeType: `video/webm; codecs="vp9"`, Quality: "720p", Bitrate: 2_000_000},
		{Itag: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 130_000},
		{Itag: 0, MimeType: `video/mp4; codecs="avc1"`, Quality: "1080p"},
	}

	entries := resolution.Resolve(toFormatRecords(formats))
	assert.Equal(t, []model.ResolutionEntry{
		{Height: 360, FormatID: "134"},
		{Height: 720, FormatID: "398"},
	}, entries)
}

func TestBestAudio(t *testing.T) {
	formats := []types.Format{
		{Itag: 137, MimeType: `video/mp4; codecs="avc1"`},
		{Itag: 251, MimeType: `audio/webm; codecs="opus"`, Bitrate: 160_000},
		{Itag: 139, MimeType: `audio/mp4; codecs="mp4a.40.5"`, Bitrate: 50_000},
		{Itag: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 130_000},
	}

	best, ok := bestAudio(formats)
	assert.True(t, ok)
	assert.Equal(t, 140, best.Itag, "mp4 audio wins over higher bitrate webm")
	assert.Equal(t, ".m4a", audioExtension(best))

	best, ok = bestAudio(formats[:2])
	assert.True(t, ok)
	assert.Equal(t, 251, best.Itag)
	assert.Equal(t, ".webm", audioExtension(best))

	_, ok = bestAudio(formats[:1])
	assert.False(t, ok)
}

func TestParseHeight(t *testing.T) {
	assert.Equal(t, 720, parseHeight("720p"))
	assert.Equal(t, 2160, parseHeight("2160p60 HDR"))
	assert.Equal(t, 0, parseHeight(""))
	assert.Equal(t, 0, parseHeight("tiny"))
}
