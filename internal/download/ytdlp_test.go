package download

import (
	"sync"
	"testing"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytmp4/internal/model"
)

const sampleInfo = `{"id":"dQw4w9WgXcQ","title":"Never Gonna Give You Up","ext":"mp4","webpage_url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ","formats":[
{"format_id":"140","vcodec":"none","acodec":"mp4a.40.2","ext":"m4a","height":null,"tbr":129.5},
{"format_id":"136","vcodec":"avc1.4d401f","acodec":"none","ext":"mp4","height":720,"tbr":1500.2},
{"format_id":"137","vcodec":"avc1.640028","acodec":"none","ext":"mp4","height":1080,"tbr":null},
{"format_id":null,"vcodec":"avc1","acodec":"none","ext":"mp4","height":480},
{"format_id":"sb0","vcodec":"none","acodec":"none","ext":"mhtml"}
]}`

func TestDecodeInfo(t *testing.T) {
	raw, err := decodeInfo("[youtube] extracting\n" + compact(sampleInfo) + "\n")
	require.NoError(t, err)

	info := raw.toModel("https://youtu.be/dQw4w9WgXcQ")
	assert.Equal(t, "dQw4w9WgXcQ", info.ID)
	assert.Equal(t, "Never Gonna Give You Up", info.Title)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", info.URL)
	require.Len(t, info.Formats, 4, "formats without an ID are dropped")

	assert.Equal(t, model.FormatRecord{FormatID: "140", VideoCodec: "none", AudioCodec: "mp4a.40.2", Extension: "m4a", AverageBitrate: 129.5}, info.Formats[0])
	assert.Equal(t, 720, info.Formats[1].Height)
	assert.Equal(t, 1500.2, info.Formats[1].AverageBitrate)
	assert.Equal(t, 1080, info.Formats[2].Height)
	assert.Zero(t, info.Formats[2].AverageBitrate, "null bitrate becomes zero")
}

func TestDecodeInfo_WebpageURLFallback(t *testing.T) {
	raw, err := decodeInfo(compact(sampleInfo))
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", raw.toModel("").URL)
}

func TestDecodeInfo_Errors(t *testing.T) {
	_, err := decodeInfo("")
	assert.Error(t, err)

	_, err = decodeInfo("ERROR: unsupported URL\n")
	assert.Error(t, err)

	_, err = decodeInfo("{not json")
	assert.Error(t, err)
}

func TestSavedPath(t *testing.T) {
	raw, err := decodeInfo(`{"_filename":"/d/a.webm","filename":"/d/a.mp4","requested_downloads":[{"filepath":"/d/final.mp4"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "/d/final.mp4", raw.savedPath())

	raw, err = decodeInfo(`{"_filename":"/d/legacy.mp4"}`)
	require.NoError(t, err)
	assert.Equal(t, "/d/legacy.mp4", raw.savedPath())

	raw, err = decodeInfo(`{}`)
	require.NoError(t, err)
	assert.Empty(t, raw.savedPath())
}

func TestYTDLPService_ToStatus(t *testing.T) {
	s := NewYTDLPService(YTDLPOptions{}, NewStatusBuilder(0))

	st, ok := s.toStatus(ytdlp.ProgressUpdate{
		Status:          ytdlp.ProgressStatus("downloading"),
		TotalBytes:      2048,
		DownloadedBytes: 1024,
		Started:         time.Now().Add(-time.Second),
		Filename:        "/d/clip.f137.mp4",
	})
	require.True(t, ok)
	assert.Equal(t, model.StatusDownloading, st.Tag)
	assert.Equal(t, " 50.0%", st.Percent)
	assert.Equal(t, "2.0 KiB", st.Total)
	assert.Equal(t, "/d/clip.f137.mp4", st.Filename)

	st, ok = s.toStatus(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatus("finished")})
	require.True(t, ok)
	assert.Equal(t, model.StatusFinished, st.Tag)

	_, ok = s.toStatus(ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatus("post_processing")})
	assert.False(t, ok)
}

func TestNewYTDLPService_Defaults(t *testing.T) {
	s := NewYTDLPService(YTDLPOptions{}, nil)
	assert.Equal(t, DefaultProgressInterval, s.opts.ProgressInterval)
	assert.Equal(t, DefaultAudioSelector, s.opts.AudioSelector)
	assert.NotNil(t, s.status)
}

func compact(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r != '\n' {
			out = append(out, r)
		}
	}
	return string(out)
}

func TestFirstTitle_ConcurrentOffers(t *testing.T) {
	var title firstTitle
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			title.offer("Never Gonna Give You Up")
		}()
	}
	wg.Wait()
	title.offer("later title")

	assert.Equal(t, "Never Gonna Give You Up", title.get())
}

func TestFirstTitle_SkipsEmpty(t *testing.T) {
	var title firstTitle
	title.offer("")
	title.offer("From info dict")

	assert.Equal(t, "From info dict", title.get())
}

func TestFinishGate_OnlyLastStreamFinishes(t *testing.T) {
	gate := &finishGate{streams: MergedStreams}
	b := NewStatusBuilder(0)

	video := gate.relabel(b.Build(model.StatusFinished, Sample{Downloaded: 10, Total: 10}))
	assert.Equal(t, model.StatusDownloading, video.Tag)
	assert.Equal(t, "100.0%", video.Percent)
	assert.False(t, gate.done())

	progress := gate.relabel(b.Build(model.StatusDownloading, Sample{Downloaded: 1, Total: 4}))
	assert.Equal(t, model.StatusDownloading, progress.Tag)

	audio := gate.relabel(b.Build(model.StatusFinished, Sample{Downloaded: 4, Total: 4}))
	assert.Equal(t, model.StatusFinished, audio.Tag)
	assert.True(t, gate.done())
}

func TestFinishGate_ErrorPassesThrough(t *testing.T) {
	gate := &finishGate{streams: MergedStreams}

	st := gate.relabel(model.Status{Tag: model.StatusError})
	assert.Equal(t, model.StatusError, st.Tag)
	assert.False(t, gate.done())
}
