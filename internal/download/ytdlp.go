package download

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytmp4/internal/logger"
	"github.com/ytget/ytmp4/internal/model"
)

// DefaultProgressInterval is how often yt-dlp progress is forwarded.
const DefaultProgressInterval = 500 * time.Millisecond

// MergedStreams is how many streams yt-dlp fetches before merging: the
// selected video format and the audio track.
const MergedStreams = 2

// YTDLPOptions configures YTDLPService.
type YTDLPOptions struct {
	FFmpegLocation    string
	AudioSelector     string
	ProgressInterval  time.Duration
	RestrictFilenames bool
	Proxy             string
	CookiesFile       string
}

// YTDLPService is the Extractor backed by the yt-dlp binary.
type YTDLPService struct {
	opts   YTDLPOptions
	status *StatusBuilder
}

// NewYTDLPService creates a yt-dlp backed extractor.
func NewYTDLPService(opts YTDLPOptions, status *StatusBuilder) *YTDLPService {
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = DefaultProgressInterval
	}
	if opts.AudioSelector == "" {
		opts.AudioSelector = DefaultAudioSelector
	}
	if status == nil {
		status = NewStatusBuilder(DefaultBarWidth)
	}
	return &YTDLPService{opts: opts, status: status}
}

func (s *YTDLPService) base() *ytdlp.Command {
	dl := ytdlp.New().
		NoPlaylist().
		Quiet().
		NoWarnings()
	if s.opts.Proxy != "" {
		dl.Proxy(s.opts.Proxy)
	}
	if s.opts.CookiesFile != "" {
		dl.Cookies(s.opts.CookiesFile)
	}
	return dl
}

// FetchInfo asks yt-dlp for the info dict without downloading.
func (s *YTDLPService) FetchInfo(ctx context.Context, url string) (*model.VideoInfo, error) {
	start := time.Now()
	res, err := s.base().
		SkipDownload().
		PrintJSON().
		Run(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "yt-dlp")
	}

	raw, err := decodeInfo(res.Stdout)
	if err != nil {
		return nil, err
	}
	info := raw.toModel(url)
	logger.InfoWithDuration("fetched info", start, "id", info.ID, "formats", len(info.Formats))
	return info, nil
}

// Download fetches the selected format plus audio and lets yt-dlp merge them
// into an MP4 in the output folder.
func (s *YTDLPService) Download(ctx context.Context, req model.DownloadRequest) (*model.DownloadResult, error) {
	start := time.Now()
	selector := BuildSelector(req.SelectedFormatID, s.opts.AudioSelector)
	var title firstTitle
	gate := &finishGate{streams: MergedStreams}

	dl := s.base().
		Format(selector).
		Output(filepath.Join(req.OutputFolder, OutputTemplate)).
		MergeOutputFormat(MergeContainer).
		PrintJSON().
		ProgressFunc(s.opts.ProgressInterval, func(u ytdlp.ProgressUpdate) {
			if u.Info != nil && u.Info.Title != nil {
				title.offer(*u.Info.Title)
			}
			if st, ok := s.toStatus(u); ok {
				req.Report(gate.relabel(st))
			}
		})
	if s.opts.FFmpegLocation != "" {
		dl.FFmpegLocation(s.opts.FFmpegLocation)
	}
	if s.opts.RestrictFilenames {
		dl.RestrictFilenames()
	}

	logger.Debug("starting yt-dlp download", "url", req.URL, "format", selector, "dir", req.OutputFolder)
	res, err := dl.Run(ctx, req.URL)
	if err != nil {
		req.Report(model.Status{Tag: model.StatusError})
		return nil, errors.Wrap(err, "yt-dlp")
	}

	if !gate.done() {
		req.Report(s.status.Build(model.StatusFinished, Sample{}))
	}

	result := &model.DownloadResult{}
	if raw, derr := decodeInfo(res.Stdout); derr == nil {
		title.offer(str(raw.Title))
		result.OutputPath = raw.savedPath()
	} else {
		logger.Debug("no info dict after download", "error", derr)
	}

	result.Title = title.get()

	logger.InfoWithDuration("download finished", start, "path", result.OutputPath)
	return result, nil
}

// firstTitle keeps the first non-empty title offered. Progress callbacks
// may arrive from several goroutines.
type firstTitle struct {
	mu    sync.Mutex
	title string
}

func (t *firstTitle) offer(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.title == "" {
		t.title = title
	}
}

func (t *firstTitle) get() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title
}

// toStatus adapts a go-ytdlp progress update. Updates for other phases
// (starting, post-processing) are dropped.
func (s *YTDLPService) toStatus(u ytdlp.ProgressUpdate) (model.Status, bool) {
	tag := model.StatusTag(string(u.Status))
	switch tag {
	case model.StatusDownloading, model.StatusFinished, model.StatusError:
	default:
		return model.Status{}, false
	}

	sample := Sample{
		Downloaded: int64(u.DownloadedBytes),
		Total:      int64(u.TotalBytes),
		Filename:   u.Filename,
	}
	if !u.Started.IsZero() {
		sample.Elapsed = time.Since(u.Started)
	}
	return s.status.Build(tag, sample), true
}

// finishGate lets only the last stream's finished status through, so the
// merge notice is printed once. Earlier ones become a complete progress line.
type finishGate struct {
	mu      sync.Mutex
	streams int
	seen    int
}

func (g *finishGate) relabel(st model.Status) model.Status {
	if st.Tag != model.StatusFinished {
		return st
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seen++
	if g.seen < g.streams {
		st.Tag = model.StatusDownloading
	}
	return st
}

func (g *finishGate) done() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seen >= g.streams
}
