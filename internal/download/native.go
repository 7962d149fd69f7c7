package download

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
	ytget "github.com/ytget/ytdlp/v2"
	yterrs "github.com/ytget/ytdlp/errs"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/ytmp4/internal/logger"
	"github.com/ytget/ytmp4/internal/model"
	"github.com/ytget/ytmp4/internal/mux"
	"github.com/ytget/ytmp4/internal/platform"
)

// Native backend defaults
const (
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultFetchRetries = 2
	TempDirPrefix       = ".ytmp4-"
)

// streamClient is the part of the extractor library the native backend uses.
type streamClient interface {
	Resolve(ctx context.Context, url string) (*ytget.VideoInfo, error)
	Fetch(ctx context.Context, url string, itag int, path string, progress func(ytget.Progress)) error
}

// NativeOptions configures NativeService.
type NativeOptions struct {
	HTTPTimeout time.Duration
	Proxy       string
	Retries     uint64
	// RunID names the temporary stream folder.
	RunID string
}

// NativeService is the Extractor that needs only ffmpeg.
type NativeService struct {
	opts       NativeOptions
	client     streamClient
	merger     mux.Merger
	status     *StatusBuilder
	newBackOff func() backoff.BackOff

	mu    sync.Mutex
	cache map[string]*ytget.VideoInfo
}

// NewNativeService creates the in-process extractor.
func NewNativeService(opts NativeOptions, merger mux.Merger, status *StatusBuilder) (*NativeService, error) {
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = DefaultHTTPTimeout
	}
	if opts.RunID == "" {
		opts.RunID = strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	if status == nil {
		status = NewStatusBuilder(DefaultBarWidth)
	}

	httpClient, err := newHTTPClient(opts.HTTPTimeout, opts.Proxy)
	if err != nil {
		return nil, err
	}

	return &NativeService{
		opts:       opts,
		client:     &ytgetClient{http: httpClient},
		merger:     merger,
		status:     status,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		cache:      make(map[string]*ytget.VideoInfo),
	}, nil
}

// newHTTPClient bounds connection setup and response headers only; a
// client-wide timeout would cut long stream transfers.
func newHTTPClient(timeout time.Duration, proxy string) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ForceAttemptHTTP2:     false,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}
	if proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, errors.Wrapf(err, "parse proxy %q", proxy)
		}
		transport.Proxy = http.ProxyURL(u)
	}
	return &http.Client{Transport: transport}, nil
}

// FetchInfo resolves the video and maps its formats. Transient failures are
// retried; unavailable, private, age restricted and geo blocked videos are not.
func (s *NativeService) FetchInfo(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	start := time.Now()
	vi, err := s.resolve(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	info := &model.VideoInfo{
		ID:        vi.ID,
		URL:       videoURL,
		Title:     vi.Title,
		Extension: MergeContainer,
		Formats:   toFormatRecords(vi.Formats),
	}
	logger.InfoWithDuration("fetched info", start, "id", info.ID, "formats", len(info.Formats))
	return info, nil
}

func (s *NativeService) resolve(ctx context.Context, videoURL string) (*ytget.VideoInfo, error) {
	s.mu.Lock()
	cached, ok := s.cache[videoURL]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	var vi *ytget.VideoInfo
	op := func() error {
		var err error
		vi, err = s.client.Resolve(ctx, videoURL)
		if err != nil && isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("resolve failed, retrying", "error", err, "wait", wait)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.opts.Retries), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, errors.Wrap(err, "resolve")
	}

	s.mu.Lock()
	s.cache[videoURL] = vi
	s.mu.Unlock()
	return vi, nil
}

func isPermanent(err error) bool {
	for _, target := range []error{
		yterrs.ErrVideoUnavailable,
		yterrs.ErrPrivate,
		yterrs.ErrAgeRestricted,
		yterrs.ErrGeoBlocked,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return strings.Contains(err.Error(), "extract video id")
}

type stream struct {
	name string
	itag int
	path string
}

// Download fetches the selected video stream and the best audio stream
// concurrently into a temporary folder, then merges them into
// <folder>/<title>.mp4.
func (s *NativeService) Download(ctx context.Context, req model.DownloadRequest) (*model.DownloadResult, error) {
	start := time.Now()

	videoItag, err := strconv.Atoi(strings.TrimSpace(req.SelectedFormatID))
	if err != nil {
		return nil, errors.Wrapf(err, "format %q is not an itag", req.SelectedFormatID)
	}

	vi, err := s.resolve(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	audio, ok := bestAudio(vi.Formats)
	if !ok {
		return nil, errors.New("no audio track available")
	}

	tmp, err := os.MkdirTemp(req.OutputFolder, TempDirPrefix+s.opts.RunID+"-")
	if err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	defer func() {
		if err := os.RemoveAll(tmp); err != nil {
			logger.Warn("failed to remove temp dir", "path", tmp, "error", err)
		}
	}()

	streams := []stream{
		{name: "video", itag: videoItag, path: filepath.Join(tmp, "video-"+strconv.Itoa(videoItag)+".mp4")},
		{name: "audio", itag: audio.Itag, path: filepath.Join(tmp, "audio-"+strconv.Itoa(audio.Itag)+audioExtension(audio))},
	}

	if err := s.fetchStreams(ctx, req, streams); err != nil {
		req.Report(model.Status{Tag: model.StatusError})
		return nil, err
	}

	title := vi.Title
	out := filepath.Join(req.OutputFolder, platform.SafeFileName(title)+"."+MergeContainer)
	if err := s.merger.Merge(ctx, streams[0].path, streams[1].path, out, mux.Metadata{Title: title}); err != nil {
		return nil, errors.Wrap(err, "merge")
	}

	logger.InfoWithDuration("download finished", start, "path", out)
	return &model.DownloadResult{Title: title, OutputPath: out}, nil
}

// fetchStreams downloads all streams at once and reports their combined progress.
func (s *NativeService) fetchStreams(ctx context.Context, req model.DownloadRequest, streams []stream) error {
	var (
		mu         sync.Mutex
		downloaded = make([]int64, len(streams))
		totals     = make([]int64, len(streams))
		started    = time.Now()
	)

	report := func(i int, p ytget.Progress) {
		mu.Lock()
		defer mu.Unlock()

		downloaded[i], totals[i] = p.DownloadedSize, p.TotalSize
		sample := Sample{Elapsed: time.Since(started), Filename: streams[i].path}
		for j := range streams {
			sample.Downloaded += downloaded[j]
			if totals[j] <= 0 {
				sample.TotalIsEstimate = true
			}
			sample.Total += totals[j]
		}
		req.Report(s.status.Build(model.StatusDownloading, sample))
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, st := range streams {
		g.Go(func() error {
			logger.Debug("fetching stream", "kind", st.name, "itag", st.itag)
			if err := s.client.Fetch(gctx, req.URL, st.itag, st.path, func(p ytget.Progress) { report(i, p) }); err != nil {
				return errors.Wrapf(err, "fetch %s stream (itag %d)", st.name, st.itag)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	mu.Lock()
	var total int64
	for _, n := range downloaded {
		total += n
	}
	mu.Unlock()
	req.Report(s.status.Build(model.StatusFinished, Sample{Downloaded: total, Total: total, Elapsed: time.Since(started)}))
	return nil
}

// ytgetClient adapts github.com/ytget/ytdlp/v2.
type ytgetClient struct {
	http *http.Client
}

func (c *ytgetClient) Resolve(ctx context.Context, videoURL string) (*ytget.VideoInfo, error) {
	_, info, err := ytget.New().WithHTTPClient(c.http).ResolveURL(ctx, videoURL)
	return info, err
}

func (c *ytgetClient) Fetch(ctx context.Context, videoURL string, itag int, path string, progress func(ytget.Progress)) error {
	_, err := ytget.New().
		WithHTTPClient(c.http).
		WithFormat("itag="+strconv.Itoa(itag), "").
		WithOutputPath(path).
		WithProgress(progress).
		Download(ctx, videoURL)
	return err
}
