package download

import (
	"context"

	"github.com/ytget/ytmp4/internal/model"
)

// Extractor fetches video metadata and performs the download of a selected
// format merged with the best audio track.
type Extractor interface {
	FetchInfo(ctx context.Context, url string) (*model.VideoInfo, error)
	Download(ctx context.Context, req model.DownloadRequest) (*model.DownloadResult, error)
}
