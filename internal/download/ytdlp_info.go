package download

import (
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"

	"github.com/ytget/ytmp4/internal/model"
)

// infoJSON is the subset of yt-dlp's info dict that ytmp4 reads. Every field
// may be null.
type infoJSON struct {
	ID                 *string `json:"id"`
	Title              *string `json:"title"`
	Ext                *string `json:"ext"`
	WebpageURL         *string `json:"webpage_url"`
	Filename           *string `json:"filename"`
	LegacyFilename     *string `json:"_filename"`
	RequestedDownloads []struct {
		Filepath *string `json:"filepath"`
	} `json:"requested_downloads"`
	Formats []formatJSON `json:"formats"`
}

type formatJSON struct {
	FormatID *string  `json:"format_id"`
	VCodec   *string  `json:"vcodec"`
	ACodec   *string  `json:"acodec"`
	Ext      *string  `json:"ext"`
	Height   *float64 `json:"height"`
	TBR      *float64 `json:"tbr"`
}

// decodeInfo finds the last JSON object line in yt-dlp's stdout and decodes it.
func decodeInfo(stdout string) (*infoJSON, error) {
	lines := strings.Split(stdout, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var info infoJSON
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			return nil, errors.Wrap(err, "decode yt-dlp output")
		}
		return &info, nil
	}
	return nil, errors.New("yt-dlp printed no video info")
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func num(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// toModel converts the info dict. Formats without an ID are dropped.
func (i *infoJSON) toModel(url string) *model.VideoInfo {
	info := &model.VideoInfo{
		ID:        str(i.ID),
		URL:       url,
		Title:     str(i.Title),
		Extension: str(i.Ext),
		Formats:   make([]model.FormatRecord, 0, len(i.Formats)),
	}
	if info.URL == "" {
		info.URL = str(i.WebpageURL)
	}

	for _, f := range i.Formats {
		id := str(f.FormatID)
		if id == "" {
			continue
		}
		info.Formats = append(info.Formats, model.FormatRecord{
			FormatID:       id,
			VideoCodec:     str(f.VCodec),
			AudioCodec:     str(f.ACodec),
			Extension:      str(f.Ext),
			Height:         int(num(f.Height)),
			AverageBitrate: num(f.TBR),
		})
	}
	return info
}

// savedPath returns the final file path yt-dlp reported, if any.
func (i *infoJSON) savedPath() string {
	for _, d := range i.RequestedDownloads {
		if p := str(d.Filepath); p != "" {
			return p
		}
	}
	if p := str(i.Filename); p != "" {
		return p
	}
	return str(i.LegacyFilename)
}
