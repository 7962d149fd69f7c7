// Package download implements the extraction collaborators. YTDLPService
// drives the yt-dlp binary through github.com/lrstanley/go-ytdlp and lets it
// merge the streams. NativeService extracts in-process with
// github.com/ytget/ytdlp/v2, fetches both streams concurrently and merges
// them with ffmpeg.
package download
