package download

import "strings"

// DefaultAudioSelector picks the best M4A audio track.
const DefaultAudioSelector = "bestaudio[ext=m4a]"

// MergeContainer is the fixed output container.
const MergeContainer = "mp4"

// OutputTemplate names files after the video title.
const OutputTemplate = "%(title)s.%(ext)s"

// BuildSelector combines a video format ID with an audio selector, e.g.
// "137+bestaudio[ext=m4a]".
func BuildSelector(formatID, audioSelector string) string {
	audio := strings.TrimSpace(audioSelector)
	if audio == "" {
		audio = DefaultAudioSelector
	}
	return strings.TrimSpace(formatID) + "+" + audio
}
