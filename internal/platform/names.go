package platform

import (
	"regexp"
	"strings"
)

// FallbackFileName is used when a title sanitizes to nothing.
const FallbackFileName = "video"

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
)

// SafeFileName makes a video title usable as a file name on every OS.
//
//	SafeFileName("Song: Part 1/2") // "Song_ Part 1_2"
//	SafeFileName("Track...")       // "Track"
func SafeFileName(title string) string {
	name := invalidNameChars.ReplaceAllString(title, "_")
	name = repeatedSpace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = trailingDots.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return FallbackFileName
	}
	return name
}
