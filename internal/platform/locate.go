package platform

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-faster/errors"
)

// MergedExtension is the container of every finished download.
const MergedExtension = ".mp4"

// MaxNameDifference is how many characters a truncated or decorated file
// name may differ from the expected one.
const MaxNameDifference = 10

// minWordLength ignores articles and separators when matching title words.
const minWordLength = 3

// PartialSuffixes mark files a downloader has not finished writing.
var PartialSuffixes = []string{".part", ".ytdl", ".temp"}

// ErrSavedFileNotFound is returned when no candidate in the folder matches.
var ErrSavedFileNotFound = errors.New("saved file not found")

// FindSavedFile looks for the merged file of a video titled title in dir.
// The exact and sanitized names are tried first; after that the folder is
// scanned for a similar or title-sharing .mp4, newest first on ties.
func FindSavedFile(dir, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("empty title")
	}

	safe := SafeFileName(title)
	for _, name := range []string{title, safe} {
		path := filepath.Join(dir, name+MergedExtension)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, "read directory %s", dir)
	}

	words := titleWords(title)
	var (
		best      string
		bestScore int
		bestMod   int64
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isPartial(name) || !strings.EqualFold(filepath.Ext(name), MergedExtension) {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))

		score := sharedWords(words, titleWords(base))
		if isSimilarFileName(base, safe) || isSimilarFileName(base, title) {
			score = len(words) + 1
		}
		if score == 0 || score*2 < len(words) {
			continue
		}

		mod := modTime(filepath.Join(dir, name))
		if score > bestScore || (score == bestScore && mod > bestMod) {
			best, bestScore, bestMod = filepath.Join(dir, name), score, mod
		}
	}

	if best == "" {
		return "", errors.Wrapf(ErrSavedFileNotFound, "%q in %s", title, dir)
	}
	return best, nil
}

func modTime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}

// isSimilarFileName reports whether two base names differ only by a leading
// or trailing separator or by truncation.
func isSimilarFileName(name1, name2 string) bool {
	a := strings.TrimSpace(name1)
	b := strings.TrimSpace(name2)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	if strings.Trim(a, "-_ ") == strings.Trim(b, "-_ ") {
		return true
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		diff := len(a) - len(b)
		if diff < 0 {
			diff = -diff
		}
		return diff <= MaxNameDifference
	}
	return false
}

func isPartial(name string) bool {
	for _, suffix := range PartialSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// titleWords splits s into lowercase words of at least minWordLength runes.
func titleWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(w)) >= minWordLength {
			words[w] = struct{}{}
		}
	}
	return words
}

func sharedWords(want, got map[string]struct{}) int {
	n := 0
	for w := range want {
		if _, ok := got[w]; ok {
			n++
		}
	}
	return n
}
