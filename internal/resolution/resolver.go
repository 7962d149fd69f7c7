// Package resolution turns an extractor's raw format list into the numbered
// resolution menu and maps the user's answer back to a format ID.
package resolution

import (
	"cmp"
	"slices"

	"github.com/ytget/ytmp4/internal/model"
)

// Resolve filters formats down to video-only MP4 streams with a known height,
// keeps the highest-bitrate stream per height and returns the entries in
// ascending height order. The result is empty when no record qualifies.
func Resolve(formats []model.FormatRecord) []model.ResolutionEntry {
	candidates := make([]model.FormatRecord, 0, len(formats))
	for _, f := range formats {
		if qualifies(f) {
			candidates = append(candidates, f)
		}
	}

	// Highest bitrate first within a height; stable so equal bitrates keep input order.
	slices.SortStableFunc(candidates, func(a, b model.FormatRecord) int {
		if c := cmp.Compare(a.Height, b.Height); c != 0 {
			return c
		}
		return cmp.Compare(bitrate(b), bitrate(a))
	})

	entries := make([]model.ResolutionEntry, 0, len(candidates))
	for _, f := range candidates {
		if n := len(entries); n > 0 && entries[n-1].Height == f.Height {
			continue
		}
		entries = append(entries, model.ResolutionEntry{Height: f.Height, FormatID: f.FormatID})
	}
	return entries
}
