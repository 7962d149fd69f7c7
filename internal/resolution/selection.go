package resolution

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/ytget/ytmp4/internal/errs"
	"github.com/ytget/ytmp4/internal/model"
)

// Select maps a 1-based index typed by the user to an entry of the resolved list.
// Anything that is not an integer within [1, len(entries)] yields errs.ErrInvalidSelection.
func Select(entries []model.ResolutionEntry, raw string) (model.ResolutionEntry, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return model.ResolutionEntry{}, errors.Wrapf(errs.ErrInvalidSelection, "%q is not a number", raw)
	}
	if n < 1 || n > len(entries) {
		return model.ResolutionEntry{}, errors.Wrapf(errs.ErrInvalidSelection, "%d is out of range 1..%d", n, len(entries))
	}
	return entries[n-1], nil
}
