package resolution

import (
	"strconv"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytmp4/internal/errs"
	"github.com/ytget/ytmp4/internal/model"
)

func TestSelect(t *testing.T) {
	entries := []model.ResolutionEntry{
		{Height: 360, FormatID: "134"},
		{Height: 720, FormatID: "136"},
		{Height: 1080, FormatID: "137"},
	}
	n := len(entries)

	for i := 1; i <= n; i++ {
		got, err := Select(entries, strconv.Itoa(i))
		require.NoError(t, err)
		assert.Equal(t, entries[i-1], got)
	}

	got, err := Select(entries, "  2 \n")
	require.NoError(t, err)
	assert.Equal(t, "136", got.FormatID)

	for _, raw := range []string{"0", strconv.Itoa(n + 1), "abc", "", "-1", "1.5", "2p"} {
		t.Run("invalid "+strconv.Quote(raw), func(t *testing.T) {
			_, err := Select(entries, raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidSelection))
		})
	}
}

func TestSelect_EmptyList(t *testing.T) {
	_, err := Select(nil, "1")
	assert.True(t, errors.Is(err, errs.ErrInvalidSelection))
}
