package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("  https://youtu.be/abc  \n\n2"), &out, nil)

	url, err := c.Ask(KeyPromptURL)
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/abc", url)

	folder, err := c.Ask(KeyPromptFolder)
	require.NoError(t, err)
	assert.Empty(t, folder)

	choice, err := c.Ask(KeyPromptChoice)
	require.NoError(t, err)
	assert.Equal(t, "2", choice, "last line without newline is still read")

	assert.Contains(t, out.String(), "Enter the YouTube URL: ")
	assert.Contains(t, out.String(), "Choose resolution number: ")
}

func TestAsk_EOFIsEmpty(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, nil)

	answer, err := c.Ask(KeyPromptURL)
	require.NoError(t, err)
	assert.Empty(t, answer)
}

func TestResolutions(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, nil)

	c.Resolutions([]string{"720p", "1080p"})

	s := out.String()
	assert.Contains(t, s, IconScreen+" Available Resolutions:")
	assert.Contains(t, s, "1) 720p\n")
	assert.Contains(t, s, "2) 1080p\n")
}

func TestMessages(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, nil)

	c.Fetching()
	c.Downloading("1080p")
	c.Saved("/home/u/Downloads", "/home/u/Downloads/Clip.mp4")

	s := out.String()
	assert.Contains(t, s, IconSearch+" Fetching video info...")
	assert.Contains(t, s, IconDownload+" Downloading in 1080p...")
	assert.Contains(t, s, IconDone+" Video saved to: /home/u/Downloads")
	assert.Contains(t, s, "/home/u/Downloads/Clip.mp4")
}

func TestFatal(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, nil)

	c.Fatal("Failed to fetch video info", errors.New("HTTP Error 404"))
	c.Fatal("Invalid selection.", nil)

	s := out.String()
	assert.Contains(t, s, IconError+" Failed to fetch video info: HTTP Error 404")
	assert.Contains(t, s, IconError+" Invalid selection.\n")
}
