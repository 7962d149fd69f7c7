package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-faster/errors"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
)

// Console reads answers from in and writes localized output to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	loc *Localization
}

// New creates a console. A nil loc uses English.
func New(in io.Reader, out io.Writer, loc *Localization) *Console {
	if loc == nil {
		loc = NewLocalization()
	}
	return &Console{in: bufio.NewReader(in), out: out, loc: loc}
}

// Out returns the writer used for all output.
func (c *Console) Out() io.Writer {
	return c.out
}

// Localization returns the active translations.
func (c *Console) Localization() *Localization {
	return c.loc
}

// Ask prints the prompt for key and returns the trimmed answer. End of input
// counts as an empty answer.
func (c *Console) Ask(key string) (string, error) {
	fmt.Fprint(c.out, c.loc.GetText(key))

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "read answer")
	}
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
	}
	return strings.TrimSpace(line), nil
}

// Fetching announces the info request.
func (c *Console) Fetching() {
	fmt.Fprintln(c.out, infoStyle.Render(IconSearch+" "+c.loc.GetText(KeyFetching)))
}

// Resolutions prints the numbered list of labels.
func (c *Console) Resolutions(labels []string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(IconScreen+" "+c.loc.GetText(KeyResolutions)))
	for i, label := range labels {
		fmt.Fprintf(c.out, "%d) %s\n", i+1, label)
	}
}

// Downloading announces the chosen resolution.
func (c *Console) Downloading(label string) {
	fmt.Fprintf(c.out, "\n%s %s\n\n", IconDownload, c.loc.Textf(KeyDownloadingIn, label))
}

// Saved reports the output folder and, when known, the file.
func (c *Console) Saved(folder, file string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, successStyle.Render(IconDone+" "+c.loc.Textf(KeySavedTo, folder)))
	if file != "" {
		fmt.Fprintln(c.out, IconFile+" "+c.loc.Textf(KeySavedFile, file))
	}
}

// Info prints a plain localized line.
func (c *Console) Info(key string, args ...any) {
	fmt.Fprintln(c.out, infoStyle.Render(c.loc.Textf(key, args...)))
}

// Warn prints a localized warning line.
func (c *Console) Warn(key string, args ...any) {
	fmt.Fprintln(c.out, warningStyle.Render(IconWarning+" "+c.loc.Textf(key, args...)))
}

// Fatal prints "❌ message" or "❌ message: cause".
func (c *Console) Fatal(message string, cause error) {
	line := IconError + " " + message
	if cause != nil {
		line += ": " + cause.Error()
	}
	fmt.Fprintln(c.out, errorStyle.Render(line))
}
