package download

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/ytget/ytmp4/internal/model"
)

// DefaultBarWidth is the width of the rendered progress bar.
const DefaultBarWidth = 24

const unknownField = "N/A"

// Sample is a raw progress measurement taken by a backend.
type Sample struct {
	Downloaded      int64
	Total           int64
	TotalIsEstimate bool
	Elapsed         time.Duration
	Filename        string
}

// StatusBuilder turns raw samples into display-ready status records.
type StatusBuilder struct {
	bar     progress.Model
	showBar bool
}

// NewStatusBuilder creates a builder. A non-positive barWidth disables the bar.
func NewStatusBuilder(barWidth int) *StatusBuilder {
	b := &StatusBuilder{showBar: barWidth > 0}
	if b.showBar {
		b.bar = progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		)
	}
	return b
}

// Build formats s for the given tag.
func (b *StatusBuilder) Build(tag model.StatusTag, s Sample) model.Status {
	st := model.Status{
		Tag:      tag,
		Percent:  unknownField,
		Speed:    unknownField,
		ETA:      model.FormatETA(0),
		Filename: s.Filename,
	}

	if s.Total > 0 {
		ratio := float64(s.Downloaded) / float64(s.Total)
		if ratio > 1 {
			ratio = 1
		}
		st.Percent = fmt.Sprintf("%5.1f%%", ratio*100)
		if s.TotalIsEstimate {
			st.TotalEstimate = "~" + humanize.IBytes(uint64(s.Total))
		} else {
			st.Total = humanize.IBytes(uint64(s.Total))
		}
		if b.showBar {
			st.Bar = b.bar.ViewAs(ratio)
		}
	}

	if s.Elapsed > 0 && s.Downloaded > 0 {
		bps := float64(s.Downloaded) / s.Elapsed.Seconds()
		st.Speed = humanize.IBytes(uint64(bps)) + "/s"
		if s.Total > s.Downloaded && bps > 0 {
			st.ETA = model.FormatETA(int(float64(s.Total-s.Downloaded) / bps))
		}
	}

	if tag == model.StatusFinished {
		st.Percent = "100.0%"
		st.ETA = model.FormatETA(0)
	}
	return st
}
