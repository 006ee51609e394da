package bar

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

// Output kinds accepted by NewOutput
const (
	OutputPlain = "plain"
	OutputI3bar = "i3bar"
	OutputTerm  = "term"
)

// BlockName identifies the widget in i3bar blocks and click events
const BlockName = "memory"

// Segment is one rendering of the widget
type Segment struct {
	Text       string
	Color      string
	Background string
	Urgent     bool
}

// Output writes segments in a bar protocol
type Output interface {
	Begin() error
	Write(seg Segment) error
}

// NewOutput returns the writer for kind
func NewOutput(kind string, w io.Writer) (Output, error) {
	switch kind {
	case OutputPlain, "":
		return &plainOutput{w: w}, nil
	case OutputI3bar:
		return &i3barOutput{w: w}, nil
	case OutputTerm:
		return &termOutput{w: w}, nil
	}
	return nil, fmt.Errorf("unknown output %q, expected plain, i3bar or term", kind)
}

// plainOutput writes one line per update, for lemonbar, dzen and similar
type plainOutput struct {
	w io.Writer
}

func (o *plainOutput) Begin() error { return nil }

func (o *plainOutput) Write(seg Segment) error {
	_, err := fmt.Fprintln(o.w, seg.Text)
	return err
}

type i3barHeader struct {
	Version     int  `json:"version"`
	ClickEvents bool `json:"click_events"`
}

type i3barBlock struct {
	Name       string `json:"name"`
	FullText   string `json:"full_text"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	Urgent     bool   `json:"urgent,omitempty"`
}

// i3barOutput speaks the i3bar/swaybar JSON protocol: a header line followed
// by an endless array of status lines
type i3barOutput struct {
	w       io.Writer
	started bool
}

func (o *i3barOutput) Begin() error {
	header, err := json.Marshal(i3barHeader{Version: 1, ClickEvents: true})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(o.w, "%s\n[\n", header)
	return err
}

func (o *i3barOutput) Write(seg Segment) error {
	line, err := json.Marshal([]i3barBlock{{
		Name:       BlockName,
		FullText:   seg.Text,
		Color:      seg.Color,
		Background: seg.Background,
		Urgent:     seg.Urgent,
	}})
	if err != nil {
		return errors.Wrap(err, "encode block")
	}

	prefix := ","
	if !o.started {
		prefix = ""
		o.started = true
	}
	_, err = fmt.Fprintf(o.w, "%s%s\n", prefix, line)
	return err
}

// termOutput redraws a styled segment in place on a terminal
type termOutput struct {
	w io.Writer
}

func (o *termOutput) Begin() error { return nil }

func (o *termOutput) Write(seg Segment) error {
	style := lipgloss.NewStyle().Padding(0, 1).Bold(seg.Urgent)
	if seg.Color != "" {
		style = style.Foreground(lipgloss.Color(seg.Color))
	}
	if seg.Background != "" {
		style = style.Background(lipgloss.Color(seg.Background))
	}

	_, err := fmt.Fprintf(o.w, "\r%s\x1b[K", style.Render(seg.Text))
	return err
}
